package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// fileConfig mirrors [Base] for file decoding. Duration fields use the
// [Duration] wrapper so that both "30s"-style strings and plain nanosecond
// numbers are accepted.
type fileConfig struct {
	Server struct {
		Address        string   `json:"address" yaml:"address"`
		RequestTimeout Duration `json:"request_timeout" yaml:"request_timeout"`
		ReadTimeout    Duration `json:"read_timeout" yaml:"read_timeout"`
		WriteTimeout   Duration `json:"write_timeout" yaml:"write_timeout"`
		IdleTimeout    Duration `json:"idle_timeout" yaml:"idle_timeout"`
	} `json:"server,omitempty" yaml:"server"`

	GRPC struct {
		Address string `json:"address" yaml:"address"`
	} `json:"grpc,omitempty" yaml:"grpc"`

	Database struct {
		Driver       string `json:"driver" yaml:"driver"`
		DSN          string `json:"dsn" yaml:"dsn"`
		MaxOpenConns int    `json:"max_open_conns" yaml:"max_open_conns"`
		MaxIdleConns int    `json:"max_idle_conns" yaml:"max_idle_conns"`
	} `json:"database,omitempty" yaml:"database"`

	Auth struct {
		Mode        string   `json:"mode" yaml:"mode"`
		Secret      string   `json:"secret" yaml:"secret"`
		Issuer      string   `json:"issuer" yaml:"issuer"`
		Audience    string   `json:"audience" yaml:"audience"`
		JWKSURL     string   `json:"jwks_url" yaml:"jwks_url"`
		Leeway      Duration `json:"leeway" yaml:"leeway"`
		HTTPTimeout Duration `json:"http_timeout" yaml:"http_timeout"`
	} `json:"auth,omitempty" yaml:"auth"`

	Logging struct {
		Level        string   `json:"level" yaml:"level"`
		MaskedFields []string `json:"masked_fields" yaml:"masked_fields"`
	} `json:"logging,omitempty" yaml:"logging"`
}

// parseFile reads and decodes a configuration file into a Base layer.
// The format is chosen by the file extension: .json, .yaml or .yml.
func parseFile(path string) (*Base, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error reading a config file: %w", err)
	}
	defer file.Close()

	var fileCfg fileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		if err := json.NewDecoder(file).Decode(&fileCfg); err != nil {
			return nil, fmt.Errorf("error decoding json configs: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.NewDecoder(file).Decode(&fileCfg); err != nil {
			return nil, fmt.Errorf("error decoding yaml configs: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedConfigFormat, filepath.Ext(path))
	}

	cfg := &Base{
		Server: HTTPServer{
			Address:        fileCfg.Server.Address,
			RequestTimeout: time.Duration(fileCfg.Server.RequestTimeout),
			ReadTimeout:    time.Duration(fileCfg.Server.ReadTimeout),
			WriteTimeout:   time.Duration(fileCfg.Server.WriteTimeout),
			IdleTimeout:    time.Duration(fileCfg.Server.IdleTimeout),
		},
		GRPC: GRPCServer{
			Address: fileCfg.GRPC.Address,
		},
		Database: Database{
			Driver:       fileCfg.Database.Driver,
			DSN:          fileCfg.Database.DSN,
			MaxOpenConns: fileCfg.Database.MaxOpenConns,
			MaxIdleConns: fileCfg.Database.MaxIdleConns,
		},
		Auth: Auth{
			Mode:        fileCfg.Auth.Mode,
			Secret:      fileCfg.Auth.Secret,
			Issuer:      fileCfg.Auth.Issuer,
			Audience:    fileCfg.Auth.Audience,
			JWKSURL:     fileCfg.Auth.JWKSURL,
			Leeway:      time.Duration(fileCfg.Auth.Leeway),
			HTTPTimeout: time.Duration(fileCfg.Auth.HTTPTimeout),
		},
		Logging: Logging{
			Level:        fileCfg.Logging.Level,
			MaskedFields: fileCfg.Logging.MaskedFields,
		},
		ConfigFile: "",
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON and YAML
// unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var v interface{}
	if err := node.Decode(&v); err != nil {
		return err
	}

	switch value := v.(type) {
	case int:
		*d = Duration(time.Duration(value))
		return nil
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return fmt.Errorf("cannot unmarshal %s into duration", node.Tag)
	}
}

func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}
