package config

import (
	"errors"
	"flag"
	"io"
	"net"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// parseFlags parses all configuration flags from args into a Base layer.
// A private FlagSet is used so that consuming services keep full control of
// the global flag namespace and so parsing stays repeatable in tests.
//
// Flags:
//
//	-a server address in format [host]:[port]
//	-grpc-address grpc server address in format [host]:[port]
//	-d database DSN
//	-database-driver database driver (pgx or sqlite3)
//	-c/-config config file path (json or yaml)
//	-request-timeout request timeout (e.g., "30s", "1m")
//	-log-level minimum log level
//	-auth-mode token verification mode (hs256 or jwks)
//	-auth-issuer expected token issuer
//	-auth-audience expected token audience
//	-jwks-url JWKS endpoint URL
func parseFlags(args []string) (*Base, error) {
	var serverAddress, grpcServerAddress NetAddress
	var databaseDSN string
	var databaseDriver string
	var configFile string
	var requestTimeout time.Duration
	var logLevel string
	var authMode string
	var authIssuer string
	var authAudience string
	var jwksURL string

	fs := flag.NewFlagSet("service-kit", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Var(&serverAddress, "a", "Net address host:port")
	fs.Var(&grpcServerAddress, "grpc-address", "Net grpc server address host:port")
	fs.StringVar(&databaseDSN, "d", "", "Database DSN")
	fs.StringVar(&databaseDriver, "database-driver", "", "Database driver (pgx or sqlite3)")
	fs.StringVar(&configFile, "c", "", "Config file path (json or yaml)")
	fs.StringVar(&configFile, "config", "", "Config file path (alias)")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	fs.StringVar(&logLevel, "log-level", "", "Minimum log level (trace, debug, info, warn, error)")
	fs.StringVar(&authMode, "auth-mode", "", "Token verification mode (hs256 or jwks)")
	fs.StringVar(&authIssuer, "auth-issuer", "", "Expected token issuer")
	fs.StringVar(&authAudience, "auth-audience", "", "Expected token audience")
	fs.StringVar(&jwksURL, "jwks-url", "", "JWKS endpoint URL")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	return &Base{
		Server: HTTPServer{
			Address:        serverAddress.String(),
			RequestTimeout: requestTimeout,
		},
		GRPC: GRPCServer{
			Address: grpcServerAddress.String(),
		},
		Database: Database{
			Driver: databaseDriver,
			DSN:    databaseDSN,
		},
		Auth: Auth{
			Mode:     authMode,
			Issuer:   authIssuer,
			Audience: authAudience,
			JWKSURL:  jwksURL,
		},
		Logging: Logging{
			Level: logLevel,
		},
		ConfigFile: configFile,
	}, nil
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns the empty string.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is "localhost",
// and returns an error if the format or values are invalid.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 {
		return errors.New("port number is a positive integer")
	}

	if host != "localhost" {
		ip := net.ParseIP(hostAndPort[0])
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
