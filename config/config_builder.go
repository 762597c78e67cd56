package config

import (
	"errors"
	"fmt"

	"dario.cat/mergo"
)

type builder struct {
	configs []*Base
	err     error
}

func newBuilder() *builder {
	return &builder{
		configs: make([]*Base, 0, 3),
	}
}

func (b *builder) build() (*Base, error) {
	if b.err != nil {
		return nil, fmt.Errorf("error occured during building config: %w", b.err)
	}

	cfg := new(Base)
	for _, layer := range b.configs {
		if err := mergo.Merge(cfg, layer); err != nil {
			return nil, fmt.Errorf("error merging configs: %w", err)
		}
	}

	return cfg, cfg.validate()
}

func (b *builder) withEnv() *builder {
	envCfg := &Base{}
	if err := ParseEnv(envCfg); err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}

	b.configs = append(b.configs, envCfg)
	return b
}

func (b *builder) withFlags(args []string) *builder {
	flagCfg, err := parseFlags(args)
	if err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}

	b.configs = append(b.configs, flagCfg)
	return b
}

func (b *builder) withFile() *builder {
	var path string

	// flags come after env, so a -c/-config flag overrides CONFIG.
	for _, cfg := range b.configs {
		if cfg.ConfigFile != "" {
			path = cfg.ConfigFile
		}
	}

	if path == "" {
		return b
	}

	fileCfg, err := parseFile(path)
	if err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}

	b.configs = append(b.configs, fileCfg)
	return b
}
