package config

import (
	"github.com/asaskevich/govalidator"
	"github.com/fox-one/pkg/config"
)

// Load load config file
func Load(cfgFile string, cfg *Config) error {
	config.AutomaticLoadEnv("MONEYMARKET")
	if err := config.LoadYaml(cfgFile, cfg); err != nil {
		return err
	}

	defaultConfig(cfg)

	if _, err := govalidator.ValidateStruct(cfg); err != nil {
		return err
	}

	return nil
}

func defaultConfig(cfg *Config) {
	if cfg.Block.SecondsPerBlock <= 0 {
		cfg.Block.SecondsPerBlock = 5
	}

	if cfg.Oracle.Threshold <= 0 {
		cfg.Oracle.Threshold = 1
	}

	if cfg.Cache.Size <= 0 {
		cfg.Cache.Size = 256
	}

	if cfg.Cache.TTL <= 0 {
		cfg.Cache.TTL = 5
	}
}
