package config

import "errors"

func ValidateForRun(cfg *Config) error {
	if cfg.CatalogPath == "" {
		return errors.New("CATALOG_PATH environment variable is required")
	}
	if err := cfg.Redis.Validate(); err != nil {
		return err
	}
	return nil
}
