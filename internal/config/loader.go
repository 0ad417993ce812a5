/* This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at https://mozilla.org/MPL/2.0/. */

package config

import (
	"os"

	"github.com/BurntSushi/toml"

	"github.com/eklmt/dizzybox/internal/log"
	"github.com/eklmt/dizzybox/internal/sysexits"
)

const envPrefix = "DIZZYBOX_"

// Loads the configuration, lowest precedence first:
// built-in defaults, the system file, the user's file, then DIZZYBOX_* environment variables.
func Load() (*Config, error) {
	return LoadFrom(GetConfigPaths(), os.Getenv)
}

func LoadFrom(configPaths []string, getenv func(string) string) (*Config, error) {
	cfg := GetDefaultConfig()

	for _, path := range configPaths {
		if err := loadConfigFile(cfg, path); err != nil {
			if os.IsNotExist(err) {
				continue
			}

			return nil, err
		}
	}

	loadFromEnv(cfg, getenv)
	return cfg, nil
}

func loadConfigFile(cfg *Config, path string) error {
	if _, err := os.Stat(path); err != nil {
		return err
	}

	var fileCfg Config
	meta, err := toml.DecodeFile(path, &fileCfg)
	if err != nil {
		return sysexits.Wrapf(sysexits.Config, err, "failed to load config from %s", path)
	}

	if undecoded := meta.Undecoded(); len(undecoded) != 0 {
		log.Alertf("Warning: unknown keys in %s: %v", path, undecoded)
	}

	log.Debug("loaded config from", path)
	cfg.merge(&fileCfg, meta)
	return nil
}

func (cfg *Config) merge(other *Config, meta toml.MetaData) {
	if other.Defaults.Container != "" {
		cfg.Defaults.Container = other.Defaults.Container
	}

	if other.Defaults.Image != "" {
		cfg.Defaults.Image = other.Defaults.Image
	}

	if other.Defaults.Manager != "" {
		cfg.Defaults.Manager = other.Defaults.Manager
	}

	// An explicitly empty list is a valid choice: share nothing.
	if meta.IsDefined("defaults", "shared_env") {
		cfg.Defaults.SharedEnv = other.Defaults.SharedEnv
	}
}

func loadFromEnv(cfg *Config, getenv func(string) string) {
	if env := getenv(envPrefix + "CONTAINER"); env != "" {
		cfg.Defaults.Container = env
	}

	if env := getenv(envPrefix + "IMAGE"); env != "" {
		cfg.Defaults.Image = env
	}

	if env := getenv(envPrefix + "MANAGER"); env != "" {
		cfg.Defaults.Manager = env
	}
}
