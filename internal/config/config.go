/* This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at https://mozilla.org/MPL/2.0/. */

package config

import (
	"os"
	"path/filepath"

	"github.com/eklmt/dizzybox/internal/container"
	"github.com/eklmt/dizzybox/internal/paths"
	"github.com/eklmt/dizzybox/internal/userdata"
)

const (
	DefaultImage   = "archlinux:latest"
	DefaultManager = "podman"
)

type Config struct {
	Defaults DefaultsConfig `toml:"defaults"`
}

type DefaultsConfig struct {
	Container string `toml:"container"`
	Image     string `toml:"image"`
	Manager   string `toml:"manager"`
	// Replaces the forwarded environment names entirely when present.
	SharedEnv []string `toml:"shared_env"`
}

func GetDefaultConfig() *Config {
	return &Config{
		Defaults: DefaultsConfig{
			Container: container.DefaultName,
			Image:     DefaultImage,
			Manager:   DefaultManager,
			SharedEnv: append([]string(nil), userdata.DefaultSharedEnv...),
		},
	}
}

// Config files in order of increasing precedence.
func GetConfigPaths() []string {
	result := []string{filepath.Join("/etc", paths.ProductName, "config.toml")}

	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		if home, err := os.UserHomeDir(); err == nil {
			configHome = filepath.Join(home, ".config")
		}
	}

	if configHome != "" {
		result = append(result, filepath.Join(configHome, paths.ProductName, "config.toml"))
	}

	return result
}

// A request pre-filled with the configured defaults.
func (cfg *Config) Request() *container.Request {
	return &container.Request{
		Name:      cfg.Defaults.Container,
		Image:     cfg.Defaults.Image,
		SharedEnv: append([]string(nil), cfg.Defaults.SharedEnv...),
	}
}
