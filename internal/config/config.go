// Copyright (c) 2026 se7uh
// git-id - multi-account git identity manager
// This source code is licensed under the MIT license found in the LICENSE file.

// Package config loads git-id's own settings file. This is the tool's
// configuration (language, file locations), not the accounts it manages.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Settings are the tool-level options, populated from git-id.yaml,
// GIT_ID_* environment variables and command-line flags, in ascending
// precedence.
type Settings struct {
	// Language selects the output language ("en", "de").
	Language string `mapstructure:"language"`
	// AccountsFile overrides the default accounts.toml location.
	AccountsFile string `mapstructure:"accounts_file"`
	// SSHDir overrides ~/.ssh as the key directory.
	SSHDir string `mapstructure:"ssh_dir"`
	// Debug enables debug logging.
	Debug bool `mapstructure:"debug"`
}

// configPath returns the settings file location, user-level or
// system-wide.
func configPath(system bool) (string, error) {
	var configDir string

	if system {
		switch runtime.GOOS {
		case "windows":
			configDir = filepath.Join(os.Getenv("ProgramData"), "git-id")
		default:
			configDir = "/etc/git-id"
		}
	} else {
		dir, err := os.UserConfigDir()
		if err != nil {
			return "", fmt.Errorf("could not get user config directory: %w", err)
		}
		configDir = filepath.Join(dir, "git-id")
	}

	return filepath.Join(configDir, "git-id.yaml"), nil
}

// Load resolves the settings for one command invocation. explicitPath,
// when non-empty, pins the config file and takes precedence over the
// standard search locations. A missing config file is fine; a malformed
// one is not.
func Load(cmd *cobra.Command, explicitPath string) (Settings, error) {
	var s Settings
	v := viper.New()

	v.SetDefault("language", "en")
	v.SetDefault("accounts_file", "")
	v.SetDefault("ssh_dir", "")
	v.SetDefault("debug", false)

	v.SetConfigName("git-id")
	v.SetConfigType("yaml")

	if explicitPath != "" {
		v.SetConfigFile(explicitPath)
	}

	if userPath, err := configPath(false); err == nil {
		v.AddConfigPath(filepath.Dir(userPath))
	}
	if systemPath, err := configPath(true); err == nil {
		v.AddConfigPath(filepath.Dir(systemPath))
	}
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return s, err
		}
		// No config file found anywhere: defaults and env apply.
	}

	v.AutomaticEnv()
	v.AllowEmptyEnv(true)
	v.SetEnvPrefix("git_id")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if cmd != nil {
		if err := v.BindPFlags(cmd.Flags()); err != nil {
			return s, err
		}
		// Subcommands inherit the root's persistent flags (--language
		// and friends); bind those too.
		if err := v.BindPFlags(cmd.InheritedFlags()); err != nil {
			return s, err
		}
	}

	if err := v.Unmarshal(&s); err != nil {
		return s, err
	}

	return s, nil
}
