// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/jeranaias/allie-tui/internal/config"
)

func newConfigCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or change configuration",
		Long: `Show or change the allie configuration.

Settings are read from --config, ~/.allie/config.toml or ~/.allie/config.json,
then ALLIE_* environment variables and command line flags.`,
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Print the effective configuration as TOML",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				out, err := app.Config.TOML()
				if err != nil {
					return err
				}
				fmt.Fprint(app.Out, out)
				return nil
			},
		},
		&cobra.Command{
			Use:   "get KEY",
			Short: "Print one setting",
			Long:  "Print one setting. Keys:\n  " + strings.Join(config.AllKeys(), "\n  "),
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				v, err := app.Config.Get(args[0])
				if err != nil {
					return &UsageError{Msg: err.Error()}
				}
				if list, ok := v.([]string); ok {
					fmt.Fprintln(app.Out, strings.Join(list, "\n"))
					return nil
				}
				fmt.Fprintln(app.Out, v)
				return nil
			},
		},
		&cobra.Command{
			Use:   "set KEY VALUE",
			Short: "Change one setting in the config file",
			Long:  "Change one setting and save the file. List values are separated by \"|\".",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				path, err := app.configFilePath()
				if err != nil {
					return err
				}
				cfg, err := savedConfig(path)
				if err != nil {
					return err
				}
				if err := cfg.Set(args[0], args[1]); err != nil {
					return &UsageError{Msg: err.Error()}
				}
				if err := cfg.Validate(); err != nil {
					return &ConfigError{Err: err}
				}
				if err := config.SaveTOML(cfg, path); err != nil {
					return &ConfigError{Err: err}
				}
				fmt.Fprintf(app.Out, "%s = %s (%s)\n", args[0], args[1], path)
				return nil
			},
		},
		newConfigInitCommand(app),
		&cobra.Command{
			Use:         "path",
			Short:       "Print the config file path",
			Args:        cobra.NoArgs,
			Annotations: map[string]string{annotationSkipConfig: "true"},
			RunE: func(cmd *cobra.Command, args []string) error {
				path, err := app.configFilePath()
				if err != nil {
					return err
				}
				fmt.Fprintln(app.Out, path)
				return nil
			},
		},
	)
	return cmd
}

func newConfigInitCommand(app *App) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:         "init",
		Short:       "Write a default config file",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{annotationSkipConfig: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := app.configFilePath()
			if err != nil {
				return err
			}
			if fileExists(path) && !force {
				return &UsageError{Msg: fmt.Sprintf("%s already exists (use --force to overwrite)", path)}
			}
			if err := config.SaveTOML(config.Default(), path); err != nil {
				return &ConfigError{Err: err}
			}
			fmt.Fprintf(app.Out, "Wrote %s\n", path)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}

// savedConfig loads the file that "config set" edits, without environment
// or flag overrides, so those are not written back.
func savedConfig(path string) (*config.Config, error) {
	if strings.HasSuffix(path, ".json") {
		return nil, &UsageError{Msg: "config set writes TOML files only"}
	}
	cfg := config.Default()
	if fileExists(path) {
		if err := config.LoadTOML(cfg, path); err != nil {
			return nil, &ConfigError{Err: errors.Wrapf(err, "failed to read %s", path)}
		}
	}
	return cfg, nil
}

func (a *App) configFilePath() (string, error) {
	if a.configPath != "" {
		return a.configPath, nil
	}
	path, err := config.ConfigPathTOML()
	if err != nil {
		return "", &ConfigError{Err: err}
	}
	return path, nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
