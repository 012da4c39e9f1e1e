/*
Copyright © 2025 riad@rsworld.eu

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"toggljournal/config"
)

const envPrefix = "TOGGLJOURNAL"

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "toggljournal",
	Short: "Turn annotated Toggl time entries into a work journal.",
	Long: `
**********************************************
*              TOGGL JOURNAL                 *
**********************************************

This CLI reads Toggl time entries (API, CSV/Excel export, or a local SQLite cache),
keeps the entries whose description follows the journal notation

  <title>[N]-<note>-<note>

and renders them as a journal grouped by project and day. The journal is written
as HTML and PDF by default, and optionally as CSV or Excel.
`,
	Example: `
  # Create configuration file
  toggljournal config create

  # Journal of all projects for March, token from TOGGLJOURNAL_TOGGL_API_TOKEN
  toggljournal journal --since 2024-03-01 --until 2024-03-31 --project ALL

  # Journal of one project up to today, HTML only
  toggljournal journal --since 2024-03-01 --until TODAY --project "Client X" --format html

  # Include a personal journal project
  toggljournal journal --since 2024-03-01 --until TODAY --project ALL --personal-journal Diary

  # Build from a Toggl CSV export instead of the API
  toggljournal journal --source file -i TogglTrack_export.csv --author "Jane Doe" --since 2024-03-01 --until 2024-03-31 --project ALL

  # Check which projects qualify
  toggljournal projects --since 2024-03-01 --until TODAY

  # Serve the journal form locally
  toggljournal serve --port 8080
`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	config.SetDefaults()

	rootCmd.PersistentFlags().StringVar(&cfgFile, "configFile", "", "Config file override (default discovery: $HOME/.toggljournal.yaml, then ./.toggljournal.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Search config in home directory with name ".toggljournal" (without extension).
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".toggljournal")
	}

	// TOGGLJOURNAL_TOGGL_API_TOKEN maps to toggl.api_token.
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err != nil && verbose {
		fmt.Fprintln(os.Stderr, "No config file found, using defaults. Create one with: toggljournal config create")
	}
}

func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
