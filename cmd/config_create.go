package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"toggljournal/config"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	createToken     string
	createAuthor    string
	createPersonal  string
	createDelimiter string
)

// configSeed holds values written into a new config file instead of the
// template's empty placeholders.
type configSeed struct {
	Token           string
	Author          string
	PersonalJournal string
	Delimiter       string
}

var configCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a configuration file from the example template.",
	Long: `Create a new configuration file from the same example template used by "config edit".

The Toggl API token, the journal author, the personal journal project and the
notation delimiter can be filled in with flags. The resulting file is validated
before it is written. If a configuration file is already in use, no new file is
written.`,
	Example: `
  # Create default config at $HOME/.toggljournal.yaml
  toggljournal config create

  # Create config with token and author filled in
  toggljournal config create --token $TOGGL_TOKEN --author "Jane Doe" --personal-journal Diary
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return saveDefaultConfig(configSeed{
			Token:           createToken,
			Author:          createAuthor,
			PersonalJournal: createPersonal,
			Delimiter:       createDelimiter,
		})
	},
}

func saveDefaultConfig(seed configSeed) error {
	configPath, err := resolveConfigEditPath(cfgFile, viper.ConfigFileUsed())
	if err != nil {
		return err
	}

	content, err := renderConfigTemplate(seed)
	if err != nil {
		return err
	}

	created, err := ensureConfigFile(configPath, content)
	if err != nil {
		return err
	}

	if created {
		fmt.Printf("New config file created at: %s\n", configPath)
		return nil
	}

	fmt.Printf("Config file already exists at: %s\n", configPath)
	return nil
}

// renderConfigTemplate fills the example config with the non-blank seed values
// and validates the result.
func renderConfigTemplate(seed configSeed) (string, error) {
	content := config.ExampleYAML()
	placeholders := []struct {
		line  string
		value string
	}{
		{line: `  api_token: ""`, value: seed.Token},
		{line: `  author: ""`, value: seed.Author},
		{line: `  personal_journal: ""`, value: seed.PersonalJournal},
		{line: `  delimiter: "[N]"`, value: seed.Delimiter},
	}
	for _, placeholder := range placeholders {
		value := strings.TrimSpace(placeholder.value)
		if value == "" {
			continue
		}
		key, _, _ := strings.Cut(placeholder.line, ":")
		content = strings.Replace(content, placeholder.line, key+": "+strconv.Quote(value), 1)
	}

	if _, err := config.ValidateYAMLContent([]byte(content)); err != nil {
		return "", fmt.Errorf("config template validation failed: %w", err)
	}
	return content, nil
}

func init() {
	configCmd.AddCommand(configCreateCmd)

	configCreateCmd.Flags().StringVar(&createToken, "token", "", "Toggl API token to store")
	configCreateCmd.Flags().StringVar(&createAuthor, "author", "", "Journal author")
	configCreateCmd.Flags().StringVar(&createPersonal, "personal-journal", "", "Project used as personal journal")
	configCreateCmd.Flags().StringVar(&createDelimiter, "delimiter", "", "Journal notation delimiter (default [N])")
}
