package cmd

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"toggljournal/config"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Open the active config in an editor.",
	Long: `Open the active toggljournal config file in your editor.

Editor selection order:
1) $VISUAL
2) $EDITOR
3) vi

If no config file exists yet, this command creates one with an example template first.
After the editor exits, the content is validated as toggljournal YAML config and
the values the journal command falls back to are printed, with hints for the
token and author when they are missing.`,
	Example: `
  # Edit active config
  toggljournal config edit
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, err := resolveConfigEditPath(cfgFile, viper.ConfigFileUsed())
		if err != nil {
			return err
		}

		created, err := ensureConfigFile(configPath, config.ExampleYAML())
		if err != nil {
			return err
		}
		if created {
			fmt.Printf("No config file found. Created example config at: %s\n", configPath)
		}

		editor := resolveEditorValue(os.Getenv("VISUAL"), os.Getenv("EDITOR"))
		editorCommand, err := buildEditorCommand(editor, configPath)
		if err != nil {
			return err
		}
		editorCommand.Stdin = os.Stdin
		editorCommand.Stdout = os.Stdout
		editorCommand.Stderr = os.Stderr
		if err := editorCommand.Run(); err != nil {
			return fmt.Errorf("opening editor failed: %w", err)
		}

		content, err := os.ReadFile(configPath)
		if err != nil {
			return fmt.Errorf("reading edited config failed: %w", err)
		}
		cfg, err := config.ValidateYAMLContent(content)
		if err != nil {
			return fmt.Errorf("config validation failed in %s: %w", configPath, err)
		}

		fmt.Printf("Configuration saved and validated: %s\n", configPath)
		printJournalReadiness(os.Stdout, *cfg)
		return nil
	},
}

func resolveConfigEditPath(configFileFlag, configFileUsed string) (string, error) {
	if strings.TrimSpace(configFileFlag) != "" {
		return configFileFlag, nil
	}
	if strings.TrimSpace(configFileUsed) != "" {
		return configFileUsed, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".toggljournal.yaml"), nil
}

// printJournalReadiness lists the config values the journal command falls back
// to when flags are omitted.
func printJournalReadiness(w io.Writer, cfg config.Config) {
	fmt.Fprintf(w, "%s: %s\n", config.KeyTogglAPIToken, maskToken(cfg.Toggl.APIToken))
	fmt.Fprintf(w, "%s: %s\n", config.KeyJournalAuthor, valueOrUnset(cfg.Journal.Author))
	fmt.Fprintf(w, "%s: %s\n", config.KeyJournalPersonal, valueOrUnset(cfg.Journal.PersonalJournal))
	fmt.Fprintf(w, "%s: %s\n", config.KeyNotationDelimiter, cfg.Notation.Delimiter)
	fmt.Fprintf(w, "%s: %s\n", config.KeyOutputFormats, strings.Join(cfg.Output.Formats, ","))

	hint := color.New(color.FgYellow)
	if strings.TrimSpace(cfg.Toggl.APIToken) == "" {
		hint.Fprintf(w, "No API token: pass --token or set %s_TOGGL_API_TOKEN for API journals.\n", envPrefix)
	}
	if strings.TrimSpace(cfg.Journal.Author) == "" {
		hint.Fprintln(w, "No author: journals from export files or the cache need --author.")
	}
}

func valueOrUnset(value string) string {
	if strings.TrimSpace(value) == "" {
		return "(not set)"
	}
	return value
}

func ensureConfigFile(path, content string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return false, nil
	}
	if !os.IsNotExist(err) {
		return false, fmt.Errorf("checking config file failed: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, fmt.Errorf("creating config directory failed: %w", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		return false, fmt.Errorf("creating config file failed: %w", err)
	}

	return true, nil
}

func resolveEditorValue(visual, editor string) string {
	if strings.TrimSpace(visual) != "" {
		return visual
	}
	if strings.TrimSpace(editor) != "" {
		return editor
	}
	return "vi"
}

func buildEditorCommand(editorValue, configPath string) (*exec.Cmd, error) {
	fields := strings.Fields(strings.TrimSpace(editorValue))
	if len(fields) == 0 {
		return nil, fmt.Errorf("editor command is empty")
	}

	args := append(fields[1:], configPath)
	return exec.Command(fields[0], args...), nil
}

func init() {
	configCmd.AddCommand(configEditCmd)
}
