package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"toggljournal/config"

	"github.com/spf13/viper"
)

func TestSaveDefaultConfigCreatesExampleTemplate(t *testing.T) {
	t.Cleanup(func() {
		cfgFile = ""
		viper.Reset()
	})

	tmpConfig := filepath.Join(t.TempDir(), "create-template.yaml")
	cfgFile = tmpConfig
	viper.Reset()

	if err := saveDefaultConfig(configSeed{}); err != nil {
		t.Fatalf("unexpected error creating config: %v", err)
	}

	content, err := os.ReadFile(tmpConfig)
	if err != nil {
		t.Fatalf("expected config file to exist: %v", err)
	}

	text := string(content)
	if !strings.Contains(text, "# toggljournal configuration") {
		t.Fatalf("expected example header in config file, got:\n%s", text)
	}
	if !strings.Contains(text, "toggl:") || !strings.Contains(text, "base_url: \"https://api.track.toggl.com\"") {
		t.Fatalf("expected toggl base URL example in config file, got:\n%s", text)
	}
	if !strings.Contains(text, "delimiter: \"[N]\"") {
		t.Fatalf("expected notation delimiter in config file, got:\n%s", text)
	}
}

func TestSaveDefaultConfigDoesNotOverwriteExistingFile(t *testing.T) {
	t.Cleanup(func() {
		cfgFile = ""
		viper.Reset()
	})

	tmpConfig := filepath.Join(t.TempDir(), "existing.yaml")
	original := "journal:\n  author: \"Jane Doe\"\nnotation:\n  delimiter: \"[J]\"\n"
	if err := os.WriteFile(tmpConfig, []byte(original), 0o644); err != nil {
		t.Fatalf("failed writing initial config: %v", err)
	}

	cfgFile = tmpConfig
	viper.Reset()

	if err := saveDefaultConfig(configSeed{}); err != nil {
		t.Fatalf("unexpected error creating config: %v", err)
	}

	content, err := os.ReadFile(tmpConfig)
	if err != nil {
		t.Fatalf("failed reading existing config after create: %v", err)
	}
	if string(content) != original {
		t.Fatalf("expected existing config to remain unchanged")
	}
}

func TestSaveDefaultConfigWritesSeedValues(t *testing.T) {
	t.Cleanup(func() {
		cfgFile = ""
		viper.Reset()
	})

	tmpConfig := filepath.Join(t.TempDir(), "seeded.yaml")
	cfgFile = tmpConfig
	viper.Reset()

	seed := configSeed{
		Token:           "abc123",
		Author:          `Jane "JD" Doe`,
		PersonalJournal: "Diary",
		Delimiter:       "[J]",
	}
	if err := saveDefaultConfig(seed); err != nil {
		t.Fatalf("unexpected error creating config: %v", err)
	}

	content, err := os.ReadFile(tmpConfig)
	if err != nil {
		t.Fatalf("expected config file to exist: %v", err)
	}
	cfg, err := config.ValidateYAMLContent(content)
	if err != nil {
		t.Fatalf("expected seeded config to validate: %v\n%s", err, content)
	}
	if cfg.Toggl.APIToken != "abc123" || cfg.Journal.Author != `Jane "JD" Doe` {
		t.Fatalf("unexpected seeded values: %+v", cfg.Journal)
	}
	if cfg.Journal.PersonalJournal != "Diary" || cfg.Notation.Delimiter != "[J]" {
		t.Fatalf("unexpected seeded journal values: %+v %+v", cfg.Journal, cfg.Notation)
	}
}

func TestRenderConfigTemplateKeepsPlaceholdersForBlankSeed(t *testing.T) {
	content, err := renderConfigTemplate(configSeed{Author: "   "})
	if err != nil {
		t.Fatalf("render template: %v", err)
	}
	if content != config.ExampleYAML() {
		t.Fatalf("expected unchanged example template, got:\n%s", content)
	}
}
