package config

import (
	"reflect"
	"strings"
	"testing"
	_ "time/tzdata"
)

func TestValidateYAMLContent_AppliesDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := ValidateYAMLContent([]byte("journal:\n  author: \"Ada\"\n"))
	if err != nil {
		t.Fatalf("expected config to validate: %v", err)
	}
	if cfg.Toggl.BaseURL != "https://api.track.toggl.com" {
		t.Fatalf("unexpected base url %q", cfg.Toggl.BaseURL)
	}
	if cfg.Toggl.PageSize != 50 {
		t.Fatalf("unexpected page size %d", cfg.Toggl.PageSize)
	}
	if cfg.Notation.Delimiter != "[N]" {
		t.Fatalf("unexpected delimiter %q", cfg.Notation.Delimiter)
	}
	if !reflect.DeepEqual(cfg.Output.Formats, []string{"html", "pdf"}) {
		t.Fatalf("unexpected formats %q", cfg.Output.Formats)
	}
	if cfg.Style.HighlightColor != "#eee" || cfg.Style.NoteListStyle != "circle" {
		t.Fatalf("unexpected style defaults: %+v", cfg.Style)
	}
	if cfg.PDF.PageSize != "A4" || cfg.PDF.MarginLeft != 0.4 {
		t.Fatalf("unexpected pdf defaults: %+v", cfg.PDF)
	}
	if cfg.Journal.Author != "Ada" {
		t.Fatalf("unexpected author %q", cfg.Journal.Author)
	}
}

func TestValidateYAMLContent_ExampleIsValid(t *testing.T) {
	t.Parallel()

	if _, err := ValidateYAMLContent([]byte(ExampleYAML())); err != nil {
		t.Fatalf("expected example config to validate: %v", err)
	}
}

func TestValidateYAMLContent_NormalizesFormats(t *testing.T) {
	t.Parallel()

	cfg, err := ValidateYAMLContent([]byte("output:\n  dir: out\n  formats: [\"PDF\", \"html\", \"excel\"]\n"))
	if err != nil {
		t.Fatalf("expected config to validate: %v", err)
	}
	if !reflect.DeepEqual(cfg.Output.Formats, []string{"pdf", "html", "xlsx"}) {
		t.Fatalf("unexpected formats %q", cfg.Output.Formats)
	}
}

func TestValidateYAMLContent_AcceptsQuotedFontFamily(t *testing.T) {
	t.Parallel()

	cfg, err := ValidateYAMLContent([]byte("style:\n  font_family: '\"Open Sans\", sans-serif'\n"))
	if err != nil {
		t.Fatalf("expected quoted font family to validate: %v", err)
	}
	if cfg.Style.FontStack() != "Open Sans, sans-serif" {
		t.Fatalf("unexpected font stack %q", cfg.Style.FontStack())
	}
}

func TestValidateYAMLContent_Rejects(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		want    string
	}{
		{name: "bad base url", content: "toggl:\n  base_url: \"not a url\"\n", want: "BaseURL"},
		{name: "page size", content: "toggl:\n  page_size: 0\n", want: "PageSize"},
		{name: "timezone", content: "toggl:\n  timezone: \"Mars/Olympus\"\n", want: "timezone"},
		{name: "paper size", content: "pdf:\n  page_size: \"B5\"\n", want: "page size"},
		{name: "negative margin", content: "pdf:\n  margin_top: -1\n", want: "MarginTop"},
		{name: "format", content: "output:\n  formats: [\"docx\"]\n", want: "docx"},
		{name: "font family", content: "style:\n  font_family: \"Arial; color: red\"\n", want: "style.font_family"},
		{name: "color", content: "style:\n  highlight_color: \"#zz1\"\n", want: "style.highlight_color"},
		{name: "text align", content: "style:\n  project_text_align: \"middle\"\n", want: "style.project_text_align"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ValidateYAMLContent([]byte(tc.content))
			if err == nil {
				t.Fatalf("expected validation error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected error to mention %q, got %v", tc.want, err)
			}
		})
	}
}

func TestTogglConfigLocation(t *testing.T) {
	t.Parallel()

	loc, err := TogglConfig{Timezone: "Europe/Berlin"}.Location()
	if err != nil {
		t.Fatalf("location: %v", err)
	}
	if loc.String() != "Europe/Berlin" {
		t.Fatalf("unexpected location %q", loc)
	}
}
