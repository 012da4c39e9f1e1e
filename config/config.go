package config

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"toggljournal/journal"
	"toggljournal/notation"
	"toggljournal/output"
	"toggljournal/toggl"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

const (
	KeyTogglBaseURL       = "toggl.base_url"
	KeyTogglAPIToken      = "toggl.api_token"
	KeyTogglPageSize      = "toggl.page_size"
	KeyTogglTimezone      = "toggl.timezone"
	KeyJournalAuthor      = "journal.author"
	KeyJournalPersonal    = "journal.personal_journal"
	KeyNotationDelimiter  = "notation.delimiter"
	KeyOutputDir          = "output.dir"
	KeyOutputFormats      = "output.formats"
	KeyPDFEnabled         = "pdf.enabled"
	KeyPDFPageSize        = "pdf.page_size"
	KeyPDFMarginTop       = "pdf.margin_top"
	KeyPDFMarginRight     = "pdf.margin_right"
	KeyPDFMarginBottom    = "pdf.margin_bottom"
	KeyPDFMarginLeft      = "pdf.margin_left"
	KeyPDFBrowserBin      = "pdf.browser_bin"
	KeyStyleFontFamily    = "style.font_family"
	KeyStyleHighlight     = "style.highlight_color"
	KeyStyleProjectColor  = "style.project_color"
	KeyStylePersonalColor = "style.personal_color"
	KeyStyleNoteList      = "style.note_list_style"
	KeyStyleTextAlign     = "style.project_text_align"
)

type Config struct {
	Toggl    TogglConfig    `mapstructure:"toggl" validate:"required"`
	Journal  JournalConfig  `mapstructure:"journal"`
	Notation NotationConfig `mapstructure:"notation"`
	Output   OutputConfig   `mapstructure:"output"`
	PDF      PDFConfig      `mapstructure:"pdf"`
	Style    journal.Style  `mapstructure:"style"`
}

type TogglConfig struct {
	BaseURL  string `mapstructure:"base_url" validate:"required,url"`
	APIToken string `mapstructure:"api_token"`
	PageSize int    `mapstructure:"page_size" validate:"gte=1,lte=1000"`
	Timezone string `mapstructure:"timezone"`
}

type JournalConfig struct {
	Author          string `mapstructure:"author"`
	PersonalJournal string `mapstructure:"personal_journal"`
}

type NotationConfig struct {
	Delimiter string `mapstructure:"delimiter" validate:"required"`
}

type OutputConfig struct {
	Dir     string   `mapstructure:"dir" validate:"required"`
	Formats []string `mapstructure:"formats"`
}

type PDFConfig struct {
	Enabled      bool    `mapstructure:"enabled"`
	PageSize     string  `mapstructure:"page_size" validate:"required"`
	MarginTop    float64 `mapstructure:"margin_top" validate:"gte=0,lte=5"`
	MarginRight  float64 `mapstructure:"margin_right" validate:"gte=0,lte=5"`
	MarginBottom float64 `mapstructure:"margin_bottom" validate:"gte=0,lte=5"`
	MarginLeft   float64 `mapstructure:"margin_left" validate:"gte=0,lte=5"`
	BrowserBin   string  `mapstructure:"browser_bin"`
}

// Location resolves the configured timezone, falling back to the local zone.
func (c TogglConfig) Location() (*time.Location, error) {
	name := strings.TrimSpace(c.Timezone)
	if name == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", name, err)
	}
	return loc, nil
}

func (c PDFConfig) Options() output.PDFOptions {
	return output.PDFOptions{
		PageSize:     c.PageSize,
		MarginTop:    c.MarginTop,
		MarginRight:  c.MarginRight,
		MarginBottom: c.MarginBottom,
		MarginLeft:   c.MarginLeft,
		BrowserBin:   c.BrowserBin,
	}
}

// SetDefaults sets default values if not provided
func SetDefaults() {
	setDefaults(viper.GetViper())
}

// LoadAndValidate loads config from Viper and validates it
func LoadAndValidate() (*Config, error) {
	return loadAndValidateFromViper(viper.GetViper())
}

// ValidateYAMLContent validates configuration from raw YAML content.
func ValidateYAMLContent(content []byte) (*Config, error) {
	local := viper.New()
	setDefaults(local)
	local.SetConfigType("yaml")
	if err := local.ReadConfig(bytes.NewReader(content)); err != nil {
		return nil, fmt.Errorf("read config content: %w", err)
	}
	return loadAndValidateFromViper(local)
}

// ExampleYAML returns the default configuration template.
func ExampleYAML() string {
	return `# toggljournal configuration
toggl:
  base_url: "https://api.track.toggl.com"
  # api_token can also be set via TOGGLJOURNAL_TOGGL_API_TOKEN
  api_token: ""
  page_size: 50
  timezone: ""

journal:
  author: ""
  personal_journal: ""

notation:
  delimiter: "[N]"

output:
  dir: "."
  # html is always written; --format replaces this list
  formats: ["html", "pdf"]

pdf:
  # adds pdf when output.formats omits it
  enabled: false
  page_size: "A4"
  margin_top: 0.4
  margin_right: 0.4
  margin_bottom: 0.4
  margin_left: 0.4
  browser_bin: ""

style:
  font_family: "Helvetica, Arial, sans-serif"
  highlight_color: "#eee"
  project_color: "#ddd"
  personal_color: "#e8f0fe"
  note_list_style: "circle"
  project_text_align: "center"
`
}

func loadAndValidateFromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	if _, err := cfg.Toggl.Location(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	if _, _, err := output.PaperSize(cfg.PDF.PageSize); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	formats, err := output.ParseFormats(cfg.Output.Formats)
	if err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	cfg.Output.Formats = formats
	cfg.Style = cfg.Style.WithDefaults()
	if err := validateStyle(validate, cfg.Style); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	style := journal.DefaultStyle()
	pdf := output.DefaultPDFOptions()

	v.SetDefault(KeyTogglBaseURL, toggl.DefaultBaseURL)
	v.SetDefault(KeyTogglAPIToken, "")
	v.SetDefault(KeyTogglPageSize, toggl.DefaultPageSize)
	v.SetDefault(KeyTogglTimezone, "")
	v.SetDefault(KeyJournalAuthor, "")
	v.SetDefault(KeyJournalPersonal, "")
	v.SetDefault(KeyNotationDelimiter, notation.DefaultDelimiter)
	v.SetDefault(KeyOutputDir, ".")
	v.SetDefault(KeyOutputFormats, []string{output.FormatHTML, output.FormatPDF})
	v.SetDefault(KeyPDFEnabled, false)
	v.SetDefault(KeyPDFPageSize, pdf.PageSize)
	v.SetDefault(KeyPDFMarginTop, pdf.MarginTop)
	v.SetDefault(KeyPDFMarginRight, pdf.MarginRight)
	v.SetDefault(KeyPDFMarginBottom, pdf.MarginBottom)
	v.SetDefault(KeyPDFMarginLeft, pdf.MarginLeft)
	v.SetDefault(KeyPDFBrowserBin, "")
	v.SetDefault(KeyStyleFontFamily, style.FontFamily)
	v.SetDefault(KeyStyleHighlight, style.HighlightColor)
	v.SetDefault(KeyStyleProjectColor, style.ProjectColor)
	v.SetDefault(KeyStylePersonalColor, style.PersonalColor)
	v.SetDefault(KeyStyleNoteList, style.NoteListStyle)
	v.SetDefault(KeyStyleTextAlign, style.ProjectTextAlign)
}

func validateStyle(validate *validator.Validate, style journal.Style) error {
	if stack := style.FontStack(); strings.ContainsAny(stack, "`;(){}[]<>/\\@") || strings.Contains(stack, "--") {
		return fmt.Errorf("validation failed: %s %q must be a comma-separated list of font names", KeyStyleFontFamily, style.FontFamily)
	}
	colors := map[string]string{
		KeyStyleHighlight:     style.HighlightColor,
		KeyStyleProjectColor:  style.ProjectColor,
		KeyStylePersonalColor: style.PersonalColor,
	}
	for _, key := range []string{KeyStyleHighlight, KeyStyleProjectColor, KeyStylePersonalColor} {
		if err := validate.Var(colors[key], "hexcolor|alpha"); err != nil {
			return fmt.Errorf("validation failed: %s %q is not a hex or named color", key, colors[key])
		}
	}
	if err := validate.Var(style.NoteListStyle, "alpha|oneof=lower-alpha upper-alpha lower-roman upper-roman"); err != nil {
		return fmt.Errorf("validation failed: %s %q is not a list style", KeyStyleNoteList, style.NoteListStyle)
	}
	if err := validate.Var(style.ProjectTextAlign, "oneof=left right center justify"); err != nil {
		return fmt.Errorf("validation failed: %s must be one of left, right, center, justify", KeyStyleTextAlign)
	}
	return nil
}
