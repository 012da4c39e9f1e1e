package journal

import "strings"

// Style holds the presentation values of the rendered journal. Parsing and
// grouping never depend on it.
type Style struct {
	FontFamily       string `mapstructure:"font_family"`
	HighlightColor   string `mapstructure:"highlight_color"`
	ProjectColor     string `mapstructure:"project_color"`
	PersonalColor    string `mapstructure:"personal_color"`
	NoteListStyle    string `mapstructure:"note_list_style"`
	ProjectTextAlign string `mapstructure:"project_text_align"`
}

func DefaultStyle() Style {
	return Style{
		FontFamily:       "Helvetica, Arial, sans-serif",
		HighlightColor:   "#eee",
		ProjectColor:     "#ddd",
		PersonalColor:    "#e8f0fe",
		NoteListStyle:    "circle",
		ProjectTextAlign: "center",
	}
}

// WithDefaults fills blank values from DefaultStyle.
func (s Style) WithDefaults() Style {
	def := DefaultStyle()
	if s.FontFamily == "" {
		s.FontFamily = def.FontFamily
	}
	if s.HighlightColor == "" {
		s.HighlightColor = def.HighlightColor
	}
	if s.ProjectColor == "" {
		s.ProjectColor = def.ProjectColor
	}
	if s.PersonalColor == "" {
		s.PersonalColor = def.PersonalColor
	}
	if s.NoteListStyle == "" {
		s.NoteListStyle = def.NoteListStyle
	}
	if s.ProjectTextAlign == "" {
		s.ProjectTextAlign = def.ProjectTextAlign
	}
	return s
}

// FontStack returns FontFamily without quotes. Unquoted multi-word names are
// valid CSS and pass the template's CSS value filter.
func (s Style) FontStack() string {
	return strings.NewReplacer(`"`, "", "'", "").Replace(s.FontFamily)
}
