package web

import (
	"fmt"
	"net/http"
	"strings"

	"toggljournal/config"
	"toggljournal/generator"
	"toggljournal/journal"
)

// formInput mirrors the fields of the journal form.
type formInput struct {
	Token           string
	Since           string
	Until           string
	Project         string
	PersonalJournal string
	Author          string
}

type formView struct {
	Title  string
	Input  formInput
	Error  string
	Notice string
	// TokenConfigured hides the token requirement when config provides one.
	TokenConfigured bool
}

type auditRow struct {
	Project   string `json:"project"`
	Personal  bool   `json:"personal"`
	Entries   int    `json:"entries"`
	Annotated int    `json:"annotated"`
	Duration  string `json:"duration"`
	Qualifies bool   `json:"qualifies"`
}

type auditResponse struct {
	Projects   []auditRow `json:"projects"`
	Qualifying int        `json:"qualifying"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func newFormView(cfg config.Config) formView {
	return formView{
		Title: "toggljournal",
		Input: formInput{
			Until:           journal.TodaySentinel,
			Project:         journal.AllSentinel,
			PersonalJournal: cfg.Journal.PersonalJournal,
			Author:          cfg.Journal.Author,
		},
		TokenConfigured: strings.TrimSpace(cfg.Toggl.APIToken) != "",
	}
}

func parseJournalForm(w http.ResponseWriter, r *http.Request) (formInput, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		return formInput{}, fmt.Errorf("invalid form: %w", err)
	}
	input := formInput{
		Token:           strings.TrimSpace(r.PostForm.Get("token")),
		Since:           strings.TrimSpace(r.PostForm.Get("since")),
		Until:           strings.TrimSpace(r.PostForm.Get("until")),
		Project:         strings.TrimSpace(r.PostForm.Get("project")),
		PersonalJournal: strings.TrimSpace(r.PostForm.Get("personal_journal")),
		Author:          strings.TrimSpace(r.PostForm.Get("author")),
	}
	if input.Since == "" {
		return input, fmt.Errorf("since is required (YYYY-MM-DD)")
	}
	if input.Until == "" {
		input.Until = journal.TodaySentinel
	}
	return input, nil
}

// request fills blank optional fields from cfg.
func (in formInput) request(cfg config.Config) generator.Request {
	req := generator.Request{
		Since:           in.Since,
		Until:           in.Until,
		Project:         in.Project,
		PersonalJournal: in.PersonalJournal,
		Author:          in.Author,
	}
	if req.PersonalJournal == "" {
		req.PersonalJournal = cfg.Journal.PersonalJournal
	}
	if req.Author == "" {
		req.Author = cfg.Journal.Author
	}
	return req
}

func buildAuditResponse(rows []journal.ProjectAudit) auditResponse {
	resp := auditResponse{Projects: make([]auditRow, 0, len(rows))}
	for _, row := range rows {
		name := row.Project
		if name == "" {
			name = "(no project)"
		}
		resp.Projects = append(resp.Projects, auditRow{
			Project:   name,
			Personal:  row.Personal,
			Entries:   row.Entries,
			Annotated: row.Annotated,
			Duration:  journal.FormatDuration(row.Duration),
			Qualifies: row.Qualifies(),
		})
		if row.Qualifies() {
			resp.Qualifying++
		}
	}
	return resp
}
