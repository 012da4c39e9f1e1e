package generator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"toggljournal/journal"
	"toggljournal/notation"
)

var ErrMissingAuthor = errors.New("journal author is unknown")

// Request is the caller's view of one run. Since and Until are ISO dates;
// Until also accepts TODAY.
type Request struct {
	Since           string
	Until           string
	Project         string
	PersonalJournal string
	// Author overrides the name reported by the source.
	Author string
}

// Result carries the resolved context and the assembled document. Document
// is nil when no project qualified.
type Result struct {
	Context  journal.Context
	Document *journal.Document
	Entries  int
}

type Generator struct {
	Source   Source
	Parser   notation.Parser
	Logger   *slog.Logger
	Location *time.Location
	Now      func() time.Time
}

// Prepare validates a request without touching the source.
func (g Generator) Prepare(req Request) (journal.Context, error) {
	scope, err := journal.ParseScope(req.Project)
	if err != nil {
		return journal.Context{}, err
	}
	since, until, err := journal.ResolveRange(req.Since, req.Until, g.now(), g.Location)
	if err != nil {
		return journal.Context{}, err
	}
	return journal.Context{
		Author:          strings.TrimSpace(req.Author),
		Scope:           scope,
		PersonalJournal: strings.TrimSpace(req.PersonalJournal),
		Since:           since,
		Until:           until,
	}, nil
}

// Generate loads entries for req and assembles the journal.
func (g Generator) Generate(ctx context.Context, req Request) (Result, error) {
	rc, err := g.Prepare(req)
	if err != nil {
		return Result{}, err
	}
	if g.Source == nil {
		return Result{}, fmt.Errorf("no entry source configured")
	}

	batch, err := g.Source.Load(ctx, rc.Since, rc.Until)
	if err != nil {
		return Result{}, err
	}
	if rc.Author == "" {
		rc.Author = strings.TrimSpace(batch.Author)
	}
	if rc.Author == "" {
		return Result{}, ErrMissingAuthor
	}
	rc.PageCount = batch.PageCount
	rc.GeneratedAt = g.now()

	g.logger().Debug("entries loaded",
		"entries", len(batch.Entries),
		"pages", batch.PageCount,
		"since", rc.Since.Format(time.DateOnly),
		"until", rc.Until.Format(time.DateOnly),
	)

	assembler := journal.NewAssembler(g.Parser, g.logger())
	doc, ok := assembler.Assemble(rc, batch.Entries)
	if !ok {
		return Result{Context: rc, Entries: len(batch.Entries)}, nil
	}
	return Result{Context: rc, Document: doc, Entries: len(batch.Entries)}, nil
}

func (g Generator) now() time.Time {
	if g.Now != nil {
		return g.Now()
	}
	return time.Now()
}

func (g Generator) logger() *slog.Logger {
	if g.Logger == nil {
		return slog.Default()
	}
	return g.Logger
}
