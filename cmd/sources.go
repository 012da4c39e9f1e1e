package cmd

import (
	"fmt"
	"strings"
	"time"

	"toggljournal/config"
	"toggljournal/generator"
	"toggljournal/notation"
	"toggljournal/storage"
	"toggljournal/toggl"
)

const (
	sourceAPI  = "api"
	sourceFile = "file"
	sourceDB   = "db"

	defaultDBPath = "./toggljournal.db"
)

// sourceOptions selects where entries come from. It is validated before any
// file or network access.
type sourceOptions struct {
	Kind        string
	Token       string
	Inputs      []string
	InputFormat string
	DBPath      string
	Author      string
}

func (o sourceOptions) normalized() sourceOptions {
	o.Kind = strings.ToLower(strings.TrimSpace(o.Kind))
	if o.Kind == "" {
		o.Kind = sourceAPI
	}
	o.Token = strings.TrimSpace(o.Token)
	o.DBPath = strings.TrimSpace(o.DBPath)
	o.Author = strings.TrimSpace(o.Author)
	if o.Kind == sourceDB && o.DBPath == "" {
		o.DBPath = defaultDBPath
	}
	return o
}

func (o sourceOptions) validate() error {
	switch o.Kind {
	case sourceAPI:
		if o.Token == "" {
			return fmt.Errorf("%w: pass --token or set toggl.api_token / %s_TOGGL_API_TOKEN", toggl.ErrMissingToken, envPrefix)
		}
	case sourceFile:
		if len(o.Inputs) == 0 {
			return fmt.Errorf("--source file requires at least one --input file")
		}
	case sourceDB:
	default:
		return fmt.Errorf("unsupported source %q (supported: api, file, db)", o.Kind)
	}
	return nil
}

// validateAuthor rejects file and db sources without an author; only the API
// reports one.
func (o sourceOptions) validateAuthor() error {
	if o.Kind != sourceAPI && o.Author == "" {
		return fmt.Errorf("--source %s requires --author or journal.author in config", o.Kind)
	}
	return nil
}

// openSource builds the source and returns a close function for any opened
// cache.
func openSource(cfg config.Config, options sourceOptions) (generator.Source, func() error, error) {
	noop := func() error { return nil }

	loc, err := cfg.Toggl.Location()
	if err != nil {
		return nil, noop, err
	}

	var store *storage.SQLiteStore
	closeFn := noop
	if options.DBPath != "" {
		store, err = storage.OpenSQLite(options.DBPath)
		if err != nil {
			return nil, noop, err
		}
		closeFn = store.Close
	}
	var cache generator.EntryCache
	if store != nil {
		cache = store
	}

	switch options.Kind {
	case sourceAPI:
		source, err := newAPISource(cfg, options.Token, loc, cache)
		if err != nil {
			_ = closeFn()
			return nil, noop, err
		}
		return source, closeFn, nil
	case sourceFile:
		return generator.FileSource{
			Paths:    options.Inputs,
			Format:   options.InputFormat,
			Location: loc,
			Author:   options.Author,
			PageSize: cfg.Toggl.PageSize,
			Cache:    cache,
		}, closeFn, nil
	case sourceDB:
		return generator.CacheSource{
			Cache:    cache,
			Location: loc,
			Author:   options.Author,
			PageSize: cfg.Toggl.PageSize,
		}, closeFn, nil
	default:
		_ = closeFn()
		return nil, noop, fmt.Errorf("unsupported source %q (supported: api, file, db)", options.Kind)
	}
}

func newAPISource(cfg config.Config, token string, loc *time.Location, cache generator.EntryCache) (generator.APISource, error) {
	client, err := toggl.NewClient(toggl.ClientConfig{
		BaseURL:   cfg.Toggl.BaseURL,
		APIToken:  token,
		UserAgent: "toggljournal/1.0",
	})
	if err != nil {
		return generator.APISource{}, err
	}
	return generator.APISource{
		Client:   client,
		PageSize: cfg.Toggl.PageSize,
		Location: loc,
		Cache:    cache,
	}, nil
}

func newGenerator(cfg config.Config, source generator.Source, delimiter string) (generator.Generator, error) {
	loc, err := cfg.Toggl.Location()
	if err != nil {
		return generator.Generator{}, err
	}
	if strings.TrimSpace(delimiter) == "" {
		delimiter = cfg.Notation.Delimiter
	}
	return generator.Generator{
		Source:   source,
		Parser:   notation.NewParser(delimiter),
		Logger:   newLogger(),
		Location: loc,
		Now:      time.Now,
	}, nil
}
