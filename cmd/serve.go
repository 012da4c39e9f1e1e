package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/exec"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"toggljournal/config"
	"toggljournal/generator"
	"toggljournal/storage"
	"toggljournal/toggl"
	"toggljournal/web"

	"github.com/spf13/cobra"
)

var (
	servePort   int
	serveSource string
	serveInputs []string
	serveDBPath string
	serveNoOpen bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start a local web form that generates journals",
	Long: `Start a local HTTP server with a form for since/until/project/personal journal.

Submitting the form returns the rendered journal as HTML. The API token can be
entered in the form or taken from configuration. The server only binds to
localhost and has no authentication.`,
	Example: `
  # Start local server on default port
  toggljournal serve

  # Serve journals from the local cache
  toggljournal serve --source db --db ./toggljournal.db --port 9090
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadAndValidate()
		if err != nil {
			return err
		}

		factory, closeFactory, err := newServeSourceFactory(*cfg, sourceOptions{
			Kind:   serveSource,
			Inputs: serveInputs,
			DBPath: serveDBPath,
			Author: cfg.Journal.Author,
		})
		if err != nil {
			return err
		}
		defer closeFactory()

		addr := fmt.Sprintf("localhost:%d", servePort)
		server := &http.Server{
			Addr:              addr,
			Handler:           web.NewServer(*cfg, factory, newLogger()),
			ReadHeaderTimeout: 10 * time.Second,
		}

		errCh := make(chan error, 1)
		go func() {
			errCh <- server.ListenAndServe()
		}()

		listenURL := fmt.Sprintf("http://localhost:%d", servePort)
		fmt.Printf("Listening on %s\n", listenURL)
		if !serveNoOpen {
			if openErr := openURLInBrowser(listenURL); openErr != nil {
				fmt.Fprintf(os.Stderr, "Warning: failed to open browser: %v\n", openErr)
			}
		}

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
		defer signal.Stop(sigCh)

		select {
		case err := <-errCh:
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		case <-sigCh:
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := server.Shutdown(ctx); err != nil {
				return fmt.Errorf("shutdown server: %w", err)
			}
			err := <-errCh
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().IntVar(&servePort, "port", 8080, "HTTP port for the local web server")
	serveCmd.Flags().StringVar(&serveSource, "source", sourceAPI, "Entry source: api|file|db")
	serveCmd.Flags().StringArrayVarP(&serveInputs, "input", "i", nil, "Toggl CSV/Excel export file (repeatable, --source file)")
	serveCmd.Flags().StringVar(&serveDBPath, "db", "", "SQLite cache path")
	serveCmd.Flags().BoolVar(&serveNoOpen, "no-open", false, "Do not open browser automatically")
}

// newServeSourceFactory opens shared resources once. For the api source the
// token comes from the form, falling back to config.
func newServeSourceFactory(cfg config.Config, base sourceOptions) (web.SourceFactory, func() error, error) {
	base = base.normalized()
	if base.Kind != sourceAPI {
		if err := base.validate(); err != nil {
			return nil, nil, err
		}
		source, closeSource, err := openSource(cfg, base)
		if err != nil {
			return nil, nil, err
		}
		return func(string) (generator.Source, error) {
			return source, nil
		}, closeSource, nil
	}

	loc, err := cfg.Toggl.Location()
	if err != nil {
		return nil, nil, err
	}

	var cache generator.EntryCache
	closeFn := func() error { return nil }
	if base.DBPath != "" {
		store, err := storage.OpenSQLite(base.DBPath)
		if err != nil {
			return nil, nil, err
		}
		cache = store
		closeFn = store.Close
	}

	factory := func(token string) (generator.Source, error) {
		token = firstNonEmpty(token, cfg.Toggl.APIToken)
		if token == "" {
			return nil, toggl.ErrMissingToken
		}
		return newAPISource(cfg, token, loc, cache)
	}
	return factory, closeFn, nil
}

func openURLInBrowser(rawURL string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", rawURL)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", rawURL)
	default:
		cmd = exec.Command("xdg-open", rawURL)
	}
	return cmd.Start()
}
