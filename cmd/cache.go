package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"toggljournal/config"
	"toggljournal/importer"
	"toggljournal/storage"

	"github.com/spf13/cobra"
)

var (
	cacheDBPath      string
	cacheInputs      []string
	cacheInputFormat string
	cacheDeleteFile  bool
)

var (
	cachePromptInput  io.Reader = os.Stdin
	cachePromptOutput io.Writer = os.Stdout
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the local SQLite cache of time entries",
	Long: `The cache stores time entries fetched with "journal --db" or imported from
Toggl export files, so journals can be rebuilt with "journal --offline".`,
	Example: `
  # Import Toggl CSV exports into the cache
  toggljournal cache import -i TogglTrack_2024-03.csv -i TogglTrack_2024-04.xlsx

  # Remove all cached entries (requires interactive confirmation)
  toggljournal cache clear --db ./toggljournal.db

  # Delete the complete cache file
  toggljournal cache clear --file --db ./toggljournal.db
`,
}

var cacheImportCmd = &cobra.Command{
	Use:   "import",
	Short: "Import Toggl CSV/Excel exports into the cache",
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(cacheInputs) == 0 {
			return fmt.Errorf("at least one --input file is required")
		}
		cfg, err := config.LoadAndValidate()
		if err != nil {
			return err
		}
		loc, err := cfg.Toggl.Location()
		if err != nil {
			return err
		}

		result, err := importer.Run(cacheInputs, strings.TrimSpace(cacheInputFormat), loc)
		if err != nil {
			return err
		}

		store, err := storage.OpenSQLite(cacheDBPath)
		if err != nil {
			return err
		}
		defer store.Close()

		written, err := store.UpsertEntries(result.Entries)
		if err != nil {
			return err
		}

		fmt.Printf(
			"Import completed. Files: %d, Rows read: %d, Mapped: %d, Skipped: %d, Stored: %d, DB: %s\n",
			result.FilesProcessed,
			result.RowsRead,
			result.RowsMapped,
			result.RowsSkipped,
			written,
			cacheDBPath,
		)
		return nil
	},
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all cached time entries",
	Long: `Destructive cache cleanup command.

Without --file all rows are removed and the database file is kept. With --file
the complete SQLite file is deleted. Before deletion, an interactive security
prompt requires typing exactly "Y".`,
	RunE: func(cmd *cobra.Command, args []string) error {
		confirmed, err := confirmDeletePrompt(cachePromptInput, cachePromptOutput, fmt.Sprintf("Delete cached time entries in %q?", cacheDBPath))
		if err != nil {
			return err
		}
		if !confirmed {
			return fmt.Errorf("clear aborted: confirmation was not 'Y'")
		}

		if cacheDeleteFile {
			if err := removeDatabaseFile(cacheDBPath); err != nil {
				return err
			}
			fmt.Printf("Deleted database file: %s\n", cacheDBPath)
			return nil
		}

		deleted, err := clearCachedEntries(cacheDBPath)
		if err != nil {
			return err
		}
		fmt.Printf("Removed %d cached time entries from %s\n", deleted, cacheDBPath)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(cacheCmd)
	cacheCmd.AddCommand(cacheImportCmd)
	cacheCmd.AddCommand(cacheClearCmd)

	cacheCmd.PersistentFlags().StringVar(&cacheDBPath, "db", defaultDBPath, "Path to local SQLite cache")
	cacheImportCmd.Flags().StringArrayVarP(&cacheInputs, "input", "i", nil, "Toggl CSV/Excel export file (repeatable)")
	cacheImportCmd.Flags().StringVar(&cacheInputFormat, "format", "", "Input format: csv|excel (optional, inferred from extension)")
	cacheClearCmd.Flags().BoolVar(&cacheDeleteFile, "file", false, "Delete the complete database file")
}

func clearCachedEntries(path string) (int64, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return 0, fmt.Errorf("database file not found: %s", path)
		}
		return 0, fmt.Errorf("stat database file: %w", err)
	}
	store, err := storage.OpenSQLite(path)
	if err != nil {
		return 0, err
	}
	defer store.Close()
	return store.DeleteAllEntries()
}

func confirmDeletePrompt(input io.Reader, output io.Writer, question string) (bool, error) {
	if input == nil {
		return false, fmt.Errorf("delete confirmation input is not available")
	}

	if output == nil {
		output = io.Discard
	}

	if _, err := fmt.Fprintf(output, "%s Type Y to confirm: ", question); err != nil {
		return false, fmt.Errorf("write delete confirmation prompt: %w", err)
	}

	line, err := bufio.NewReader(input).ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) {
			line = strings.TrimSpace(line)
			return line == "Y", nil
		}
		return false, fmt.Errorf("read delete confirmation: %w", err)
	}
	return strings.TrimSpace(line) == "Y", nil
}

func removeDatabaseFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("database file not found: %s", path)
		}
		return fmt.Errorf("stat database file: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("database path is a directory: %s", path)
	}
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("delete database file: %w", err)
	}
	return nil
}
