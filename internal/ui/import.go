package ui

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/duc19092005/cinesched/internal/db"
	"github.com/duc19092005/cinesched/internal/schedule"
)

func (a *App) importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import [database_path]",
		Short: "Import showtimes from another database",
		Long: `Import the showtimes of the configured cinema from another cinesched
database into the current one.

Showtimes already present are kept as they are. Showtimes that overlap
an existing one or need a format the auditorium cannot project are
skipped and reported.`,
		Example: `  cinesched import /path/to/other.db`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			sourcePath, err := sourceDatabase(args[0], a.config.Storage.DBPath)
			if err != nil {
				return err
			}

			result, err := a.importShowtimes(cmd.Context(), sourcePath)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(a.out, "Imported %d showtime(s) from %s\n", result.imported, sourcePath)
			for _, s := range result.skipped {
				_, _ = fmt.Fprintf(a.out, "  %s %s\n", formatInvalid("skipped"), formatMuted(s))
			}
			return nil
		},
	}

	return cmd
}

type importResult struct {
	imported int
	skipped  []string
}

// importShowtimes adds the source showtimes that fit the current schedule.
func (a *App) importShowtimes(ctx context.Context, sourcePath string) (importResult, error) {
	var result importResult

	sourceRepo, err := db.New(sourcePath)
	if err != nil {
		return result, fmt.Errorf("opening source database: %w", err)
	}
	defer func() { _ = sourceRepo.Close() }()

	source, err := sourceRepo.LoadSchedule(ctx, a.config.Cinema.ID)
	if err != nil {
		return result, fmt.Errorf("loading source showtimes: %w", err)
	}

	s, err := a.openSession(ctx, nowFunc())
	if err != nil {
		return result, err
	}

	for _, as := range source.Auditoriums {
		aud, known := s.catalog.Auditorium(as.AuditoriumID)
		for _, sl := range as.Slots {
			var reason string
			if _, _, exists := s.store.FindSlot(sl.ID); exists {
				continue
			}
			switch {
			case !known:
				reason = "unknown auditorium"
			case !aud.SupportsFormat(sl.Format):
				reason = fmt.Sprintf("%s does not support %s", aud.Name, sl.Format)
			default:
				if other, collides := schedule.FindCollision(sl.Start, sl.End, s.store.Slots(aud.ID), ""); collides {
					reason = "overlaps " + other.ID
				}
			}
			if reason != "" {
				result.skipped = append(result.skipped, describeSlot(s.catalog, as.AuditoriumID, sl)+": "+reason)
				continue
			}
			s.store.AddSlot(aud.ID, sl)
			result.imported++
		}
	}

	if err := a.commit(ctx, s); err != nil {
		return result, fmt.Errorf("saving imported showtimes: %w", err)
	}
	return result, nil
}

// sourceDatabase resolves arg and checks that it names an existing
// database file other than current.
func sourceDatabase(arg, current string) (string, error) {
	src, err := resolvePath(arg)
	if err != nil {
		return "", err
	}
	if dst, err := resolvePath(current); err == nil && dst == src {
		return "", errors.New("source database matches current database")
	}
	info, err := os.Stat(src)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return "", fmt.Errorf("source database does not exist: %s", src)
	case err != nil:
		return "", fmt.Errorf("source database: %w", err)
	case info.IsDir():
		return "", fmt.Errorf("source database %s is a directory", src)
	}
	return src, nil
}

// resolvePath makes path absolute, expanding a leading "~/".
func resolvePath(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", errors.New("empty path")
	}
	if rest, ok := strings.CutPrefix(path, "~/"); ok {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("home directory: %w", err)
		}
		path = filepath.Join(home, rest)
	}
	return filepath.Abs(path)
}
