// Package importer walks a directory of plain-text training logs, parses
// each file into sessions, and stores them. A local SQLite state database
// remembers which files were already imported so repeated runs only pick
// up new or changed logs.
package importer

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/claude/trainlog/internal/parse"
	"github.com/claude/trainlog/internal/storage"
)

// Stats summarizes one importer run.
type Stats struct {
	FilesSeen     int
	FilesSkipped  int
	FilesImported int
	FilesFailed   int
	Sessions      int
	LineErrors    int
}

// Importer reads training logs from disk and inserts them into storage.
type Importer struct {
	db     *storage.DB
	state  *StateDB
	parser *parse.Parser
	log    *slog.Logger
	dryRun bool
}

// New creates an importer. With dryRun set it parses and reports but never
// writes to the database or the state tracker.
func New(db *storage.DB, state *StateDB, parser *parse.Parser, log *slog.Logger, dryRun bool) *Importer {
	return &Importer{db: db, state: state, parser: parser, log: log, dryRun: dryRun}
}

// Import walks dir for .txt files and imports each one. Files that fail to
// parse or store are logged and counted but do not stop the run.
func (i *Importer) Import(ctx context.Context, dir string, userID int) (Stats, error) {
	var stats Stats

	var paths []string
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".txt") {
			return nil
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return stats, fmt.Errorf("walking %s: %w", dir, err)
	}
	sort.Strings(paths)

	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		stats.FilesSeen++

		rel, err := filepath.Rel(dir, path)
		if err != nil {
			rel = path
		}

		info, err := os.Stat(path)
		if err != nil {
			i.log.Error("stat failed", "file", rel, "error", err)
			stats.FilesFailed++
			continue
		}
		hash, err := HashFile(path)
		if err != nil {
			i.log.Error("hashing failed", "file", rel, "error", err)
			stats.FilesFailed++
			continue
		}

		if i.state != nil {
			done, err := i.state.IsImported(rel, info.Size(), hash)
			if err != nil {
				return stats, fmt.Errorf("checking import state for %s: %w", rel, err)
			}
			if done {
				stats.FilesSkipped++
				continue
			}
		}

		sessions, lineErrs, err := i.importFile(ctx, path, userID)
		if err != nil {
			i.log.Error("import failed", "file", rel, "error", err)
			stats.FilesFailed++
			continue
		}
		stats.Sessions += sessions
		stats.LineErrors += lineErrs
		stats.FilesImported++

		if !i.dryRun && i.state != nil {
			if err := i.state.MarkImported(rel, info.Size(), hash); err != nil {
				return stats, fmt.Errorf("marking %s imported: %w", rel, err)
			}
		}
		i.log.Info("imported file", "file", rel, "sessions", sessions, "line_errors", lineErrs)
	}

	return stats, nil
}

func (i *Importer) importFile(ctx context.Context, path string, userID int) (sessions, lineErrs int, err error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, err
	}
	defer f.Close()

	parsed, errs, err := i.parser.ParseSessions(f)
	if err != nil {
		return 0, 0, fmt.Errorf("parsing: %w", err)
	}
	for _, le := range errs {
		i.log.Warn("skipped line", "file", filepath.Base(path), "line", le.Line, "error", le.Err)
	}

	if i.dryRun {
		return len(parsed), len(errs), nil
	}

	for _, session := range parsed {
		if _, _, err := i.db.InsertSession(ctx, userID, session); err != nil {
			return sessions, len(errs), fmt.Errorf("storing session %s: %w", session.Date, err)
		}
		sessions++
	}
	return sessions, len(errs), nil
}
