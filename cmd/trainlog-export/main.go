package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/claude/trainlog/internal/export"
	"github.com/claude/trainlog/internal/parse"
	"github.com/claude/trainlog/internal/standardize"
	"github.com/claude/trainlog/internal/workout"
)

const usage = `Usage: trainlog-export <command> [flags]

Commands:
  parse <file>    parse a training log and print the sessions
  export <file>   export sessions as set-centric JSON documents
  batch <dir>     export a directory of .txt logs as one table

Run 'trainlog-export <command> -h' for command flags.
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "parse":
		err = runParse(os.Args[2:])
	case "export":
		err = runExport(os.Args[2:])
	case "batch":
		err = runBatch(os.Args[2:])
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func parseFile(path string) ([]workout.Session, []parse.LineError, error) {
	p := parse.New(standardize.Default())

	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	return p.ParseSessions(f)
}

func reportLineErrors(lineErrs []parse.LineError) {
	for _, le := range lineErrs {
		fmt.Fprintln(os.Stderr, "Warning:", le.Error())
	}
}

func runParse(args []string) error {
	fs := flag.NewFlagSet("parse", flag.ExitOnError)
	format := fs.String("format", "text", "output format: text or json")
	fs.Parse(args)

	if fs.NArg() != 1 {
		return fmt.Errorf("parse: expected exactly one log file")
	}

	sessions, lineErrs, err := parseFile(fs.Arg(0))
	if err != nil {
		return err
	}
	reportLineErrors(lineErrs)

	switch *format {
	case "text":
		export.WriteCompact(os.Stdout, sessions)
		return nil
	case "json":
		return writeJSON(os.Stdout, export.Sessions(sessions))
	default:
		return fmt.Errorf("parse: unknown format %q", *format)
	}
}

func runExport(args []string) error {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	validate := fs.Bool("validate", false, "validate each document against the set-centric schema")
	out := fs.String("o", "", "output file (default stdout)")
	fs.Parse(args)

	if fs.NArg() != 1 {
		return fmt.Errorf("export: expected exactly one log file")
	}

	sessions, lineErrs, err := parseFile(fs.Arg(0))
	if err != nil {
		return err
	}
	reportLineErrors(lineErrs)

	docs := make([]export.SetCentricDoc, 0, len(sessions))
	for _, session := range sessions {
		ts, err := time.Parse("2006-01-02", session.Date)
		if err != nil {
			ts = time.Now()
		}
		doc := export.SetCentric(session.Exercises, ts)
		doc.Notes = session.Notes
		docs = append(docs, doc)
	}

	if *validate {
		for _, doc := range docs {
			data, err := json.Marshal(doc)
			if err != nil {
				return err
			}
			if err := export.ValidateSetCentric(data); err != nil {
				return fmt.Errorf("document %s: %w", doc.WorkoutID, err)
			}
		}
	}

	w, closeFn, err := output(*out)
	if err != nil {
		return err
	}
	defer closeFn()
	return writeJSON(w, docs)
}

func runBatch(args []string) error {
	fs := flag.NewFlagSet("batch", flag.ExitOnError)
	format := fs.String("format", "tsv", "output format: tsv or json")
	out := fs.String("o", "", "output file (default stdout)")
	fs.Parse(args)

	if fs.NArg() != 1 {
		return fmt.Errorf("batch: expected exactly one directory")
	}
	dir := fs.Arg(0)

	var paths []string
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), ".txt") {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return err
	}
	sort.Strings(paths)
	if len(paths) == 0 {
		return fmt.Errorf("batch: no .txt files under %s", dir)
	}

	var all []workout.Session
	for _, path := range paths {
		sessions, lineErrs, err := parseFile(path)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		reportLineErrors(lineErrs)
		all = append(all, sessions...)
	}

	w, closeFn, err := output(*out)
	if err != nil {
		return err
	}
	defer closeFn()

	switch *format {
	case "json":
		return writeJSON(w, export.Sessions(all))
	case "tsv":
		rows, err := export.TSVRows(all)
		if err != nil {
			return err
		}
		for _, row := range rows {
			if _, err := fmt.Fprintln(w, strings.Join(row, "\t")); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("batch: unknown format %q", *format)
	}
}

func output(path string) (io.Writer, func(), error) {
	if path == "" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { f.Close() }, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
