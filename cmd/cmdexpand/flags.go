// ABOUTME: CLI flag parsing using stdlib flag package
// ABOUTME: Supports -file, -line, -select, -lang, -cwd, -config, -verbose, -version, -i

package main

import (
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"
)

type cliArgs struct {
	file        string
	line        int
	selection   string
	lang        string
	cwd         string
	config      string
	verbose     bool
	version     bool
	interactive bool
	rest        []string
}

// parseFlags parses argv (without the program name).
func parseFlags(argv []string, stderr io.Writer) (cliArgs, error) {
	var args cliArgs
	fs := flag.NewFlagSet("cmdexpand", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVar(&args.file, "file", "", "File to open as the current buffer")
	fs.IntVar(&args.line, "line", 0, "Place the cursor on this 1-based line")
	fs.StringVar(&args.selection, "select", "", "Select lines FROM[:TO] (1-based, inclusive)")
	fs.StringVar(&args.lang, "lang", "", "Override the buffer language")
	fs.StringVar(&args.cwd, "cwd", "", "Working directory (default: current directory)")
	fs.StringVar(&args.config, "config", "", "Config file to use instead of the global and project files")
	fs.BoolVar(&args.verbose, "verbose", false, "Enable debug logging")
	fs.BoolVar(&args.version, "version", false, "Show version and exit")
	fs.BoolVar(&args.interactive, "i", false, "Start the interactive command line")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: cmdexpand [flags] [command [args...]]")
		fs.PrintDefaults()
	}

	if err := fs.Parse(argv); err != nil {
		return cliArgs{}, err
	}
	args.rest = fs.Args()
	if args.line < 0 {
		return cliArgs{}, fmt.Errorf("-line must be positive, got %d", args.line)
	}
	return args, nil
}

// parseSelection parses "FROM" or "FROM:TO" into 1-based line numbers.
func parseSelection(s string) (from, to int, err error) {
	a, b, found := strings.Cut(s, ":")
	if from, err = strconv.Atoi(a); err != nil || from < 1 {
		return 0, 0, fmt.Errorf("invalid -select %q", s)
	}
	to = from
	if found {
		if to, err = strconv.Atoi(b); err != nil || to < 1 {
			return 0, 0, fmt.Errorf("invalid -select %q", s)
		}
	}
	return from, to, nil
}
