/*
Command pathgen generates a robot trajectory from a path project document.

Usage:

	pathgen -in path.pp [-settings bot.nt] [-format json|csv] [-out file] [-png preview.png] [-yes] [-trace level]

The document is read from -in (or stdin if -in is "-"). Robot and path
settings may be overridden by a NestedText settings file:

	bot:
	    maxvelocity: 30
	    maxacceleration: 12
	path:
	    distancebetween: 1
	    k: 3
	    algorithm: cubic-spline

The trajectory is written to -out (default stdout). Steps of the trajectory
leaving the field or crossing a barrier are reported on stderr.

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/Genius6942/pathgen/document"
	"github.com/Genius6942/pathgen/field"
	"github.com/Genius6942/pathgen/preview"
	"github.com/Genius6942/pathgen/trajectory"
	"github.com/Genius6942/pathgen/waypoint"
	"github.com/knadh/koanf"
	"github.com/knadh/koanf/providers/file"
	"github.com/npillmayer/schuko/schukonf/koanfadapter"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
)

// tracer writes to trace with key 'pathgen'
func tracer() tracing.Trace {
	return tracing.Select("pathgen")
}

const usage = `Usage: pathgen -in path.pp [flags]

Generates the trajectory of a path project document.

Flags:
`

// options are the command line settings.
type options struct {
	in, settings, out, png string
	format                 string
	yes                    bool
	trace                  string
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	opts := &options{}
	fs := flag.NewFlagSet("pathgen", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprint(stderr, usage)
		fs.PrintDefaults()
	}
	fs.StringVar(&opts.in, "in", "", "path project document, - for stdin")
	fs.StringVar(&opts.settings, "settings", "", "NestedText file with robot and path settings")
	fs.StringVar(&opts.format, "format", string(document.JSON), "output format (json, csv)")
	fs.StringVar(&opts.out, "out", "", "output file (default stdout)")
	fs.StringVar(&opts.png, "png", "", "write a PNG preview to this file")
	fs.BoolVar(&opts.yes, "yes", false, "accept documents of a different version")
	fs.StringVar(&opts.trace, "trace", "error", "trace level (debug, info, error)")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if opts.in == "" {
		fs.Usage()
		return nil, errors.New("no input document given")
	}
	if err := document.Format(opts.format).Valid(); err != nil {
		return nil, err
	}
	return opts, nil
}

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintf(os.Stderr, "pathgen: %v\n", err)
		}
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}
	initTracing(opts.trace, stderr)
	cfg, points, err := load(opts, stdin, stderr)
	if err != nil {
		return err
	}
	if opts.settings != "" {
		if cfg, err = loadSettings(cfg, opts.settings); err != nil {
			return err
		}
	}
	path, err := trajectory.GenerateE(points, cfg)
	if err != nil {
		return err
	}
	tracer().Infof("generated %d trajectory points from %d control points", len(path), len(points))
	for _, v := range field.Default().Check(path) {
		fmt.Fprintf(stderr, "warning: %s\n", v)
	}
	if err = output(opts, stdout, func(w io.Writer) error {
		return document.WriteTrajectory(w, path, document.Format(opts.format))
	}); err != nil {
		return err
	}
	if opts.png != "" {
		popts := preview.DefaultOptions()
		popts.MaxVelocity = cfg.MaxVelocity
		return writeFile(opts.png, func(w io.Writer) error {
			return preview.WritePNG(w, path, points, popts)
		})
	}
	return nil
}

func initTracing(level string, stderr io.Writer) {
	tracing.SetTraceSelector(tracing.SelectorForAdapter(gologadapter.GetAdapter()))
	tracer().SetOutput(stderr)
	tracer().SetTraceLevel(tracing.TraceLevelFromString(level))
}

// load reads the project document. Without -yes, a document of a different
// version is declined.
func load(opts *options, stdin io.Reader, stderr io.Writer) (trajectory.Config, []waypoint.ControlPoint, error) {
	r := stdin
	if opts.in != "-" {
		f, err := os.Open(opts.in)
		if err != nil {
			return trajectory.Config{}, nil, err
		}
		defer f.Close()
		r = f
	}
	confirm := func(found, expected string) bool {
		if !opts.yes {
			fmt.Fprintf(stderr, "%s was created with version %s of the app, expected %s; use -yes to continue\n",
				opts.in, found, expected)
		}
		return opts.yes
	}
	return document.Load(r, confirm)
}

// loadSettings overlays cfg with a NestedText settings file.
func loadSettings(cfg trajectory.Config, path string) (trajectory.Config, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), koanfadapter.Parser()); err != nil {
		return cfg, fmt.Errorf("cannot read settings %s: %w", path, err)
	}
	return trajectory.ApplySettings(cfg, koanfadapter.New(k, "pathgen", []string{"nt"}))
}

func output(opts *options, stdout io.Writer, write func(io.Writer) error) error {
	if opts.out == "" || opts.out == "-" {
		return write(stdout)
	}
	return writeFile(opts.out, write)
}

func writeFile(name string, write func(io.Writer) error) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	if err = write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
