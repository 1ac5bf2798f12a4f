// Copyright 2025 The Rivaas Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Command pathtrie works with route manifests.
//
// Usage:
//
//	pathtrie gen    -manifest routes.yaml [-out routes_gen.go] [-package p] [-name Match] [-match-all]
//	pathtrie match  -manifest routes.yaml [-compiled] [-all] [-metrics] METHOD PATH [METHOD PATH ...]
//	pathtrie routes -manifest routes.yaml [-format yaml|toml|json]
//
// Common flags have environment defaults: PATHTRIE_MANIFEST,
// PATHTRIE_LOG_LEVEL, PATHTRIE_LOG_FORMAT and PATHTRIE_TRACE. With -trace the
// steps of a command and every lookup are written to stderr as
// OpenTelemetry spans.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cast"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"rivaas.dev/pathtrie/logging"
	"rivaas.dev/pathtrie/manifest"
	"rivaas.dev/pathtrie/tracing"
	"rivaas.dev/pathtrie/trie"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

const usage = `usage: pathtrie <command> [flags] [args]

commands:
  gen     emit a Go matcher for a manifest
  match   resolve METHOD PATH pairs against a manifest
  routes  list the registrations of a manifest

Run "pathtrie <command> -h" for command flags.
`

const serviceName = "pathtrie"

var errUsage = errors.New("usage")

func main() {
	c := &cli{
		stdout: os.Stdout,
		stderr: os.Stderr,
		getenv: os.Getenv,
	}
	os.Exit(c.run(os.Args[1:]))
}

// cli holds the process environment so commands can be run in tests.
type cli struct {
	stdout io.Writer
	stderr io.Writer
	getenv func(string) string

	logger *logging.Logger
	tracer *tracing.Tracer
}

// common are the flags every command takes.
type common struct {
	manifest  string
	logLevel  string
	logFormat string
	trace     bool
}

func (c *cli) run(args []string) int {
	if len(args) == 0 {
		fmt.Fprint(c.stderr, usage)
		return exitUsage
	}

	var err error
	switch cmd, rest := args[0], args[1:]; cmd {
	case "gen":
		err = c.gen(rest)
	case "match":
		err = c.match(rest)
	case "routes":
		err = c.routes(rest)
	case "-h", "-help", "--help", "help":
		fmt.Fprint(c.stdout, usage)
		return exitOK
	default:
		fmt.Fprintf(c.stderr, "pathtrie: unknown command %q\n\n%s", cmd, usage)
		return exitUsage
	}
	if c.tracer != nil {
		if serr := c.tracer.Shutdown(context.Background()); serr != nil && err == nil {
			err = serr
		}
	}

	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, flag.ErrHelp):
		return exitOK
	case errors.Is(err, errUsage):
		fmt.Fprintf(c.stderr, "pathtrie: %v\n", err)
		return exitUsage
	default:
		if c.logger != nil {
			c.logger.Error("command failed", "command", args[0], "error", err)
		} else {
			fmt.Fprintf(c.stderr, "pathtrie: %v\n", err)
		}

		return exitError
	}
}

// flagSet returns a flag set with the common flags registered.
func (c *cli) flagSet(name string, cf *common) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	fs.StringVar(&cf.manifest, "manifest", c.getEnvOrDefault("PATHTRIE_MANIFEST", ""),
		"Route manifest (.yaml, .yml, .toml or .json)")
	fs.StringVar(&cf.logLevel, "log-level", c.getEnvOrDefault("PATHTRIE_LOG_LEVEL", "warn"),
		"Log level (debug, info, warn, error)")
	fs.StringVar(&cf.logFormat, "log-format", c.getEnvOrDefault("PATHTRIE_LOG_FORMAT", "console"),
		"Log format (console, json, text)")
	fs.BoolVar(&cf.trace, "trace", cast.ToBool(c.getEnvOrDefault("PATHTRIE_TRACE", "false")),
		"Write OpenTelemetry spans to stderr")

	return fs
}

// parseFlags parses command flags. Flag errors other than -h are usage errors.
func parseFlags(fs *flag.FlagSet, args []string) error {
	err := fs.Parse(args)
	if err == nil || errors.Is(err, flag.ErrHelp) {
		return err
	}

	return fmt.Errorf("%w: %w", errUsage, err)
}

// configure sets up the logger and the tracer from the common flags.
func (c *cli) configure(cf *common) error {
	level, err := logging.ParseLevel(cf.logLevel)
	if err != nil {
		return fmt.Errorf("%w: -log-level: %w", errUsage, err)
	}
	logger, err := logging.New(
		logging.WithHandlerType(logging.HandlerType(cf.logFormat)),
		logging.WithOutput(c.stderr),
		logging.WithLevel(level),
		logging.WithServiceName(serviceName),
	)
	if err != nil {
		return fmt.Errorf("%w: -log-format: %w", errUsage, err)
	}
	c.logger = logger

	opts := []tracing.Option{tracing.WithServiceName(serviceName)}
	if cf.trace {
		opts = append(opts, tracing.WithStdout(c.stderr))
	}
	if c.tracer, err = tracing.New(opts...); err != nil {
		return err
	}

	return nil
}

// load reads the manifest and builds its tree. Registration diagnostics are
// logged at warn level.
func (c *cli) load(ctx context.Context, cf *common) (*manifest.Manifest, *trie.Tree[string], error) {
	if cf.manifest == "" {
		return nil, nil, fmt.Errorf("%w: -manifest is required", errUsage)
	}

	_, span := c.tracer.Start(ctx, "manifest.load", attribute.String("manifest.path", cf.manifest))
	m, err := manifest.LoadFile(cf.manifest)
	c.tracer.Finish(span, err)
	if err != nil {
		return nil, nil, err
	}

	_, span = c.tracer.Start(ctx, "tree.build", attribute.Int("manifest.routes", len(m.Routes)))
	t, err := m.Build(trie.WithDiagnostics(logging.DiagnosticHandler(c.logger)))
	if err == nil {
		span.SetAttributes(attribute.Int("tree.records", t.Len()))
	}
	c.tracer.Finish(span, err)
	if err != nil {
		return nil, nil, err
	}
	c.logger.Debug("manifest loaded", "path", cf.manifest, "routes", len(m.Routes), "records", t.Len())

	return m, t, nil
}

// begin sets up logging and tracing and starts the span of command.
// The span must be ended with c.tracer.Finish.
func (c *cli) begin(cf *common, command string) (context.Context, trace.Span, error) {
	if err := c.configure(cf); err != nil {
		return nil, nil, err
	}
	ctx, span := c.tracer.Start(context.Background(), "pathtrie."+command)

	return ctx, span, nil
}

// getEnvOrDefault returns the environment variable value or a default.
func (c *cli) getEnvOrDefault(key, defaultValue string) string {
	if value := c.getenv(key); value != "" {
		return value
	}

	return defaultValue
}
