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

package main

import (
	"fmt"
	"io"
	"os"

	"go.opentelemetry.io/otel/attribute"

	"rivaas.dev/pathtrie/compiler"
)

const (
	defaultPackage = "routes"
	defaultName    = "Match"
)

// gen compiles the manifest, checks the compiled matcher against the tree on
// probe paths derived from every route, and writes the Go source.
func (c *cli) gen(args []string) (err error) {
	var (
		cf       common
		out      string
		pkg      string
		name     string
		matchAll bool
		alias    string
	)
	fs := c.flagSet("gen", &cf)
	fs.StringVar(&out, "out", "", "Output file (default stdout)")
	fs.StringVar(&pkg, "package", "", "Package of the generated file (default: manifest package, then \""+defaultPackage+"\")")
	fs.StringVar(&name, "name", "", "Name of the generated function (default: manifest name, then \""+defaultName+"\")")
	fs.BoolVar(&matchAll, "match-all", false, "Generate a function returning every match (also set by the manifest)")
	fs.StringVar(&alias, "trie-alias", compiler.DefaultPackageName, "Identifier the generated file uses for the trie package")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("%w: gen takes no arguments", errUsage)
	}

	ctx, span, err := c.begin(&cf, "gen")
	if err != nil {
		return err
	}
	defer func() { c.tracer.Finish(span, err) }()

	m, t, err := c.load(ctx, &cf)
	if err != nil {
		return err
	}
	pkg = firstNonEmpty(pkg, m.Package, defaultPackage)
	name = firstNonEmpty(name, m.Name, defaultName)
	matchAll = matchAll || m.MatchAll

	probes := compiler.Probes(t)
	_, step := c.tracer.Start(ctx, "matcher.compile", attribute.Bool("match_all", matchAll))
	if matchAll {
		var fn compiler.AllFunc[string]
		if fn, err = compiler.CompileAll(t); err == nil {
			err = compiler.VerifyAll(t, fn, probes)
		}
	} else {
		var fn compiler.Func[string]
		if fn, err = compiler.Compile(t); err == nil {
			err = compiler.Verify(t, fn, probes)
		}
	}
	step.SetAttributes(attribute.Int("probes", len(probes)))
	c.tracer.Finish(step, err)
	if err != nil {
		return err
	}
	c.logger.Debug("compiled matcher verified", "probes", len(probes))

	opts := []compiler.Option{compiler.WithPackageName(alias)}
	if matchAll {
		opts = append(opts, compiler.WithMatchAll())
	}
	_, step = c.tracer.Start(ctx, "source.render", attribute.String("package", pkg), attribute.String("func", name))
	src, err := compiler.File(t, pkg, name, opts...)
	c.tracer.Finish(step, err)
	if err != nil {
		return err
	}

	if out == "" {
		_, err = io.WriteString(c.stdout, src)
		return err
	}
	if err = os.WriteFile(out, []byte(src), 0o644); err != nil { //nolint:gosec // generated source is meant to be readable
		return fmt.Errorf("failed to write %s: %w", out, err)
	}
	c.logger.Info("matcher generated", "out", out, "package", pkg, "func", name, "records", t.Len(), "match_all", matchAll)

	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}

	return ""
}
