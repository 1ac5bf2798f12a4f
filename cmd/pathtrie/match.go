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
	"context"
	"fmt"
	"io"
	"slices"
	"strings"

	"rivaas.dev/pathtrie/compiler"
	"rivaas.dev/pathtrie/metrics"
	"rivaas.dev/pathtrie/tracing"
	"rivaas.dev/pathtrie/trie"
)

// match resolves METHOD PATH pairs and prints one line per pair:
//
//	GET /users/7 -> users.show id=7
//	POST /users/7 -> no match
//
// With -all every match is printed, most specific first.
func (c *cli) match(args []string) (err error) {
	var (
		cf       common
		compiled bool
		all      bool
		dump     bool
	)
	fs := c.flagSet("match", &cf)
	fs.BoolVar(&compiled, "compiled", false, "Use the compiled matcher instead of walking the tree")
	fs.BoolVar(&all, "all", false, "Print every match, not only the first")
	fs.BoolVar(&dump, "metrics", false, "Print lookup metrics in the Prometheus text format after the results")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	pairs := fs.Args()
	if len(pairs) == 0 || len(pairs)%2 != 0 {
		return fmt.Errorf("%w: match takes METHOD PATH pairs", errUsage)
	}

	ctx, span, err := c.begin(&cf, "match")
	if err != nil {
		return err
	}
	defer func() { c.tracer.Finish(span, err) }()

	m, t, err := c.load(ctx, &cf)
	if err != nil {
		return err
	}

	mode := metrics.ModeInterpreted
	lookupAll := compiler.AllFunc[string](t.LookupAll)
	lookup := compiler.Func[string](t.Lookup)
	if compiled {
		mode = metrics.ModeCompiled
		if lookupAll, err = compiler.CompileAll(t); err != nil {
			return err
		}
		if lookup, err = compiler.Compile(t); err != nil {
			return err
		}
	}

	var prom *metrics.Prometheus
	if dump {
		if prom, err = metrics.NewPrometheusProvider(); err != nil {
			return err
		}
		defer func() {
			_ = prom.Shutdown(context.Background())
		}()

		in, err := metrics.New(
			metrics.WithMeterProvider(prom.MeterProvider()),
			metrics.WithMatcherName(strings.ToLower(firstNonEmpty(m.Name, defaultName))),
		)
		if err != nil {
			return err
		}
		in.RecordRoutes(t.Len())
		lookup = metrics.Wrap(in, mode, lookup)
		lookupAll = metrics.WrapAll(in, mode, lookupAll)
	}

	traced := tracing.Wrap(c.tracer, lookup)
	tracedAll := tracing.WrapAll(c.tracer, lookupAll)
	for i := 0; i < len(pairs); i += 2 {
		method, path := pairs[i], pairs[i+1]
		if all {
			writeAll(c.stdout, method, path, tracedAll(ctx, method, path))
			continue
		}
		res, ok := traced(ctx, method, path)
		writeMatch(c.stdout, method, path, res, ok)
	}

	if prom != nil {
		return prom.WriteText(c.stdout)
	}

	return nil
}

func writeMatch(w io.Writer, method, path string, m trie.Match[string], ok bool) {
	if !ok {
		fmt.Fprintf(w, "%s %s -> no match\n", method, path)
		return
	}
	fmt.Fprintf(w, "%s %s -> %s%s\n", method, path, m.Data, formatParams(m.Params))
}

func writeAll(w io.Writer, method, path string, ms []trie.Match[string]) {
	if len(ms) == 0 {
		fmt.Fprintf(w, "%s %s -> no match\n", method, path)
		return
	}
	fmt.Fprintf(w, "%s %s -> %d matches\n", method, path, len(ms))
	for i, m := range ms {
		fmt.Fprintf(w, "  %d. %s%s\n", i+1, m.Data, formatParams(m.Params))
	}
}

// formatParams renders params as " k=v" pairs in key order.
func formatParams(params map[string]string) string {
	if len(params) == 0 {
		return ""
	}
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	var b strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%s", k, params[k])
	}

	return b.String()
}
