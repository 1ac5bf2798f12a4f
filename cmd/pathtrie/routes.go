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
	"maps"
	"slices"
	"strings"
	"text/tabwriter"

	"rivaas.dev/pathtrie/manifest"
	"rivaas.dev/pathtrie/trie"
)

// routes lists the registrations in tree order, or re-encodes the manifest
// with its defaults applied when -format is set.
func (c *cli) routes(args []string) (err error) {
	var (
		cf     common
		format string
	)
	fs := c.flagSet("routes", &cf)
	fs.StringVar(&format, "format", "", "Print the resolved manifest as yaml, toml or json instead of a table")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("%w: routes takes no arguments", errUsage)
	}

	ctx, span, err := c.begin(&cf, "routes")
	if err != nil {
		return err
	}
	defer func() { c.tracer.Finish(span, err) }()

	m, t, err := c.load(ctx, &cf)
	if err != nil {
		return err
	}

	if format != "" {
		data, err := m.Encode(manifest.Format(format))
		if err != nil {
			return err
		}
		_, err = c.stdout.Write(data)

		return err
	}

	tw := tabwriter.NewWriter(c.stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "METHOD\tPATTERN\tHANDLER\tPARAMS\tTAGS")
	t.Walk(func(rec *trie.Record[string]) bool {
		method := rec.Method()
		if method == trie.MethodAny {
			method = manifest.AnyMethod
		}
		r, _ := m.Find(rec.Method(), rec.Pattern())
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", method, rec.Pattern(), rec.Data(), paramNames(rec.Params()), formatTags(r.Tags))
		return true
	})

	return tw.Flush()
}

func paramNames(entries []trie.ParamEntry) string {
	if len(entries) == 0 {
		return "-"
	}

	var names string
	for i, e := range entries {
		if i > 0 {
			names += ","
		}
		switch {
		case e.Pattern != nil:
			names += e.Pattern.String()
		case e.Optional:
			names += e.Name + "?"
		default:
			names += e.Name
		}
	}

	return names
}

// formatTags renders tags as "k=v" pairs in key order.
func formatTags(tags map[string]string) string {
	if len(tags) == 0 {
		return "-"
	}

	pairs := make([]string, 0, len(tags))
	for _, k := range slices.Sorted(maps.Keys(tags)) {
		pairs = append(pairs, k+"="+tags[k])
	}

	return strings.Join(pairs, ",")
}
