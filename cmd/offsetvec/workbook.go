// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/digitalocean/go-offsetvec"
)

// A workbook declares named fallback vectors and the steps that fold them
// into a single result, starting from the vector named by Init.
//
//	init = "a"
//	probe = [0, 3]
//
//	[vectors.a]
//	start = 0
//	below = -1.0
//	above = -2.0
//	data = [10.0, 20.0, 30.0]
//
//	[[steps]]
//	op = "add"
//	with = "a"
type workbook struct {
	Init    string                  `toml:"init"`
	Probe   []uint                  `toml:"probe"`
	Vectors map[string]vectorConfig `toml:"vectors"`
	Steps   []stepConfig            `toml:"steps"`
}

type vectorConfig struct {
	Start uint      `toml:"start"`
	End   *uint     `toml:"end"`
	Below float64   `toml:"below"`
	Above float64   `toml:"above"`
	Data  []float64 `toml:"data"`
}

type stepConfig struct {
	Op   string  `toml:"op"`
	With string  `toml:"with"`
	By   float64 `toml:"by"`
}

// build validates the vector exactly as the library does. Without an
// explicit end the data is laid out from start.
func (c vectorConfig) build() (*offsetvec.FallbackVec[float64], error) {
	end := c.Start
	if c.End != nil {
		end = *c.End
	} else if len(c.Data) > 0 {
		end = c.Start + uint(len(c.Data)-1)
	}
	return offsetvec.NewFallback(slices.Clone(c.Data), c.Start, end, c.Below, c.Above)
}

var binaryOps = map[string]bool{"add": true, "sub": true, "mul": true, "div": true}

var scalarOps = map[string]bool{"scale": true, "shrink": true}

func loadWorkbook(path string) (workbook, error) {
	var wb workbook
	meta, err := toml.DecodeFile(path, &wb)
	if err != nil {
		return workbook{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return workbook{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if !meta.IsDefined("init") || strings.TrimSpace(wb.Init) == "" {
		return workbook{}, fmt.Errorf("%s: missing init", path)
	}
	if len(wb.Vectors) == 0 {
		return workbook{}, fmt.Errorf("%s: missing [vectors]", path)
	}

	names := make([]string, 0, len(wb.Vectors))
	for name := range wb.Vectors {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if !meta.IsDefined("vectors", name, "start") {
			return workbook{}, fmt.Errorf("%s: missing [vectors.%s].start", path, name)
		}
		if !meta.IsDefined("vectors", name, "data") {
			return workbook{}, fmt.Errorf("%s: missing [vectors.%s].data", path, name)
		}
	}
	if _, ok := wb.Vectors[wb.Init]; !ok {
		return workbook{}, fmt.Errorf("%s: init names unknown vector %q", path, wb.Init)
	}

	for i, step := range wb.Steps {
		switch {
		case binaryOps[step.Op]:
			if _, ok := wb.Vectors[step.With]; !ok {
				return workbook{}, fmt.Errorf("%s: step %d: unknown vector %q", path, i+1, step.With)
			}
		case step.Op == "shrink" && step.By == 0:
			return workbook{}, fmt.Errorf("%s: step %d: shrink needs a non-zero by", path, i+1)
		case scalarOps[step.Op], step.Op == "neg":
		default:
			return workbook{}, fmt.Errorf("%s: step %d: unknown op %q", path, i+1, step.Op)
		}
	}
	return wb, nil
}
