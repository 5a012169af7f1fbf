// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/digitalocean/go-offsetvec"
)

var (
	errorColor    = color.New(color.FgRed, color.Bold)
	spanColor     = color.New(color.FgCyan)
	fallbackColor = color.New(color.FgYellow)
	headerColor   = color.New(color.Bold)
)

func printVec(w io.Writer, title string, v *offsetvec.FallbackVec[float64]) {
	meta := v.Meta()
	fmt.Fprintf(w, "%s %s below=%s above=%s\n",
		headerColor.Sprint(title),
		spanColor.Sprint(meta.Span),
		fallbackColor.Sprint(meta.Below),
		fallbackColor.Sprint(meta.Above))
	fmt.Fprintf(w, "  data %v\n", v.AsSlice())
}

func printProbes(w io.Writer, v *offsetvec.FallbackVec[float64], probes []uint) {
	meta := v.Meta()
	for _, i := range probes {
		value := fmt.Sprint(v.At(i))
		switch {
		case i < meta.Start:
			value = fallbackColor.Sprint(value) + " (below)"
		case i > meta.End:
			value = fallbackColor.Sprint(value) + " (above)"
		}
		fmt.Fprintf(w, "  at %d = %s\n", i, value)
	}
}
