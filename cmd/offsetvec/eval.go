// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/vmihailenco/msgpack/v5"
	"golang.org/x/sync/errgroup"

	"github.com/digitalocean/go-offsetvec"
)

type evaluation struct {
	path   string
	result *offsetvec.FallbackVec[float64]
	probe  []uint
}

func newEvalCmd() *cobra.Command {
	var (
		out  string
		jobs int
	)
	cmd := &cobra.Command{
		Use:   "eval FILE...",
		Short: "Evaluate workbooks of fallback vectors",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if jobs < 1 {
				return fmt.Errorf("invalid --jobs %d: must be at least 1", jobs)
			}
			evals, errs, err := evalAll(args, out, jobs)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			failed := 0
			for i, ev := range evals {
				if errs[i] != nil {
					failed++
					fmt.Fprintf(cmd.ErrOrStderr(), "%s %v\n", errorColor.Sprint(args[i]+":"), errs[i])
					continue
				}
				printVec(w, ev.path+":", ev.result)
				printProbes(w, ev.result, ev.probe)
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d workbooks failed", failed, len(args))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&out, "out", "", "directory to write msgpack-encoded results to")
	cmd.Flags().IntVar(&jobs, "jobs", 4, "number of workbooks to evaluate at once")
	return cmd
}

// evalAll evaluates every workbook. Each workbook owns its vectors, so they
// can be evaluated independently. Evaluation failures are reported per
// workbook in errs; err is reserved for failing to write results.
func evalAll(paths []string, out string, jobs int) (evals []evaluation, errs []error, err error) {
	evals = make([]evaluation, len(paths))
	errs = make([]error, len(paths))

	var g errgroup.Group
	g.SetLimit(jobs)
	for i, path := range paths {
		g.Go(func() error {
			evals[i], errs[i] = evalFile(path)
			if errs[i] != nil || out == "" {
				return nil
			}
			return writeResult(out, path, evals[i].result)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return evals, errs, nil
}

func evalFile(path string) (evaluation, error) {
	wb, err := loadWorkbook(path)
	if err != nil {
		return evaluation{}, err
	}
	result, err := evalWorkbook(wb)
	if err != nil {
		return evaluation{}, fmt.Errorf("%s: %w", path, err)
	}
	return evaluation{path: path, result: result, probe: wb.Probe}, nil
}

func evalWorkbook(wb workbook) (*offsetvec.FallbackVec[float64], error) {
	vecs := make(map[string]*offsetvec.FallbackVec[float64], len(wb.Vectors))
	for name, c := range wb.Vectors {
		v, err := c.build()
		if err != nil {
			return nil, fmt.Errorf("vector %q: %w", name, err)
		}
		vecs[name] = v
	}

	// Steps update acc in place, so it gets its own copy of the data.
	acc, err := wb.Vectors[wb.Init].build()
	if err != nil {
		return nil, fmt.Errorf("vector %q: %w", wb.Init, err)
	}
	for i, step := range wb.Steps {
		var err error
		switch step.Op {
		case "add":
			err = acc.AddAssign(vecs[step.With])
		case "sub":
			err = acc.SubAssign(vecs[step.With])
		case "mul":
			err = acc.MulAssign(vecs[step.With])
		case "div":
			err = acc.DivAssign(vecs[step.With])
		case "neg":
			acc = acc.Neg()
		case "scale":
			acc = acc.MulScalar(step.By)
		case "shrink":
			acc = acc.DivScalar(step.By)
		default:
			err = fmt.Errorf("unknown op %q", step.Op)
		}
		if err != nil {
			return nil, fmt.Errorf("step %d (%s %s): %w", i+1, step.Op, step.With, err)
		}
	}
	return acc, nil
}

func resultPath(out, path string) string {
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return filepath.Join(out, name+".mp")
}

func writeResult(out, path string, v *offsetvec.FallbackVec[float64]) error {
	b, err := msgpack.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := os.WriteFile(resultPath(out, path), b, 0o644); err != nil {
		return fmt.Errorf("write result for %s: %w", path, err)
	}
	return nil
}
