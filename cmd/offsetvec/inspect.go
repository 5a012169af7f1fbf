// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/digitalocean/go-offsetvec"
)

func newInspectCmd() *cobra.Command {
	var probe []uint
	cmd := &cobra.Command{
		Use:   "inspect FILE.mp",
		Short: "Decode and print a result written by eval --out",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := readResult(args[0])
			if err != nil {
				return err
			}
			printVec(cmd.OutOrStdout(), args[0]+":", v)
			printProbes(cmd.OutOrStdout(), v, probe)
			return nil
		},
	}
	cmd.Flags().UintSliceVar(&probe, "probe", nil, "indices to read, including ones outside the span")
	return cmd
}

func readResult(path string) (*offsetvec.FallbackVec[float64], error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	v := new(offsetvec.FallbackVec[float64])
	if err := msgpack.Unmarshal(b, v); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return v, nil
}
