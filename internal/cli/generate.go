// SPDX-License-Identifier: MIT

package cli

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/csrkit/builder"
	"github.com/katalvlaran/csrkit/tensor"
)

// generateKinds maps the --kind values to constructor factories.
var generateKinds = map[string]func(g generateFlags) builder.Constructor{
	"path":     func(generateFlags) builder.Constructor { return builder.Path() },
	"cycle":    func(generateFlags) builder.Constructor { return builder.Cycle() },
	"star":     func(generateFlags) builder.Constructor { return builder.Star(0) },
	"complete": func(generateFlags) builder.Constructor { return builder.Complete() },
	"grid": func(g generateFlags) builder.Constructor {
		return builder.Grid(g.gridRows, g.n/max(g.gridRows, 1))
	},
	"sparse": func(g generateFlags) builder.Constructor { return builder.RandomSparse(g.p) },
	"fanout": func(g generateFlags) builder.Constructor { return builder.RandomFanout(g.fanout) },
}

type generateFlags struct {
	n          int64
	kind       string
	p          float64
	fanout     int
	gridRows   int64
	seed       uint64
	undirected bool
	loops      bool
}

func (c *CLI) generateCommand() *cobra.Command {
	var g generateFlags
	kinds := make([]string, 0, len(generateKinds))
	for k := range generateKinds {
		kinds = append(kinds, k)
	}
	slices.Sort(kinds)

	cmd := &cobra.Command{
		Use:   "generate <out.csr>",
		Short: "Write a synthetic n×n graph (" + strings.Join(kinds, ", ") + ")",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("fanout") {
				g.fanout = c.cfg.Fanout
			}
			if !cmd.Flags().Changed("seed") {
				g.seed = c.cfg.Seed
			}
			factory, ok := generateKinds[g.kind]
			if !ok {
				return fmt.Errorf("unknown kind %q (want one of %s)", g.kind, strings.Join(kinds, ", "))
			}
			dt, err := tensor.ParseDType(c.cfg.DType)
			if err != nil {
				return err
			}
			prog := newProgress(loggerFromContext(cmd.Context()))

			m, err := builder.Build(g.n, []builder.Option{
				builder.WithSeed(g.seed),
				builder.WithDType(dt),
				builder.WithUndirected(g.undirected),
				builder.WithSelfLoops(g.loops),
			}, factory(g))
			if err != nil {
				return err
			}
			if err = saveMatrix(m, args[0]); err != nil {
				return err
			}
			prog.done("generated", "kind", g.kind, "nnz", m.NNZ(), "out", args[0])

			return nil
		},
	}
	cmd.Flags().Int64VarP(&g.n, "vertices", "n", 16, "vertex count")
	cmd.Flags().StringVar(&g.kind, "kind", "fanout", "topology")
	cmd.Flags().Float64Var(&g.p, "p", 0.1, "edge probability for sparse")
	cmd.Flags().IntVar(&g.fanout, "fanout", 0, "out-edges per vertex for fanout (default from config)")
	cmd.Flags().Int64Var(&g.gridRows, "grid-rows", 1, "lattice rows for grid; must divide --vertices")
	cmd.Flags().Uint64Var(&g.seed, "seed", 0, "random seed (default from config)")
	cmd.Flags().BoolVar(&g.undirected, "undirected", false, "mirror every edge")
	cmd.Flags().BoolVar(&g.loops, "self-loops", false, "allow self-loops in random kinds")

	return cmd
}
