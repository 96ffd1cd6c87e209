// SPDX-License-Identifier: MIT

package cli

import (
	"fmt"
	"math/rand/v2"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/csrkit/csr"
	"github.com/katalvlaran/csrkit/tensor"
)

// loadMatrix reads one CSR record from path.
func loadMatrix(path string) (*csr.Matrix, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return csr.Load(f)
}

// saveMatrix writes m to path, replacing any existing file.
func saveMatrix(m *csr.Matrix, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err = m.Save(f); err != nil {
		_ = f.Close()
		return err
	}

	return f.Close()
}

func (c *CLI) buildCommand() *cobra.Command {
	var numRows, numCols int64

	cmd := &cobra.Command{
		Use:   "build <edges.txt> <out.csr>",
		Short: "Compress a \"row col\" edge list into a CSR record",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			prog := newProgress(logger)

			dt, err := tensor.ParseDType(c.cfg.DType)
			if err != nil {
				return err
			}
			in, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer in.Close()

			list, err := readEdgeList(in, dt, numRows, numCols)
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			m, err := csr.FromCOO(list)
			if err != nil {
				return err
			}
			logger.Debug("compressed", "rows", m.NumRows(), "cols", m.NumCols(), "dtype", m.DType())
			if err = saveMatrix(m, args[1]); err != nil {
				return err
			}
			prog.done("built", "nnz", m.NNZ(), "out", args[1])

			return nil
		},
	}
	cmd.Flags().Int64Var(&numRows, "rows", 0, "row count (0 infers max row id + 1)")
	cmd.Flags().Int64Var(&numCols, "cols", 0, "column count (0 infers max col id + 1)")

	return cmd
}

func (c *CLI) inspectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <matrix.csr>",
		Short: "Print shape, nnz and structural flags",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := loadMatrix(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "shape: %dx%d\n", m.NumRows(), m.NumCols())
			fmt.Fprintf(out, "nnz: %d\n", m.NNZ())
			fmt.Fprintf(out, "dtype: %s\n", m.DType())
			fmt.Fprintf(out, "explicit ids: %t\n", m.HasData())
			fmt.Fprintf(out, "sorted flag: %t\n", m.Sorted())
			fmt.Fprintf(out, "sorted (scan): %t\n", m.IsSorted())
			fmt.Fprintf(out, "duplicates: %t\n", m.HasDuplicate())

			return nil
		},
	}
}

// rewriteCommand builds a "<in> <out>" command applying fn with the command's
// context logger.
func (c *CLI) rewriteCommand(use, short, verb string, fn func(*log.Logger, *csr.Matrix) (*csr.Matrix, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <in.csr> <out.csr>",
		Short: short,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			prog := newProgress(logger)
			m, err := loadMatrix(args[0])
			if err != nil {
				return err
			}
			res, err := fn(logger, m)
			if err != nil {
				return err
			}
			if err = saveMatrix(res, args[1]); err != nil {
				return err
			}
			prog.done(verb, "nnz", res.NNZ(), "out", args[1])

			return nil
		},
	}
}

func (c *CLI) sortCommand() *cobra.Command {
	return c.rewriteCommand("sort", "Sort every row's columns ascending", "sorted",
		func(_ *log.Logger, m *csr.Matrix) (*csr.Matrix, error) { return m.Sort(), nil })
}

func (c *CLI) transposeCommand() *cobra.Command {
	return c.rewriteCommand("transpose", "Write the transposed matrix", "transposed",
		func(_ *log.Logger, m *csr.Matrix) (*csr.Matrix, error) { return m.Transpose(), nil })
}

func (c *CLI) simplifyCommand() *cobra.Command {
	return c.rewriteCommand("simplify", "Collapse parallel edges", "simplified",
		func(logger *log.Logger, m *csr.Matrix) (*csr.Matrix, error) {
			s, count, _, err := m.ToSimple()
			if err != nil {
				return nil, err
			}
			logger.Debug("collapsed", "before", m.NNZ(), "after", len(count))

			return s, nil
		})
}

func (c *CLI) sampleCommand() *cobra.Command {
	var (
		fanout  int
		seed    uint64
		replace bool
		rows    []int
	)

	cmd := &cobra.Command{
		Use:   "sample <matrix.csr>",
		Short: "Sample up to fanout entries per row; prints \"row col id\" lines",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := c.cfg
			if cmd.Flags().Changed("fanout") {
				cfg.Fanout = fanout
			}
			if cmd.Flags().Changed("seed") {
				cfg.Seed = seed
			}
			if cmd.Flags().Changed("replace") {
				cfg.Replace = replace
			}
			prog := newProgress(loggerFromContext(cmd.Context()))

			m, err := loadMatrix(args[0])
			if err != nil {
				return err
			}
			ids := make([]int64, 0, m.NumRows())
			if len(rows) == 0 {
				for r := int64(0); r < m.NumRows(); r++ {
					ids = append(ids, r)
				}
			}
			for _, r := range rows {
				ids = append(ids, int64(r))
			}

			picks, err := m.RowWiseSampling(ids, cfg.Fanout, nil, cfg.Replace,
				rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15), cfg.sampleOptions()...)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, tr := range picks.Triples() {
				fmt.Fprintf(out, "%d %d %d\n", tr.Row, tr.Col, tr.Data)
			}
			prog.done("sampled", "rows", len(ids), "picks", picks.NNZ())

			return nil
		},
	}
	cmd.Flags().IntVar(&fanout, "fanout", 0, "entries per row; negative takes all (default from config)")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "random seed (default from config)")
	cmd.Flags().BoolVar(&replace, "replace", false, "sample with replacement")
	cmd.Flags().IntSliceVar(&rows, "rows", nil, "rows to sample (default: every row)")

	return cmd
}

func (c *CLI) negativeCommand() *cobra.Command {
	var (
		num       int
		seed      uint64
		selfLoops bool
		replace   bool
	)

	cmd := &cobra.Command{
		Use:   "negative <matrix.csr>",
		Short: "Draw (row, col) pairs absent from the matrix; prints \"row col\" lines",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := c.cfg
			if cmd.Flags().Changed("seed") {
				cfg.Seed = seed
			}
			logger := loggerFromContext(cmd.Context())
			prog := newProgress(logger)

			m, err := loadMatrix(args[0])
			if err != nil {
				return err
			}
			rows, cols, err := m.GlobalUniformNegativeSampling(num, cfg.Trials, !selfLoops, replace,
				cfg.Redundancy, rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15))
			if err != nil {
				return err
			}
			if len(rows) < num {
				logger.Warn("fewer negatives than requested", "want", num, "got", len(rows))
			}
			out := cmd.OutOrStdout()
			for i := range rows {
				fmt.Fprintf(out, "%d %d\n", rows[i], cols[i])
			}
			prog.done("negatives drawn", "pairs", len(rows))

			return nil
		},
	}
	cmd.Flags().IntVarP(&num, "num", "n", 10, "number of pairs")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "random seed (default from config)")
	cmd.Flags().BoolVar(&selfLoops, "self-loops", false, "allow row == col pairs")
	cmd.Flags().BoolVar(&replace, "replace", false, "allow repeated pairs")

	return cmd
}
