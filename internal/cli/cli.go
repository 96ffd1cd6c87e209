// SPDX-License-Identifier: MIT

// Package cli implements the csrtool command-line interface.
//
// # Commands
//
//   - build:     compress an edge list into a binary CSR record
//   - generate:  write a synthetic graph (path, grid, random fan-out, ...)
//   - inspect:   print shape, nnz and structural flags of a record
//   - sort:      sort every row's columns
//   - transpose: write the transposed matrix
//   - simplify:  collapse parallel edges
//   - sample:    row-wise neighbor sampling
//   - negative:  global uniform negative sampling
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. The logger is
// carried in the command context.
//
// # Configuration
//
// --config accepts a YAML (.yaml, .yml) or TOML (.toml) file with sampling
// defaults; see Config.
package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

const appName = "csrtool"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds state shared by all commands.
type CLI struct {
	Logger *log.Logger

	cfg        Config
	configPath string
}

// New creates a CLI logging to w at level.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level), cfg: defaultConfig()}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with every subcommand registered.
func (c *CLI) RootCommand() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:          appName,
		Short:        "csrtool builds, inspects and samples CSR graph matrices",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if verbose {
				c.SetLogLevel(LogDebug)
			}
			cfg, err := loadConfig(c.configPath)
			if err != nil {
				return err
			}
			c.cfg = cfg
			if c.configPath != "" {
				c.Logger.Debug("config loaded", "path", c.configPath)
			}
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))

			return nil
		},
	}

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "YAML or TOML file with sampling defaults")

	root.AddCommand(c.buildCommand())
	root.AddCommand(c.generateCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.sortCommand())
	root.AddCommand(c.transposeCommand())
	root.AddCommand(c.simplifyCommand())
	root.AddCommand(c.sampleCommand())
	root.AddCommand(c.negativeCommand())

	return root
}
