// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

// Command voxels drives the partition engine from the terminal:
// a carve demo, a miner simulation and a BVH Graphviz dump.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var verbose bool

func main() {
	root := &cobra.Command{
		Use:           "voxels",
		Short:         "exact box partition engine playground",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(demoCmd(), mineCmd(), dotCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// logger builds a console logger, debug level with --verbose.
func logger() *zap.Logger {
	cfg := zap.NewDevelopmentConfig()
	if !verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	log, err := cfg.Build()
	if err != nil {
		panic(err)
	}
	return log
}
