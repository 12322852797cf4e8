// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/whoisthereitsme/voxels"
)

func demoCmd() *cobra.Command {
	var world uint32
	var carves int

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "seed a world, carve a few boxes, print stats",
		RunE: func(cmd *cobra.Command, args []string) error {
			log := logger()
			defer func() { _ = log.Sync() }()

			rows, err := voxels.New(
				voxels.WithWorld(world, world, min(world, voxels.ZMaxLimit)),
				voxels.WithLogger(log),
			)
			if err != nil {
				return err
			}

			// a diagonal staircase of AIR carves
			step := world / uint32(carves+1)
			for c := 1; c <= carves; c++ {
				o := uint32(c) * step
				p0 := voxels.Point{X: o, Y: o, Z: o % (world / 2)}
				p1 := voxels.Point{X: o + step/2, Y: o + step/2, Z: o%(world/2) + step/4 + 1}
				if _, err := rows.Split(p0, p1, "AIR"); err != nil {
					return err
				}
			}
			if _, err := rows.Merge(nil); err != nil {
				return err
			}

			fmt.Print(rows.ReadStats())
			return rows.CheckIntegrity()
		},
	}

	cmd.Flags().Uint32Var(&world, "world", 1024, "world extent (power of two)")
	cmd.Flags().IntVar(&carves, "carves", 8, "number of carves")
	return cmd
}
