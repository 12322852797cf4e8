// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/whoisthereitsme/voxels"
	"github.com/whoisthereitsme/voxels/sim"
)

func mineCmd() *cobra.Command {
	var steps int
	var floor bool

	cmd := &cobra.Command{
		Use:   "mine",
		Short: "run a miner simulation against a queued engine",
		RunE: func(cmd *cobra.Command, args []string) error {
			log := logger()
			defer func() { _ = log.Sync() }()

			rows, err := voxels.New(
				voxels.WithWorld(1024, 1024, 1024),
				voxels.WithLogger(log),
			)
			if err != nil {
				return err
			}

			queue := voxels.NewQueue(rows)
			defer func() { _ = queue.Close() }()

			miner, err := sim.NewMiner(queue,
				voxels.Point{X: 100, Y: 100, Z: 100},
				voxels.Point{X: 132, Y: 132, Z: 116},
				floor,
			)
			if err != nil {
				return err
			}

			warehouse := sim.NewWarehouse(1 << 16)
			for s := 0; s < steps; s++ {
				yield, err := miner.Step()
				if err != nil {
					return err
				}
				for _, res := range yield {
					if over := warehouse.Give(res); over.Amount > 0 {
						log.Warn("warehouse overflow", zap.String("mat", over.Mat), zap.Uint64("amount", over.Amount))
					}
				}
			}

			air, err := queue.NRows("AIR")
			if err != nil {
				return err
			}
			fmt.Printf("steps=%d air_rows=%d stone_stock=%d free=%d\n",
				steps, air, warehouse.Stock("STONE"), warehouse.Free())
			return nil
		},
	}

	cmd.Flags().IntVar(&steps, "steps", 256, "mining steps")
	cmd.Flags().BoolVar(&floor, "floor", false, "mine whole z-slabs per step")
	return cmd
}

func dotCmd() *cobra.Command {
	var carves int

	cmd := &cobra.Command{
		Use:   "dot",
		Short: "print the BVH as a Graphviz digraph",
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, err := voxels.New(voxels.WithWorld(256, 256, 256))
			if err != nil {
				return err
			}
			for c := 0; c < carves; c++ {
				o := uint32(c*16 + 8)
				if _, err := rows.SplitPoint(voxels.Point{X: o, Y: o, Z: o}, "AIR"); err != nil {
					return err
				}
			}
			fmt.Println(rows.DumpDot())
			return nil
		},
	}

	cmd.Flags().IntVar(&carves, "carves", 3, "point carves before dumping")
	return cmd
}
