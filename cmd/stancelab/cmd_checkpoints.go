package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"stancelab/internal/checkpoint"
)

// checkpointsCmd groups checkpoint maintenance commands.
var checkpointsCmd = &cobra.Command{
	Use:   "checkpoints",
	Short: "Inspect or clear batch checkpoints",
}

var checkpointsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List checkpoint files and their resume state",
	RunE: func(cmd *cobra.Command, args []string) error {
		store := checkpoint.NewStore(cfg.Checkpoint.Dir, logger)
		names, err := store.List()
		if err != nil {
			return err
		}
		if len(names) == 0 {
			fmt.Println("no checkpoints")
			return nil
		}
		for _, name := range names {
			fmt.Println(name)
		}
		return nil
	},
}

var checkpointsClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every checkpoint file",
	RunE: func(cmd *cobra.Command, args []string) error {
		store := checkpoint.NewStore(cfg.Checkpoint.Dir, logger)
		if err := store.ClearAll(); err != nil {
			return err
		}
		fmt.Println("checkpoints cleared")
		return nil
	},
}

func init() {
	checkpointsCmd.AddCommand(checkpointsListCmd)
	checkpointsCmd.AddCommand(checkpointsClearCmd)
}
