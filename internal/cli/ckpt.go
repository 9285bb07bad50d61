// Package cli provides the ckpt command.
package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/LaurentVidal95/LocalMLManager/internal/idcard"
	"github.com/LaurentVidal95/LocalMLManager/internal/profile"
)

var ckptType string

func init() {
	ckptCmd.Flags().StringVar(&ckptType, "type", "best", "which checkpoint to print (best, last)")
	rootCmd.AddCommand(ckptCmd)
}

var ckptCmd = &cobra.Command{
	Use:   "ckpt <experiment-id>",
	Short: "Print a checkpoint path from an experiment",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		expDir := filepath.Join(experimentsRoot(), args[0])

		// Refresh first so checkpoints written after archival are found.
		card, err := idcard.Refresh(expDir, profile.DefaultIDCardName)
		if err != nil {
			return err
		}

		if len(card.Files.Checkpoints) == 0 {
			return fmt.Errorf("no checkpoints found in %s", expDir)
		}

		switch ckptType {
		case "best":
			fmt.Println(filepath.Join(expDir, card.Files.Best))
		case "last":
			last := card.Files.Checkpoints[len(card.Files.Checkpoints)-1]
			fmt.Println(filepath.Join(expDir, last))
		default:
			return fmt.Errorf("unknown checkpoint type %q (want best or last)", ckptType)
		}
		return nil
	},
}
