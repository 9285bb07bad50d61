// Package cli provides the inspect command.
package cli

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/LaurentVidal95/LocalMLManager/internal/idcard"
	"github.com/LaurentVidal95/LocalMLManager/internal/profile"
)

func init() {
	rootCmd.AddCommand(inspectCmd)
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <experiment-id>",
	Short: "Show an experiment's id card",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		expDir := filepath.Join(experimentsRoot(), args[0])
		card, err := idcard.Read(expDir, profile.DefaultIDCardName)
		if err != nil {
			return err
		}
		return WriteOutput(os.Stdout, card)
	},
}
