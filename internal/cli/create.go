// Package cli provides the create command.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/LaurentVidal95/LocalMLManager/internal/experiment"
	"github.com/LaurentVidal95/LocalMLManager/internal/profile"
)

var (
	createProfilePath string
	createConfigPath  string
	createInputDir    string
)

func init() {
	createCmd.Flags().StringVar(&createProfilePath, "profile", "", "path to the profile file (YAML or TOML)")
	createCmd.Flags().StringVar(&createConfigPath, "cfg", "", "path to the run configuration snapshot (YAML)")
	createCmd.Flags().StringVar(&createInputDir, "input-dir", "", "original run directory to archive")
	_ = createCmd.MarkFlagRequired("input-dir")
	rootCmd.AddCommand(createCmd)
}

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Archive a run directory as an experiment",
	Long: `Wrap an existing run directory into an experiment folder under the
experiments root: resolve the run identity from the profile, copy
checkpoints/wandb/.hydra artifacts, write id_card.json, and register the
experiment.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		prof, err := loadProfileOrDefault(createProfilePath)
		if err != nil {
			return err
		}

		rawConfig, err := loadRawConfig(createConfigPath)
		if err != nil {
			return err
		}

		database, err := openDatabase(cmd)
		if err != nil {
			return err
		}
		defer database.Close()

		svc := experiment.NewService(database)
		exp, card, err := svc.Create(cmd.Context(), experiment.CreateRequest{
			Profile:   prof,
			RawConfig: rawConfig,
			ExpRoot:   experimentsRoot(),
			InputDir:  createInputDir,
		})
		if err != nil {
			return err
		}

		if IsJSONOutput() {
			return WriteOutput(os.Stdout, card)
		}

		fmt.Printf("%s %s at %s\n", colorize("created", colorGreen), exp.ID, exp.Dir)
		return nil
	},
}

// loadProfileOrDefault loads the given profile file, or returns the default
// profile when no path is supplied.
func loadProfileOrDefault(path string) (*profile.Profile, error) {
	if path == "" {
		p := profile.Default()
		return &p, nil
	}
	return profile.Load(path)
}
