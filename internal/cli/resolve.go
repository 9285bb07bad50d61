// Package cli provides the resolve command.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/LaurentVidal95/LocalMLManager/internal/experiment"
	"github.com/LaurentVidal95/LocalMLManager/internal/resolve"
)

var (
	resolveProfilePath string
	resolveConfigPath  string
	resolveInputDir    string
)

func init() {
	resolveCmd.Flags().StringVar(&resolveProfilePath, "profile", "", "path to the profile file (YAML or TOML)")
	resolveCmd.Flags().StringVar(&resolveConfigPath, "cfg", "", "path to the run configuration snapshot (YAML)")
	resolveCmd.Flags().StringVar(&resolveInputDir, "input-dir", "", "run directory for extra-files glob expansion")
	rootCmd.AddCommand(resolveCmd)
}

var resolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Preview a run's resolved descriptor without archiving",
	Long: `Run the resolution engine only: validate the profile, filter the
configuration, generate the run identifier, expand extra-files globs, and
print the resolved descriptor. Nothing is written; for sequential profiles
the counter is read but not advanced.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		prof, err := loadProfileOrDefault(resolveProfilePath)
		if err != nil {
			return err
		}

		rawConfig, err := loadRawConfig(resolveConfigPath)
		if err != nil {
			return err
		}

		database, err := openDatabase(cmd)
		if err != nil {
			return err
		}
		defer database.Close()

		svc := experiment.NewService(database)
		gen := resolve.GenerationContext{
			Counter: svc.DryRunCounter(experimentsRoot()),
			UUIDs:   resolve.NewUUIDSource(),
		}

		desc, err := resolve.Resolve(cmd.Context(), prof, rawConfig, resolve.FilesystemContext{BaseDir: resolveInputDir}, gen)
		if err != nil {
			return err
		}

		return WriteOutput(os.Stdout, desc)
	},
}
