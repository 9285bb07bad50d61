// Package cli provides the profiles command.
package cli

import (
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/LaurentVidal95/LocalMLManager/internal/profile"
)

func init() {
	profilesCmd.AddCommand(profilesValidateCmd)
	rootCmd.AddCommand(profilesCmd)
}

var profilesCmd = &cobra.Command{
	Use:   "profiles",
	Short: "List profile files from the profiles directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		profiles, err := profile.LoadDir(appConfig.Global.ProfilesDir)
		if err != nil {
			return err
		}

		if IsJSONOutput() {
			return WriteOutput(os.Stdout, profiles)
		}

		if len(profiles) == 0 {
			fmt.Printf("No profiles in %s.\n", appConfig.Global.ProfilesDir)
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "FILE\tID_MODE\tKEEP_KEYS\tTAGS\tDESCRIPTION")
		for _, p := range profiles {
			fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%s\n",
				p.Source, p.IDMode, len(p.KeepKeys), len(p.Tags), p.Description)
		}
		return w.Flush()
	},
}

var profilesValidateCmd = &cobra.Command{
	Use:   "validate <profile-file>",
	Short: "Validate a profile file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := profile.Load(args[0])
		if err == nil {
			fmt.Printf("%s %s\n", colorize("valid", colorGreen), args[0])
			return nil
		}

		var list *profile.ErrorList
		if errors.As(err, &list) && IsJSONOutput() {
			if werr := WriteOutput(os.Stdout, list); werr != nil {
				return werr
			}
			return &ExitError{Code: 2, Err: err}
		}
		return err
	},
}
