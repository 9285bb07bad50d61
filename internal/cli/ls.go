// Package cli provides the ls command.
package cli

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/LaurentVidal95/LocalMLManager/internal/experiment"
	"github.com/LaurentVidal95/LocalMLManager/internal/models"
)

var lsFilters []string

func init() {
	lsCmd.Flags().StringArrayVar(&lsFilters, "filter", nil, "filter like key=value (repeatable; matches id, description, id_mode, tag, or summary keys)")
	rootCmd.AddCommand(lsCmd)
}

var lsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List experiments",
	RunE: func(cmd *cobra.Command, args []string) error {
		filters, err := parseFilters(lsFilters)
		if err != nil {
			return err
		}

		database, err := openDatabase(cmd)
		if err != nil {
			return err
		}
		defer database.Close()

		svc := experiment.NewService(database)
		experiments, err := svc.List(cmd.Context(), experimentsRoot(), filters)
		if err != nil {
			return err
		}

		if IsJSONOutput() {
			return WriteOutput(os.Stdout, experiments)
		}

		if len(experiments) == 0 {
			fmt.Println("No experiments found.")
			return nil
		}

		return writeExperimentTable(experiments)
	},
}

func writeExperimentTable(experiments []*models.Experiment) error {
	// Union of summary leaf keys across rows, as extra columns.
	keySet := make(map[string]struct{})
	for _, exp := range experiments {
		for key := range exp.SummaryLeaves() {
			keySet[key] = struct{}{}
		}
	}
	summaryKeys := make([]string, 0, len(keySet))
	for key := range keySet {
		summaryKeys = append(summaryKeys, key)
	}
	sort.Strings(summaryKeys)

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)

	header := append([]string{"ID", "CREATED", "DESCRIPTION", "TAGS"}, summaryKeys...)
	fmt.Fprintln(w, strings.Join(header, "\t"))

	for _, exp := range experiments {
		leaves := exp.SummaryLeaves()
		row := []string{
			colorize(exp.ID, colorCyan),
			exp.CreatedAt.Local().Format(time.DateTime),
			exp.Description,
			strings.Join(exp.Tags, ","),
		}
		for _, key := range summaryKeys {
			if value, ok := leaves[key]; ok {
				row = append(row, fmt.Sprintf("%v", value))
			} else {
				row = append(row, "-")
			}
		}
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}

	return w.Flush()
}
