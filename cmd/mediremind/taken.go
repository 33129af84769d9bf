package main

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var takenCmd = &cobra.Command{
	Use:     "taken <id>",
	Aliases: []string{"t"},
	Short:   "Record a dose as taken now",
	Long: `Record a dose for the medication with the given id. The id is shown
by 'mediremind list'.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid medication id: %s", args[0])
		}

		ctx := context.Background()
		if err := dbStore.MarkTaken(ctx, id, time.Now()); err != nil {
			return fmt.Errorf("recording dose: %w", err)
		}

		med, err := dbStore.GetMedicationByID(ctx, id)
		if err != nil {
			return fmt.Errorf("reading back medication: %w", err)
		}

		color.Green("✓ Recorded dose of %s (%s)", med.Name, med.Dosage)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(takenCmd)
}
