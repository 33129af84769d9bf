package main

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/nhle/mediremind/internal/model"
)

var (
	addTime      string
	addFrequency string
	addNotes     string
)

var addCmd = &cobra.Command{
	Use:     "add <name> <dosage>",
	Aliases: []string{"a"},
	Short:   "Add a medication",
	Long: `Add a medication without opening the TUI.

Examples:
  mediremind add Aspirin 100mg
  mediremind add Metformin 500mg --time 19:30 --frequency daily
  mediremind add "Vitamin D" 1000IU --frequency weekly --notes "with food"`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !model.IsValidFrequency(addFrequency) {
			return fmt.Errorf(
				"unknown frequency: %s\nValid frequencies: daily, weekly, monthly, as_needed",
				addFrequency,
			)
		}

		med := model.Medication{
			Name:      args[0],
			Dosage:    args[1],
			Time:      addTime,
			Frequency: addFrequency,
			Notes:     addNotes,
			Active:    true,
		}

		id, err := dbStore.CreateMedication(context.Background(), med)
		if err != nil {
			return fmt.Errorf("adding medication: %w", err)
		}

		stored, err := dbStore.GetMedicationByID(context.Background(), id)
		if err != nil {
			return fmt.Errorf("reading back medication: %w", err)
		}

		color.Green("✓ Added %s", stored.Name)
		fmt.Printf("  %s %s at %s, %s\n",
			color.New(color.Faint).Sprintf("#%d", stored.ID),
			stored.Dosage, stored.FormatTime(cfg.Display.Clock24),
			model.FrequencyLabel(stored.Frequency),
		)
		return nil
	},
}

func init() {
	addCmd.Flags().StringVar(&addTime, "time", "08:00", "reminder time (HH:MM, 24-hour)")
	addCmd.Flags().StringVar(&addFrequency, "frequency", model.FrequencyDaily,
		"daily, weekly, monthly, or as_needed")
	addCmd.Flags().StringVar(&addNotes, "notes", "", "notes for the medication")
	rootCmd.AddCommand(addCmd)
}
