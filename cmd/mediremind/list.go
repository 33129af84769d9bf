package main

import (
	"context"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/nhle/mediremind/internal/model"
	"github.com/nhle/mediremind/internal/store"
)

var listAll bool

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List medications",
	Long: `List medications sorted by reminder time. Archived medications are
hidden unless --all is given.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		meds, err := dbStore.GetMedications(context.Background(), store.MedicationFilter{
			ActiveOnly: !listAll,
			SortBy:     "time",
		})
		if err != nil {
			return fmt.Errorf("listing medications: %w", err)
		}

		if len(meds) == 0 {
			fmt.Println("No medications. Add one with: mediremind add <name> <dosage>")
			return nil
		}

		now := time.Now()
		faint := color.New(color.Faint)
		for _, med := range meds {
			marker := color.YellowString("○")
			if med.TakenToday(now) {
				marker = color.GreenString("✓")
			}

			line := fmt.Sprintf("%s %s  %s  %s",
				marker,
				color.CyanString(med.FormatTime(cfg.Display.Clock24)),
				med.Name,
				faint.Sprint(med.Dosage),
			)
			if med.Frequency != model.FrequencyDaily {
				line += " " + faint.Sprintf("[%s]", model.FrequencyLabel(med.Frequency))
			}
			if !med.Active {
				line += " " + color.RedString("(archived)")
			}
			line += " " + faint.Sprintf("#%d", med.ID)

			fmt.Println(line)
		}
		return nil
	},
}

func init() {
	listCmd.Flags().BoolVar(&listAll, "all", false, "include archived medications")
	rootCmd.AddCommand(listCmd)
}
