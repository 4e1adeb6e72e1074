package cmd

import (
	"fmt"

	"github.com/agroplan/agroplan/internal/ui"
	"github.com/agroplan/agroplan/models"
	"github.com/spf13/cobra"
)

// seasonsCmd represents the seasons command
var seasonsCmd = &cobra.Command{
	Use:   "seasons",
	Short: "Show the seasonal farming guide",
	Long:  `Show the built-in guide of typical farming activities for each season.`,
	Run: func(cmd *cobra.Command, args []string) {
		for i, info := range models.SeasonsData {
			if i > 0 {
				fmt.Println()
			}
			fmt.Print(ui.SeasonCard(info))
		}
	},
}

func init() {
	rootCmd.AddCommand(seasonsCmd)
}
