package cmd

import (
	"fmt"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
)

// clearCmd represents the clear command
var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all crops",
	Long:  `Delete every crop and its schedule. A confirmation prompt is shown first unless --yes is passed.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !clearYes {
			confirmPrompt := promptui.Prompt{
				Label:     "Stergi TOATE culturile",
				IsConfirm: true,
			}
			if _, err := confirmPrompt.Run(); err != nil {
				fmt.Println("Stergere anulata.")
				return nil
			}
		}

		cropStore, err := GetStore()
		if err != nil {
			HandleFatalError("Failed to initialize the crop store", err)
		}
		defer func() { _ = cropStore.Close() }()

		if err := cropStore.DeleteAllCrops(); err != nil {
			HandleFatalError("Failed to delete the crops", err)
		}
		fmt.Println("Toate culturile au fost sterse.")
		return nil
	},
}

var clearYes bool

func init() {
	rootCmd.AddCommand(clearCmd)

	clearCmd.Flags().BoolVarP(&clearYes, "yes", "y", false, "Skip the confirmation prompt")
}
