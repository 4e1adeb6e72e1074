package cmd

import (
	"fmt"
	"os"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
)

var deleteYes bool

// deleteCmd represents the delete command
var deleteCmd = &cobra.Command{
	Use:   "delete [crop_id]",
	Short: "Delete a crop",
	Long:  `Delete a crop and its entire task schedule. If no ID is provided, an interactive list is shown. A confirmation prompt is displayed before deletion unless --yes is passed.`,
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cropStore, err := GetStore()
		if err != nil {
			HandleFatalError("Failed to initialize the crop store", err)
		}
		defer func() { _ = cropStore.Close() }()

		crop, err := resolveCropArg(cropStore, args, "Selecteaza cultura de sters")
		if err != nil {
			if err == promptui.ErrInterrupt {
				fmt.Println("Stergere anulata.")
				return
			}
			if err == ErrNoCropsFound {
				fmt.Println("Nicio cultura de sters.")
				return
			}
			HandleFatalError(fmt.Sprintf("Failed to find crop %q", firstArg(args)), err)
		}

		if !deleteYes {
			confirmPrompt := promptui.Prompt{
				Label:     fmt.Sprintf("Stergi cultura '%s' (ID: %s)", crop.Name, crop.ID),
				IsConfirm: true,
			}
			if _, err := confirmPrompt.Run(); err != nil {
				// Handles both 'no' (promptui.ErrAbort) and actual errors
				if err == promptui.ErrAbort || err == promptui.ErrInterrupt {
					fmt.Println("Stergere anulata.")
					return
				}
				fmt.Fprintf(os.Stderr, "Confirmation prompt failed: %v\n", err)
				os.Exit(1)
			}
		}

		if err := cropStore.DeleteCrop(crop.ID); err != nil {
			HandleFatalError(fmt.Sprintf("Failed to delete crop %s", crop.ID), err)
		}

		fmt.Printf("Cultura '%s' a fost stearsa.\n", crop.Name)
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)

	deleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "Skip the confirmation prompt")
}

func firstArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return ""
}
