package cmd

import (
	"fmt"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
)

// backupCmd represents the backup command
var backupCmd = &cobra.Command{
	Use:   "backup <destination>",
	Short: "Back up the crop snapshot to a file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cropStore, err := GetStore()
		if err != nil {
			HandleFatalError("Failed to initialize the crop store", err)
		}
		defer func() { _ = cropStore.Close() }()

		if err := cropStore.Backup(args[0]); err != nil {
			HandleFatalError("Failed to back up the crop data", err)
		}
		fmt.Printf("Datele au fost salvate in %s.\n", args[0])
		return nil
	},
}

// restoreCmd represents the restore command
var restoreCmd = &cobra.Command{
	Use:   "restore <source>",
	Short: "Restore the crop snapshot from a backup file",
	Long:  `Replace the current crop data with a previously created backup. The existing data is overwritten, so a confirmation prompt is shown first.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		confirmPrompt := promptui.Prompt{
			Label:     fmt.Sprintf("Inlocuiesti datele curente cu %s", args[0]),
			IsConfirm: true,
		}
		if _, err := confirmPrompt.Run(); err != nil {
			fmt.Println("Restaurare anulata.")
			return nil
		}

		cropStore, err := GetStore()
		if err != nil {
			HandleFatalError("Failed to initialize the crop store", err)
		}
		defer func() { _ = cropStore.Close() }()

		if err := cropStore.Restore(args[0]); err != nil {
			HandleFatalError("Failed to restore the crop data", err)
		}
		fmt.Printf("Datele au fost restaurate din %s.\n", args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(backupCmd)
	rootCmd.AddCommand(restoreCmd)
}
