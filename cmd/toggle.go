package cmd

import (
	"fmt"

	"github.com/agroplan/agroplan/internal/ui"
	"github.com/agroplan/agroplan/internal/util"
	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
)

// toggleCmd represents the toggle command
var toggleCmd = &cobra.Command{
	Use:   "toggle <crop_id> [task_id]",
	Short: "Toggle a task's completion state",
	Long: `Flip a planned task between done and not done. Crop and task accept
full IDs or unique prefixes. Without a task ID an interactive list of the
crop's tasks is shown.

Examples:
  agroplan toggle 3f2a 91c4
  agroplan toggle 3f2a`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runToggle,
}

func init() {
	rootCmd.AddCommand(toggleCmd)
}

func runToggle(cmd *cobra.Command, args []string) error {
	cropStore, err := GetStore()
	if err != nil {
		HandleFatalError("Failed to initialize the crop store", err)
	}
	defer func() { _ = cropStore.Close() }()

	crop, err := resolveCropArg(cropStore, args[:1], "Selecteaza cultura")
	if err != nil {
		return err
	}

	var taskID string
	if len(args) == 2 {
		taskID, err = util.ResolveTaskID(crop.Tasks, args[1])
		if err != nil {
			return err
		}
	} else {
		if len(crop.Tasks) == 0 {
			fmt.Println("Cultura nu are sarcini planificate.")
			return nil
		}
		templates := &promptui.SelectTemplates{
			Label:    "{{ . }}?",
			Active:   `> {{ .Title | cyan }} ({{ .DueDate }}, {{ .Category }}{{ if .Completed }}, finalizata{{ end }})`,
			Inactive: `  {{ .Title | faint }} ({{ .DueDate }}, {{ .Category }}{{ if .Completed }}, finalizata{{ end }})`,
			Selected: `{{ "✔" | green }} {{ .Title | faint }}`,
		}
		prompt := promptui.Select{
			Label:     "Selecteaza sarcina",
			Items:     crop.Tasks,
			Templates: templates,
		}
		i, _, err := prompt.Run()
		if err != nil {
			if err == promptui.ErrInterrupt {
				return nil
			}
			return err
		}
		taskID = crop.Tasks[i].ID
	}

	task, found, err := cropStore.ToggleTask(crop.ID, taskID)
	if err != nil {
		HandleFatalError("Failed to update the task", err)
	}
	if !found {
		fmt.Printf("Sarcina %s nu exista pentru cultura '%s'.\n", ui.TruncateID(taskID), crop.Name)
		return nil
	}

	state := "de facut"
	if task.Completed {
		state = "finalizata"
	}
	fmt.Printf("%s Sarcina '%s' este acum %s.\n", ui.StylePrefixDone.Render("✔"), task.Title, state)
	return nil
}
