package cmd

import (
	"fmt"
	"sort"
	"time"

	"github.com/agroplan/agroplan/internal/ui"
	"github.com/agroplan/agroplan/models"
	"github.com/spf13/cobra"
)

// overviewUpcomingWindow bounds the upcoming-tasks panel.
const overviewUpcomingWindow = 7

// overviewCmd represents the overview command
var overviewCmd = &cobra.Command{
	Use:   "overview",
	Short: "Show the farm dashboard",
	Long: `Show the dashboard: active crops with task progress, tasks due in the
next week (overdue first), and the weather forecast for the configured
location. The forecast panel is skipped when the weather service is
unreachable.`,
	RunE: runOverview,
}

func init() {
	rootCmd.AddCommand(overviewCmd)
}

func runOverview(cmd *cobra.Command, args []string) error {
	cropStore, err := GetStore()
	if err != nil {
		HandleFatalError("Failed to initialize the crop store", err)
	}
	defer func() { _ = cropStore.Close() }()

	crops, err := cropStore.ListCrops(nil, nil)
	if err != nil {
		HandleFatalError("Failed to list crops", err)
	}

	fmt.Println(ui.StyleHeader.Render("AgroPlan"))

	fmt.Println(ui.StyleSectionTitle.Render("Culturi"))
	if len(crops) == 0 {
		fmt.Println("Nicio cultura inregistrata. Adauga una cu 'agroplan add'.")
	} else {
		fmt.Print(ui.CropTable(crops))
	}
	fmt.Println()

	fmt.Println(ui.StyleSectionTitle.Render("Sarcini urmatoare"))
	printUpcomingTasks(crops)
	fmt.Println()

	lat, lng, err := resolveCoordinates(cmd)
	if err == nil {
		if snap, ferr := fetchForecast(lat, lng); ferr == nil {
			fmt.Println(ui.ForecastPanel(snap))
		} else {
			LogError("weather forecast unavailable", ferr)
			fmt.Println(ui.StyleSubtle.Render("Prognoza meteo nu este disponibila momentan."))
		}
	}

	return nil
}

type upcomingTask struct {
	cropName string
	task     models.PlannedTask
}

// printUpcomingTasks lists incomplete tasks due within the next week across
// all active crops, overdue ones included and sorted first.
func printUpcomingTasks(crops []models.Crop) {
	today := models.Today()
	horizon := today.AddDays(overviewUpcomingWindow)

	var upcoming []upcomingTask
	for _, crop := range crops {
		if crop.Status != models.StatusActive {
			continue
		}
		for _, task := range crop.Tasks {
			if task.Completed {
				continue
			}
			if task.DueDate.After(horizon.Time) {
				continue
			}
			upcoming = append(upcoming, upcomingTask{cropName: crop.Name, task: task})
		}
	}

	if len(upcoming) == 0 {
		fmt.Println("Nicio sarcina scadenta in urmatoarele 7 zile.")
		return
	}

	sort.SliceStable(upcoming, func(i, j int) bool {
		return upcoming[i].task.DueDate.Before(upcoming[j].task.DueDate.Time)
	})

	for _, u := range upcoming {
		due := u.task.DueDate.String()
		if u.task.DueDate.Before(today.Time) {
			days := int(today.Sub(u.task.DueDate.Time) / (24 * time.Hour))
			due = ui.StylePrefixError.Render(fmt.Sprintf("%s (intarziata %d zile)", due, days))
		}
		fmt.Printf("  %s  %s  %s (%s)\n",
			due,
			ui.StyleEarth.Render(string(u.task.Category)),
			u.task.Title,
			ui.StyleSubtle.Render(u.cropName),
		)
	}
}
