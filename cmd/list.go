package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/agroplan/agroplan/internal/ui"
	"github.com/agroplan/agroplan/models"
	"github.com/spf13/cobra"
)

var (
	listStatus string
	listSoil   string
	listSortBy string
	listJSON   bool
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List crops",
	Long: `List crops with task progress. By default crops appear most recently
added first, matching the stored order.

Examples:
  agroplan list
  agroplan list --status active --sort planted
  agroplan list --soil Lutos --json`,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().StringVar(&listStatus, "status", "", "Filter by status (active, harvested, failed)")
	listCmd.Flags().StringVar(&listSoil, "soil", "", "Filter by soil type")
	listCmd.Flags().StringVar(&listSortBy, "sort", "", "Sort by field (name, planted)")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output as JSON")
}

func runList(cmd *cobra.Command, args []string) error {
	cropStore, err := GetStore()
	if err != nil {
		HandleFatalError("Failed to initialize the crop store", err)
	}
	defer func() { _ = cropStore.Close() }()

	var filterFn func(models.Crop) bool
	if listStatus != "" || listSoil != "" {
		filterFn = func(c models.Crop) bool {
			if listStatus != "" && !strings.EqualFold(string(c.Status), listStatus) {
				return false
			}
			if listSoil != "" && !strings.EqualFold(string(c.SoilType), listSoil) {
				return false
			}
			return true
		}
	}

	var sortFn func([]models.Crop) []models.Crop
	switch listSortBy {
	case "":
		// stored order: newest first
	case "name":
		sortFn = func(crops []models.Crop) []models.Crop {
			sort.SliceStable(crops, func(i, j int) bool {
				return strings.ToLower(crops[i].Name) < strings.ToLower(crops[j].Name)
			})
			return crops
		}
	case "planted":
		sortFn = func(crops []models.Crop) []models.Crop {
			sort.SliceStable(crops, func(i, j int) bool {
				return crops[i].PlantedDate.Before(crops[j].PlantedDate.Time)
			})
			return crops
		}
	default:
		return fmt.Errorf("unknown sort field %q (valid: name, planted)", listSortBy)
	}

	crops, err := cropStore.ListCrops(filterFn, sortFn)
	if err != nil {
		HandleFatalError("Failed to list crops", err)
	}

	if listJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(crops)
	}

	if len(crops) == 0 {
		fmt.Println("Nicio cultura inregistrata. Adauga una cu 'agroplan add'.")
		return nil
	}

	fmt.Print(ui.CropTable(crops))
	return nil
}
