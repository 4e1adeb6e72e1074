package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/agroplan/agroplan/internal/ui"
	"github.com/agroplan/agroplan/llm"
	"github.com/agroplan/agroplan/models"
	"github.com/agroplan/agroplan/planner"
	"github.com/agroplan/agroplan/types"
	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
)

var (
	addVariety    string
	addPlanted    string
	addSoil       string
	addPH         float64
	addTexture    string
	addArea       float64
	addLat        float64
	addLng        float64
	addNoSchedule bool
)

// addCmd represents the add command
var addCmd = &cobra.Command{
	Use:   "add [name]",
	Short: "Add a crop and generate its care schedule",
	Long: `Add a crop to your plan. Missing details are collected interactively.

After the record is saved, the advisory model generates a dated task
schedule (irrigation, fertilization, treatments, harvest) from the
planting date and soil profile. If the model is unreachable the crop is
kept with an empty schedule.

Examples:
  agroplan add Rosii --variety Cherry --planted 2025-04-01 --soil Lutos
  agroplan add Grau --planted 2025-10-05 --soil Argilos --area 12000 --no-schedule`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAdd,
}

func init() {
	rootCmd.AddCommand(addCmd)

	addCmd.Flags().StringVar(&addVariety, "variety", "", "Crop variety (optional)")
	addCmd.Flags().StringVar(&addPlanted, "planted", "", "Planting date, YYYY-MM-DD (defaults to today)")
	addCmd.Flags().StringVar(&addSoil, "soil", "", "Soil type (Lutos, Nisipos, Argilos, Calcaros, Turbos)")
	addCmd.Flags().Float64Var(&addPH, "ph", 0, "Soil pH (optional)")
	addCmd.Flags().StringVar(&addTexture, "texture", "", "Soil texture description (optional)")
	addCmd.Flags().Float64Var(&addArea, "area", 0, "Planted area in square meters")
	addCmd.Flags().Float64Var(&addLat, "lat", 0, "Field latitude (optional)")
	addCmd.Flags().Float64Var(&addLng, "lng", 0, "Field longitude (optional)")
	addCmd.Flags().BoolVar(&addNoSchedule, "no-schedule", false, "Skip AI schedule generation")
}

func runAdd(cmd *cobra.Command, args []string) error {
	name := ""
	if len(args) > 0 {
		name = strings.TrimSpace(args[0])
	}
	if name == "" {
		prompt := promptui.Prompt{
			Label: "Cultura",
			Validate: func(input string) error {
				if strings.TrimSpace(input) == "" {
					return fmt.Errorf("numele culturii nu poate fi gol")
				}
				return nil
			},
		}
		var err error
		name, err = prompt.Run()
		if err != nil {
			return err
		}
		name = strings.TrimSpace(name)
	}

	planted, err := resolvePlantedDate(addPlanted)
	if err != nil {
		return err
	}

	soil, err := resolveSoilType(addSoil)
	if err != nil {
		return err
	}

	crop := models.NewCrop(name, planted, soil)
	crop.Variety = strings.TrimSpace(addVariety)
	crop.SoilTexture = strings.TrimSpace(addTexture)
	crop.AreaSqm = addArea
	if cmd.Flags().Changed("ph") {
		ph := addPH
		crop.SoilPH = &ph
	}
	if cmd.Flags().Changed("lat") && cmd.Flags().Changed("lng") {
		lat, lng := addLat, addLng
		crop.Lat = &lat
		crop.Lng = &lng
	}

	if !addNoSchedule {
		crop.Tasks = generateSchedule(crop)
	}

	cropStore, err := GetStore()
	if err != nil {
		HandleFatalError("Failed to initialize the crop store", err)
	}
	defer func() { _ = cropStore.Close() }()

	created, err := cropStore.AddCrop(*crop)
	if err != nil {
		HandleFatalError("Failed to save the crop", err)
	}

	fmt.Printf("%s Cultura '%s' adaugata (ID: %s) cu %d sarcini planificate.\n",
		ui.StylePrefixDone.Render("✔"), created.Name, ui.TruncateID(created.ID), len(created.Tasks))
	return nil
}

// generateSchedule asks the advisory model for a task plan and derives dated
// tasks from it. Any failure degrades to an empty schedule so the crop record
// is never lost.
func generateSchedule(crop *models.Crop) []models.PlannedTask {
	provider, err := llm.NewProvider(GetConfig())
	if err != nil {
		PrintError("Planificarea automata nu este disponibila; cultura va fi salvata fara sarcini.", err)
		return []models.PlannedTask{}
	}

	timeout := time.Duration(GetConfig().LLM.RequestTimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	fmt.Println("Se genereaza planul de sarcini...")
	templates, err := provider.GenerateSchedule(ctx, types.ScheduleRequest{
		CropName:    crop.Name,
		Variety:     crop.Variety,
		PlantedDate: crop.PlantedDate.String(),
		SoilType:    string(crop.SoilType),
		SoilPH:      crop.SoilPH,
		SoilTexture: crop.SoilTexture,
	})
	if err != nil {
		PrintError("Nu s-a putut genera planul de sarcini; cultura va fi salvata fara sarcini.", err)
		return []models.PlannedTask{}
	}

	return planner.Derive(crop.PlantedDate, templates)
}

func resolvePlantedDate(raw string) (models.Date, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return models.Today(), nil
	}
	planted, err := models.ParseDate(raw)
	if err != nil {
		return models.Date{}, fmt.Errorf("invalid planting date %q (expected YYYY-MM-DD): %w", raw, err)
	}
	return planted, nil
}

func resolveSoilType(raw string) (models.SoilType, error) {
	raw = strings.TrimSpace(raw)
	if raw != "" {
		for _, soil := range models.SoilTypes() {
			if strings.EqualFold(raw, string(soil)) {
				return soil, nil
			}
		}
		return "", fmt.Errorf("unknown soil type %q (valid: %s)", raw, soilTypeList())
	}

	items := models.SoilTypes()
	prompt := promptui.Select{
		Label: "Tip de sol",
		Items: items,
	}
	i, _, err := prompt.Run()
	if err != nil {
		return "", err
	}
	return items[i], nil
}

func soilTypeList() string {
	var names []string
	for _, soil := range models.SoilTypes() {
		names = append(names, string(soil))
	}
	return strings.Join(names, ", ")
}
