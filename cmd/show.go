package cmd

import (
	"fmt"

	"github.com/agroplan/agroplan/internal/ui"
	"github.com/agroplan/agroplan/internal/util"
	"github.com/agroplan/agroplan/models"
	"github.com/agroplan/agroplan/store"
	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
)

// showCmd represents the show command
var showCmd = &cobra.Command{
	Use:   "show [crop_id]",
	Short: "Show a crop and its task schedule",
	Long:  `Show the full record of a crop: soil profile, location, and the dated task schedule. Accepts a full ID or a unique prefix. Without an ID an interactive list is shown.`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	cropStore, err := GetStore()
	if err != nil {
		HandleFatalError("Failed to initialize the crop store", err)
	}
	defer func() { _ = cropStore.Close() }()

	crop, err := resolveCropArg(cropStore, args, "Selecteaza cultura")
	if err != nil {
		if err == promptui.ErrInterrupt {
			return nil
		}
		if err == ErrNoCropsFound {
			fmt.Println("Nicio cultura inregistrata.")
			return nil
		}
		return err
	}

	fmt.Println(ui.StyleSectionTitle.Render(crop.Name))
	printField("ID", crop.ID)
	if crop.Variety != "" {
		printField("Soi", crop.Variety)
	}
	printField("Plantat", crop.PlantedDate.String())
	printField("Sol", string(crop.SoilType))
	if crop.SoilPH != nil {
		printField("pH sol", fmt.Sprintf("%.1f", *crop.SoilPH))
	}
	if crop.SoilTexture != "" {
		printField("Textura", crop.SoilTexture)
	}
	if crop.AreaSqm > 0 {
		printField("Suprafata", fmt.Sprintf("%.0f mp", crop.AreaSqm))
	}
	if crop.HasLocation() {
		printField("Locatie", fmt.Sprintf("%.4f, %.4f", *crop.Lat, *crop.Lng))
	}
	printField("Stare", string(crop.Status))

	fmt.Println()
	fmt.Println(ui.StyleSectionTitle.Render("Sarcini"))
	fmt.Print(ui.TaskList(crop.Tasks))
	return nil
}

func printField(label, value string) {
	fmt.Printf("  %s %s\n", ui.StyleSubtle.Render(label+":"), value)
}

// resolveCropArg turns an optional ID-or-prefix argument into a crop,
// falling back to interactive selection.
func resolveCropArg(cropStore store.CropStore, args []string, label string) (models.Crop, error) {
	if len(args) == 0 {
		return selectCropInteractive(cropStore, nil, label)
	}

	crops, err := cropStore.ListCrops(nil, nil)
	if err != nil {
		return models.Crop{}, fmt.Errorf("failed to list crops: %w", err)
	}
	id, err := util.ResolveCropID(crops, args[0])
	if err != nil {
		return models.Crop{}, err
	}
	return cropStore.GetCrop(id)
}
