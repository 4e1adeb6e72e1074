package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/agroplan/agroplan/models"
	"github.com/agroplan/agroplan/store"
	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	// cfgFile is the path to the configuration file.
	cfgFile string
	// verbose enables verbose output.
	verbose bool
	// ErrNoCropsFound is returned when an interactive selection is attempted but no crops are available.
	ErrNoCropsFound = errors.New("no crops found matching your criteria")
	// version is the application version.
	version = "0.1.0"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "agroplan",
	Short: "AgroPlan helps you plan and track your crops from the command line.",
	Long: `AgroPlan is a farm planning tool for the command line.
It keeps a record of your crops, builds AI-generated care schedules,
shows the weather forecast for your fields, and answers agronomy questions.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			_ = cmd.Help()
			os.Exit(0)
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(InitConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is $HOME/.agroplan.yaml or ./.agroplan.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	// Bind persistent flags to Viper
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

// GetCropFilePath returns the full path to the crops file
func GetCropFilePath() string {
	config := GetConfig()
	return filepath.Join(config.Project.RootDir, config.Project.CropsDir, config.Data.File)
}

// GetStore initializes and returns the crop store using the unified types.AppConfig.
func GetStore() (store.CropStore, error) {
	s := store.NewFileCropStore()
	config := GetConfig()

	cropFilePath := GetCropFilePath()

	err := s.Initialize(map[string]string{
		"dataFile":       cropFilePath,
		"dataFileFormat": config.Data.Format,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize store at %s: %w", cropFilePath, err)
	}
	return s, nil
}

// selectCropInteractive presents a prompt to the user to select a crop from a list.
// It can be filtered using the provided filter function.
func selectCropInteractive(cropStore store.CropStore, filterFn func(models.Crop) bool, label string) (models.Crop, error) {
	crops, err := cropStore.ListCrops(filterFn, nil)
	if err != nil {
		return models.Crop{}, fmt.Errorf("failed to list crops for selection: %w", err)
	}

	if len(crops) == 0 {
		return models.Crop{}, ErrNoCropsFound
	}

	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}?",
		Active:   `> {{ .Name | cyan }} {{ .Variety }} (plantat: {{ .PlantedDate }}, stare: {{ .Status }})`,
		Inactive: `  {{ .Name | faint }} {{ .Variety }} (plantat: {{ .PlantedDate }}, stare: {{ .Status }})`,
		Selected: `{{ "✔" | green }} {{ .Name | faint }} (ID: {{ .ID }})`,
		Details: `
--------- Detalii cultura ----------
{{ "ID:\t" | faint }} {{ .ID }}
{{ "Cultura:\t" | faint }} {{ .Name }}
{{ "Soi:\t" | faint }} {{ .Variety }}
{{ "Plantat:\t" | faint }} {{ .PlantedDate }}
{{ "Sol:\t" | faint }} {{ .SoilType }}`,
	}

	searcher := func(input string, index int) bool {
		crop := crops[index]
		name := strings.ToLower(crop.Name)
		id := crop.ID
		input = strings.ToLower(input)
		return strings.Contains(name, input) || strings.Contains(id, input)
	}

	prompt := promptui.Select{
		Label:     label,
		Items:     crops,
		Templates: templates,
		Searcher:  searcher,
	}

	i, _, err := prompt.Run()
	if err != nil {
		return models.Crop{}, err // Return error as is (includes promptui.ErrInterrupt)
	}

	return crops[i], nil
}
