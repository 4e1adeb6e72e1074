package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/agroplan/agroplan/internal/ui"
	"github.com/agroplan/agroplan/weather"
	"github.com/spf13/cobra"
)

var (
	weatherLat  float64
	weatherLng  float64
	weatherCrop string
)

// weatherCmd represents the weather command
var weatherCmd = &cobra.Command{
	Use:   "weather",
	Short: "Show the weather forecast for your fields",
	Long: `Show current conditions and the 7-day forecast from Open-Meteo.

Coordinates are taken from flags, from a crop's recorded location, or from
the configured default. A wind warning is shown when spraying treatments
should be postponed.

Examples:
  agroplan weather
  agroplan weather --lat 46.77 --lng 23.59
  agroplan weather --crop 3f2a`,
	RunE: runWeather,
}

func init() {
	rootCmd.AddCommand(weatherCmd)

	weatherCmd.Flags().Float64Var(&weatherLat, "lat", 0, "Latitude")
	weatherCmd.Flags().Float64Var(&weatherLng, "lng", 0, "Longitude")
	weatherCmd.Flags().StringVar(&weatherCrop, "crop", "", "Use the recorded location of this crop")
}

func runWeather(cmd *cobra.Command, args []string) error {
	lat, lng, err := resolveCoordinates(cmd)
	if err != nil {
		return err
	}

	snap, err := fetchForecast(lat, lng)
	if err != nil {
		HandleFatalError("Could not fetch the weather forecast", err)
	}

	fmt.Printf("Prognoza pentru %.4f, %.4f\n", lat, lng)
	fmt.Println(ui.ForecastPanel(snap))
	return nil
}

// resolveCoordinates picks the forecast location: explicit flags first, then
// a crop's recorded location, then the configured default.
func resolveCoordinates(cmd *cobra.Command) (float64, float64, error) {
	if cmd.Flags().Changed("lat") && cmd.Flags().Changed("lng") {
		return weatherLat, weatherLng, nil
	}

	if weatherCrop != "" {
		cropStore, err := GetStore()
		if err != nil {
			return 0, 0, fmt.Errorf("failed to initialize the crop store: %w", err)
		}
		defer func() { _ = cropStore.Close() }()

		crop, err := resolveCropArg(cropStore, []string{weatherCrop}, "")
		if err != nil {
			return 0, 0, err
		}
		if !crop.HasLocation() {
			return 0, 0, fmt.Errorf("crop %q has no recorded location", crop.Name)
		}
		return *crop.Lat, *crop.Lng, nil
	}

	cfg := GetConfig().Weather
	if cfg.Latitude != 0 || cfg.Longitude != 0 {
		return cfg.Latitude, cfg.Longitude, nil
	}
	return weather.FallbackLatitude, weather.FallbackLongitude, nil
}

func fetchForecast(lat, lng float64) (*weather.Snapshot, error) {
	cfg := GetConfig().Weather
	timeout := time.Duration(cfg.RequestTimeoutSeconds) * time.Second

	ctx, cancel := context.WithTimeout(context.Background(), weatherContextTimeout(timeout))
	defer cancel()

	client := weather.NewClient("", timeout)
	return client.Fetch(ctx, lat, lng)
}

func weatherContextTimeout(timeout time.Duration) time.Duration {
	if timeout <= 0 {
		return 15 * time.Second
	}
	return timeout
}
