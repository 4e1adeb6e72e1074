package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/agroplan/agroplan/internal/ui"
	"github.com/agroplan/agroplan/llm"
	"github.com/spf13/cobra"
)

var (
	recommendLocation string
	recommendSoil     string
	recommendMonth    string
)

// romanianMonths maps time.Month to the month names used in prompts.
var romanianMonths = [...]string{
	"ianuarie", "februarie", "martie", "aprilie", "mai", "iunie",
	"iulie", "august", "septembrie", "octombrie", "noiembrie", "decembrie",
}

// recommendCmd represents the recommend command
var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Get crop recommendations for a location and soil",
	Long: `Ask the advisory model which crops suit a location, soil type, and
month. Month defaults to the current one.

Examples:
  agroplan recommend --location Cluj --soil Nisipos
  agroplan recommend --location "Valea Prahovei" --soil Lutos --month aprilie`,
	RunE: runRecommend,
}

func init() {
	rootCmd.AddCommand(recommendCmd)

	recommendCmd.Flags().StringVar(&recommendLocation, "location", "", "Region or locality (required)")
	recommendCmd.Flags().StringVar(&recommendSoil, "soil", "", "Soil type (required)")
	recommendCmd.Flags().StringVar(&recommendMonth, "month", "", "Month name (defaults to the current month)")
	_ = recommendCmd.MarkFlagRequired("location")
	_ = recommendCmd.MarkFlagRequired("soil")
}

func runRecommend(cmd *cobra.Command, args []string) error {
	soil, err := resolveSoilType(recommendSoil)
	if err != nil {
		return err
	}

	month := strings.TrimSpace(recommendMonth)
	if month == "" {
		month = romanianMonths[time.Now().Month()-1]
	}

	provider, err := llm.NewProvider(GetConfig())
	if err != nil {
		HandleFatalError("The advisor is not configured. Set GEMINI_API_KEY and try again.", err)
	}

	ctx, cancel := newLLMContext()
	defer cancel()

	fmt.Println("Se genereaza recomandari...")
	reply, err := provider.Recommend(ctx, recommendLocation, string(soil), month)
	if err != nil || strings.TrimSpace(reply) == "" {
		LogError("recommendation request failed", err)
		reply = llm.FallbackRecommend
	}

	fmt.Println(ui.StyleAdvisorBox.Render(reply))
	return nil
}
