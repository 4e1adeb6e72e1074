package cmd

import (
	"fmt"

	"github.com/agroplan/agroplan/internal/ui"
	"github.com/agroplan/agroplan/llm"
	"github.com/spf13/cobra"
)

// diagnoseCmd represents the diagnose command
var diagnoseCmd = &cobra.Command{
	Use:   "diagnose <image>",
	Short: "Identify a plant photo and check its health",
	Long: `Send a plant photo to the advisory model for identification and a short
health report. Equivalent to 'agroplan ask --image'.

Example:
  agroplan diagnose poza_rosie.jpg`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		provider, err := llm.NewProvider(GetConfig())
		if err != nil {
			HandleFatalError("The advisor is not configured. Set GEMINI_API_KEY and try again.", err)
		}

		session := llm.NewSession(provider)
		reply := diagnoseImage(session, args[0])
		fmt.Println(ui.StyleAdvisorBox.Render(reply))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(diagnoseCmd)
}
