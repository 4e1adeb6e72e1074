package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/agroplan/agroplan/internal/ui"
	"github.com/agroplan/agroplan/llm"
	"github.com/spf13/cobra"
)

var askImage string

// askCmd represents the ask command
var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask the agronomy advisor",
	Long: `Chat with the AI agronomy advisor. With a question as argument a single
answer is printed; without one an interactive session starts. Pass --image
to have a plant photo identified and checked for disease.

The advisor only answers farming questions and replies in Romanian. When
the model is unreachable a short error message is shown and the
conversation continues.

Examples:
  agroplan ask "Cand se planteaza cartofii?"
  agroplan ask --image poza_rosie.jpg
  agroplan ask`,
	RunE: runAsk,
}

func init() {
	rootCmd.AddCommand(askCmd)

	askCmd.Flags().StringVar(&askImage, "image", "", "Path to a plant photo to diagnose")
}

func runAsk(cmd *cobra.Command, args []string) error {
	provider, err := llm.NewProvider(GetConfig())
	if err != nil {
		HandleFatalError("The advisor is not configured. Set GEMINI_API_KEY and try again.", err)
	}

	session := llm.NewSession(provider)

	if askImage != "" {
		reply := diagnoseImage(session, askImage)
		fmt.Println(ui.StyleAdvisorBox.Render(reply))
		if len(args) == 0 {
			return nil
		}
	}

	if len(args) > 0 {
		question := strings.TrimSpace(strings.Join(args, " "))
		if question == "" {
			return fmt.Errorf("question cannot be empty")
		}
		reply := askSession(session, question)
		fmt.Println(ui.StyleAdvisorBox.Render(reply))
		return nil
	}

	return runAskInteractive(session)
}

// runAskInteractive runs the chat loop. An empty line or Ctrl+D ends it.
func runAskInteractive(session *llm.Session) error {
	fmt.Println(ui.ChatTurn(session.Messages()[0]))
	fmt.Println(ui.StyleSubtle.Render("(linie goala pentru iesire, /foto <cale> pentru diagnostic de imagine)"))

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print(ui.StylePrefixUser.Render("tu> "))
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			break
		}

		var reply string
		if path, ok := strings.CutPrefix(line, "/foto "); ok {
			reply = diagnoseImage(session, strings.TrimSpace(path))
		} else {
			reply = askSession(session, line)
		}
		fmt.Println(ui.StylePrefixModel.Render("agro> ") + reply)
	}
	return scanner.Err()
}

// diagnoseImage reads a photo and sends it for identification. Read failures
// use the same degraded reply as model failures.
func diagnoseImage(session *llm.Session, path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		PrintError("Imaginea nu a putut fi citita.", err)
		return llm.FallbackDiagnose
	}
	ctx, cancel := newLLMContext()
	defer cancel()
	return session.Diagnose(ctx, data, detectImageMime(path))
}

func askSession(session *llm.Session, question string) string {
	ctx, cancel := newLLMContext()
	defer cancel()
	return session.Ask(ctx, question)
}

func detectImageMime(path string) string {
	switch {
	case strings.HasSuffix(strings.ToLower(path), ".png"):
		return "image/png"
	case strings.HasSuffix(strings.ToLower(path), ".webp"):
		return "image/webp"
	default:
		return "image/jpeg"
	}
}

func newLLMContext() (context.Context, context.CancelFunc) {
	timeout := time.Duration(GetConfig().LLM.RequestTimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return context.WithTimeout(context.Background(), timeout)
}
