package llm

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/agroplan/agroplan/models"
	"github.com/agroplan/agroplan/prompts"
	"github.com/agroplan/agroplan/types"
)

const (
	defaultGeminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	defaultGeminiModel   = "gemini-3-flash-preview"
)

// GeminiProvider implements the Provider interface against the Google
// Gemini generateContent API.
type GeminiProvider struct {
	apiKey          string
	baseURL         string
	model           string
	timeout         time.Duration
	temperature     *float64
	maxOutputTokens int
	debug           bool
	templatesDir    string
	httpClient      *http.Client
}

// NewGeminiProvider creates a new GeminiProvider from configuration.
// templatesDir, when non-empty, lets users override the built-in prompts
// with files.
func NewGeminiProvider(cfg *types.LLMConfig, templatesDir string) *GeminiProvider {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultGeminiBaseURL
	}
	model := cfg.ModelName
	if model == "" {
		model = defaultGeminiModel
	}
	timeout := time.Duration(cfg.RequestTimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	var temperature *float64
	if cfg.Temperature > 0 {
		t := cfg.Temperature
		temperature = &t
	}
	return &GeminiProvider{
		apiKey:          cfg.APIKey,
		baseURL:         strings.TrimRight(baseURL, "/"),
		model:           model,
		timeout:         timeout,
		temperature:     temperature,
		maxOutputTokens: cfg.MaxOutputTokens,
		debug:           cfg.Debug,
		templatesDir:    templatesDir,
		httpClient:      &http.Client{Timeout: timeout},
	}
}

// geminiPart is one piece of a content block: text or inline binary data.
type geminiPart struct {
	Text       string            `json:"text,omitempty"`
	InlineData *geminiInlineData `json:"inlineData,omitempty"`
}

type geminiInlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"` // base64
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"` // "user" or "model"
	Parts []geminiPart `json:"parts"`
}

type geminiGenerationConfig struct {
	Temperature      *float64        `json:"temperature,omitempty"`
	MaxOutputTokens  int             `json:"maxOutputTokens,omitempty"`
	ResponseMimeType string          `json:"responseMimeType,omitempty"`
	ResponseSchema   json.RawMessage `json:"responseSchema,omitempty"`
}

type geminiRequest struct {
	SystemInstruction *geminiContent          `json:"systemInstruction,omitempty"`
	Contents          []geminiContent         `json:"contents"`
	GenerationConfig  *geminiGenerationConfig `json:"generationConfig,omitempty"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
		FinishReason string `json:"finishReason"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// scheduleResponseSchema constrains schedule generation to an array of
// {title, daysAfterPlanting, category, notes} objects.
var scheduleResponseSchema = json.RawMessage(`{
	"type": "ARRAY",
	"items": {
		"type": "OBJECT",
		"properties": {
			"title": {"type": "STRING"},
			"daysAfterPlanting": {"type": "INTEGER"},
			"category": {"type": "STRING"},
			"notes": {"type": "STRING"}
		},
		"required": ["title", "daysAfterPlanting", "category"]
	}
}`)

// textGenerationConfig applies the configured sampling settings, or nil
// when everything is left at the API default.
func (p *GeminiProvider) textGenerationConfig() *geminiGenerationConfig {
	if p.temperature == nil && p.maxOutputTokens == 0 {
		return nil
	}
	return &geminiGenerationConfig{
		Temperature:     p.temperature,
		MaxOutputTokens: p.maxOutputTokens,
	}
}

// callGemini sends a generateContent request and returns the first
// candidate's concatenated text parts.
func (p *GeminiProvider) callGemini(ctx context.Context, req geminiRequest) (string, error) {
	if p.apiKey == "" {
		return "", fmt.Errorf("Gemini API key is not set")
	}

	body, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("failed to marshal Gemini request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", p.baseURL, p.model)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return "", fmt.Errorf("failed to create Gemini request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-api-key", p.apiKey)

	start := time.Now()
	resp, err := p.httpClient.Do(httpReq)
	if err != nil {
		if strings.Contains(err.Error(), "context deadline exceeded") || strings.Contains(err.Error(), "Client.Timeout exceeded") {
			return "", fmt.Errorf("Gemini API request timed out after %v", p.timeout)
		}
		return "", fmt.Errorf("failed to call Gemini API: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read Gemini response: %w", err)
	}
	if p.debug {
		fmt.Printf("[LLM] Gemini %s in %v (status %s, bytes %d)\n", p.model, time.Since(start), resp.Status, len(raw))
	}

	if resp.StatusCode != http.StatusOK {
		var errResp geminiResponse
		if json.Unmarshal(raw, &errResp) == nil && errResp.Error != nil {
			return "", fmt.Errorf("Gemini API error (%s): %s", resp.Status, errResp.Error.Message)
		}
		return "", fmt.Errorf("Gemini API error (%s): %s", resp.Status, strings.TrimSpace(string(raw)))
	}

	var parsed geminiResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("failed to parse Gemini response: %w", err)
	}
	if len(parsed.Candidates) == 0 {
		return "", fmt.Errorf("Gemini returned no candidates")
	}

	var builder strings.Builder
	for _, part := range parsed.Candidates[0].Content.Parts {
		builder.WriteString(part.Text)
	}
	text := strings.TrimSpace(builder.String())
	if text == "" {
		return "", fmt.Errorf("Gemini returned an empty response")
	}
	return text, nil
}

// GenerateSchedule asks the model for a task template list for a crop.
// The response is constrained to JSON by responseSchema; anything that
// fails to parse is an error the caller degrades to zero templates.
func (p *GeminiProvider) GenerateSchedule(ctx context.Context, req types.ScheduleRequest) ([]types.TaskTemplate, error) {
	text, err := p.callGemini(ctx, geminiRequest{
		Contents: []geminiContent{{Role: "user", Parts: []geminiPart{{Text: prompts.SchedulePrompt(req)}}}},
		GenerationConfig: &geminiGenerationConfig{
			Temperature:      p.temperature,
			MaxOutputTokens:  p.maxOutputTokens,
			ResponseMimeType: "application/json",
			ResponseSchema:   scheduleResponseSchema,
		},
	})
	if err != nil {
		return nil, err
	}

	var templates []types.TaskTemplate
	if err := json.Unmarshal([]byte(text), &templates); err != nil {
		return nil, fmt.Errorf("failed to parse schedule JSON from AI response: %w", err)
	}
	return templates, nil
}

// historyLimit bounds how much conversation context is replayed per turn.
const historyLimit = 20

// Advise answers a free-text question with the bounded prior transcript
// replayed as alternating user/model turns.
func (p *GeminiProvider) Advise(ctx context.Context, prompt string, history []models.ChatMessage) (string, error) {
	system, err := prompts.GetPrompt(prompts.KeySystemRules, p.templatesDir)
	if err != nil {
		return "", err
	}

	if len(history) > historyLimit {
		history = history[len(history)-historyLimit:]
	}

	contents := make([]geminiContent, 0, len(history)+1)
	for _, msg := range history {
		role := "user"
		if msg.Role == models.RoleModel {
			role = "model"
		}
		contents = append(contents, geminiContent{Role: role, Parts: []geminiPart{{Text: msg.Content}}})
	}
	contents = append(contents, geminiContent{Role: "user", Parts: []geminiPart{{Text: prompt}}})

	return p.callGemini(ctx, geminiRequest{
		SystemInstruction: &geminiContent{Parts: []geminiPart{{Text: system}}},
		Contents:          contents,
		GenerationConfig:  p.textGenerationConfig(),
	})
}

// Recommend produces crop and care recommendations for a location, soil
// type, and month.
func (p *GeminiProvider) Recommend(ctx context.Context, location, soil, month string) (string, error) {
	system, err := prompts.GetPrompt(prompts.KeySystemRules, p.templatesDir)
	if err != nil {
		return "", err
	}

	return p.callGemini(ctx, geminiRequest{
		SystemInstruction: &geminiContent{Parts: []geminiPart{{Text: system}}},
		Contents: []geminiContent{{
			Role:  "user",
			Parts: []geminiPart{{Text: prompts.RecommendPrompt(location, soil, month)}},
		}},
		GenerationConfig: p.textGenerationConfig(),
	})
}

// DiagnosePlant sends a plant photo for identification and a short health report.
func (p *GeminiProvider) DiagnosePlant(ctx context.Context, imageData []byte, mimeType string) (string, error) {
	system, err := prompts.GetPrompt(prompts.KeySystemRules, p.templatesDir)
	if err != nil {
		return "", err
	}
	diagnose, err := prompts.GetPrompt(prompts.KeyDiagnose, p.templatesDir)
	if err != nil {
		return "", err
	}
	if mimeType == "" {
		mimeType = "image/jpeg"
	}

	return p.callGemini(ctx, geminiRequest{
		SystemInstruction: &geminiContent{Parts: []geminiPart{{Text: system}}},
		Contents: []geminiContent{{
			Role: "user",
			Parts: []geminiPart{
				{InlineData: &geminiInlineData{MimeType: mimeType, Data: base64.StdEncoding.EncodeToString(imageData)}},
				{Text: diagnose},
			},
		}},
		GenerationConfig: p.textGenerationConfig(),
	})
}
