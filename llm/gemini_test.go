package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/agroplan/agroplan/models"
	"github.com/agroplan/agroplan/types"
)

func newTestProvider(t *testing.T, handler http.HandlerFunc) (*GeminiProvider, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	p := NewGeminiProvider(&types.LLMConfig{
		APIKey:  "test-key",
		BaseURL: srv.URL,
	}, "")
	return p, srv
}

func textResponse(text string) string {
	resp := map[string]any{
		"candidates": []map[string]any{
			{"content": map[string]any{"parts": []map[string]any{{"text": text}}}},
		},
	}
	b, _ := json.Marshal(resp)
	return string(b)
}

func TestGeminiProvider_GenerateSchedule(t *testing.T) {
	var gotPath, gotKey string
	var gotReq geminiRequest

	p, _ := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("x-goog-api-key")
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("failed to decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(textResponse(`[
			{"title": "Pregatirea solului", "daysAfterPlanting": -3, "category": "tratamente"},
			{"title": "Prima udare", "daysAfterPlanting": 1, "category": "irigare", "notes": "dimineata"}
		]`)))
	})

	templates, err := p.GenerateSchedule(context.Background(), types.ScheduleRequest{
		CropName:    "Rosii",
		PlantedDate: "2025-04-01",
		SoilType:    "Lutos",
	})
	if err != nil {
		t.Fatalf("GenerateSchedule() error = %v", err)
	}

	if !strings.HasSuffix(gotPath, "/models/gemini-3-flash-preview:generateContent") {
		t.Errorf("unexpected request path %q", gotPath)
	}
	if gotKey != "test-key" {
		t.Errorf("api key header = %q", gotKey)
	}
	if gotReq.GenerationConfig == nil || gotReq.GenerationConfig.ResponseMimeType != "application/json" {
		t.Error("expected JSON response mime type in generation config")
	}
	if gotReq.GenerationConfig.ResponseSchema == nil {
		t.Error("expected a response schema for schedule generation")
	}

	if len(templates) != 2 {
		t.Fatalf("expected 2 templates, got %d", len(templates))
	}
	if templates[0].DaysAfterPlanting != -3 {
		t.Errorf("expected negative offset preserved, got %d", templates[0].DaysAfterPlanting)
	}
	if templates[1].Notes != "dimineata" {
		t.Errorf("notes = %q", templates[1].Notes)
	}
}

func TestGeminiProvider_GenerateScheduleBadJSON(t *testing.T) {
	p, _ := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(textResponse("sigur, iata planul tau:")))
	})

	if _, err := p.GenerateSchedule(context.Background(), types.ScheduleRequest{CropName: "Grau"}); err == nil {
		t.Error("expected error for non-JSON schedule response")
	}
}

func TestGeminiProvider_AdviseSendsHistory(t *testing.T) {
	var gotReq geminiRequest
	p, _ := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&gotReq)
		_, _ = w.Write([]byte(textResponse("Uda rosiile dimineata.")))
	})

	history := []models.ChatMessage{
		{Role: models.RoleModel, Content: "Pune o intrebare."},
		{Role: models.RoleUser, Content: "Cand ud rosiile?"},
	}
	reply, err := p.Advise(context.Background(), "Si cat de des?", history)
	if err != nil {
		t.Fatalf("Advise() error = %v", err)
	}
	if reply != "Uda rosiile dimineata." {
		t.Errorf("reply = %q", reply)
	}

	if gotReq.SystemInstruction == nil || len(gotReq.SystemInstruction.Parts) == 0 {
		t.Fatal("expected a system instruction")
	}
	if len(gotReq.Contents) != 3 {
		t.Fatalf("expected 3 content turns, got %d", len(gotReq.Contents))
	}
	if gotReq.Contents[0].Role != "model" || gotReq.Contents[1].Role != "user" {
		t.Errorf("history roles not preserved: %q %q", gotReq.Contents[0].Role, gotReq.Contents[1].Role)
	}
	last := gotReq.Contents[2]
	if last.Role != "user" || last.Parts[0].Text != "Si cat de des?" {
		t.Errorf("final turn = %+v", last)
	}
}

func TestGeminiProvider_AdviseTruncatesHistory(t *testing.T) {
	var gotReq geminiRequest
	p, _ := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&gotReq)
		_, _ = w.Write([]byte(textResponse("ok")))
	})

	history := make([]models.ChatMessage, 50)
	for i := range history {
		history[i] = models.ChatMessage{Role: models.RoleUser, Content: "intrebare"}
	}
	if _, err := p.Advise(context.Background(), "ultima", history); err != nil {
		t.Fatalf("Advise() error = %v", err)
	}
	if len(gotReq.Contents) != historyLimit+1 {
		t.Errorf("expected %d content turns, got %d", historyLimit+1, len(gotReq.Contents))
	}
}

func TestGeminiProvider_DiagnosePlant(t *testing.T) {
	var gotReq geminiRequest
	p, _ := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&gotReq)
		_, _ = w.Write([]byte(textResponse("Rosie sanatoasa.")))
	})

	reply, err := p.DiagnosePlant(context.Background(), []byte{0xFF, 0xD8, 0xFF}, "image/jpeg")
	if err != nil {
		t.Fatalf("DiagnosePlant() error = %v", err)
	}
	if reply != "Rosie sanatoasa." {
		t.Errorf("reply = %q", reply)
	}

	if len(gotReq.Contents) != 1 {
		t.Fatalf("expected 1 content turn, got %d", len(gotReq.Contents))
	}
	parts := gotReq.Contents[0].Parts
	if len(parts) != 2 {
		t.Fatalf("expected image + prompt parts, got %d", len(parts))
	}
	if parts[0].InlineData == nil || parts[0].InlineData.MimeType != "image/jpeg" {
		t.Errorf("inline data = %+v", parts[0].InlineData)
	}
	if parts[0].InlineData.Data == "" {
		t.Error("expected base64 image payload")
	}
}

func TestGeminiProvider_APIError(t *testing.T) {
	p, _ := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error": {"code": 429, "message": "quota exceeded", "status": "RESOURCE_EXHAUSTED"}}`))
	})

	_, err := p.Advise(context.Background(), "salut", nil)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "quota exceeded") {
		t.Errorf("error should carry the API message, got %v", err)
	}
}

func TestGeminiProvider_NoCandidates(t *testing.T) {
	p, _ := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"candidates": []}`))
	})

	if _, err := p.Advise(context.Background(), "salut", nil); err == nil {
		t.Error("expected error for empty candidate list")
	}
}

func TestGeminiProvider_MissingKey(t *testing.T) {
	p := NewGeminiProvider(&types.LLMConfig{}, "")
	if _, err := p.Advise(context.Background(), "salut", nil); err == nil {
		t.Error("expected error when the API key is unset")
	}
}

func TestNewProvider(t *testing.T) {
	cfg := &types.AppConfig{LLM: types.LLMConfig{Provider: "gemini", APIKey: "k"}}
	if _, err := NewProvider(cfg); err != nil {
		t.Errorf("NewProvider() error = %v", err)
	}

	cfg.LLM.APIKey = ""
	if _, err := NewProvider(cfg); err == nil {
		t.Error("expected error when API key is missing")
	}

	cfg.LLM = types.LLMConfig{Provider: "openai", APIKey: "k"}
	if _, err := NewProvider(cfg); err == nil {
		t.Error("expected error for unsupported provider")
	}
}
