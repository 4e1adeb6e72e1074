package prompts

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/agroplan/agroplan/types"
)

func TestGetPrompt_DefaultWhenNoTemplatesDir(t *testing.T) {
	got, err := GetPrompt(KeySystemRules, "")
	if err != nil {
		t.Fatalf("GetPrompt() error = %v", err)
	}
	if got != SystemRules {
		t.Errorf("expected default system rules, got %q", got)
	}
}

func TestGetPrompt_CustomFileOverride(t *testing.T) {
	dir := t.TempDir()
	custom := "raspunde mereu cu un proverb"
	if err := os.WriteFile(filepath.Join(dir, "diagnose_prompt.txt"), []byte(custom), 0644); err != nil {
		t.Fatal(err)
	}

	got, err := GetPrompt(KeyDiagnose, dir)
	if err != nil {
		t.Fatalf("GetPrompt() error = %v", err)
	}
	if got != custom {
		t.Errorf("GetPrompt() = %q, want %q", got, custom)
	}

	// A key without a custom file still falls back to the default.
	got, err = GetPrompt(KeySystemRules, dir)
	if err != nil {
		t.Fatalf("GetPrompt() error = %v", err)
	}
	if got != SystemRules {
		t.Errorf("expected default system rules, got %q", got)
	}
}

func TestGetPrompt_UnknownKey(t *testing.T) {
	if _, err := GetPrompt(PromptKey("Nope"), ""); err == nil {
		t.Error("expected error for unknown prompt key")
	}
}

func TestSchedulePrompt(t *testing.T) {
	ph := 6.5
	req := types.ScheduleRequest{
		CropName:    "Rosii",
		Variety:     "Cherry",
		PlantedDate: "2025-04-01",
		SoilType:    "Lutos",
		SoilPH:      &ph,
		SoilTexture: "fin",
	}
	got := SchedulePrompt(req)
	for _, want := range []string{"Rosii Cherry", "Lutos", "pH 6.5", "textura fin", "2025-04-01"} {
		if !strings.Contains(got, want) {
			t.Errorf("SchedulePrompt() = %q, missing %q", got, want)
		}
	}

	minimal := SchedulePrompt(types.ScheduleRequest{
		CropName:    "Grau",
		PlantedDate: "2025-10-10",
		SoilType:    "Argilos",
	})
	if strings.Contains(minimal, "(") {
		t.Errorf("minimal prompt should not carry soil extras: %q", minimal)
	}
	if !strings.Contains(minimal, "Grau in sol Argilos") {
		t.Errorf("SchedulePrompt() = %q", minimal)
	}
}

func TestRecommendPrompt(t *testing.T) {
	got := RecommendPrompt("Cluj", "Nisipos", "aprilie")
	for _, want := range []string{"Cluj", "Nisipos", "aprilie"} {
		if !strings.Contains(got, want) {
			t.Errorf("RecommendPrompt() = %q, missing %q", got, want)
		}
	}
}
