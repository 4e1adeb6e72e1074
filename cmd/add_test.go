package cmd

import (
	"testing"

	"github.com/agroplan/agroplan/models"
)

func TestResolvePlantedDate(t *testing.T) {
	got, err := resolvePlantedDate("2025-04-01")
	if err != nil {
		t.Fatalf("resolvePlantedDate() error = %v", err)
	}
	if got.String() != "2025-04-01" {
		t.Errorf("resolvePlantedDate() = %q", got)
	}

	today, err := resolvePlantedDate("")
	if err != nil {
		t.Fatalf("resolvePlantedDate() error = %v", err)
	}
	if !today.Equal(models.Today()) {
		t.Errorf("empty input should default to today, got %q", today)
	}

	if _, err := resolvePlantedDate("01.04.2025"); err == nil {
		t.Error("expected error for non-ISO date")
	}
}

func TestResolveSoilType(t *testing.T) {
	got, err := resolveSoilType("lutos")
	if err != nil {
		t.Fatalf("resolveSoilType() error = %v", err)
	}
	if got != models.SoilLoamy {
		t.Errorf("resolveSoilType() = %q", got)
	}

	if _, err := resolveSoilType("vulcanic"); err == nil {
		t.Error("expected error for unknown soil type")
	}
}

func TestDetectImageMime(t *testing.T) {
	cases := map[string]string{
		"plant.PNG":  "image/png",
		"plant.webp": "image/webp",
		"plant.jpg":  "image/jpeg",
		"plant":      "image/jpeg",
	}
	for path, want := range cases {
		if got := detectImageMime(path); got != want {
			t.Errorf("detectImageMime(%q) = %q, want %q", path, got, want)
		}
	}
}
