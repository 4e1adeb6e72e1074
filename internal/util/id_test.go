package util

import (
	"errors"
	"testing"

	"github.com/agroplan/agroplan/models"
)

func TestShortID(t *testing.T) {
	full := "123e4567-e89b-42d3-a456-426614174000"
	if got := ShortID(full, 0); got != "123e4567" {
		t.Errorf("ShortID(0) = %q", got)
	}
	if got := ShortID(full, 12); got != "123e4567-e89" {
		t.Errorf("ShortID(12) = %q", got)
	}
	if got := ShortID("short", 0); got != "short" {
		t.Errorf("ShortID() = %q", got)
	}
}

func TestResolveCropID(t *testing.T) {
	crops := []models.Crop{
		{ID: "123e4567-e89b-42d3-a456-426614174000"},
		{ID: "129f4567-e89b-42d3-a456-426614174000"},
		{ID: "aaae4567-e89b-42d3-a456-426614174000"},
	}

	got, err := ResolveCropID(crops, "aaa")
	if err != nil {
		t.Fatalf("ResolveCropID() error = %v", err)
	}
	if got != crops[2].ID {
		t.Errorf("ResolveCropID() = %q", got)
	}

	// Exact match wins even when other IDs share the prefix.
	got, err = ResolveCropID(crops, crops[0].ID)
	if err != nil {
		t.Fatalf("ResolveCropID() error = %v", err)
	}
	if got != crops[0].ID {
		t.Errorf("ResolveCropID() = %q", got)
	}

	if _, err := ResolveCropID(crops, "12"); !errors.Is(err, ErrAmbiguousID) {
		t.Errorf("expected ErrAmbiguousID, got %v", err)
	}
	if _, err := ResolveCropID(crops, "zzz"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if _, err := ResolveCropID(crops, ""); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for empty input, got %v", err)
	}
}

func TestResolveTaskID(t *testing.T) {
	tasks := []models.PlannedTask{
		{ID: "111e4567-e89b-42d3-a456-426614174000"},
		{ID: "222e4567-e89b-42d3-a456-426614174000"},
	}

	got, err := ResolveTaskID(tasks, "222")
	if err != nil {
		t.Fatalf("ResolveTaskID() error = %v", err)
	}
	if got != tasks[1].ID {
		t.Errorf("ResolveTaskID() = %q", got)
	}

	if _, err := ResolveTaskID(tasks, "999"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
