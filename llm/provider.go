package llm

import (
	"context"

	"github.com/agroplan/agroplan/models"
	"github.com/agroplan/agroplan/types"
)

// Provider defines the interface for the external advisory model.
// Callers are expected to degrade gracefully on error: a failed schedule
// generation means zero templates, a failed chat turn means a fallback
// message. No Provider error is ever fatal to the crop store.
type Provider interface {
	// GenerateSchedule asks the model for an ordered task template list for
	// the given crop. Template order is the intended task order.
	GenerateSchedule(ctx context.Context, req types.ScheduleRequest) ([]types.TaskTemplate, error)

	// Advise answers a free-text agricultural question, given the bounded
	// conversation history that preceded it.
	Advise(ctx context.Context, prompt string, history []models.ChatMessage) (string, error)

	// Recommend produces crop and care recommendations for a location, soil
	// type, and month.
	Recommend(ctx context.Context, location, soil, month string) (string, error)

	// DiagnosePlant identifies the plant in the image and reports its health.
	DiagnosePlant(ctx context.Context, imageData []byte, mimeType string) (string, error)
}
