package llm

import (
	"context"
	"sync"
	"time"

	"github.com/agroplan/agroplan/models"
)

// Fallback strings shown when the advisory model cannot be reached or
// returns garbage. The conversation keeps going either way.
const (
	FallbackAnswer    = "Eroare la procesare. Incearca din nou."
	FallbackRecommend = "Nu am putut genera recomandari."
	FallbackDiagnose  = "Imaginea nu a putut fi analizata."

	// Greeting opens every new advisory session.
	Greeting = "Pune o intrebare despre culturi sau trimite o poza cu o planta."
)

// maxSessionMessages bounds the transcript kept in memory. The greeting is
// always preserved as the first entry.
const maxSessionMessages = 40

// Session holds an advisory conversation. Exchanges are serialized so the
// transcript stays an alternating user/model sequence.
type Session struct {
	mu       sync.Mutex
	provider Provider
	messages []models.ChatMessage
}

// NewSession starts a conversation seeded with the greeting.
func NewSession(provider Provider) *Session {
	return &Session{
		provider: provider,
		messages: []models.ChatMessage{{Role: models.RoleModel, Content: Greeting}},
	}
}

// Ask sends a question and returns the model's reply. Provider failures
// degrade to a fallback message recorded in the transcript, never an error.
func (s *Session) Ask(ctx context.Context, question string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	history := make([]models.ChatMessage, len(s.messages))
	copy(history, s.messages)

	reply, err := s.provider.Advise(ctx, question, history)
	if err != nil || reply == "" {
		reply = FallbackAnswer
	}

	s.append(models.ChatMessage{Role: models.RoleUser, Content: question})
	s.append(models.ChatMessage{Role: models.RoleModel, Content: reply})
	return reply
}

// Diagnose sends a plant photo for analysis. The result is recorded in the
// transcript so followup questions can reference it.
func (s *Session) Diagnose(ctx context.Context, imageData []byte, mimeType string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	reply, err := s.provider.DiagnosePlant(ctx, imageData, mimeType)
	if err != nil || reply == "" {
		reply = FallbackDiagnose
	}

	s.append(models.ChatMessage{Role: models.RoleUser, Content: "[imagine trimisa]"})
	s.append(models.ChatMessage{Role: models.RoleModel, Content: reply})
	return reply
}

// Messages returns a copy of the transcript in order.
func (s *Session) Messages() []models.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.ChatMessage, len(s.messages))
	copy(out, s.messages)
	return out
}

// Reset drops the transcript back to the opening greeting.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = []models.ChatMessage{{Role: models.RoleModel, Content: Greeting}}
}

// append adds a message, trimming the oldest exchanges past the bound while
// keeping the greeting in place. Callers must hold the mutex.
func (s *Session) append(msg models.ChatMessage) {
	if msg.Timestamp.IsZero() {
		msg.Timestamp = time.Now()
	}
	s.messages = append(s.messages, msg)
	if len(s.messages) > maxSessionMessages {
		overflow := len(s.messages) - maxSessionMessages
		trimmed := make([]models.ChatMessage, 0, maxSessionMessages)
		trimmed = append(trimmed, s.messages[0])
		trimmed = append(trimmed, s.messages[1+overflow:]...)
		s.messages = trimmed
	}
}
