package llm

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/agroplan/agroplan/models"
	"github.com/agroplan/agroplan/types"
)

// fakeProvider scripts advisory replies for session tests.
type fakeProvider struct {
	mu      sync.Mutex
	answers []string
	err     error
	calls   int
}

func (f *fakeProvider) GenerateSchedule(ctx context.Context, req types.ScheduleRequest) ([]types.TaskTemplate, error) {
	return nil, errors.New("not scripted")
}

func (f *fakeProvider) Advise(ctx context.Context, prompt string, history []models.ChatMessage) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	if len(f.answers) == 0 {
		return "raspuns", nil
	}
	answer := f.answers[0]
	f.answers = f.answers[1:]
	return answer, nil
}

func (f *fakeProvider) Recommend(ctx context.Context, location, soil, month string) (string, error) {
	return "", errors.New("not scripted")
}

func (f *fakeProvider) DiagnosePlant(ctx context.Context, imageData []byte, mimeType string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return "diagnostic", nil
}

func TestSession_StartsWithGreeting(t *testing.T) {
	s := NewSession(&fakeProvider{})
	msgs := s.Messages()
	if len(msgs) != 1 {
		t.Fatalf("expected 1 message, got %d", len(msgs))
	}
	if msgs[0].Role != models.RoleModel || msgs[0].Content != Greeting {
		t.Errorf("unexpected opening message: %+v", msgs[0])
	}
}

func TestSession_AskRecordsExchange(t *testing.T) {
	s := NewSession(&fakeProvider{answers: []string{"Uda seara."}})

	reply := s.Ask(context.Background(), "Cand ud cartofii?")
	if reply != "Uda seara." {
		t.Errorf("reply = %q", reply)
	}

	msgs := s.Messages()
	if len(msgs) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(msgs))
	}
	if msgs[1].Role != models.RoleUser || msgs[1].Content != "Cand ud cartofii?" {
		t.Errorf("user turn = %+v", msgs[1])
	}
	if msgs[2].Role != models.RoleModel || msgs[2].Content != "Uda seara." {
		t.Errorf("model turn = %+v", msgs[2])
	}
}

func TestSession_AskFallbackOnError(t *testing.T) {
	s := NewSession(&fakeProvider{err: errors.New("boom")})

	reply := s.Ask(context.Background(), "salut")
	if reply != FallbackAnswer {
		t.Errorf("reply = %q, want fallback", reply)
	}

	// The failed exchange still lands in the transcript.
	msgs := s.Messages()
	if len(msgs) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(msgs))
	}
	if msgs[2].Content != FallbackAnswer {
		t.Errorf("model turn = %q", msgs[2].Content)
	}
}

func TestSession_DiagnoseFallbackOnError(t *testing.T) {
	s := NewSession(&fakeProvider{err: errors.New("boom")})

	reply := s.Diagnose(context.Background(), []byte{1, 2, 3}, "image/png")
	if reply != FallbackDiagnose {
		t.Errorf("reply = %q, want fallback", reply)
	}
}

func TestSession_Reset(t *testing.T) {
	s := NewSession(&fakeProvider{})
	s.Ask(context.Background(), "intrebare")
	s.Reset()

	msgs := s.Messages()
	if len(msgs) != 1 || msgs[0].Content != Greeting {
		t.Errorf("expected transcript reset to greeting, got %d messages", len(msgs))
	}
}

func TestSession_BoundsTranscript(t *testing.T) {
	s := NewSession(&fakeProvider{})
	for i := 0; i < maxSessionMessages; i++ {
		s.Ask(context.Background(), fmt.Sprintf("intrebare %d", i))
	}

	msgs := s.Messages()
	if len(msgs) != maxSessionMessages {
		t.Fatalf("expected transcript capped at %d, got %d", maxSessionMessages, len(msgs))
	}
	if msgs[0].Content != Greeting {
		t.Error("greeting should survive trimming")
	}
	last := msgs[len(msgs)-1]
	if last.Role != models.RoleModel {
		t.Errorf("last message role = %q", last.Role)
	}
}

func TestSession_ConcurrentAsks(t *testing.T) {
	fake := &fakeProvider{}
	s := NewSession(fake)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			s.Ask(context.Background(), fmt.Sprintf("intrebare %d", n))
		}(i)
	}
	wg.Wait()

	msgs := s.Messages()
	if len(msgs) != 21 {
		t.Fatalf("expected 21 messages, got %d", len(msgs))
	}
	// Every user turn is immediately followed by a model turn.
	for i := 1; i < len(msgs); i += 2 {
		if msgs[i].Role != models.RoleUser || msgs[i+1].Role != models.RoleModel {
			t.Fatalf("transcript not alternating at %d: %q then %q", i, msgs[i].Role, msgs[i+1].Role)
		}
	}
}
