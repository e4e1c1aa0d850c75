package generate

import (
	"context"
	"errors"
	"testing"

	"github.com/google/generative-ai-go/genai"
)

func TestBuildHistory(t *testing.T) {
	got := BuildHistory([]Message{
		{Role: "user", Content: "hi"},
		{Role: "assistant", Content: "hello"},
		{Role: "user", Content: ""},
		{Role: "bot", Content: "again"},
	})
	if len(got) != 3 {
		t.Fatalf("expected 3 contents, got %d", len(got))
	}
	roles := []string{"user", "model", "model"}
	for i, c := range got {
		if c.Role != roles[i] {
			t.Fatalf("content %d: role %q want %q", i, c.Role, roles[i])
		}
	}
	if text, ok := got[1].Parts[0].(genai.Text); !ok || text != "hello" {
		t.Fatalf("unexpected part: %#v", got[1].Parts[0])
	}
}

func TestFirstText(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []genai.Part{genai.Text(""), genai.Text("answer")}},
		}},
	}
	text, err := FirstText(resp)
	if err != nil || text != "answer" {
		t.Fatalf("FirstText = %q, %v", text, err)
	}

	empty := []*genai.GenerateContentResponse{
		nil,
		{},
		{Candidates: []*genai.Candidate{{}}},
		{Candidates: []*genai.Candidate{{Content: &genai.Content{}}}},
	}
	for i, r := range empty {
		if _, err := FirstText(r); !errors.Is(err, ErrEmptyResponse) {
			t.Fatalf("case %d: expected ErrEmptyResponse, got %v", i, err)
		}
	}
}

func TestNewClientRequiresKey(t *testing.T) {
	if _, err := NewClient(context.Background(), " ", "gemini-2.5-flash", 0); !errors.Is(err, ErrMissingAPIKey) {
		t.Fatalf("expected ErrMissingAPIKey, got %v", err)
	}
}
