package ai

import (
	"context"
	"fmt"
	"testing"
	"unicode/utf8"

	"github.com/go-playground/assert/v2"
)

type stubProvider struct {
	name  string
	text  string
	err   error
	calls int
}

func (s *stubProvider) Name() string { return s.name }

func (s *stubProvider) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	s.calls++
	return s.text, s.err
}

func TestMultiProviderUsesFirstSuccess(t *testing.T) {
	first := &stubProvider{name: "openai", text: "from openai"}
	second := &stubProvider{name: "anthropic", text: "from anthropic"}
	m := NewMultiProvider(first, second)

	got, err := m.Complete(context.Background(), "system", "user")

	assert.Equal(t, nil, err)
	assert.Equal(t, "from openai", got)
	assert.Equal(t, 1, first.calls)
	assert.Equal(t, 0, second.calls)
}

func TestMultiProviderFallsThroughOnError(t *testing.T) {
	first := &stubProvider{name: "openai", err: fmt.Errorf("rate limited")}
	second := &stubProvider{name: "anthropic", text: "from anthropic"}
	m := NewMultiProvider(first, second)

	got, err := m.Complete(context.Background(), "system", "user")

	assert.Equal(t, nil, err)
	assert.Equal(t, "from anthropic", got)
	assert.Equal(t, 1, first.calls)
	assert.Equal(t, 1, second.calls)
}

func TestMultiProviderAllFail(t *testing.T) {
	first := &stubProvider{name: "openai", err: fmt.Errorf("rate limited")}
	second := &stubProvider{name: "gemini", err: fmt.Errorf("quota exhausted")}
	m := NewMultiProvider(first, second)

	_, err := m.Complete(context.Background(), "system", "user")
	if err == nil {
		t.Fatal("expected error when every provider fails")
	}
}

func TestMultiProviderName(t *testing.T) {
	m := NewMultiProvider(
		&stubProvider{name: "openai"},
		&stubProvider{name: "anthropic"},
		&stubProvider{name: "gemini"},
	)

	assert.Equal(t, "Multi[openai+anthropic+gemini]", m.Name())
}

func TestTruncateToLimit(t *testing.T) {
	assert.Equal(t, "short", TruncateToLimit("short", 100))

	long := TruncateToLimit("abcdefghij", 5)
	assert.Equal(t, "abcde\n...[truncated]", long)
}

func TestTruncateToLimitKeepsRuneBoundary(t *testing.T) {
	// "é" is two bytes; a cut at 3 would land in the middle of it.
	got := TruncateToLimit("aaéz", 3)

	assert.Equal(t, "aa\n...[truncated]", got)
	if !utf8.ValidString(got) {
		t.Errorf("truncated content is not valid UTF-8: %q", got)
	}
}

func TestEstimateTokens(t *testing.T) {
	assert.Equal(t, 25, EstimateTokens(string(make([]byte, 100))))
}
