package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractText_GeminiShape(t *testing.T) {
	raw := `{"candidates":[{"content":{"parts":[{"text":"hello from gemini"}]}}]}`
	assert.Equal(t, "hello from gemini", extractText([]byte(raw)))
}

func TestExtractText_OpenAIShape(t *testing.T) {
	raw := `{"choices":[{"message":{"role":"assistant","content":"hello from openai"}}]}`
	assert.Equal(t, "hello from openai", extractText([]byte(raw)))
}

func TestExtractText_SingleMessageShape(t *testing.T) {
	raw := `{"model":"llama3","message":{"role":"assistant","content":"hello from ollama"},"done":true}`
	assert.Equal(t, "hello from ollama", extractText([]byte(raw)))
}

func TestExtractText_StreamingTranscript(t *testing.T) {
	raw := strings.Join([]string{
		`{"message":{"content":"hel"}}`,
		`not json at all`,
		`{"message":{"content":"lo "}}`,
		``,
		`{"message":{"content":"world"}}`,
	}, "\n")
	assert.Equal(t, "hello world", extractText([]byte(raw)))
}

func TestExtractText_EmptyCandidates(t *testing.T) {
	assert.Equal(t, "", extractText([]byte(`{"candidates":[]}`)))
	assert.Equal(t, "", extractText([]byte(`{"choices":[]}`)))
}

func TestExtractText_UnknownShapePassedThrough(t *testing.T) {
	raw := `just some plain prose the model emitted`
	assert.Equal(t, raw, extractText([]byte(raw)))
}

func TestExtractText_RawBodyTruncated(t *testing.T) {
	raw := strings.Repeat("x", maxRawReplyBytes+500)
	got := extractText([]byte(raw))
	assert.Len(t, got, maxRawReplyBytes)
}

func TestBuildRequest_Gemini(t *testing.T) {
	url, headers, body, err := buildRequest("https://generativelanguage.googleapis.com/v1beta/models", "gemini-pro", "key-123", "hi")
	require.NoError(t, err)

	assert.Equal(t, "https://generativelanguage.googleapis.com/v1beta/models/gemini-pro:generateContent", url)
	assert.Equal(t, "key-123", headers["X-goog-api-key"])
	assert.NotContains(t, headers, "Authorization")

	var payload geminiRequest
	require.NoError(t, json.Unmarshal(body, &payload))
	require.Len(t, payload.Contents, 1)
	require.Len(t, payload.Contents[0].Parts, 1)
	assert.Equal(t, "hi", payload.Contents[0].Parts[0].Text)
}

func TestBuildRequest_Ollama(t *testing.T) {
	url, headers, body, err := buildRequest("http://localhost:11434", "llama3", "", "hi")
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:11434/api/chat", url)
	assert.NotContains(t, headers, "Authorization")

	var payload chatRequest
	require.NoError(t, json.Unmarshal(body, &payload))
	assert.Equal(t, "llama3", payload.Model)
	require.Len(t, payload.Messages, 1)
	assert.Equal(t, "user", payload.Messages[0].Role)
	assert.Equal(t, "hi", payload.Messages[0].Content)
}

func TestBuildRequest_GenericChat(t *testing.T) {
	url, headers, _, err := buildRequest("https://api.example.com/v1", "gpt-4o", "secret", "hi")
	require.NoError(t, err)

	assert.Equal(t, "https://api.example.com/v1/chat", url)
	assert.Equal(t, "Bearer secret", headers["Authorization"])
}

func TestHTTPClient_Complete(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/chat", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"generated plan"}}]}`))
	}))
	defer server.Close()

	client := NewHTTPClient(Config{BaseURL: server.URL, Model: "test-model", APIKey: "test-key"})
	text, err := client.Complete(context.Background(), "make me a plan")
	require.NoError(t, err)
	assert.Equal(t, "generated plan", text)
}

func TestHTTPClient_Complete_ErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream exploded", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewHTTPClient(Config{BaseURL: server.URL, Model: "test-model"})
	_, err := client.Complete(context.Background(), "prompt")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrProvider)
}

func TestHTTPClient_Complete_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		_, _ = w.Write([]byte(`{"message":{"content":"late"}}`))
	}))
	defer server.Close()

	client := NewHTTPClient(Config{BaseURL: server.URL, Model: "test-model", Timeout: 20 * time.Millisecond})
	_, err := client.Complete(context.Background(), "prompt")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrProvider)
}

func TestPromptSet(t *testing.T) {
	overrides := map[string]string{
		"fitness": "custom fitness prompt",
		"extra":   "brand new agent",
		"coding":  "",
	}
	set := NewPromptSet(overrides)

	assert.Equal(t, "custom fitness prompt", set.Get("fitness"))
	assert.Equal(t, "brand new agent", set.Get("extra"))
	assert.Equal(t, defaultPrompts["coding"], set.Get("coding"))
	assert.Equal(t, defaultPrompts["general"], set.Get("nope-no-such-agent"))

	// Mutating the override map afterwards must not leak into the set.
	overrides["fitness"] = "mutated"
	assert.Equal(t, "custom fitness prompt", set.Get("fitness"))
}
