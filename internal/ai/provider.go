package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// ErrProvider indicates the completion endpoint failed or returned an
// unusable response.
var ErrProvider = errors.New("completion provider error")

// Bound on how much of an unrecognized response body is passed through
// as the answer.
const maxRawReplyBytes = 4096

// Client is a text-completion endpoint normalized to plain text.
type Client interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Config holds the connection settings for the completion endpoint.
type Config struct {
	BaseURL string
	Model   string
	APIKey  string
	Timeout time.Duration
}

// HTTPClient talks to an OpenAI-style, Ollama or Gemini-style endpoint,
// picking the request envelope from the configured base URL.
type HTTPClient struct {
	cfg        Config
	httpClient *http.Client
}

// NewHTTPClient creates a completion client. A zero timeout defaults to
// 60 seconds.
func NewHTTPClient(cfg Config) *HTTPClient {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &HTTPClient{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Complete sends the prompt to the configured endpoint and extracts the
// generated text from whichever response shape comes back.
func (c *HTTPClient) Complete(ctx context.Context, prompt string) (string, error) {
	url, headers, body, err := buildRequest(c.cfg.BaseURL, c.cfg.Model, c.cfg.APIKey, prompt)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrProvider, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrProvider, err)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrProvider, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: reading response: %v", ErrProvider, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		logrus.WithFields(logrus.Fields{
			"status": resp.StatusCode,
			"url":    url,
		}).Error("completion endpoint returned error status")
		return "", fmt.Errorf("%w: status %d", ErrProvider, resp.StatusCode)
	}

	return extractText(raw), nil
}

// buildRequest maps the configured provider family to the endpoint URL,
// headers and request body. Routing is by substring match on the base URL.
func buildRequest(baseURL, model, apiKey, prompt string) (string, map[string]string, []byte, error) {
	headers := map[string]string{"Content-Type": "application/json"}

	var url string
	var payload any

	switch {
	case strings.Contains(baseURL, "generativelanguage.googleapis.com"):
		url = baseURL + "/" + model + ":generateContent"
		headers["X-goog-api-key"] = apiKey
		payload = geminiRequest{
			Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
		}
	case strings.Contains(baseURL, "localhost:11434") || strings.Contains(baseURL, "127.0.0.1:11434"):
		url = baseURL + "/api/chat"
		payload = chatRequest{
			Model:    model,
			Messages: []chatMessage{{Role: "user", Content: prompt}},
		}
	default:
		url = baseURL + "/chat"
		if apiKey != "" {
			headers["Authorization"] = "Bearer " + apiKey
		}
		payload = chatRequest{
			Model:    model,
			Messages: []chatMessage{{Role: "user", Content: prompt}},
		}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", nil, nil, err
	}
	return url, headers, body, nil
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// probe captures the top-level keys that identify each known response
// shape. Exactly one is expected to be present.
type probe struct {
	Candidates json.RawMessage `json:"candidates"`
	Choices    json.RawMessage `json:"choices"`
	Message    json.RawMessage `json:"message"`
}

type candidateList []struct {
	Content struct {
		Parts []struct {
			Text string `json:"text"`
		} `json:"parts"`
	} `json:"content"`
}

type choiceList []struct {
	Message struct {
		Content string `json:"content"`
	} `json:"message"`
}

type messageBody struct {
	Content string `json:"content"`
}

// extractText normalizes the known response envelopes to plain text.
// Shapes are tried in priority order: Gemini candidates, OpenAI choices,
// a single chat message object, then a newline-delimited streaming
// transcript. Anything else is passed through raw, truncated.
func extractText(raw []byte) string {
	trimmed := bytes.TrimSpace(raw)

	var p probe
	if err := json.Unmarshal(trimmed, &p); err == nil {
		switch {
		case p.Candidates != nil:
			var candidates candidateList
			if json.Unmarshal(p.Candidates, &candidates) == nil && len(candidates) > 0 {
				if parts := candidates[0].Content.Parts; len(parts) > 0 {
					return parts[0].Text
				}
			}
			return ""
		case p.Choices != nil:
			var choices choiceList
			if json.Unmarshal(p.Choices, &choices) == nil && len(choices) > 0 {
				return choices[0].Message.Content
			}
			return ""
		case p.Message != nil && !bytes.ContainsRune(trimmed, '\n'):
			var msg messageBody
			if json.Unmarshal(p.Message, &msg) == nil {
				return msg.Content
			}
			return ""
		}
	}

	if text, ok := extractStreamLines(trimmed); ok {
		return text
	}

	if len(trimmed) > maxRawReplyBytes {
		trimmed = trimmed[:maxRawReplyBytes]
	}
	return string(trimmed)
}

// extractStreamLines concatenates message content from a streaming
// transcript of one JSON object per line. Unparsable lines are skipped.
func extractStreamLines(raw []byte) (string, bool) {
	var sb strings.Builder
	found := false
	for _, line := range bytes.Split(raw, []byte("\n")) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			continue
		}
		var frag struct {
			Message *messageBody `json:"message"`
		}
		if err := json.Unmarshal(line, &frag); err != nil || frag.Message == nil {
			continue
		}
		sb.WriteString(frag.Message.Content)
		found = true
	}
	return sb.String(), found
}
