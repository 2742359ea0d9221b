package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client talks to a Gemini-style generateContent REST API. It is constructed
// once at startup and shared across requests; per-conversation state lives in
// Chat values.
type Client struct {
	httpClient *http.Client
	apiKey     string
	baseURL    string
	model      string
	timeout    time.Duration
}

func NewClient(httpClient *http.Client, apiKey, baseURL, model string, timeout time.Duration) *Client {
	return &Client{
		httpClient: httpClient,
		apiKey:     apiKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		model:      model,
		timeout:    timeout,
	}
}

// content / generateRequest / generateResponse mirror the API shapes.
type part struct {
	Text string `json:"text"`
}

type content struct {
	Role  string `json:"role"`
	Parts []part `json:"parts"`
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// Chat is one multi-turn conversation. Each Send posts the full history, so
// later turns see earlier ones without repeating them. Not safe for
// concurrent use; a Chat belongs to a single request.
type Chat struct {
	client  *Client
	history []content
}

// StartChat opens a fresh conversation.
func (c *Client) StartChat() *Chat {
	return &Chat{client: c}
}

// Send posts the message together with the accumulated history and returns
// the model's reply, which is also appended to the history.
func (ch *Chat) Send(ctx context.Context, message string) (string, error) {
	ch.history = append(ch.history, content{
		Role:  "user",
		Parts: []part{{Text: message}},
	})

	reply, err := ch.client.generate(ctx, ch.history)
	if err != nil {
		// Drop the unanswered turn so a caller-side retry starts clean.
		ch.history = ch.history[:len(ch.history)-1]
		return "", err
	}

	ch.history = append(ch.history, content{
		Role:  "model",
		Parts: []part{{Text: reply}},
	})

	return reply, nil
}

func (c *Client) generate(ctx context.Context, history []content) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("api key not configured")
	}

	body, err := json.Marshal(generateRequest{Contents: history})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("http call: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("upstream status %d: %s", resp.StatusCode, string(respBody))
	}

	var genResp generateResponse
	if err := json.Unmarshal(respBody, &genResp); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}

	if len(genResp.Candidates) == 0 || len(genResp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no candidates in response")
	}

	var b strings.Builder
	for _, p := range genResp.Candidates[0].Content.Parts {
		b.WriteString(p.Text)
	}

	return strings.TrimSpace(b.String()), nil
}
