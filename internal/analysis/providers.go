package analysis

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/baiwei666/CineTrack/internal/model"
)

// adapter maps one provider's wire shape onto a plain prompt-in /
// raw-text-out contract.
type adapter interface {
	buildRequest(ctx context.Context, settings model.AppSettings, p prompt) (*http.Request, error)
	parseResponse(resp *http.Response) (string, error)
}

func (o *Orchestrator) adapterFor(provider string) (adapter, bool) {
	switch provider {
	case model.ProviderOpenAI:
		return &chatAdapter{endpoint: o.Endpoints[model.ProviderOpenAI], defaultModel: "gpt-3.5-turbo"}, true
	case model.ProviderDeepSeek:
		return &chatAdapter{endpoint: o.Endpoints[model.ProviderDeepSeek], defaultModel: "deepseek-chat"}, true
	case model.ProviderGemini:
		return &geminiAdapter{base: o.Endpoints[model.ProviderGemini], defaultModel: "gemini-1.5-flash"}, true
	default:
		return nil, false
	}
}

// apiError is the error envelope both provider families use.
type apiError struct {
	Error struct {
		Message string          `json:"message"`
		Code    json.RawMessage `json:"code"`
	} `json:"error"`
}

// transportError extracts the provider's reported message from a non-ok
// body, falling back to a generic one.
func transportError(status int, body []byte) error {
	var ae apiError
	if err := json.Unmarshal(body, &ae); err == nil {
		if ae.Error.Message != "" {
			return fmt.Errorf("%s", ae.Error.Message)
		}
		if len(ae.Error.Code) > 0 {
			return fmt.Errorf("provider error %s", ae.Error.Code)
		}
	}
	return fmt.Errorf("API request failed with status %d", status)
}

// chatAdapter covers the chat-completions shape shared by OpenAI and
// DeepSeek: system+user messages in, choices[0].message.content out,
// bearer-token auth.
type chatAdapter struct {
	endpoint     string
	defaultModel string
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (a *chatAdapter) buildRequest(ctx context.Context, settings model.AppSettings, p prompt) (*http.Request, error) {
	m := settings.AIModel
	if m == "" {
		m = a.defaultModel
	}
	body, err := json.Marshal(chatRequest{
		Model: m,
		Messages: []chatMessage{
			{Role: "system", Content: p.system},
			{Role: "user", Content: p.user},
		},
		Temperature: 0.7,
	})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+settings.AIAPIKey)
	return req, nil
}

func (a *chatAdapter) parseResponse(resp *http.Response) (string, error) {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", transportError(resp.StatusCode, body)
	}
	var cr chatResponse
	if err := json.Unmarshal(body, &cr); err != nil {
		return "", err
	}
	if len(cr.Choices) == 0 {
		return "", fmt.Errorf("response contained no choices")
	}
	return cr.Choices[0].Message.Content, nil
}

// geminiAdapter covers the generateContent shape: one concatenated text
// part in, candidates[0].content.parts[0].text out, key passed as a query
// parameter with no auth header.
type geminiAdapter struct {
	base         string
	defaultModel string
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

func (a *geminiAdapter) buildRequest(ctx context.Context, settings model.AppSettings, p prompt) (*http.Request, error) {
	m := settings.AIModel
	if m == "" {
		m = a.defaultModel
	}
	body, err := json.Marshal(geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: p.system + "\n\n" + p.user}}}},
	})
	if err != nil {
		return nil, err
	}
	endpoint := fmt.Sprintf("%s/%s:generateContent?key=%s", a.base, m, url.QueryEscape(settings.AIAPIKey))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

func (a *geminiAdapter) parseResponse(resp *http.Response) (string, error) {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", transportError(resp.StatusCode, body)
	}
	var gr geminiResponse
	if err := json.Unmarshal(body, &gr); err != nil {
		return "", err
	}
	if len(gr.Candidates) == 0 || len(gr.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("response contained no candidates")
	}
	return gr.Candidates[0].Content.Parts[0].Text, nil
}
