package llm

import (
	"encoding/json"
	"fmt"
	"net/url"
)

// geminiContent represents content in Gemini's format.
type geminiContent struct {
	Parts []geminiPart `json:"parts"`
	Role  string       `json:"role,omitempty"`
}

// geminiPart represents a part of content.
type geminiPart struct {
	Text string `json:"text,omitempty"`
}

// geminiRequest represents a generateContent request body.
type geminiRequest struct {
	Contents         []geminiContent         `json:"contents"`
	GenerationConfig *geminiGenerationConfig `json:"generationConfig,omitempty"`
}

// geminiGenerationConfig represents generation configuration.
type geminiGenerationConfig struct {
	Temperature     float64 `json:"temperature,omitempty"`
	MaxOutputTokens int     `json:"maxOutputTokens,omitempty"`
}

// geminiResponse represents a generateContent success response.
type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
			Role  string       `json:"role"`
		} `json:"content"`
		FinishReason string `json:"finishReason"`
	} `json:"candidates"`
}

// geminiErrorResponse represents a generateContent failure body.
type geminiErrorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// buildGenerateContentRequest constructs a Gemini-style request. Only the new
// user text is sent as a single content part; prior history is deliberately
// not included. The secret travels as a URL query parameter rather than a
// header.
func buildGenerateContentRequest(cfg ProviderConfig, text, secret string) (*Request, error) {
	body, err := json.Marshal(geminiRequest{
		Contents: []geminiContent{
			{Parts: []geminiPart{{Text: text}}},
		},
		GenerationConfig: &geminiGenerationConfig{
			Temperature:     defaultTemperature,
			MaxOutputTokens: defaultMaxTokens,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent?key=%s",
		cfg.Endpoint, cfg.DefaultModel, url.QueryEscape(secret))

	return &Request{
		URL: endpoint,
		Headers: map[string]string{
			"Content-Type": "application/json",
		},
		Body: body,
	}, nil
}

// interpretGenerateContentReply extracts the assistant text from a successful
// generateContent response.
func interpretGenerateContentReply(body []byte) string {
	var resp geminiResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return fallbackReply
	}
	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return fallbackReply
	}
	if text := resp.Candidates[0].Content.Parts[0].Text; text != "" {
		return text
	}
	return fallbackReply
}

// interpretGenerateContentError classifies a failed generateContent response.
// Gemini error bodies carry only a message, so classification leans on the
// status and message text.
func interpretGenerateContentError(cfg ProviderConfig, status int, body []byte) *ChatError {
	var errResp geminiErrorResponse
	_ = json.Unmarshal(body, &errResp)
	return classify(cfg, status, errResp.Error.Status, errResp.Error.Message)
}
