package llm

import (
	"encoding/json"
	"fmt"

	"github.com/sashabaranov/go-openai"
)

// buildChatCompletionRequest constructs an OpenAI-style chat completion
// request: the full prior history plus the new user message appended last,
// with the secret carried as a bearer authorization header. The wire shapes
// come from the go-openai package; marshaling here keeps the raw exchange
// visible to the interpreter.
func buildChatCompletionRequest(cfg ProviderConfig, history []Message, text, secret string) (*Request, error) {
	messages := make([]openai.ChatCompletionMessage, 0, len(history)+1)
	for _, msg := range history {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    msg.Role,
			Content: msg.Content,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: text,
	})

	body, err := json.Marshal(openai.ChatCompletionRequest{
		Model:       cfg.DefaultModel,
		Messages:    messages,
		MaxTokens:   defaultMaxTokens,
		Temperature: defaultTemperature,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	return &Request{
		URL: cfg.Endpoint,
		Headers: map[string]string{
			"Content-Type":  "application/json",
			"Authorization": "Bearer " + secret,
		},
		Body: body,
	}, nil
}

// interpretChatCompletionReply extracts the assistant text from a successful
// chat completion response.
func interpretChatCompletionReply(body []byte) string {
	var resp openai.ChatCompletionResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return fallbackReply
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return fallbackReply
	}
	return resp.Choices[0].Message.Content
}

// interpretChatCompletionError classifies a failed chat completion response
// using the status plus the provider-supplied error code where present.
func interpretChatCompletionError(cfg ProviderConfig, status int, body []byte) *ChatError {
	var errResp openai.ErrorResponse
	_ = json.Unmarshal(body, &errResp)

	var code, message string
	if errResp.Error != nil {
		message = errResp.Error.Message
		if s, ok := errResp.Error.Code.(string); ok {
			code = s
		}
	}
	return classify(cfg, status, code, message)
}
