package llm

import (
	"strings"
	"testing"
)

func TestInterpret_ChatCompletionSuccess(t *testing.T) {
	body := `{"choices":[{"message":{"role":"assistant","content":"Hi there"}}]}`

	text, cerr := Interpret(chatCompletionConfig(), 200, []byte(body))
	if cerr != nil {
		t.Fatalf("Unexpected error: %v", cerr)
	}
	if text != "Hi there" {
		t.Errorf("Expected %q, got %q", "Hi there", text)
	}
}

func TestInterpret_ChatCompletionEmptyChoices(t *testing.T) {
	for _, body := range []string{`{"choices":[]}`, `{}`, `not json`} {
		text, cerr := Interpret(chatCompletionConfig(), 200, []byte(body))
		if cerr != nil {
			t.Fatalf("Body %q: unexpected error: %v", body, cerr)
		}
		if text != fallbackReply {
			t.Errorf("Body %q: expected fallback reply, got %q", body, text)
		}
	}
}

func TestInterpret_InvalidCredential(t *testing.T) {
	body := `{"error":{"message":"Incorrect API key provided","type":"invalid_request_error","code":"invalid_api_key"}}`

	_, cerr := Interpret(chatCompletionConfig(), 401, []byte(body))
	if cerr == nil {
		t.Fatal("Expected classification error for 401")
	}
	if cerr.Kind != InvalidCredential {
		t.Errorf("Expected InvalidCredential, got %v", cerr.Kind)
	}
	if !strings.Contains(cerr.UserMessage(), "API key") {
		t.Errorf("User message should mention the API key: %q", cerr.UserMessage())
	}
}

func TestInterpret_QuotaDistinctFromRateLimit(t *testing.T) {
	quotaBody := `{"error":{"message":"You exceeded your current quota","type":"insufficient_quota","code":"insufficient_quota"}}`
	_, quotaErr := Interpret(chatCompletionConfig(), 429, []byte(quotaBody))
	if quotaErr == nil || quotaErr.Kind != QuotaExceeded {
		t.Fatalf("Expected QuotaExceeded, got %+v", quotaErr)
	}
	if !strings.Contains(strings.ToLower(quotaErr.UserMessage()), "billing") {
		t.Errorf("Quota message should direct to billing: %q", quotaErr.UserMessage())
	}

	plainBody := `{"error":{"message":"Rate limit reached","type":"requests","code":"rate_limit_exceeded"}}`
	_, rateErr := Interpret(chatCompletionConfig(), 429, []byte(plainBody))
	if rateErr == nil || rateErr.Kind != RateLimited {
		t.Fatalf("Expected RateLimited, got %+v", rateErr)
	}

	if quotaErr.UserMessage() == rateErr.UserMessage() {
		t.Error("Quota and rate-limit messages must be distinct")
	}
}

func TestInterpret_ProviderErrorCarriesStatusAndMessage(t *testing.T) {
	body := `{"error":{"message":"The server had an error","type":"server_error"}}`

	_, cerr := Interpret(chatCompletionConfig(), 500, []byte(body))
	if cerr == nil || cerr.Kind != ProviderFailure {
		t.Fatalf("Expected ProviderFailure, got %+v", cerr)
	}
	if cerr.Status != 500 {
		t.Errorf("Expected status 500, got %d", cerr.Status)
	}
	if cerr.Message != "The server had an error" {
		t.Errorf("Provider message not carried verbatim: %q", cerr.Message)
	}
	if !strings.Contains(cerr.UserMessage(), "500") {
		t.Errorf("User message should include the status: %q", cerr.UserMessage())
	}
}

func TestInterpret_ProviderErrorWithoutBody(t *testing.T) {
	_, cerr := Interpret(chatCompletionConfig(), 503, nil)
	if cerr == nil || cerr.Kind != ProviderFailure {
		t.Fatalf("Expected ProviderFailure, got %+v", cerr)
	}
	if cerr.Message != "Unknown error" {
		t.Errorf("Expected unknown-error placeholder, got %q", cerr.Message)
	}
}

func TestInterpret_GenerateContentSuccess(t *testing.T) {
	body := `{"candidates":[{"content":{"parts":[{"text":"Hola"}],"role":"model"},"finishReason":"STOP"}]}`

	text, cerr := Interpret(generateContentConfig(), 200, []byte(body))
	if cerr != nil {
		t.Fatalf("Unexpected error: %v", cerr)
	}
	if text != "Hola" {
		t.Errorf("Expected %q, got %q", "Hola", text)
	}
}

func TestInterpret_GenerateContentEmptyCandidates(t *testing.T) {
	text, cerr := Interpret(generateContentConfig(), 200, []byte(`{"candidates":[]}`))
	if cerr != nil {
		t.Fatalf("Unexpected error: %v", cerr)
	}
	if text != fallbackReply {
		t.Errorf("Expected fallback reply, got %q", text)
	}
}

func TestInterpret_GenerateContentInvalidKey(t *testing.T) {
	body := `{"error":{"code":403,"message":"API key not valid. Please pass a valid API key.","status":"PERMISSION_DENIED"}}`

	_, cerr := Interpret(generateContentConfig(), 403, []byte(body))
	if cerr == nil || cerr.Kind != InvalidCredential {
		t.Fatalf("Expected InvalidCredential, got %+v", cerr)
	}
}

func TestInterpret_GenerateContentQuota(t *testing.T) {
	body := `{"error":{"code":429,"message":"You exceeded your current quota.","status":"RESOURCE_EXHAUSTED"}}`

	_, cerr := Interpret(generateContentConfig(), 429, []byte(body))
	if cerr == nil || cerr.Kind != QuotaExceeded {
		t.Fatalf("Expected QuotaExceeded, got %+v", cerr)
	}
}

func TestTransportError(t *testing.T) {
	cerr := TransportError(chatCompletionConfig(), errDialRefused{})
	if cerr.Kind != TransportFailure {
		t.Errorf("Expected TransportFailure, got %v", cerr.Kind)
	}
	if !strings.Contains(cerr.UserMessage(), "network") {
		t.Errorf("Transport message should give connectivity guidance: %q", cerr.UserMessage())
	}
}

type errDialRefused struct{}

func (errDialRefused) Error() string { return "dial tcp: connection refused" }
