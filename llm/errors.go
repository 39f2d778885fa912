package llm

import (
	"fmt"
	"strings"
)

// ErrorKind classifies a failed chat request.
type ErrorKind int

const (
	// InvalidCredential means the provider rejected the API key.
	InvalidCredential ErrorKind = iota
	// QuotaExceeded means the account has exhausted its allotted usage.
	QuotaExceeded
	// RateLimited means the provider signalled too many requests.
	RateLimited
	// ProviderFailure covers any other provider-reported error.
	ProviderFailure
	// TransportFailure means the network call itself did not complete.
	TransportFailure
)

// String returns a short name for logging.
func (k ErrorKind) String() string {
	switch k {
	case InvalidCredential:
		return "invalid_credential"
	case QuotaExceeded:
		return "quota_exceeded"
	case RateLimited:
		return "rate_limited"
	case TransportFailure:
		return "transport_failure"
	default:
		return "provider_error"
	}
}

// ChatError is a classified request failure. Message carries the
// provider-supplied text verbatim when one was available.
type ChatError struct {
	Kind     ErrorKind
	Provider string // display name, used in user-facing messages
	Status   int    // HTTP status, zero for transport failures
	Message  string
}

// Error implements the error interface.
func (e *ChatError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: %s (status %d): %s", e.Provider, e.Kind, e.Status, e.Message)
	}
	return fmt.Sprintf("%s: %s: %s", e.Provider, e.Kind, e.Message)
}

// UserMessage renders the human-readable transcript text for this failure.
// No automatic retry is performed for rate limits; the user resubmits.
func (e *ChatError) UserMessage() string {
	switch e.Kind {
	case InvalidCredential:
		return fmt.Sprintf("%s rejected the API key. Open provider setup and enter a valid key.", e.Provider)
	case QuotaExceeded:
		return fmt.Sprintf("Your %s account is out of quota. Review your plan and billing details on the provider's usage page.", e.Provider)
	case RateLimited:
		return fmt.Sprintf("%s is rate limiting requests. Wait a moment and send your message again.", e.Provider)
	case TransportFailure:
		return fmt.Sprintf("Could not reach %s. Check your network connection and try again.", e.Provider)
	default:
		return fmt.Sprintf("%s returned an error (status %d): %s", e.Provider, e.Status, e.Message)
	}
}

// TransportError wraps a failure of the network call itself (DNS, connection
// or timeout-level), which never produced an HTTP status.
func TransportError(cfg ProviderConfig, err error) *ChatError {
	return &ChatError{
		Kind:     TransportFailure,
		Provider: cfg.DisplayName,
		Message:  err.Error(),
	}
}

// classify maps an HTTP status plus an optional provider error code and
// message onto an error kind. Unknown combinations fall back to
// ProviderFailure carrying whatever the provider supplied.
func classify(cfg ProviderConfig, status int, code, message string) *ChatError {
	var kind ErrorKind
	switch {
	case status == 401 || status == 403:
		kind = InvalidCredential
	case status == 429 && (code == "insufficient_quota" || code == "RESOURCE_EXHAUSTED" ||
		strings.Contains(strings.ToLower(message), "quota")):
		kind = QuotaExceeded
	case status == 429:
		kind = RateLimited
	default:
		kind = ProviderFailure
	}
	if message == "" {
		message = "Unknown error"
	}
	return &ChatError{
		Kind:     kind,
		Provider: cfg.DisplayName,
		Status:   status,
		Message:  message,
	}
}
