package llm

// Message is a single turn of conversation history as sent on the wire.
type Message struct {
	Role    string `json:"role"` // "user" or "assistant"
	Content string `json:"content"`
}

// Role values accepted in outbound requests.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Request is a fully constructed provider HTTP request, ready to dispatch.
// The builder only constructs values; performing the call and reading the
// response belong to the orchestrator.
type Request struct {
	URL     string
	Headers map[string]string
	Body    []byte
}

// Fixed generation parameters attached to every request.
const (
	defaultMaxTokens   = 1024
	defaultTemperature = 0.7
)

// fallbackReply is used when a provider returns a success status but the
// expected reply field is missing or empty. The transcript stays non-blocking
// instead of surfacing a parse failure.
const fallbackReply = "(The provider returned an empty response. Please try again.)"
