package chat

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"
	"sync"

	"overlay-chat/creds"
	"overlay-chat/llm"
	"overlay-chat/utils"
)

// State is the orchestrator's session state.
type State int

const (
	// StateIdle accepts new submissions.
	StateIdle State = iota
	// StateAwaitingCredential blocks submissions until a key is provided for
	// the active provider.
	StateAwaitingCredential
	// StateSubmitting has exactly one request in flight.
	StateSubmitting
)

// String returns a short name for logging.
func (s State) String() string {
	switch s {
	case StateAwaitingCredential:
		return "awaiting_credential"
	case StateSubmitting:
		return "submitting"
	default:
		return "idle"
	}
}

// Orchestrator runs the chat control loop: it accepts user submissions,
// enforces a single in-flight request, builds the provider request, performs
// the network call, interprets the result and appends the outcome to the
// conversation. It is the only component that mutates the conversation or
// the credential store.
type Orchestrator struct {
	registry *llm.Registry
	creds    *creds.Store
	conv     *Conversation
	client   *http.Client
	logger   *utils.Logger
	onChange func()

	mu           sync.Mutex
	state        State
	active       string
	draft        string
	inFlight     bool
	setupVisible bool
}

// NewOrchestrator builds an orchestrator around the given registry and
// credential store. The last-active provider is restored from the store; if
// none was recorded (or it is no longer registered) the first registry entry
// is used. The HTTP client carries no timeout: a hung call keeps the session
// in StateSubmitting until the transport itself resolves.
func NewOrchestrator(registry *llm.Registry, store *creds.Store, logger *utils.Logger) *Orchestrator {
	o := &Orchestrator{
		registry: registry,
		creds:    store,
		conv:     NewConversation(),
		client:   &http.Client{},
		logger:   logger,
	}

	active, ok, err := store.ActiveProvider()
	if err != nil {
		logger.Warn("Failed to read last-active provider: %v", err)
	}
	if !ok {
		active = registry.All()[0].ID
	}
	if _, err := registry.Describe(active); err != nil {
		logger.Warn("Stored provider %q is no longer registered, falling back", active)
		active = registry.All()[0].ID
	}
	o.active = active
	o.state = o.stateForProvider(active)

	return o
}

// SetOnChange registers a callback fired after every observable state or
// transcript change. The shell uses it to re-render.
func (o *Orchestrator) SetOnChange(fn func()) {
	o.onChange = fn
}

func (o *Orchestrator) notify() {
	if o.onChange != nil {
		o.onChange()
	}
}

// stateForProvider returns Idle or AwaitingCredential depending on whether a
// non-empty secret is stored for the provider. It takes no lock itself and is
// safe to call with or without o.mu held.
func (o *Orchestrator) stateForProvider(id string) State {
	secret, ok, err := o.creds.APIKey(id)
	if err != nil {
		o.logger.Warn("Failed to read credential for %s: %v", id, err)
		return StateAwaitingCredential
	}
	if !ok || secret == "" {
		return StateAwaitingCredential
	}
	return StateIdle
}

// Submit runs one complete submission: guard checks, user-message append,
// network call, interpretation, assistant-message append. It blocks until
// the request resolves; the shell invokes it from a goroutine.
//
// Submissions are ignored (not queued) while a request is in flight, when the
// text is blank, or when no credential exists for the active provider — the
// last case moves the session to StateAwaitingCredential. The returned bool
// reports whether the submission was accepted. A non-nil error is returned
// only for an unregistered active provider, which is a configuration defect.
func (o *Orchestrator) Submit(ctx context.Context, text string) (bool, error) {
	trimmed := strings.TrimSpace(text)

	o.mu.Lock()
	if o.inFlight || trimmed == "" {
		o.mu.Unlock()
		return false, nil
	}

	cfg, err := o.registry.Describe(o.active)
	if err != nil {
		o.mu.Unlock()
		return false, err
	}

	secret, ok, err := o.creds.APIKey(o.active)
	if err != nil {
		o.logger.Error("Failed to read credential for %s: %v", o.active, err)
	}
	if !ok || secret == "" {
		o.state = StateAwaitingCredential
		o.setupVisible = true
		o.mu.Unlock()
		o.notify()
		return false, nil
	}

	// The user message lands in the transcript before the call starts, so a
	// failure still shows what was asked. History is snapshotted first: the
	// request carries prior turns plus the new text appended by the builder.
	history := o.conv.All()
	o.conv.Append(RoleUser, trimmed)
	o.draft = ""
	o.inFlight = true
	o.state = StateSubmitting
	o.mu.Unlock()
	o.notify()

	reply := o.dispatch(ctx, cfg, history, trimmed, secret)
	o.conv.Append(RoleAssistant, reply)

	o.mu.Lock()
	o.inFlight = false
	o.state = StateIdle
	o.mu.Unlock()
	o.notify()

	return true, nil
}

// dispatch performs the network call and converts every runtime failure into
// transcript text. Errors never propagate past here; they become
// assistant-role entries.
func (o *Orchestrator) dispatch(ctx context.Context, cfg llm.ProviderConfig, history []Message, text, secret string) string {
	o.logger.Debug("Dispatching to %s with %d prior messages", cfg.ID, len(history))

	wire := make([]llm.Message, 0, len(history))
	for _, msg := range history {
		wire = append(wire, llm.Message{Role: string(msg.Role), Content: msg.Content})
	}

	req, err := llm.BuildRequest(cfg, wire, text, secret)
	if err != nil {
		// Unreachable with a registry-issued config; surfaced as a provider
		// error rather than crashing the shell.
		o.logger.Error("Failed to build request for %s: %v", cfg.ID, err)
		return (&llm.ChatError{Kind: llm.ProviderFailure, Provider: cfg.DisplayName, Message: err.Error()}).UserMessage()
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, req.URL, bytes.NewReader(req.Body))
	if err != nil {
		o.logger.Error("Failed to create request for %s: %v", cfg.ID, err)
		return llm.TransportError(cfg, err).UserMessage()
	}
	for key, value := range req.Headers {
		httpReq.Header.Set(key, value)
	}

	resp, err := o.client.Do(httpReq)
	if err != nil {
		o.logger.Error("Request to %s failed: %v", cfg.ID, err)
		return llm.TransportError(cfg, err).UserMessage()
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		o.logger.Error("Failed to read response from %s: %v", cfg.ID, err)
		return llm.TransportError(cfg, err).UserMessage()
	}

	o.logger.Debug("Response from %s: status %d, %d bytes", cfg.ID, resp.StatusCode, len(body))

	reply, cerr := llm.Interpret(cfg, resp.StatusCode, body)
	if cerr != nil {
		o.logger.Warn("Request to %s classified as %s: %v", cfg.ID, cerr.Kind, cerr)
		return cerr.UserMessage()
	}
	return reply
}

// ProvideCredential persists a secret for the active provider and unblocks
// submissions.
func (o *Orchestrator) ProvideCredential(secret string) error {
	o.mu.Lock()
	if err := o.creds.SetAPIKey(o.active, secret); err != nil {
		o.mu.Unlock()
		return err
	}
	if !o.inFlight {
		o.state = StateIdle
	}
	o.setupVisible = false
	o.mu.Unlock()

	o.logger.Info("Credential stored for provider %s", o.active)
	o.notify()
	return nil
}

// SetActiveProvider switches the provider for new submissions. Other
// providers' stored credentials are untouched. The switch is ignored while a
// request is in flight. Unknown identifiers error.
func (o *Orchestrator) SetActiveProvider(id string) error {
	if _, err := o.registry.Describe(id); err != nil {
		return err
	}

	o.mu.Lock()
	if o.inFlight {
		o.mu.Unlock()
		return nil
	}
	o.active = id
	if err := o.creds.SetActiveProvider(id); err != nil {
		o.logger.Warn("Failed to persist active provider: %v", err)
	}
	o.state = o.stateForProvider(id)
	o.mu.Unlock()

	o.notify()
	return nil
}

// State returns the current session state.
func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// ActiveProvider returns the identifier selected for new submissions.
func (o *Orchestrator) ActiveProvider() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.active
}

// ActiveConfig returns the full configuration of the active provider.
func (o *Orchestrator) ActiveConfig() (llm.ProviderConfig, error) {
	return o.registry.Describe(o.ActiveProvider())
}

// Providers lists every registered provider for the shell's selector.
func (o *Orchestrator) Providers() []llm.ProviderConfig {
	return o.registry.All()
}

// InFlight reports whether a request is outstanding.
func (o *Orchestrator) InFlight() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.inFlight
}

// HasCredential reports whether a non-empty secret is stored for the active
// provider.
func (o *Orchestrator) HasCredential() bool {
	o.mu.Lock()
	id := o.active
	o.mu.Unlock()
	secret, ok, err := o.creds.APIKey(id)
	return err == nil && ok && secret != ""
}

// Draft returns the current input draft text.
func (o *Orchestrator) Draft() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.draft
}

// SetDraft records the input draft text.
func (o *Orchestrator) SetDraft(text string) {
	o.mu.Lock()
	o.draft = text
	o.mu.Unlock()
}

// SetupVisible reports whether the credential setup screen should be shown.
func (o *Orchestrator) SetupVisible() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.setupVisible || o.state == StateAwaitingCredential
}

// ShowSetup opens or closes the credential setup screen. Closing is ignored
// while no credential exists for the active provider.
func (o *Orchestrator) ShowSetup(visible bool) {
	o.mu.Lock()
	o.setupVisible = visible
	o.mu.Unlock()
	o.notify()
}

// Messages returns the transcript in insertion order.
func (o *Orchestrator) Messages() []Message {
	return o.conv.All()
}
