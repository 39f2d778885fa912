// Package creds stores provider API keys behind a key-value persistence
// capability. Secrets never leave the process except as authorization
// parameters on the owning provider's requests.
package creds

import "fmt"

// KV is the persistence capability backing the store: string values by
// string key. A missing key is reported through the bool, never an error, so
// first runs work without special-casing.
type KV interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
}

const activeProviderKey = "active_provider"

func apiKeyKey(providerID string) string {
	return fmt.Sprintf("api_key_%s", providerID)
}

// Store holds one secret per provider plus the last-active provider
// identifier. No secret format validation happens here; key-prefix hints are
// a UI concern only.
type Store struct {
	kv KV
}

// NewStore wraps a persistence capability.
func NewStore(kv KV) *Store {
	return &Store{kv: kv}
}

// APIKey returns the stored secret for a provider, reporting absence
// explicitly.
func (s *Store) APIKey(providerID string) (string, bool, error) {
	return s.kv.Get(apiKeyKey(providerID))
}

// SetAPIKey stores the secret for a provider. Other providers' secrets are
// untouched.
func (s *Store) SetAPIKey(providerID, secret string) error {
	return s.kv.Set(apiKeyKey(providerID), secret)
}

// ActiveProvider returns the last-selected provider identifier, reporting
// absence explicitly.
func (s *Store) ActiveProvider() (string, bool, error) {
	return s.kv.Get(activeProviderKey)
}

// SetActiveProvider records the last-selected provider identifier.
func (s *Store) SetActiveProvider(providerID string) error {
	return s.kv.Set(activeProviderKey, providerID)
}
