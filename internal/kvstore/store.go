// Package kvstore provides the key-value persistence collaborator: string
// keys mapped to JSON-serializable values. Consumers tolerate missing or
// malformed values by substituting defaults; they never fail a user-visible
// operation on a persistence problem.
package kvstore

// Store persists raw JSON values under string keys.
type Store interface {
	// Get returns the stored value for key. The second result reports
	// whether the key was present.
	Get(key string) ([]byte, bool, error)
	// Set stores value under key, replacing any previous value. The write
	// is durable before Set returns.
	Set(key string, value []byte) error
	// Delete removes key. Removing an absent key is not an error.
	Delete(key string) error
}

// Well-known keys used by the application.
const (
	KeyTheme      = "theme"
	KeyTemplates  = "style_templates"
	KeyRunHistory = "generation_history"
)
