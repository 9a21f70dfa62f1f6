package port

// FileStore abstracts where document bytes live. The sqlite repositories
// keep only metadata; content goes through this interface.
type FileStore interface {
	// Save writes content under the given storage key, creating any
	// intermediate directories.
	Save(key string, content []byte) error

	// Load reads the content stored under the key.
	Load(key string) ([]byte, error)

	// Remove deletes the content stored under the key.
	Remove(key string) error
}
