package ports

import "context"

// DocumentStore persists animation documents as raw YAML or JSON bytes.
// The compiler parses them; stores never interpret the content.
type DocumentStore interface {
	// Save stores data under name, replacing any previous version.
	Save(ctx context.Context, name string, data []byte) error

	// Load retrieves the document stored under name.
	// Returns domain.ErrDocumentNotFound if there is none.
	Load(ctx context.Context, name string) ([]byte, error)

	// Delete removes the document. Deleting a missing document is not an error.
	Delete(ctx context.Context, name string) error

	// List returns the names of all stored documents, sorted.
	List(ctx context.Context) ([]string, error)
}
