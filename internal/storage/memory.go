package storage

import "context"

// memoryBackend keeps the document in process memory. Used for development
// and as the reference implementation in tests.
type memoryBackend struct {
	doc *document
}

func (b *memoryBackend) Load(_ context.Context) (*document, error) {
	return b.doc, nil
}

func (b *memoryBackend) Save(_ context.Context, doc *document) error {
	b.doc = doc
	return nil
}

func (b *memoryBackend) Close() error { return nil }

// NewMemoryStore returns a transient in-memory store seeded with the
// default category.
func NewMemoryStore() Store {
	return newDocStore(&memoryBackend{doc: newDocument()})
}
