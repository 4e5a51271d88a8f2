package lsp

import (
	"sort"
	"sync"
)

// Document is an open text document.
type Document struct {
	Text     string
	Language string
}

// DocumentStore is a thread-safe store for open documents keyed by URI.
type DocumentStore struct {
	documents map[string]Document
	mu        sync.RWMutex
}

// NewDocumentStore creates a new empty DocumentStore.
func NewDocumentStore() *DocumentStore {
	return &DocumentStore{
		documents: make(map[string]Document),
	}
}

// Set stores a document for the given URI.
func (ds *DocumentStore) Set(uri string, doc Document) {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	ds.documents[uri] = doc
}

// SetText replaces the text of a document, keeping its language.
func (ds *DocumentStore) SetText(uri, text string) {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	doc := ds.documents[uri]
	doc.Text = text
	ds.documents[uri] = doc
}

// Get retrieves a document by URI.
func (ds *DocumentStore) Get(uri string) (Document, bool) {
	ds.mu.RLock()
	defer ds.mu.RUnlock()

	doc, ok := ds.documents[uri]

	return doc, ok
}

// Delete removes a document by URI.
func (ds *DocumentStore) Delete(uri string) {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	delete(ds.documents, uri)
}

// URIs returns the URIs of all open documents, sorted.
func (ds *DocumentStore) URIs() []string {
	ds.mu.RLock()
	defer ds.mu.RUnlock()

	uris := make([]string, 0, len(ds.documents))
	for uri := range ds.documents {
		uris = append(uris, uri)
	}
	sort.Strings(uris)

	return uris
}
