// Package catalog loads and normalizes word catalog documents.
package catalog

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/verte-zerg/vocabtui/internal/model"
)

// DefaultName is used when a document carries no name.
const DefaultName = "Default"

// Document is the on-disk catalog format: a named word list with an
// optional language tag.
type Document struct {
	Name  string             `json:"name"`
	Lang  string             `json:"lang,omitempty"`
	Words []model.WordRecord `json:"words"`
}

// Parse decodes a catalog document and validates its word list.
// A document without a well-formed word list is rejected as a whole.
func Parse(r io.Reader) (Document, error) {
	var doc Document
	dec := json.NewDecoder(r)
	if err := dec.Decode(&doc); err != nil {
		return Document{}, fmt.Errorf("invalid catalog: %w", err)
	}
	if doc.Words == nil {
		return Document{}, fmt.Errorf("invalid catalog: missing word list")
	}
	for i, w := range doc.Words {
		if strings.TrimSpace(w.Value) == "" {
			return Document{}, fmt.Errorf("invalid catalog: word %d has no value", i)
		}
	}
	if doc.Name == "" {
		doc.Name = DefaultName
	}
	return doc, nil
}

// Normalize turns raw word records into catalog entries with
// deterministic ids. Output length equals input length; duplicate
// values stay distinguishable because the position is part of the id.
func Normalize(records []model.WordRecord) ([]model.Entry, error) {
	entries := make([]model.Entry, 0, len(records))
	for i, rec := range records {
		if strings.TrimSpace(rec.Value) == "" {
			return nil, fmt.Errorf("invalid catalog: word %d has no value", i)
		}
		entries = append(entries, model.Entry{
			ID:         fmt.Sprintf("%s#%d", rec.Value, i),
			WordRecord: rec,
		})
	}
	return entries, nil
}

// Load reads and normalizes a catalog file.
func Load(path string) (Document, []model.Entry, error) {
	file, err := os.Open(path)
	if err != nil {
		return Document{}, nil, fmt.Errorf("failed to open catalog: %w", err)
	}
	defer func() {
		_ = file.Close()
	}()
	doc, err := Parse(file)
	if err != nil {
		return Document{}, nil, err
	}
	entries, err := Normalize(doc.Words)
	if err != nil {
		return Document{}, nil, err
	}
	return doc, entries, nil
}

// Install validates a catalog document and writes it into dir under
// its own name. A malformed document leaves dir untouched.
func Install(srcPath, dir string) (Document, error) {
	doc, _, err := Load(srcPath)
	if err != nil {
		return Document{}, err
	}
	// The name becomes a filename inside dir; a separator would let it
	// escape the catalog directory.
	if strings.ContainsAny(doc.Name, `/\`) || doc.Name != filepath.Base(doc.Name) {
		return Document{}, fmt.Errorf("invalid catalog: name %q must not contain path separators", doc.Name)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Document{}, fmt.Errorf("failed to create catalog directory: %w", err)
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return Document{}, fmt.Errorf("failed to encode catalog: %w", err)
	}
	outPath := filepath.Join(dir, doc.Name+".json")
	tmpFile, err := os.CreateTemp(dir, "catalog-*.json")
	if err != nil {
		return Document{}, fmt.Errorf("failed to create temp catalog: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()
	if _, err := tmpFile.Write(data); err != nil {
		return Document{}, fmt.Errorf("failed to write catalog: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return Document{}, fmt.Errorf("failed to close catalog: %w", err)
	}
	if err := os.Rename(tmpPath, outPath); err != nil {
		return Document{}, fmt.Errorf("failed to install catalog: %w", err)
	}
	return doc, nil
}

// List returns the names of installed catalogs, sorted.
func List(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read catalog directory: %w", err)
	}
	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasSuffix(name, ".json") {
			continue
		}
		names = append(names, strings.TrimSuffix(name, ".json"))
	}
	sort.Strings(names)
	return names, nil
}
