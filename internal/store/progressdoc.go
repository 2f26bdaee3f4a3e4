package store

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/verte-zerg/vocabtui/internal/model"
)

// ProgressDocument is the standalone export format for one catalog's
// progress mapping.
type ProgressDocument struct {
	Name     string                         `json:"name"`
	Progress map[string]model.ProgressState `json:"progress"`
}

// WriteProgress serializes a progress mapping as an export document.
func WriteProgress(w io.Writer, catalogName string, mapping map[string]model.ProgressState) error {
	doc := ProgressDocument{Name: catalogName, Progress: mapping}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode progress: %w", err)
	}
	return nil
}

// ReadProgress decodes an export document back into a mapping.
func ReadProgress(r io.Reader) (ProgressDocument, error) {
	var doc ProgressDocument
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return ProgressDocument{}, fmt.Errorf("failed to decode progress: %w", err)
	}
	if doc.Progress == nil {
		return ProgressDocument{}, fmt.Errorf("progress document has no mapping")
	}
	return doc, nil
}
