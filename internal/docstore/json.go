// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package docstore

import (
	"bytes"
	"fmt"
	"io"

	"github.com/goccy/go-json"
	"github.com/specialistvlad/pipestack/internal/model"
)

// ReadJSON decodes pipeline documents in the editor's wire format. The
// input is either a single document or an array of documents.
func ReadJSON(r io.Reader) ([]*model.Document, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read documents: %w", err)
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil, nil
	}

	if raw[0] == '[' {
		var docs []*model.Document
		if err := json.Unmarshal(raw, &docs); err != nil {
			return nil, fmt.Errorf("failed to decode documents: %w", err)
		}
		return docs, nil
	}

	doc := &model.Document{}
	if err := json.Unmarshal(raw, doc); err != nil {
		return nil, fmt.Errorf("failed to decode document: %w", err)
	}
	return []*model.Document{doc}, nil
}

// WriteJSON encodes a document in the editor's wire format.
func WriteJSON(w io.Writer, doc *model.Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode document '%s': %w", doc.UUID, err)
	}
	return nil
}
