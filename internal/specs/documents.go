package specs

import "encoding/json"

// Document is one entry of the documents section: a display name and the
// stored file URLs behind it, plus file metadata.
type Document struct {
	Name        string   `json:"name"`
	URLs        []string `json:"urls"`
	Size        int64    `json:"size,omitempty"`
	ContentType string   `json:"content_type,omitempty"`
	UploadedAt  string   `json:"uploaded_at,omitempty"`
}

// MergeDocuments folds incoming documents into the existing list with
// name-based de-duplication. An incoming document whose name matches an
// existing entry replaces it in place; new names are appended in order.
// The result never holds two entries with the same name.
func MergeDocuments(existing, incoming []Document) []Document {
	merged := make([]Document, len(existing))
	copy(merged, existing)

	index := make(map[string]int, len(merged))
	for i, doc := range merged {
		index[doc.Name] = i
	}

	for _, doc := range incoming {
		if i, ok := index[doc.Name]; ok {
			merged[i] = doc
			continue
		}
		index[doc.Name] = len(merged)
		merged = append(merged, doc)
	}
	return merged
}

// DecodeDocuments decodes a stored documents column; malformed JSON yields
// an empty list.
func DecodeDocuments(stored string) []Document {
	if stored == "" {
		return nil
	}
	var docs []Document
	if err := json.Unmarshal([]byte(stored), &docs); err != nil {
		return nil
	}
	return docs
}
