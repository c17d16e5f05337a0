package domain

type SourceType string

const (
	SourceTXT  SourceType = "txt"
	SourcePDF  SourceType = "pdf"
	SourceDOCX SourceType = "docx"
)

// Metadata describes the original file a Document was ingested from.
// ByteSize is the pre-truncation size on disk; TokenCount is the token
// count of Text and never exceeds the configured ceiling.
type Metadata struct {
	SourceType SourceType `json:"source_type"`
	ByteSize   int64      `json:"byte_size"`
	TokenCount int        `json:"token_count"`
}

// Document is one ingested unit: normalized, token-truncated text plus
// file metadata. Immutable once produced; never persisted.
type Document struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Text     string   `json:"text"`
	Metadata Metadata `json:"metadata"`
}
