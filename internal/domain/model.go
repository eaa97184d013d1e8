package domain

import (
	"io"
	"time"
)

// Audit is the common audit metadata carried by every record returned by
// the school API. CreatedBy is always set server-side; UpdatedBy only
// after the first modification.
type Audit struct {
	CreatedBy string    `json:"createdBy,omitempty"`
	UpdatedBy string    `json:"updatedBy,omitempty"`
	CreatedAt time.Time `json:"createdAt,omitzero"`
	UpdatedAt time.Time `json:"updatedAt,omitzero"`
}

// Record is implemented by every domain entity. Identity is the opaque
// server-assigned id; list reconciliation matches records by id only.
type Record interface {
	RecordID() string
}

// Page is one page of a listed collection, decoded from the API envelope
// {data, total, page, limit, totalPages}.
//
// Invariant: TotalPages == ceil(Total/Limit) whenever Limit > 0, and
// len(Items) <= Limit.
type Page[T Record] struct {
	Items      []T `json:"data"`
	Total      int `json:"total"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalPages int `json:"totalPages"`
}

// Query holds optional list filters plus pagination and sorting.
// Zero-valued fields are omitted from the request entirely, never sent
// as empty strings. Page is 1-based.
type Query struct {
	Search    string
	Status    string
	Category  string
	SortBy    string
	SortOrder string
	DateFrom  time.Time
	DateTo    time.Time
	Page      int
	Limit     int

	// Extra carries entity-specific filters (e.g. classId, batchId).
	// Values follow the same serialization rules as the named fields:
	// time.Time as RFC 3339, structs and slices as JSON text, everything
	// else via its string form.
	Extra map[string]any
}

// FileUpload is a binary DTO field destined for a multipart file part.
type FileUpload struct {
	Name    string
	Content io.Reader
}
