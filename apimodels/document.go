package apimodels

// Document is the metadata record for one stored source file. The upload
// date stays a string on the wire (ISO-8601); consumers parse it when they
// need ordering. A re-fetch always replaces a previously held value, the
// client keeps no identity map.
type Document struct {
	DocumentID      string  `json:"document_id"`
	Filename        string  `json:"filename"`
	Subject         string  `json:"subject"`
	UserID          string  `json:"user_id,omitempty"`
	UploadDate      string  `json:"upload_date"`
	ComplexityScore float64 `json:"complexity_score"`
	ChunkCount      int     `json:"chunk_count"`
	Status          string  `json:"status,omitempty"`
}
