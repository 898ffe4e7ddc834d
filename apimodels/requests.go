package apimodels

// UploadRequest carries one PDF to the backend. It is sent as multipart form
// data rather than JSON, so only the validate tags matter here.
type UploadRequest struct {
	Filename string `validate:"required"`
	Content  []byte `validate:"required"`
	Subject  string `validate:"required"`
	UserID   string `validate:"required"`
}

type AskRequest struct {
	Question string `json:"question" validate:"required"`

	// DocumentID scopes retrieval to one document. The backend treats the
	// sentinel "all" as "search every document"; an empty value is filled
	// with the sentinel before sending.
	DocumentID string `json:"document_id"`
	UserID     string `json:"user_id" validate:"required"`
}

type TutorRequest struct {
	Question string `json:"question" validate:"required"`
	Context  string `json:"context"`
}

type ResearchRequest struct {
	Topic string `json:"topic" validate:"required"`
}

type FeedbackRequest struct {
	InteractionID string `json:"interaction_id" validate:"required"`
	Rating        int    `json:"rating" validate:"required,min=1,max=5"`
	Comments      string `json:"comments"`
}
