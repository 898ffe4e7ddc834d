package apimodels

import "encoding/json"

type UploadResult struct {
	Message         string  `json:"message"`
	DocumentID      string  `json:"document_id"`
	Chunks          int     `json:"chunks"`
	ComplexityScore float64 `json:"complexity_score"`
}

// Source is one retrieved chunk backing an answer. The backend returns
// sources ordered by descending relevance; the client never re-sorts them.
type Source struct {
	Document       string  `json:"document"`
	ChunkID        string  `json:"chunk_id"`
	RelevanceScore float64 `json:"relevance_score"`
	Preview        string  `json:"preview"`
}

// Interaction is the answer to one question. Immutable once received.
type Interaction struct {
	InteractionID    string   `json:"interaction_id"`
	Answer           string   `json:"answer"`
	TutorExplanation string   `json:"tutor_explanation,omitempty"`
	Sources          []Source `json:"sources,omitempty"`
}

// AnalyticsSnapshot aggregates one user's activity over a time window.
// A snapshot is valid only at time of fetch and is never merged with a
// previous one. Message is set instead of the metrics when the backend has
// no interactions to analyze; that is an empty state, not an error.
type AnalyticsSnapshot struct {
	UserID                string   `json:"user_id"`
	TimeRange             string   `json:"time_range"`
	TotalQuestions        int      `json:"total_questions"`
	UniqueDocuments       int      `json:"unique_documents"`
	AvgQuestionsPerDay    float64  `json:"avg_questions_per_day"`
	AvgQuestionComplexity float64  `json:"avg_question_complexity"`
	ComplexityTrend       string   `json:"complexity_trend,omitempty"`
	ComprehensionScore    float64  `json:"comprehension_score"`
	MainTopics            []string `json:"main_topics,omitempty"`
	LearningSessions      int      `json:"learning_sessions"`
	Message               string   `json:"message,omitempty"`
}

// Empty reports whether the backend had nothing to analyze.
func (s *AnalyticsSnapshot) Empty() bool {
	return s.Message != "" && s.TotalQuestions == 0
}

// QueryPatterns summarizes question behavior across all users.
type QueryPatterns struct {
	QuestionTypes  map[string]int `json:"question_types,omitempty"`
	PopularTopics  map[string]int `json:"popular_topics,omitempty"`
	HourlyActivity map[string]int `json:"hourly_activity,omitempty"`
	Message        string         `json:"message,omitempty"`
}

// DashboardSummary wraps the dashboard payload. The chart sections are
// opaque to this client; only summary_stats is surfaced for rendering and
// Raw keeps the untouched payload for saving to disk.
type DashboardSummary struct {
	SummaryStats map[string]json.RawMessage `json:"summary_stats,omitempty"`
	Message      string                     `json:"message,omitempty"`

	Raw json.RawMessage `json:"-"`
}

type TutorReply struct {
	Response string `json:"response"`
}

type ResearchSuggestions struct {
	Suggestions string `json:"suggestions"`
}

// FeedbackAck carries no payload of interest beyond the confirmation text.
type FeedbackAck struct {
	Message string `json:"message"`
}

// ServerInfo is the backend's root banner, used for health checks.
type ServerInfo struct {
	Message   string   `json:"message"`
	Version   string   `json:"version"`
	Endpoints []string `json:"endpoints"`
}
