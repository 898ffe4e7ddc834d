package gateway

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scholar/apimodels"
)

const pdfStub = "%PDF-1.4\n%stub content\n%%EOF\n"

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *int) {
	t.Helper()
	requests := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	client, err := NewClient(srv.URL)
	require.NoError(t, err)
	return client, &requests
}

func TestNewClientRequiresBaseURL(t *testing.T) {
	_, err := NewClient("")
	assert.Error(t, err)
}

func TestUploadDocument(t *testing.T) {
	client, requests := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/upload_pdf", r.URL.Path)

		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "Physics", r.FormValue("subject"))
		assert.Equal(t, "u1", r.FormValue("user_id"))

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "mechanics.pdf", header.Filename)
		content, err := io.ReadAll(file)
		require.NoError(t, err)
		assert.Equal(t, pdfStub, string(content))

		json.NewEncoder(w).Encode(apimodels.UploadResult{
			Message:         "PDF processed and stored successfully",
			DocumentID:      "doc-42",
			Chunks:          17,
			ComplexityScore: 0.64,
		})
	})

	result, err := client.UploadDocument(context.Background(), apimodels.UploadRequest{
		Filename: "mechanics.pdf",
		Content:  []byte(pdfStub),
		Subject:  "Physics",
		UserID:   "u1",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, result.DocumentID)
	assert.GreaterOrEqual(t, result.Chunks, 0)
	assert.Equal(t, 0.64, result.ComplexityScore)
	assert.Equal(t, 1, *requests)
}

func TestUploadDocumentValidation(t *testing.T) {
	client, requests := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		// Reaching the server at all is the failure; the counter below
		// catches it.
	})

	tests := []struct {
		name string
		req  apimodels.UploadRequest
	}{
		{"empty subject", apimodels.UploadRequest{Filename: "a.pdf", Content: []byte(pdfStub), UserID: "u1"}},
		{"empty file", apimodels.UploadRequest{Filename: "a.pdf", Subject: "Math", UserID: "u1"}},
		{"empty user id", apimodels.UploadRequest{Filename: "a.pdf", Content: []byte(pdfStub), Subject: "Math"}},
		{"not a PDF", apimodels.UploadRequest{Filename: "a.pdf", Content: []byte("hello"), Subject: "Math", UserID: "u1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := client.UploadDocument(context.Background(), tt.req)
			require.Error(t, err)
			assert.True(t, IsValidation(err), "expected a validation error, got %v", err)
			assert.False(t, IsTransport(err))
		})
	}
	assert.Equal(t, 0, *requests)
}

func TestAskQuestionPreservesFields(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/ask", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req apimodels.AskRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "What is X?", req.Question)
		assert.Equal(t, "all", req.DocumentID)
		assert.Equal(t, "u1", req.UserID)

		w.Write([]byte(`{
			"answer": "X is...",
			"sources": [{"document":"a.pdf","chunk_id":"c1","relevance_score":0.9,"preview":"..."}],
			"interaction_id": "i1"
		}`))
	})

	interaction, err := client.AskQuestion(context.Background(), apimodels.AskRequest{
		Question: "What is X?",
		UserID:   "u1", // empty scope widens to "all"
	})
	require.NoError(t, err)

	assert.Equal(t, "X is...", interaction.Answer)
	assert.Equal(t, "i1", interaction.InteractionID)
	require.Len(t, interaction.Sources, 1)
	src := interaction.Sources[0]
	assert.Equal(t, "a.pdf", src.Document)
	assert.Equal(t, "c1", src.ChunkID)
	assert.Equal(t, 0.9, src.RelevanceScore, "scores must not be re-normalized")
	assert.Equal(t, "...", src.Preview)
	assert.Empty(t, interaction.TutorExplanation)
}

func TestAskQuestionValidation(t *testing.T) {
	client, requests := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {})

	_, err := client.AskQuestion(context.Background(), apimodels.AskRequest{UserID: "u1"})
	require.Error(t, err)
	assert.True(t, IsValidation(err))
	assert.Equal(t, 0, *requests)
}

func TestGetAnalytics(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/analytics/progress/u1", r.URL.Path)
		assert.Equal(t, "7days", r.URL.Query().Get("time_range"))

		w.Write([]byte(`{
			"user_id": "u1",
			"time_range": "7days",
			"total_questions": 12,
			"unique_documents": 3,
			"avg_questions_per_day": 1.71,
			"avg_question_complexity": 0.58,
			"comprehension_score": 0.8,
			"main_topics": ["calculus", "limits"],
			"learning_sessions": 4
		}`))
	})

	snapshot, err := client.GetAnalytics(context.Background(), "u1", TimeRange7Days)
	require.NoError(t, err)
	assert.False(t, snapshot.Empty())
	assert.Equal(t, 12, snapshot.TotalQuestions)
	assert.Equal(t, 3, snapshot.UniqueDocuments)
	assert.Equal(t, []string{"calculus", "limits"}, snapshot.MainTopics)
	assert.Equal(t, 4, snapshot.LearningSessions)
}

func TestGetAnalyticsEmptyIsNotAnError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"message": "No interactions found for analysis"}`))
	})

	snapshot, err := client.GetAnalytics(context.Background(), "u1", TimeRange30Days)
	require.NoError(t, err)
	assert.True(t, snapshot.Empty())
}

func TestGetDashboardSummaryKeepsRawPayload(t *testing.T) {
	payload := `{"summary_stats":{"total_questions":9,"favorite_subject":"Math"},"charts":{"activity_timeline":{}}}`
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/visualizations/dashboard/u1", r.URL.Path)
		w.Write([]byte(payload))
	})

	summary, err := client.GetDashboardSummary(context.Background(), "u1")
	require.NoError(t, err)
	assert.JSONEq(t, payload, string(summary.Raw))
	assert.Contains(t, summary.SummaryStats, "favorite_subject")
}

func TestChatWithTutor(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/agents/tutor", r.URL.Path)
		var req apimodels.TutorRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "explain entropy", req.Question)
		json.NewEncoder(w).Encode(apimodels.TutorReply{Response: "Entropy measures disorder."})
	})

	reply, err := client.ChatWithTutor(context.Background(), "explain entropy", "")
	require.NoError(t, err)
	assert.Equal(t, "Entropy measures disorder.", reply.Response)
}

func TestChatWithTutorRequiresMessage(t *testing.T) {
	client, requests := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {})

	_, err := client.ChatWithTutor(context.Background(), "", "ctx")
	require.Error(t, err)
	assert.True(t, IsValidation(err))
	assert.Equal(t, 0, *requests)
}

func TestGetResearchSuggestions(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/agents/researcher", r.URL.Path)
		json.NewEncoder(w).Encode(apimodels.ResearchSuggestions{Suggestions: "1. Read X\n2. Read Y"})
	})

	got, err := client.GetResearchSuggestions(context.Background(), "thermodynamics")
	require.NoError(t, err)
	assert.Contains(t, got.Suggestions, "Read X")
}

func TestSubmitFeedback(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/feedback", r.URL.Path)
		var req apimodels.FeedbackRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "i1", req.InteractionID)
		assert.Equal(t, 5, req.Rating)
		json.NewEncoder(w).Encode(apimodels.FeedbackAck{Message: "Feedback stored successfully"})
	})

	ack, err := client.SubmitFeedback(context.Background(), apimodels.FeedbackRequest{
		InteractionID: "i1",
		Rating:        5,
		Comments:      "helpful",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, ack.Message)
}

func TestSubmitFeedbackRatingBounds(t *testing.T) {
	client, requests := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {})

	for _, rating := range []int{0, 6} {
		_, err := client.SubmitFeedback(context.Background(), apimodels.FeedbackRequest{
			InteractionID: "i1",
			Rating:        rating,
		})
		require.Error(t, err)
		assert.True(t, IsValidation(err))
	}
	assert.Equal(t, 0, *requests)
}

func TestGetQueryPatterns(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/analytics/patterns", r.URL.Path)
		assert.Equal(t, "50", r.URL.Query().Get("limit"))
		w.Write([]byte(`{"question_types":{"what":4,"why":2},"popular_topics":{"calculus":3}}`))
	})

	patterns, err := client.GetQueryPatterns(context.Background(), 50)
	require.NoError(t, err)
	assert.Equal(t, 4, patterns.QuestionTypes["what"])
	assert.Equal(t, 3, patterns.PopularTopics["calculus"])
}

func TestHealth(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/", r.URL.Path)
		json.NewEncoder(w).Encode(apimodels.ServerInfo{Message: "Academic Document Analyzer API", Version: "1.0.0"})
	})

	info, err := client.Health(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "1.0.0", info.Version)
}

func TestNon2xxBecomesTransportError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"boom"}`, http.StatusInternalServerError)
	})

	_, err := client.Health(context.Background())
	require.Error(t, err)
	assert.True(t, IsTransport(err))

	var te *TransportError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, http.StatusInternalServerError, te.StatusCode)
	assert.Contains(t, te.Body, "boom")
}

func TestNetworkFailureBecomesTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	client, err := NewClient(srv.URL)
	require.NoError(t, err)
	srv.Close()

	_, err = client.Health(context.Background())
	require.Error(t, err)
	assert.True(t, IsTransport(err))

	var te *TransportError
	require.ErrorAs(t, err, &te)
	assert.Zero(t, te.StatusCode, "no status when the round trip never completed")
}

func TestMalformedSuccessBodyBecomesTransportError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"answer": `))
	})

	_, err := client.AskQuestion(context.Background(), apimodels.AskRequest{Question: "q", UserID: "u1"})
	require.Error(t, err)
	assert.True(t, IsTransport(err))
}
