// Package gateway is the typed client for the Academic Document Analyzer
// backend. Every operation is one blocking round trip: no retries, no
// batching, no caching. The backend stays the sole source of truth, so a
// response replaces whatever the caller held before, never patches it.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"

	"scholar/apimodels"
)

// AllDocuments is the backend's scope sentinel for "search every document".
const AllDocuments = "all"

// TimeRange selects the analytics window. The backend parses any "<n>days"
// string; these are the windows the client exposes.
type TimeRange string

const (
	TimeRange7Days   TimeRange = "7days"
	TimeRange30Days  TimeRange = "30days"
	TimeRange90Days  TimeRange = "90days"
	TimeRange365Days TimeRange = "365days" // used by data export
)

const bodySnippetLimit = 512

// Client issues requests against one backend origin. The origin is fixed at
// construction and read-only afterwards.
type Client struct {
	baseURL  string
	http     *http.Client
	validate *validator.Validate
	log      *slog.Logger
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

func WithLogger(log *slog.Logger) Option {
	return func(c *Client) { c.log = log }
}

func NewClient(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("gateway base URL cannot be empty")
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("invalid gateway base URL %q: %w", baseURL, err)
	}

	c := &Client{
		baseURL:  baseURL,
		http:     &http.Client{Timeout: 60 * time.Second},
		validate: validator.New(),
		log:      slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the configured backend origin.
func (c *Client) BaseURL() string { return c.baseURL }

// UploadDocument sends one PDF for ingestion. The file content, subject and
// user id are checked locally first; a request that would obviously be
// rejected never reaches the network.
func (c *Client) UploadDocument(ctx context.Context, req apimodels.UploadRequest) (*apimodels.UploadResult, error) {
	if err := c.validate.Struct(req); err != nil {
		return nil, newValidationError(err)
	}
	if !bytes.HasPrefix(req.Content, []byte("%PDF-")) {
		return nil, &ValidationError{Fields: map[string]string{"Content": "not a PDF file"}}
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", req.Filename)
	if err != nil {
		return nil, fmt.Errorf("build upload form: %w", err)
	}
	if _, err := part.Write(req.Content); err != nil {
		return nil, fmt.Errorf("build upload form: %w", err)
	}
	if err := mw.WriteField("subject", req.Subject); err != nil {
		return nil, fmt.Errorf("build upload form: %w", err)
	}
	if err := mw.WriteField("user_id", req.UserID); err != nil {
		return nil, fmt.Errorf("build upload form: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("build upload form: %w", err)
	}

	c.log.Info("uploading document", "filename", req.Filename, "subject", req.Subject, "bytes", len(req.Content))

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/upload_pdf", &body)
	if err != nil {
		return nil, fmt.Errorf("build upload request: %w", err)
	}
	httpReq.Header.Set("Content-Type", mw.FormDataContentType())

	var result apimodels.UploadResult
	if err := c.do("upload_pdf", httpReq, &result); err != nil {
		return nil, err
	}
	c.log.Info("document uploaded", "document_id", result.DocumentID, "chunks", result.Chunks)
	return &result, nil
}

// AskQuestion runs one question through the retrieval pipeline. An empty
// document scope is widened to the "all" sentinel before sending.
func (c *Client) AskQuestion(ctx context.Context, req apimodels.AskRequest) (*apimodels.Interaction, error) {
	if req.DocumentID == "" {
		req.DocumentID = AllDocuments
	}
	if err := c.validate.Struct(req); err != nil {
		return nil, newValidationError(err)
	}

	c.log.Info("asking question", "document_id", req.DocumentID, "user_id", req.UserID)

	var result apimodels.Interaction
	if err := c.postJSON(ctx, "ask", "/ask", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetAnalytics fetches the learning-progress snapshot for one user. A user
// with no recorded activity yields an empty snapshot, not an error.
func (c *Client) GetAnalytics(ctx context.Context, userID string, timeRange TimeRange) (*apimodels.AnalyticsSnapshot, error) {
	if userID == "" {
		return nil, &ValidationError{Fields: map[string]string{"UserID": "failed on 'required' tag"}}
	}
	if timeRange == "" {
		timeRange = TimeRange30Days
	}

	q := url.Values{"time_range": {string(timeRange)}}
	var result apimodels.AnalyticsSnapshot
	if err := c.getJSON(ctx, "analytics/progress", "/analytics/progress/"+url.PathEscape(userID), q, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetQueryPatterns fetches cross-user question patterns.
func (c *Client) GetQueryPatterns(ctx context.Context, limit int) (*apimodels.QueryPatterns, error) {
	q := url.Values{}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	var result apimodels.QueryPatterns
	if err := c.getJSON(ctx, "analytics/patterns", "/analytics/patterns", q, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetDashboardSummary fetches the visualization payload for one user. The
// chart sections are opaque; the raw body is preserved so callers can save
// it untouched.
func (c *Client) GetDashboardSummary(ctx context.Context, userID string) (*apimodels.DashboardSummary, error) {
	if userID == "" {
		return nil, &ValidationError{Fields: map[string]string{"UserID": "failed on 'required' tag"}}
	}

	raw, err := c.doRaw(ctx, "visualizations/dashboard", "/visualizations/dashboard/"+url.PathEscape(userID))
	if err != nil {
		return nil, err
	}
	var result apimodels.DashboardSummary
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, &TransportError{Op: "visualizations/dashboard", Err: fmt.Errorf("decode response: %w", err)}
	}
	result.Raw = raw
	return &result, nil
}

// ChatWithTutor sends one free-form message to the tutor agent.
func (c *Client) ChatWithTutor(ctx context.Context, message, chatContext string) (*apimodels.TutorReply, error) {
	req := apimodels.TutorRequest{Question: message, Context: chatContext}
	if err := c.validate.Struct(req); err != nil {
		return nil, newValidationError(err)
	}

	var result apimodels.TutorReply
	if err := c.postJSON(ctx, "agents/tutor", "/agents/tutor", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetResearchSuggestions asks the researcher agent for resources on a topic.
func (c *Client) GetResearchSuggestions(ctx context.Context, topic string) (*apimodels.ResearchSuggestions, error) {
	req := apimodels.ResearchRequest{Topic: topic}
	if err := c.validate.Struct(req); err != nil {
		return nil, newValidationError(err)
	}

	var result apimodels.ResearchSuggestions
	if err := c.postJSON(ctx, "agents/researcher", "/agents/researcher", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// SubmitFeedback rates a previously shown answer. Feedback is best effort:
// a failure here is reported to the caller but must never be treated as
// invalidating the answer it refers to.
func (c *Client) SubmitFeedback(ctx context.Context, req apimodels.FeedbackRequest) (*apimodels.FeedbackAck, error) {
	if err := c.validate.Struct(req); err != nil {
		return nil, newValidationError(err)
	}

	var result apimodels.FeedbackAck
	if err := c.postJSON(ctx, "feedback", "/feedback", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Health fetches the backend's root banner.
func (c *Client) Health(ctx context.Context) (*apimodels.ServerInfo, error) {
	var result apimodels.ServerInfo
	if err := c.getJSON(ctx, "health", "/", nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) postJSON(ctx context.Context, op, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode %s request: %w", op, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build %s request: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(op, req, out)
}

func (c *Client) getJSON(ctx context.Context, op, path string, query url.Values, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("build %s request: %w", op, err)
	}
	return c.do(op, req, out)
}

func (c *Client) doRaw(ctx context.Context, op, path string) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("build %s request: %w", op, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Error("request failed", "op", op, "error", err)
		return nil, &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Op: op, Err: fmt.Errorf("read response: %w", err)}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.log.Error("backend rejected request", "op", op, "status", resp.StatusCode)
		return nil, &TransportError{Op: op, StatusCode: resp.StatusCode, Body: snippet(body)}
	}
	return body, nil
}

// do executes the request and decodes a 2xx JSON body into out. Anything
// else, including a malformed success body, surfaces as a TransportError so
// views have exactly one failure kind to handle.
func (c *Client) do(op string, req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Error("request failed", "op", op, "error", err)
		return &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &TransportError{Op: op, Err: fmt.Errorf("read response: %w", err)}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.log.Error("backend rejected request", "op", op, "status", resp.StatusCode, "body", snippet(body))
		return &TransportError{Op: op, StatusCode: resp.StatusCode, Body: snippet(body)}
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return &TransportError{Op: op, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

func snippet(body []byte) string {
	if len(body) > bodySnippetLimit {
		body = body[:bodySnippetLimit]
	}
	return string(bytes.TrimSpace(body))
}
