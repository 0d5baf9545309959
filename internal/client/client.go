package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"

	"github.com/gennadis/medagentui/internal/config"
)

const JSONContentType = "application/json"

const (
	symptomsPath     = "/doctor_assistant"
	reportPath       = "/analyze_reports"
	prescriptionPath = "/analyze_prescription"
)

// ErrorKind separates a service that answered with a failure from a service
// that could not be reached at all.
type ErrorKind string

const (
	ErrKindNetwork ErrorKind = "network"
	ErrKindService ErrorKind = "service"
)

// APIError is the one failure shape all analysis calls are normalized into.
type APIError struct {
	Kind    ErrorKind
	Message string
}

func (e *APIError) Error() string { return e.Message }

// Client talks to the medical analysis backend.
type Client struct {
	httpClient *http.Client
	cfg        *config.Config
}

// NewClient creates an analysis service client.
func NewClient(cfg config.Config) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: cfg.HTTPTimeout},
		cfg:        &cfg,
	}
}

// AnalyzeSymptoms submits a symptom description and returns the analysis
// markdown.
func (c *Client) AnalyzeSymptoms(ctx context.Context, symptoms string) (string, error) {
	reqBytes, err := json.Marshal(SymptomRequest{Symptoms: symptoms})
	if err != nil {
		return "", fmt.Errorf("failed to marshal symptom request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+symptomsPath, bytes.NewBuffer(reqBytes))
	if err != nil {
		return "", fmt.Errorf("failed to build symptom request: %w", err)
	}
	req.Header.Set("Content-Type", JSONContentType)
	req.Header.Set("Accept", JSONContentType)

	body, statusCode, err := c.do(req)
	if err != nil {
		return "", err
	}

	var symptomResp SymptomResponse
	if err := json.Unmarshal(body, &symptomResp); err != nil {
		slog.Error("failed to unmarshal symptom response body", "error", err)
		return "", &APIError{Kind: ErrKindService, Message: "analysis service returned an unreadable response"}
	}
	if statusCode != http.StatusOK || symptomResp.Status != "success" {
		msg := symptomResp.Message
		if msg == "" {
			msg = fmt.Sprintf("analysis service returned status %d", statusCode)
		}
		return "", &APIError{Kind: ErrKindService, Message: msg}
	}
	return symptomResp.AnalysisMarkdown, nil
}

// AnalyzeReport uploads a medical report file. The raw response body is
// returned alongside the decoded payload so callers can store it verbatim.
func (c *Client) AnalyzeReport(ctx context.Context, filename string, file io.Reader) (*ReportPayload, json.RawMessage, error) {
	body, statusCode, err := c.upload(ctx, reportPath, filename, file)
	if err != nil {
		return nil, nil, err
	}
	if statusCode < 200 || statusCode > 299 {
		return nil, nil, decodeUploadError(statusCode, body)
	}

	var payload ReportPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		slog.Error("failed to unmarshal report response body", "error", err)
		return nil, nil, &APIError{Kind: ErrKindService, Message: "analysis service returned an unreadable response"}
	}
	return &payload, json.RawMessage(body), nil
}

// AnalyzePrescription uploads a prescription file. A 2xx response carrying an
// in-body error status is still a failure.
func (c *Client) AnalyzePrescription(ctx context.Context, filename string, file io.Reader) (*PrescriptionPayload, json.RawMessage, error) {
	body, statusCode, err := c.upload(ctx, prescriptionPath, filename, file)
	if err != nil {
		return nil, nil, err
	}
	if statusCode < 200 || statusCode > 299 {
		return nil, nil, decodeUploadError(statusCode, body)
	}

	var payload PrescriptionPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		slog.Error("failed to unmarshal prescription response body", "error", err)
		return nil, nil, &APIError{Kind: ErrKindService, Message: "analysis service returned an unreadable response"}
	}
	if payload.Status == "error" {
		return nil, nil, decodeUploadError(statusCode, body)
	}
	return &payload, json.RawMessage(body), nil
}

func (c *Client) upload(ctx context.Context, path, filename string, file io.Reader) ([]byte, int, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create multipart form: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, 0, fmt.Errorf("failed to read upload file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, 0, fmt.Errorf("failed to finalize multipart form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+path, &buf)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build upload request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Accept", JSONContentType)

	return c.do(req)
}

func (c *Client) do(req *http.Request) ([]byte, int, error) {
	res, err := c.httpClient.Do(req)
	if err != nil {
		slog.Error("failed to reach analysis service", "url", req.URL.String(), "error", err)
		return nil, 0, &APIError{
			Kind:    ErrKindNetwork,
			Message: fmt.Sprintf("cannot connect to the analysis service at %s", c.cfg.BaseURL),
		}
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		slog.Error("failed to read response body", "error", err)
		return nil, 0, &APIError{Kind: ErrKindNetwork, Message: "lost connection while reading the analysis response"}
	}
	return body, res.StatusCode, nil
}

func decodeUploadError(statusCode int, body []byte) *APIError {
	var errBody apiErrorBody
	// Best effort: a non-JSON error body falls through to the status line.
	_ = json.Unmarshal(body, &errBody)
	return &APIError{Kind: ErrKindService, Message: errBody.reason(statusCode)}
}
