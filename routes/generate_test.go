package routes

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/Karthik0081/smart-exam-ai-genius/internal/config"
	"github.com/Karthik0081/smart-exam-ai-genius/models"
	"github.com/Karthik0081/smart-exam-ai-genius/services"
	"github.com/Karthik0081/smart-exam-ai-genius/utils"
)

const documentText = `Section 1: Photosynthesis
Photosynthesis converts light energy into chemical energy inside leaves. Chlorophyll molecules absorb light during photosynthesis. Plants release oxygen while photosynthesis runs.

Section 2: Respiration
Cellular respiration releases stored energy from glucose molecules. Mitochondria perform respiration continuously inside cells. Respiration consumes oxygen during the process.`

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		MinTextLength:     100,
		MaxQuestions:      20,
		MaxTopics:         20,
		MaxFileSize:       1 << 20,
		RemoteTimeout:     5,
		RemoteConcurrency: 2,
	}

	router := gin.New()
	SetupGenerationRoutes(router, cfg,
		services.NewGenerator(cfg, nil, nil),
		services.NewPDFExtractor(cfg),
		nil)
	return router
}

func postJSON(t *testing.T, router *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("failed to marshal request body: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeErrorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var resp utils.ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("response is not an error envelope: %v", err)
	}
	return resp.ErrorCode
}

func TestExtractTopicsEndpoint(t *testing.T) {
	router := newTestRouter(t)

	rec := postJSON(t, router, "/api/extract-topics", gin.H{
		"text":      documentText,
		"numTopics": 2,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var topics []models.Topic
	if err := json.Unmarshal(rec.Body.Bytes(), &topics); err != nil {
		t.Fatalf("failed to decode topics: %v", err)
	}
	if len(topics) == 0 || len(topics) > 2 {
		t.Errorf("got %d topics, want 1..2", len(topics))
	}
}

func TestExtractTopicsEndpointShortText(t *testing.T) {
	router := newTestRouter(t)

	rec := postJSON(t, router, "/api/extract-topics", gin.H{"text": "too short"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if code := decodeErrorCode(t, rec); code != "input_too_short" {
		t.Errorf("error_code = %q, want %q", code, "input_too_short")
	}
}

func TestGenerateQuestionsEndpoint(t *testing.T) {
	router := newTestRouter(t)

	rec := postJSON(t, router, "/api/generate-questions", models.GenerationRequest{
		Text:         documentText,
		NumQuestions: 4,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var result models.GenerationResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to decode result: %v", err)
	}
	if result.Source != "local" {
		t.Errorf("source = %q, want local", result.Source)
	}
	if len(result.Questions) == 0 {
		t.Fatal("no questions generated")
	}
	for i, q := range result.Questions {
		if !q.Valid() {
			t.Errorf("question %d is invalid: %+v", i, q)
		}
	}
}

func TestGenerateQuestionsEndpointErrors(t *testing.T) {
	router := newTestRouter(t)

	cases := []struct {
		name       string
		body       any
		wantStatus int
		wantCode   string
	}{
		{"short text", gin.H{"text": "nope", "numQuestions": 3}, http.StatusBadRequest, "input_too_short"},
		{"missing text", gin.H{"numQuestions": 3}, http.StatusBadRequest, "input_too_short"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := postJSON(t, router, "/api/generate-questions", tc.body)
			if rec.Code != tc.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tc.wantStatus)
			}
			if code := decodeErrorCode(t, rec); code != tc.wantCode {
				t.Errorf("error_code = %q, want %q", code, tc.wantCode)
			}
		})
	}
}

func TestGenerateQuestionsEndpointBadJSON(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/generate-questions", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if code := decodeErrorCode(t, rec); code != "bad_request" {
		t.Errorf("error_code = %q, want %q", code, "bad_request")
	}
}

func TestDocumentGenerateRejectsMissingFile(t *testing.T) {
	router := newTestRouter(t)

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	if err := writer.WriteField("numQuestions", "3"); err != nil {
		t.Fatal(err)
	}
	writer.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/documents/generate", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if code := decodeErrorCode(t, rec); code != "no_file" {
		t.Errorf("error_code = %q, want %q", code, "no_file")
	}
}

func TestDocumentGenerateRejectsNonPDF(t *testing.T) {
	router := newTestRouter(t)

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("pdf", "notes.pdf")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := part.Write([]byte("plain text pretending to be a pdf")); err != nil {
		t.Fatal(err)
	}
	writer.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/documents/generate", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if code := decodeErrorCode(t, rec); code != "invalid_pdf" {
		t.Errorf("error_code = %q, want %q", code, "invalid_pdf")
	}
}

func TestParseTypes(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"mcq,fill-in-the-blank", 2},
		{"mcq", 1},
		{"mcq, essay, fill-in-the-blank", 2},
		{"essay", 0},
		{"", 0},
	}

	for _, tc := range cases {
		if got := parseTypes(tc.in); len(got) != tc.want {
			t.Errorf("parseTypes(%q) = %v, want %d types", tc.in, got, tc.want)
		}
	}
}
