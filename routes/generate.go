package routes

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Karthik0081/smart-exam-ai-genius/internal/config"
	"github.com/Karthik0081/smart-exam-ai-genius/internal/telemetry"
	"github.com/Karthik0081/smart-exam-ai-genius/models"
	"github.com/Karthik0081/smart-exam-ai-genius/services"
	"github.com/Karthik0081/smart-exam-ai-genius/utils"
)

type extractTopicsRequest struct {
	Text      string `json:"text" binding:"required"`
	NumTopics int    `json:"numTopics"`
}

// SetupGenerationRoutes registers the question-generation endpoints.
func SetupGenerationRoutes(router *gin.Engine, cfg *config.Config, generator *services.Generator, extractor *services.PDFExtractor, metrics *telemetry.Metrics) {
	api := router.Group("/api")

	topicExtractor := services.NewTopicExtractor()

	// POST /api/extract-topics serves the local statistical extractor so
	// the UI can preview topics without burning provider quota.
	api.POST("/extract-topics", func(c *gin.Context) {
		var req extractTopicsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.RespondWithBadRequest(c, "Invalid request body", err.Error())
			return
		}

		if len(strings.TrimSpace(req.Text)) < cfg.MinTextLength {
			utils.RespondWithError(c, http.StatusBadRequest, "input_too_short", "Text is too short for analysis", nil)
			return
		}

		numTopics := req.NumTopics
		if numTopics < 1 {
			numTopics = 5
		}
		if numTopics > cfg.MaxTopics {
			numTopics = cfg.MaxTopics
		}

		c.JSON(http.StatusOK, topicExtractor.ExtractTopics(req.Text, numTopics))
	})

	// POST /api/generate-questions runs the full pipeline on raw text.
	api.POST("/generate-questions", func(c *gin.Context) {
		var req models.GenerationRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.RespondWithBadRequest(c, "Invalid request body", err.Error())
			return
		}

		result, err := generator.GenerateQuestions(c.Request.Context(), req, nil)
		if err != nil {
			respondGenerationError(c, err)
			return
		}
		c.JSON(http.StatusOK, result)
	})

	// POST /api/documents/generate accepts a PDF upload and runs
	// extraction plus generation in one request.
	api.POST("/documents/generate", func(c *gin.Context) {
		content, ok := readUploadedPDF(c, cfg)
		if !ok {
			return
		}

		start := time.Now()
		extraction, err := extractor.ExtractText(c.Request.Context(), content)
		if err != nil {
			respondGenerationError(c, err)
			return
		}
		metrics.RecordExtraction(c.Request.Context(), time.Since(start).Seconds(), extraction.Method)

		req := models.GenerationRequest{
			Text:          extraction.Text,
			NumQuestions:  formInt(c, "numQuestions", 5),
			QuestionTypes: parseTypes(c.PostForm("questionTypes")),
		}

		result, err := generator.GenerateQuestions(c.Request.Context(), req, nil)
		if err != nil {
			respondGenerationError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"extraction": gin.H{
				"pages":   extraction.Pages,
				"method":  extraction.Method,
				"quality": extraction.QualityScore,
				"cached":  extraction.Cached,
			},
			"result": result,
		})
	})
}

// readUploadedPDF validates and reads the multipart "pdf" field. It writes
// the error response itself when validation fails.
func readUploadedPDF(c *gin.Context, cfg *config.Config) ([]byte, bool) {
	if err := c.Request.ParseMultipartForm(cfg.MaxFileSize); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "file_too_large", "File size exceeds maximum limit", nil)
		return nil, false
	}

	file, header, err := c.Request.FormFile("pdf")
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "no_file", "No PDF file provided", nil)
		return nil, false
	}
	defer file.Close()

	ct := header.Header.Get("Content-Type")
	if !strings.Contains(ct, "pdf") && !strings.HasSuffix(strings.ToLower(header.Filename), ".pdf") {
		utils.RespondWithError(c, http.StatusBadRequest, "invalid_file_type", "Only PDF files are allowed", nil)
		return nil, false
	}

	if header.Size > cfg.MaxFileSize {
		utils.RespondWithError(c, http.StatusBadRequest, "file_too_large", "File size exceeds maximum limit", nil)
		return nil, false
	}

	content, err := io.ReadAll(io.LimitReader(file, cfg.MaxFileSize))
	if err != nil {
		utils.RespondWithInternalError(c, "Failed to read uploaded file", nil)
		return nil, false
	}

	if len(content) < 5 || string(content[:4]) != "%PDF" {
		utils.RespondWithError(c, http.StatusBadRequest, "invalid_pdf", "File does not appear to be a valid PDF", nil)
		return nil, false
	}

	return content, true
}

// respondGenerationError maps the pipeline failure taxonomy onto HTTP
// responses.
func respondGenerationError(c *gin.Context, err error) {
	var extractionErr *services.ExtractionError

	switch {
	case errors.Is(err, services.ErrInputTooShort):
		utils.RespondWithError(c, http.StatusBadRequest, "input_too_short", "Text is too short for analysis", nil)
	case errors.As(err, &extractionErr):
		utils.RespondWithUnprocessable(c, "extraction_failed", "The document could not be parsed; please upload a different file")
	case errors.Is(err, services.ErrNoProviderConfigured):
		utils.RespondWithUnavailable(c, "no_provider_configured", "No AI provider configured and local generation found no usable topics")
	case errors.Is(err, services.ErrGenerationFailed):
		utils.RespondWithBadGateway(c, "generation_failed", "Question generation failed for this document")
	default:
		utils.RespondWithInternalError(c, "Unexpected error during generation", nil)
	}
}

func formInt(c *gin.Context, field string, fallback int) int {
	value := c.PostForm(field)
	if value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return n
}

// parseTypes converts a comma-separated type list; unknown entries are
// dropped and an empty result lets the generator default to both types.
func parseTypes(raw string) []models.QuestionType {
	var types []models.QuestionType
	for _, part := range strings.Split(raw, ",") {
		switch models.QuestionType(strings.TrimSpace(part)) {
		case models.QuestionTypeMCQ:
			types = append(types, models.QuestionTypeMCQ)
		case models.QuestionTypeBlank:
			types = append(types, models.QuestionTypeBlank)
		}
	}
	return types
}
