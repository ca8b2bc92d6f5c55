package services

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os/exec"
	"regexp"
	"strings"
	"time"

	"github.com/ledongthuc/pdf"
	gocache "github.com/patrickmn/go-cache"

	"github.com/Karthik0081/smart-exam-ai-genius/internal/config"
	"github.com/Karthik0081/smart-exam-ai-genius/internal/logger"
	"github.com/Karthik0081/smart-exam-ai-genius/utils"
)

// PDFExtractor converts an uploaded PDF into plain text. Extraction methods
// are tried in order of preference and each result is quality-scored; the
// best acceptable result wins. Repeat uploads of the same bytes are served
// from an in-memory cache keyed by content hash.
type PDFExtractor struct {
	cfg   *config.Config
	cache *gocache.Cache
}

// ExtractionResult contains the result of PDF text extraction
type ExtractionResult struct {
	Text           string
	Pages          int
	Method         string
	QualityScore   float64
	ProcessingTime time.Duration
	Cached         bool
}

type cachedExtraction struct {
	data       []byte
	compressed bool
	pages      int
	method     string
	quality    float64
}

func NewPDFExtractor(cfg *config.Config) *PDFExtractor {
	var cache *gocache.Cache
	if cfg.CacheEnabled {
		cache = gocache.New(
			time.Duration(cfg.CacheTTL)*time.Second,
			time.Duration(cfg.CacheCleanup)*time.Second,
		)
	}
	return &PDFExtractor{cfg: cfg, cache: cache}
}

// ExtractText extracts text from PDF content with method fallbacks. It
// returns an ExtractionError when no method yields usable text or the text
// is below the minimum length the pipeline needs.
func (e *PDFExtractor) ExtractText(ctx context.Context, content []byte) (*ExtractionResult, error) {
	start := time.Now()

	if len(content) == 0 {
		return nil, &ExtractionError{Reason: "document is empty"}
	}

	key := hashContent(content)
	if cached, ok := e.lookupCache(key); ok {
		cached.ProcessingTime = time.Since(start)
		return cached, nil
	}

	methods := []struct {
		name    string
		extract func(context.Context, []byte) (*ExtractionResult, error)
	}{
		{"go-pdf", e.extractWithGoPDF},
		{"poppler", e.extractWithPoppler},
	}

	var lastErr error
	var bestResult *ExtractionResult

	for _, method := range methods {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		result, err := method.extract(ctx, content)
		if err != nil {
			logger.Debug("Extraction method failed", "method", method.name, "error", err.Error())
			lastErr = err
			continue
		}

		result.Method = method.name
		result.ProcessingTime = time.Since(start)
		result.QualityScore = evaluateTextQuality(result.Text)

		logger.Debug("Extraction method finished",
			"method", method.name, "chars", len(result.Text), "quality", result.QualityScore)

		if result.QualityScore >= 0.7 {
			return e.finish(key, result)
		}

		if bestResult == nil || result.QualityScore > bestResult.QualityScore {
			bestResult = result
		}
	}

	if bestResult != nil && bestResult.QualityScore >= 0.3 {
		return e.finish(key, bestResult)
	}

	return nil, &ExtractionError{Reason: "all extraction methods failed", Err: lastErr}
}

// finish enforces the minimum-length invariant and stores the result.
func (e *PDFExtractor) finish(key string, result *ExtractionResult) (*ExtractionResult, error) {
	if len(strings.TrimSpace(result.Text)) < e.cfg.MinTextLength {
		return nil, &ExtractionError{
			Reason: fmt.Sprintf("extracted text below %d characters", e.cfg.MinTextLength),
		}
	}
	e.storeCache(key, result)
	return result, nil
}

// extractWithGoPDF uses the Go PDF library for extraction
func (e *PDFExtractor) extractWithGoPDF(ctx context.Context, content []byte) (*ExtractionResult, error) {
	reader, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return nil, fmt.Errorf("failed to create PDF reader: %w", err)
	}

	var textBuilder strings.Builder
	pages := reader.NumPage()

	for i := 1; i <= pages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		fonts := make(map[string]*pdf.Font)
		text, err := page.GetPlainText(fonts)
		if err != nil {
			logger.Debug("Failed to extract page text", "page", i, "error", err.Error())
			continue
		}

		textBuilder.WriteString(text)
		textBuilder.WriteString("\n\n")
	}

	extractedText := strings.TrimSpace(textBuilder.String())
	if len(extractedText) == 0 {
		return nil, fmt.Errorf("no text extracted by go-pdf")
	}

	return &ExtractionResult{Text: extractedText, Pages: pages}, nil
}

// extractWithPoppler uses poppler-utils (pdftotext) for extraction
func (e *PDFExtractor) extractWithPoppler(ctx context.Context, content []byte) (*ExtractionResult, error) {
	if _, err := exec.LookPath("pdftotext"); err != nil {
		return nil, fmt.Errorf("pdftotext not available")
	}

	extractCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	cmd := exec.CommandContext(extractCtx, "pdftotext", "-layout", "-", "-")
	cmd.Stdin = bytes.NewReader(content)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("pdftotext failed: %v, stderr: %s", err, stderr.String())
	}

	extractedText := strings.TrimSpace(stdout.String())
	if len(extractedText) == 0 {
		return nil, fmt.Errorf("no text extracted by pdftotext")
	}

	return &ExtractionResult{
		Text:  extractedText,
		Pages: strings.Count(extractedText, "\f") + 1,
	}, nil
}

func (e *PDFExtractor) lookupCache(key string) (*ExtractionResult, bool) {
	if e.cache == nil {
		return nil, false
	}
	entry, ok := e.cache.Get(key)
	if !ok {
		return nil, false
	}
	cached := entry.(cachedExtraction)
	text, err := utils.DecompressText(cached.data, cached.compressed)
	if err != nil {
		e.cache.Delete(key)
		return nil, false
	}
	return &ExtractionResult{
		Text:         text,
		Pages:        cached.pages,
		Method:       cached.method,
		QualityScore: cached.quality,
		Cached:       true,
	}, true
}

func (e *PDFExtractor) storeCache(key string, result *ExtractionResult) {
	if e.cache == nil {
		return
	}
	data, compressed, err := utils.CompressText(result.Text)
	if err != nil {
		logger.Warn("Failed to compress extraction for cache", "error", err.Error())
		return
	}
	e.cache.SetDefault(key, cachedExtraction{
		data:       data,
		compressed: compressed,
		pages:      result.Pages,
		method:     result.Method,
		quality:    result.QualityScore,
	})
}

func hashContent(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}

var (
	capitalizedRegex = regexp.MustCompile(`\b[A-Z][a-z]+\b`)
	sentenceBoundary = regexp.MustCompile(`[.!?]\s+[A-Z]`)
	commonWordsRegex = regexp.MustCompile(`\b(the|and|or|of|to|in|for|with|on|at|by|from)\b`)
)

// evaluateTextQuality scores extracted text between 0 and 1 based on the
// ratio of printable and alphanumeric characters versus likely corruption.
func evaluateTextQuality(text string) float64 {
	text = strings.TrimSpace(text)
	if len(text) < 10 {
		return 0.1
	}

	var alphanumeric, printable, corrupted int
	for _, r := range text {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9'):
			alphanumeric++
			printable++
		case r == ' ' || r == '\n' || r == '\t':
			printable++
		case r == '�':
			corrupted++
		case r >= 32 && r <= 126:
			printable++
		case r > 127:
			printable++
		}
	}

	total := len([]rune(text))
	alphanumericRatio := float64(alphanumeric) / float64(total)
	printableRatio := float64(printable) / float64(total)
	corruptedRatio := float64(corrupted) / float64(total)

	score := printableRatio * 0.4
	if alphanumericRatio >= 0.3 {
		score += 0.3
	} else {
		score += alphanumericRatio
	}
	score -= corruptedRatio * 2.0

	if len(text) > 100 {
		score += 0.1
	}

	goodPatterns := 0
	for _, re := range []*regexp.Regexp{capitalizedRegex, sentenceBoundary, commonWordsRegex} {
		if re.MatchString(text) {
			goodPatterns++
		}
	}
	if goodPatterns >= 2 {
		score += 0.2
	}

	if score < 0 {
		score = 0
	}
	if score > 1 {
		score = 1
	}
	return score
}
