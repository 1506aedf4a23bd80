package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/prnvtripathi/tract-us/config"
)

// pageSeparator joins the per-page markdown of a multi-page document
const pageSeparator = "\n\n--- End of Page ---\n\n"

// OCRService extracts plain text from an uploaded document URL via the
// Mistral OCR API. Extracted text is cached by document URL so re-running
// an analysis does not repeat the OCR call.
type OCRService struct {
	config     *config.OCRConfig
	httpClient *http.Client
	cache      *lru.Cache[string, string]
}

// ocrRequest is the request body for the OCR endpoint
type ocrRequest struct {
	Model              string      `json:"model"`
	Document           ocrDocument `json:"document"`
	IncludeImageBase64 bool        `json:"include_image_base64"`
}

type ocrDocument struct {
	Type        string `json:"type"`
	DocumentURL string `json:"document_url"`
}

// ocrResponse is the response body; text content is in pages[].markdown
type ocrResponse struct {
	Pages []struct {
		Index    int    `json:"index"`
		Markdown string `json:"markdown"`
	} `json:"pages"`
}

func NewOCRService(cfg *config.OCRConfig) *OCRService {
	size := cfg.CacheSize
	if size <= 0 {
		size = 128
	}
	cache, _ := lru.New[string, string](size)

	return &OCRService{
		config: cfg,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		cache: cache,
	}
}

// ExtractText runs OCR on the document at the given URL and returns the
// concatenated text of all pages.
func (s *OCRService) ExtractText(ctx context.Context, documentURL string) (string, error) {
	if text, ok := s.cache.Get(documentURL); ok {
		return text, nil
	}

	reqBody := ocrRequest{
		Model: s.config.Model,
		Document: ocrDocument{
			Type:        "document_url",
			DocumentURL: documentURL,
		},
		IncludeImageBase64: false,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", s.config.APIURL+"/v1/ocr", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+s.config.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("OCR API error: status %d, body: %s", resp.StatusCode, string(body))
	}

	var result ocrResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("failed to parse response: %w, body: %s", err, string(body))
	}

	if len(result.Pages) == 0 {
		return "", fmt.Errorf("OCR returned no pages")
	}

	pages := make([]string, 0, len(result.Pages))
	for _, page := range result.Pages {
		pages = append(pages, page.Markdown)
	}
	text := strings.Join(pages, pageSeparator)

	s.cache.Add(documentURL, text)
	return text, nil
}
