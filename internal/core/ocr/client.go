// Package ocr wraps the remote OCR service used as the sole PDF text
// extraction strategy. The service accepts a multipart upload and returns
// extracted text plus per-run metrics.
package ocr

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"
)

// Result carries the text and diagnostics of one successful OCR run.
type Result struct {
	Text           string
	PageCount      int
	ProcessingTime float64 // seconds reported by the service
	Language       string
}

// Client calls the OCR endpoint with a bounded timeout. It is safe for
// concurrent use.
type Client struct {
	endpoint   string
	language   string
	httpClient *http.Client
}

func NewClient(endpoint, language string, timeout time.Duration) *Client {
	if language == "" {
		language = "en"
	}
	return &Client{
		endpoint:   endpoint,
		language:   language,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// apiResponse mirrors the OCR service wire contract.
type apiResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    struct {
		ExtractedText string `json:"extracted_text"`
		Metrics       struct {
			PageCount            int     `json:"page_count"`
			ExecutionTimeSeconds float64 `json:"execution_time_seconds"`
		} `json:"metrics"`
		Language string `json:"language"`
	} `json:"data"`
}

// ExtractPDF sends the PDF bytes to the OCR service and returns the
// extracted text. HTTP errors, non-2xx statuses, timeouts and
// service-reported failures all surface as a plain error; the caller decides
// how to degrade.
func (c *Client) ExtractPDF(ctx context.Context, pdf []byte) (*Result, error) {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)

	part, err := w.CreateFormFile("file", "document.pdf")
	if err != nil {
		return nil, fmt.Errorf("build multipart body: %w", err)
	}
	if _, err := part.Write(pdf); err != nil {
		return nil, fmt.Errorf("write pdf payload: %w", err)
	}
	if err := w.WriteField("language", c.language); err != nil {
		return nil, fmt.Errorf("write language field: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("finalize multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, &body)
	if err != nil {
		return nil, fmt.Errorf("build ocr request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ocr request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read ocr response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("ocr service returned status %d", resp.StatusCode)
	}

	var parsed apiResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("decode ocr response: %w", err)
	}
	if !parsed.Success {
		msg := parsed.Message
		if msg == "" {
			msg = "unspecified error"
		}
		return nil, fmt.Errorf("ocr service reported failure: %s", msg)
	}

	return &Result{
		Text:           parsed.Data.ExtractedText,
		PageCount:      parsed.Data.Metrics.PageCount,
		ProcessingTime: parsed.Data.Metrics.ExecutionTimeSeconds,
		Language:       parsed.Data.Language,
	}, nil
}

// Language returns the language hint sent with every request.
func (c *Client) Language() string {
	return c.language
}
