// Package tika provides Apache Tika integration for text extraction.
//
// It extracts text content from PDF and Word documents via a Tika server's
// PUT /tika endpoint with Accept: text/plain.
// See: https://tika.apache.org/server/ for API details.
package tika

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/fairyhunter13/resume-screener/pkg/textx"
)

// Client is a minimal Apache Tika HTTP client.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New constructs a Tika client with a default timeout.
func New(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// ExtractBytes uploads document bytes to the Tika server and returns the
// extracted plain text, sanitized and whitespace-collapsed.
func (c *Client) ExtractBytes(ctx context.Context, fileName string, data []byte) (string, error) {
	u := c.baseURL
	if u == "" {
		u = "http://localhost:9998"
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, u+"/tika", bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	req.Header.Set("Accept", "text/plain")
	// Content-Type best-effort from extension
	if ct := contentTypeFromExt(filepath.Ext(fileName)); ct != "" {
		req.Header.Set("Content-Type", ct)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("tika status %d", resp.StatusCode)
	}
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return textx.CollapseWhitespace(textx.SanitizeText(string(b))), nil
}

// Ping probes the Tika server's version endpoint for readiness checks.
func (c *Client) Ping(ctx context.Context) error {
	if c.baseURL == "" {
		return fmt.Errorf("tika url not configured")
	}
	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/version", nil)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	return fmt.Errorf("tika status %d", resp.StatusCode)
}

func contentTypeFromExt(ext string) string {
	ext = strings.ToLower(ext)
	switch ext {
	case ".pdf":
		return "application/pdf"
	case ".docx":
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	case ".txt":
		return "text/plain"
	default:
		if ext != "" {
			return mime.TypeByExtension(ext)
		}
	}
	return ""
}
