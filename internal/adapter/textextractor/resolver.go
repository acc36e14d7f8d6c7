// Package textextractor resolves uploaded documents to plain text under
// the never-fail contract: unsupported formats, unavailable backends and
// corrupt files substitute a descriptive placeholder so one bad file can
// never abort a screening batch. Downstream skill and experience extraction
// runs unconditionally on whatever text comes back, placeholders included.
package textextractor

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/fairyhunter13/resume-screener/pkg/textx"
)

// BinaryExtractor extracts text from binary document bytes. The Tika client
// implements it; nil means no binary extraction backend is deployed.
type BinaryExtractor interface {
	ExtractBytes(ctx context.Context, fileName string, data []byte) (string, error)
}

// Resolver implements domain.ResumeExtractor over an optional binary
// extraction backend plus plain-text decoding.
type Resolver struct {
	binary BinaryExtractor
}

// NewResolver constructs a Resolver. binary may be nil when no Tika server
// is deployed; PDF/DOCX uploads then yield placeholders instead of text.
func NewResolver(binary BinaryExtractor) *Resolver {
	return &Resolver{binary: binary}
}

// ExtractText resolves one uploaded document to plain text. The returned
// failed flag marks placeholder substitutions; the text is usable either
// way.
func (r *Resolver) ExtractText(ctx context.Context, fileName string, data []byte) (string, bool) {
	switch ext := strings.ToLower(filepath.Ext(fileName)); ext {
	case ".pdf", ".docx":
		return r.extractBinary(ctx, fileName, data, strings.TrimPrefix(ext, "."))
	case ".txt":
		return decodePlainText(data), false
	default:
		// Unknown extension: sniff the content before giving up.
		mt := mimetype.Detect(data)
		switch {
		case mt.Is("application/pdf"):
			return r.extractBinary(ctx, fileName, data, "pdf")
		case mt.Is("application/vnd.openxmlformats-officedocument.wordprocessingml.document"):
			return r.extractBinary(ctx, fileName, data, "docx")
		case strings.HasPrefix(mt.String(), "text/"):
			return decodePlainText(data), false
		}
		return fmt.Sprintf("Unsupported file type: %s. Upload PDF, DOCX, or TXT.", fileName), true
	}
}

func (r *Resolver) extractBinary(ctx context.Context, fileName string, data []byte, kind string) (string, bool) {
	if r.binary == nil {
		return fmt.Sprintf("%s parsing is not available in this deployment. Please upload a TXT version of the resume.", strings.ToUpper(kind)), true
	}
	text, err := r.binary.ExtractBytes(ctx, fileName, data)
	if err != nil {
		slog.Warn("document extraction failed; substituting placeholder",
			slog.String("file_name", fileName), slog.String("kind", kind), slog.Any("error", err))
		return fmt.Sprintf("Could not extract text from %s. The file may be corrupt or unreadable.", fileName), true
	}
	return text, false
}

func decodePlainText(data []byte) string {
	return textx.DecodeLossy(data)
}
