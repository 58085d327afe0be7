package ocr

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/otiai10/gosseract/v2"
)

// Config for the Tesseract-backed recognizer.
type Config struct {
	Language string // default "eng"
	PSM      int    // page segmentation mode; 0 keeps Tesseract's default
}

// TesseractRecognizer implements Recognizer with gosseract. A fresh client per
// call keeps the engine state isolated; card images are small enough that the
// setup cost does not matter.
type TesseractRecognizer struct {
	cfg           Config
	clientFactory func() *gosseract.Client
	logger        *slog.Logger
}

func NewTesseractRecognizer(cfg Config, logger *slog.Logger) *TesseractRecognizer {
	if cfg.Language == "" {
		cfg.Language = "eng"
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &TesseractRecognizer{cfg: cfg, clientFactory: gosseract.NewClient, logger: logger}
}

func (t *TesseractRecognizer) Recognize(ctx context.Context, imagePath string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	start := time.Now()

	c := t.clientFactory()
	defer func() {
		if err := c.Close(); err != nil {
			t.logger.Warn("ocr.tesseract.close_error", "error", err)
		}
	}()

	if err := c.SetImage(imagePath); err != nil {
		return nil, fmt.Errorf("set image: %w", err)
	}
	if err := c.SetLanguage(t.cfg.Language); err != nil {
		return nil, fmt.Errorf("set language: %w", err)
	}
	if t.cfg.PSM > 0 {
		if err := c.SetPageSegMode(gosseract.PageSegMode(t.cfg.PSM)); err != nil {
			return nil, fmt.Errorf("set psm: %w", err)
		}
	}

	text, err := c.Text()
	if err != nil {
		return nil, fmt.Errorf("recognize: %w", err)
	}

	fragments := splitFragments(text)
	t.logger.Info("ocr.tesseract.ok",
		"path", imagePath,
		"fragments", len(fragments),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return fragments, nil
}

// splitFragments breaks raw engine output into non-empty line fragments.
func splitFragments(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
