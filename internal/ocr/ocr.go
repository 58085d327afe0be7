package ocr

import "context"

// Recognizer is the OCR collaborator: image file on disk in, text fragments
// out. The pipeline concatenates fragments with single spaces before
// normalization and tolerates an empty result.
type Recognizer interface {
	Recognize(ctx context.Context, imagePath string) ([]string, error)
}
