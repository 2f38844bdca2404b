package port

import "context"

// ReceiptClassifier abstracts LLM-based receipt categorization.
// Classify returns the category label for one page's OCR text.
type ReceiptClassifier interface {
	Classify(ctx context.Context, ocrText string) (string, error)
}
