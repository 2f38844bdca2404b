package port

import "context"

// OCREngine abstracts text extraction from a scanned page on disk.
// Implementations must honor ctx cancellation where the underlying engine
// allows it; engines that cannot be interrupted document that the computation
// may continue after the caller has stopped waiting.
type OCREngine interface {
	ExtractText(ctx context.Context, filepath string) (string, error)
}
