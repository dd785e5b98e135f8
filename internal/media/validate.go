package media

import (
	"fmt"
	"io"

	"github.com/freightdeck/freightdeck/internal/shared"
)

// FileUpload is one file pulled out of a multipart form.
type FileUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Content     io.Reader
}

// Upload size ceilings. Documents get more headroom than logos.
const (
	MaxDocumentBytes = 5 << 20
	MaxLogoBytes     = 2 << 20
)

// driverContentTypes is the allowlist for driver document uploads.
var driverContentTypes = map[string]struct{}{
	"image/jpeg":      {},
	"image/jpg":       {},
	"image/png":       {},
	"image/webp":      {},
	"application/pdf": {},
}

// logoContentTypes is the allowlist for company logo uploads. Logos are
// rendered inline, so PDFs are out.
var logoContentTypes = map[string]struct{}{
	"image/jpeg": {},
	"image/jpg":  {},
	"image/png":  {},
	"image/webp": {},
}

// CheckSize rejects files over the given ceiling.
func CheckSize(size, limit int64) error {
	if size > limit {
		return fmt.Errorf("%w: file exceeds %d MB limit", shared.ErrUploadRejected, limit>>20)
	}
	return nil
}

// CheckDriverContentType rejects driver document uploads outside the
// image/pdf allowlist.
func CheckDriverContentType(contentType string) error {
	if _, ok := driverContentTypes[contentType]; !ok {
		return fmt.Errorf("%w: unsupported file type %q", shared.ErrUploadRejected, contentType)
	}
	return nil
}

// CheckLogoContentType rejects logo uploads that are not images.
func CheckLogoContentType(contentType string) error {
	if _, ok := logoContentTypes[contentType]; !ok {
		return fmt.Errorf("%w: logo must be an image, got %q", shared.ErrUploadRejected, contentType)
	}
	return nil
}
