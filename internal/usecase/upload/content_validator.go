package upload

import (
	"context"

	"github.com/fhuszti/cms-uploads-go/internal/logger"
	"github.com/fhuszti/cms-uploads-go/internal/model"
	"github.com/fhuszti/cms-uploads-go/internal/port"
)

type contentValidatorSrv struct {
	strg port.Storage
	det  port.SignatureDetector
}

// compile-time check: *contentValidatorSrv must satisfy port.ContentValidator
var _ port.ContentValidator = (*contentValidatorSrv)(nil)

func NewContentValidator(strg port.Storage, det port.SignatureDetector) port.ContentValidator {
	return &contentValidatorSrv{strg: strg, det: det}
}

// ValidateContent is the authoritative post-save check. It fails closed: any
// error or panic while inspecting the file rejects it. The caller owns the
// deletion of rejected files.
func (v *contentValidatorSrv) ValidateContent(ctx context.Context, key string, category model.Category) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			logger.Errorf(ctx, "❌  signature inspection of %q panicked: %v", key, r)
			ok = false
		}
	}()

	sig, found, err := v.inspect(ctx, key)
	if err != nil {
		logger.Warnf(ctx, "signature inspection of %q failed: %v", key, err)
		return false
	}

	if !found {
		// genuine images, videos and office files always carry a signature
		ext := FileExtension(key)
		return IsSignatureless(ext) && IsAllowedExtension(category, ext)
	}

	// either match suffices: detectors may disagree between extension and MIME
	return IsAllowedExtension(category, sig.Extension) || IsAllowedMime(category, sig.MimeType)
}

func (v *contentValidatorSrv) inspect(ctx context.Context, key string) (port.Signature, bool, error) {
	f, err := v.strg.GetFile(ctx, key)
	if err != nil {
		return port.Signature{}, false, err
	}
	defer closeQuietly(ctx, key, f)

	return v.det.Detect(f)
}
