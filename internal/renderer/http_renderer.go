package renderer

import (
	"context"
	"encoding/json"
	"fmt"
	"hash/crc32"
	"time"

	"github.com/fhuszti/cms-uploads-go/internal/port"
	"github.com/fhuszti/cms-uploads-go/internal/uuid"
)

type httpRenderer struct {
	cache port.Cache
	ttl   time.Duration
	now   func() time.Time
}

// compile-time check: *httpRenderer must satisfy port.HTTPRenderer
var _ port.HTTPRenderer = (*httpRenderer)(nil)

// NewHTTPRenderer creates a new port.HTTPRenderer implementation caching
// rendered uploads for ttl.
func NewHTTPRenderer(cache port.Cache, ttl time.Duration) port.HTTPRenderer {
	return &httpRenderer{cache: cache, ttl: ttl, now: time.Now}
}

// RenderGetUpload fetches upload details either from cache or from the wrapped
// use case. It returns the JSON encoded output and a quoted ETag string.
func (r *httpRenderer) RenderGetUpload(ctx context.Context, getter port.UploadGetter, id uuid.UUID) ([]byte, string, error) {
	raw, err := r.cache.GetUploadDetails(ctx, id)
	etag, errEtag := r.cache.GetEtagUploadDetails(ctx, id)
	if err == nil && errEtag == nil && raw != nil && etag != "" {
		return raw, etag, nil
	}

	out, err := getter.GetUpload(ctx, id)
	if err != nil {
		return nil, "", err
	}

	raw, err = json.Marshal(out)
	if err != nil {
		return nil, "", fmt.Errorf("json marshal: %w", err)
	}

	etag = fmt.Sprintf("\"%08x\"", crc32.ChecksumIEEE(raw))
	validUntil := r.now().Add(r.ttl)
	r.cache.SetUploadDetails(ctx, id, raw, validUntil)
	r.cache.SetEtagUploadDetails(ctx, id, etag, validUntil)

	return raw, etag, nil
}
