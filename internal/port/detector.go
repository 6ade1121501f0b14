package port

import "io"

// Signature is the (extension, MIME) pair associated with a recognised
// binary signature.
type Signature struct {
	Extension string
	MimeType  string
}

// SignatureDetector inspects the leading bytes of a file.
type SignatureDetector interface {
	// Detect reports the signature of the content, or false when the content
	// carries no recognisable magic number.
	Detect(r io.Reader) (Signature, bool, error)
	// MimeType returns the best-effort MIME type of the content, text formats
	// included.
	MimeType(r io.Reader) (string, error)
}
