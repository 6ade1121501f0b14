package detector

import (
	"fmt"
	"io"

	"github.com/fhuszti/cms-uploads-go/internal/port"
	"github.com/gabriel-vasile/mimetype"
)

// HeaderSize is how many leading bytes are inspected for a signature.
const HeaderSize = 3072

// MaxCompoundFileSize bounds the full read of an OLE compound file. It sits
// above the largest upload size limit.
const MaxCompoundFileSize = 64 << 20

const (
	octetStream  = "application/octet-stream"
	oleContainer = "application/x-ole-storage"
)

func init() {
	// reads are bounded by detectHead, mimetype must not truncate again
	mimetype.SetLimit(0)
}

type MimetypeDetector struct{}

// compile-time check: *MimetypeDetector must satisfy port.SignatureDetector
var _ port.SignatureDetector = (*MimetypeDetector)(nil)

func NewMimetypeDetector() *MimetypeDetector {
	return &MimetypeDetector{}
}

// Detect reports the (extension, MIME) pair of a binary signature. Content
// that only classifies as generic binary or as some text format has no
// signature.
func (d *MimetypeDetector) Detect(r io.Reader) (port.Signature, bool, error) {
	mt, err := detectHead(r)
	if err != nil {
		return port.Signature{}, false, err
	}
	if !hasSignature(mt) {
		return port.Signature{}, false, nil
	}
	return port.Signature{Extension: mt.Extension(), MimeType: mt.String()}, true, nil
}

func (d *MimetypeDetector) MimeType(r io.Reader) (string, error) {
	mt, err := detectHead(r)
	if err != nil {
		return "", err
	}
	return mt.String(), nil
}

// detectHead classifies the first HeaderSize bytes. Legacy Office files
// (doc, xls, ppt, msi...) are only told apart by the root CLSID, which sits
// in the directory sector and is often past the header, so a bare OLE
// container is re-detected over the whole stream.
func detectHead(r io.Reader) (*mimetype.MIME, error) {
	head := make([]byte, HeaderSize)
	n, err := io.ReadFull(r, head)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return nil, fmt.Errorf("failed to read file header: %w", err)
	}
	mt := mimetype.Detect(head[:n])
	if !mt.Is(oleContainer) || n < HeaderSize {
		return mt, nil
	}

	rest, err := io.ReadAll(io.LimitReader(r, MaxCompoundFileSize-HeaderSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read compound file: %w", err)
	}
	return mimetype.Detect(append(head, rest...)), nil
}

func hasSignature(mt *mimetype.MIME) bool {
	if mt.Is(octetStream) {
		return false
	}
	for m := mt; m != nil; m = m.Parent() {
		if m.Is("text/plain") {
			return false
		}
	}
	return true
}
