package upload

import (
	"fmt"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/fhuszti/cms-uploads-go/internal/model"
)

// AllowList is the closed set of extensions and MIME types accepted for a
// category.
type AllowList struct {
	Extensions map[string]bool
	MimeTypes  map[string]bool
}

var AllowLists = map[model.Category]AllowList{
	model.CategoryMedia: {
		Extensions: map[string]bool{
			".jpg":  true,
			".jpeg": true,
			".png":  true,
			".gif":  true,
			".webp": true,
			".svg":  true,
			".ico":  true,
			".bmp":  true,
			".avif": true,
			".mp4":  true,
			".m4v":  true,
			".webm": true,
			".mov":  true,
			".avi":  true,
			".mp3":  true,
			".wav":  true,
			".ogg":  true,
			".m4a":  true,
		},
		MimeTypes: map[string]bool{
			"image/jpeg":               true,
			"image/png":                true,
			"image/gif":                true,
			"image/webp":               true,
			"image/svg+xml":            true,
			"image/x-icon":             true,
			"image/vnd.microsoft.icon": true,
			"image/bmp":                true,
			"image/avif":               true,
			"video/mp4":                true,
			"video/x-m4v":              true,
			"video/ogg":                true,
			"video/webm":               true,
			"video/quicktime":          true,
			"video/x-msvideo":          true,
			"audio/mpeg":               true,
			"audio/wav":                true,
			"audio/x-wav":              true,
			"audio/ogg":                true,
			"application/ogg":          true,
			"audio/mp4":                true,
			"audio/x-m4a":              true,
		},
	},
	model.CategoryDocument: {
		Extensions: map[string]bool{
			".pdf":  true,
			".doc":  true,
			".docx": true,
			".xls":  true,
			".xlsx": true,
			".ppt":  true,
			".pptx": true,
			".odt":  true,
			".ods":  true,
			".odp":  true,
			".txt":  true,
			".csv":  true,
			".rtf":  true,
			".json": true,
			".xml":  true,
			".zip":  true,
			".rar":  true,
			".7z":   true,
		},
		MimeTypes: map[string]bool{
			"application/pdf":    true,
			"application/msword": true,
			"application/vnd.openxmlformats-officedocument.wordprocessingml.document":   true,
			"application/vnd.ms-excel":                                                  true,
			"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet":         true,
			"application/vnd.ms-powerpoint":                                             true,
			"application/vnd.openxmlformats-officedocument.presentationml.presentation": true,
			"application/vnd.oasis.opendocument.text":                                   true,
			"application/vnd.oasis.opendocument.spreadsheet":                            true,
			"application/vnd.oasis.opendocument.presentation":                           true,
			"text/plain":                   true,
			"text/csv":                     true,
			"text/rtf":                     true,
			"application/rtf":              true,
			"application/json":             true,
			"application/xml":              true,
			"text/xml":                     true,
			"application/zip":              true,
			"application/x-rar-compressed": true,
			"application/vnd.rar":          true,
			"application/x-7z-compressed":  true,
		},
	},
}

// SignaturelessExtensions lists the text formats that carry no magic number.
// Only these may be accepted without a detected signature, and only when the
// active allow-list also contains them.
var SignaturelessExtensions = map[string]bool{
	".txt":  true,
	".csv":  true,
	".svg":  true,
	".rtf":  true,
	".html": true,
	".xml":  true,
	".json": true,
}

var categoryDirs = map[model.Category]string{
	model.CategoryMedia:    "media",
	model.CategoryDocument: "documents",
}

// CategoryAliases lists every spelling of a category accepted in routes and
// query strings.
var CategoryAliases = map[string]model.Category{
	"media":     model.CategoryMedia,
	"document":  model.CategoryDocument,
	"documents": model.CategoryDocument,
}

// ParseCategory maps a route or query value onto a Category.
func ParseCategory(s string) (model.Category, error) {
	if c, ok := CategoryAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return c, nil
	}
	return "", fmt.Errorf("unknown upload category %q", s)
}

func IsAllowedExtension(category model.Category, ext string) bool {
	return AllowLists[category].Extensions[normaliseExtension(ext)]
}

func IsAllowedMime(category model.Category, mimeType string) bool {
	return AllowLists[category].MimeTypes[normaliseMime(mimeType)]
}

func IsSignatureless(ext string) bool {
	return SignaturelessExtensions[normaliseExtension(ext)]
}

// AllowedExtensions returns the sorted extension allow-list of a category.
func AllowedExtensions(category model.Category) []string {
	exts := make([]string, 0, len(AllowLists[category].Extensions))
	for ext := range AllowLists[category].Extensions {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// FileExtension returns the lowercased extension of a client-supplied
// filename, dot included. Windows separators are honoured.
func FileExtension(filename string) string {
	return strings.ToLower(path.Ext(strings.ReplaceAll(filename, `\`, "/")))
}

// PartitionDir returns the storage directory for uploads of a category
// received at t, e.g. "media/2024/03/09".
func PartitionDir(category model.Category, t time.Time) string {
	dir, ok := categoryDirs[category]
	if !ok {
		dir = string(category)
	}
	t = t.UTC()
	return fmt.Sprintf("%s/%04d/%02d/%02d", dir, t.Year(), int(t.Month()), t.Day())
}

func normaliseExtension(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}

func normaliseMime(mimeType string) string {
	mimeType, _, _ = strings.Cut(mimeType, ";")
	return strings.ToLower(strings.TrimSpace(mimeType))
}
