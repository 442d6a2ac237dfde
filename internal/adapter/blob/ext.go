package blob

import (
	"mime"
	"path/filepath"
	"strings"
)

// Extension picks the file extension for an upload. The filename wins;
// the content type is the fallback.
func Extension(filename, contentType string) string {
	if ext := strings.TrimPrefix(filepath.Ext(filename), "."); ext != "" {
		return strings.ToLower(ext)
	}

	switch ct, _, _ := mime.ParseMediaType(contentType); ct {
	case "image/jpeg":
		return "jpg"
	case "image/png":
		return "png"
	case "image/gif":
		return "gif"
	case "image/webp":
		return "webp"
	case "image/heic":
		return "heic"
	case "":
		return "bin"
	default:
		if exts, _ := mime.ExtensionsByType(ct); len(exts) > 0 {
			return strings.TrimPrefix(exts[0], ".")
		}
		return "bin"
	}
}
