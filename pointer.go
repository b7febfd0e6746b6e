package inputschema

import "strings"

// JSON Pointer helpers (RFC 6901). Paths produced by the engine always start
// at the instance or schema root, so "" renders as "/".

var pointerEscaper = strings.NewReplacer("~", "~0", "/", "~1")

var pointerUnescaper = strings.NewReplacer("~1", "/", "~0", "~")

func escapePointerToken(s string) string { return pointerEscaper.Replace(s) }

func unescapePointerToken(s string) string { return pointerUnescaper.Replace(s) }

func joinPointer(base, token string) string {
	if base == "" || base == "/" {
		return "/" + escapePointerToken(token)
	}
	return base + "/" + escapePointerToken(token)
}

func normalizePointer(p string) string {
	if p == "" {
		return "/"
	}
	return p
}
