package speech

import "strings"

const maxSlugLen = 60

// Slug reduces a title to lowercase ASCII words joined by dashes.
func Slug(title string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(title) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		case b.Len() > 0 && !dash:
			b.WriteByte('-')
			dash = true
		}
	}

	s := strings.TrimRight(b.String(), "-")
	if len(s) > maxSlugLen {
		s = strings.TrimRight(s[:maxSlugLen], "-")
	}
	if s == "" {
		return "podcast"
	}
	return s
}

// DownloadName is the file name offered for a title's narrated summary.
func DownloadName(title string) string {
	return Slug(title) + "-summary.mp3"
}
