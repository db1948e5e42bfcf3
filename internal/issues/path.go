package issues

import (
	"strings"
	"sync"
)

var stringBuilderPool = sync.Pool{
	New: func() any {
		return new(strings.Builder)
	},
}

// FormatPath joins document path segments with dots, skipping empty ones.
func FormatPath(segments ...string) string {
	switch len(segments) {
	case 0:
		return ""
	case 1:
		return segments[0]
	}

	sb := stringBuilderPool.Get().(*strings.Builder)
	sb.Reset()
	for _, seg := range segments {
		if seg == "" {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteByte('.')
		}
		sb.WriteString(seg)
	}
	result := sb.String()
	stringBuilderPool.Put(sb)
	return result
}
