package headers

import (
	"fmt"
	"net/http"
	"strings"
)

// ParseHeaders converts an array of header strings ("Key: Value") into a map.
// Keys are canonicalized; a later duplicate replaces an earlier one.
func ParseHeaders(h []string) (map[string]string, error) {
	m := make(map[string]string)
	for _, hdr := range h {
		parts := strings.SplitN(hdr, ":", 2)
		if len(parts) != 2 || strings.TrimSpace(parts[0]) == "" {
			return nil, fmt.Errorf("invalid header %q (expected \"Key: Value\")", hdr)
		}
		m[http.CanonicalHeaderKey(strings.TrimSpace(parts[0]))] = strings.TrimSpace(parts[1])
	}
	return m, nil
}
