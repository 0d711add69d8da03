package builder

import (
	"strings"

	"github.com/arthur-debert/bulkmv/pkg/types"
)

// EncodeHandoff renders ids as the editor handoff text: one path per line,
// no trailing newline.
func EncodeHandoff(ids []types.PathID) []byte {
	lines := make([]string, len(ids))
	for i, id := range ids {
		lines[i] = id.String()
	}
	return []byte(strings.Join(lines, "\n"))
}

// DecodeHandoff splits edited handoff text into names. Lines end at "\n"
// with an optional "\r" before it, and a final line terminator does not
// start another name. Empty input yields no names.
func DecodeHandoff(data []byte) []string {
	s := string(data)
	if s == "" {
		return []string{}
	}
	s = strings.TrimSuffix(s, "\n")
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}
