package st2110

import "strings"

// line is one <letter>=<value> record with its 1-based position in the input.
type line struct {
	typ   byte
	value string
	num   int
}

// scopedLines separates the session-level lines from the per-media blocks.
// Everything before the first m= line is session scope; each m= line opens a
// media scope that runs until the next m= or the end of input.
type scopedLines struct {
	session []line
	media   [][]line
}

// tokenize splits raw SDP text into scoped line records. Lines are "\r\n" or
// "\n" terminated; empty lines are ignored.
func tokenize(text string) (*scopedLines, error) {
	scopes := &scopedLines{}
	mediaIndex := -1

	for i, raw := range strings.Split(text, "\n") {
		raw = strings.TrimSuffix(raw, "\r")
		if raw == "" {
			continue
		}
		if len(raw) < 2 || raw[1] != '=' || raw[0] < 'a' || raw[0] > 'z' {
			return nil, malformedLine(i+1, raw)
		}

		l := line{typ: raw[0], value: raw[2:], num: i + 1}
		if l.typ == 'm' {
			scopes.media = append(scopes.media, []line{l})
			mediaIndex++
			continue
		}
		if mediaIndex < 0 {
			scopes.session = append(scopes.session, l)
		} else {
			scopes.media[mediaIndex] = append(scopes.media[mediaIndex], l)
		}
	}

	return scopes, nil
}
