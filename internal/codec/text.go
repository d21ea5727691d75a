package codec

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"vclock/internal/clock"
)

// Format returns the text form {a:1, b:2}. Node IDs that are empty or hold
// a separator, a brace, a quote, whitespace or unprintable runes are written
// as Go-quoted strings, e.g. {"a,b":1}, so Parse can read every result.
func Format(vc clock.VectorClock) string {
	var sb strings.Builder
	sb.WriteByte('{')
	i := 0
	for node, counter := range vc.All() {
		if i > 0 {
			sb.WriteString(", ")
		}
		if needsQuoting(node) {
			sb.WriteString(strconv.Quote(node))
		} else {
			sb.WriteString(node)
		}
		sb.WriteByte(':')
		sb.WriteString(strconv.FormatUint(counter, 10))
		i++
	}
	sb.WriteByte('}')
	return sb.String()
}

func needsQuoting(node string) bool {
	if node == "" {
		return true
	}
	return strings.ContainsFunc(node, func(r rune) bool {
		switch r {
		case ',', '=', ':', '{', '}', '"':
			return true
		}
		return unicode.IsSpace(r) || !unicode.IsPrint(r)
	})
}

// Parse reads a clock in text form. It accepts the output of Format as well
// as the bare list "a=1,b=2". Entries may come in any order and may be
// separated by whitespace. Quoted node IDs may contain any character.
func Parse(s string) (clock.VectorClock, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "{") {
		if !strings.HasSuffix(s, "}") {
			return clock.Empty, fmt.Errorf("%w: unbalanced braces in %q", ErrMalformed, s)
		}
		s = s[1 : len(s)-1]
	}
	if strings.TrimSpace(s) == "" {
		return clock.Empty, nil
	}

	parts, err := splitEntries(s)
	if err != nil {
		return clock.Empty, err
	}
	entries := make([]clock.Entry, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		e, err := parseEntry(part)
		if err != nil {
			return clock.Empty, err
		}
		entries = append(entries, e)
	}
	return build(entries)
}

// splitEntries splits s at commas outside quoted node IDs.
func splitEntries(s string) ([]string, error) {
	var parts []string
	start := 0
	inQuote, escaped := false, false
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case escaped:
			escaped = false
		case inQuote && c == '\\':
			escaped = true
		case c == '"':
			inQuote = !inQuote
		case !inQuote && c == ',':
			parts = append(parts, s[start:i])
			start = i + 1
		}
	}
	if inQuote {
		return nil, fmt.Errorf("%w: unterminated quote in %q", ErrMalformed, s)
	}
	return append(parts, s[start:]), nil
}

func parseEntry(part string) (clock.Entry, error) {
	var node, rest string
	if strings.HasPrefix(part, `"`) {
		quoted, err := strconv.QuotedPrefix(part)
		if err != nil {
			return clock.Entry{}, fmt.Errorf("%w: node in %q: %v", ErrMalformed, part, err)
		}
		node, _ = strconv.Unquote(quoted)
		rest = strings.TrimSpace(part[len(quoted):])
		if rest == "" || (rest[0] != ':' && rest[0] != '=') {
			return clock.Entry{}, fmt.Errorf("%w: %q (expected node=counter)", ErrMalformed, part)
		}
		rest = rest[1:]
	} else {
		// Counters never contain a separator, so split at the last one.
		sep := strings.LastIndexAny(part, "=:")
		if sep < 0 {
			return clock.Entry{}, fmt.Errorf("%w: %q (expected node=counter)", ErrMalformed, part)
		}
		node = strings.TrimSpace(part[:sep])
		if node == "" {
			return clock.Entry{}, fmt.Errorf("%w: empty node in %q", ErrMalformed, part)
		}
		rest = part[sep+1:]
	}

	counter, err := strconv.ParseUint(strings.TrimSpace(rest), 10, 64)
	if err != nil {
		return clock.Entry{}, fmt.Errorf("%w: counter in %q: %v", ErrMalformed, part, err)
	}
	return clock.Entry{Node: node, Counter: counter}, nil
}
