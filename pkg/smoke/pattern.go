package smoke

import (
	"fmt"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// Pattern matches a document title. It is written either as a regular
// expression literal, /body/flags, or as a plain string that must equal the
// title after whitespace normalization.
type Pattern struct {
	raw   string
	re    *regexp.Regexp
	exact string
}

// ParsePattern parses a title pattern. Supported literal flags are i
// (case-insensitive), m (multi-line) and s (dot matches newline).
func ParsePattern(s string) (Pattern, error) {
	if s == "" {
		return Pattern{}, fmt.Errorf("empty title pattern")
	}

	end := strings.LastIndex(s, "/")
	if !strings.HasPrefix(s, "/") || end <= 0 {
		return Pattern{raw: s, exact: normalizeSpace(s)}, nil
	}

	body, flags := s[1:end], s[end+1:]
	var prefix string
	for _, f := range flags {
		switch f {
		case 'i', 'm', 's':
			if !strings.ContainsRune(prefix, f) {
				prefix += string(f)
			}
		default:
			return Pattern{}, fmt.Errorf("title pattern %s: unsupported flag %q", s, f)
		}
	}
	if prefix != "" {
		body = "(?" + prefix + ")" + body
	}

	re, err := regexp.Compile(body)
	if err != nil {
		return Pattern{}, fmt.Errorf("title pattern %s: %w", s, err)
	}
	return Pattern{raw: s, re: re}, nil
}

// MustParsePattern is like ParsePattern but panics on error.
func MustParsePattern(s string) Pattern {
	p, err := ParsePattern(s)
	if err != nil {
		panic(err)
	}
	return p
}

// Match reports whether title satisfies the pattern.
func (p Pattern) Match(title string) bool {
	if p.re != nil {
		return p.re.MatchString(title)
	}
	return p.exact == normalizeSpace(title)
}

// IsZero reports whether the pattern was never set.
func (p Pattern) IsZero() bool {
	return p.raw == ""
}

// String returns the pattern as written.
func (p Pattern) String() string {
	return p.raw
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (p *Pattern) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParsePattern(s)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*p = parsed
	return nil
}

func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
