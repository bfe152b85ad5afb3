package ignore

import (
	"regexp"
	"strings"
)

// Pattern is a single compiled gitignore rule. Patterns are immutable after
// compilation and safe for concurrent matching.
type Pattern struct {
	Negated bool // pattern started with !
	DirOnly bool // pattern ended with /
	Rooted  bool // pattern started with /

	re  *regexp.Regexp
	raw string
}

// Compile turns one gitignore pattern line into a Pattern. The line must
// already be filtered for blanks and comments. Compile never fails: a pattern
// that does not translate to a valid expression degrades to a literal match.
func Compile(line string) *Pattern {
	raw := line
	line = trimTrailingWhitespace(line)

	// A leading backslash escapes a would-be special first character.
	negated := false
	if strings.HasPrefix(line, `\!`) || strings.HasPrefix(line, `\#`) {
		line = line[1:]
	} else if strings.HasPrefix(line, "!") {
		negated = true
		line = line[1:]
		if strings.HasPrefix(line, `\!`) || strings.HasPrefix(line, `\#`) {
			line = line[1:]
		}
	}

	dirOnly := false
	if strings.HasSuffix(line, "/") {
		dirOnly = true
		line = strings.TrimSuffix(line, "/")
	}

	rooted := false
	if strings.HasPrefix(line, "/") {
		rooted = true
		line = strings.TrimPrefix(line, "/")
	}

	expr := translate(line, rooted, dirOnly)
	re, err := regexp.Compile(expr)
	if err != nil {
		// Malformed glob, e.g. an invalid character class. Treat the whole
		// body as literal text instead of failing.
		re = regexp.MustCompile(boundary(regexp.QuoteMeta(line), rooted, dirOnly))
	}

	return &Pattern{
		Negated: negated,
		DirOnly: dirOnly,
		Rooted:  rooted,
		re:      re,
		raw:     raw,
	}
}

// Match reports whether the pattern matches a /-separated relative path.
// Directory probes carry a trailing slash.
func (p *Pattern) Match(rel string) bool {
	return p.re.MatchString(rel)
}

// String returns the original pattern text.
func (p *Pattern) String() string {
	return p.raw
}

// translate converts a gitignore glob body to a regular expression.
func translate(body string, rooted, dirOnly bool) string {
	var b strings.Builder

	i := 0
	for i < len(body) {
		c := body[i]
		switch c {
		case '*':
			if i+1 < len(body) && body[i+1] == '*' {
				switch {
				case i+2 < len(body) && body[i+2] == '/':
					// **/ matches zero or more path segments
					b.WriteString("(?:.*/)?")
					i += 3
				case i == 0 && i+2 == len(body):
					// a bare ** matches everything
					b.WriteString(".*")
					i += 2
				default:
					b.WriteString("[^/]*")
					i++
				}
			} else {
				b.WriteString("[^/]*")
				i++
			}
		case '?':
			b.WriteString("[^/]")
			i++
		case '[':
			end := strings.IndexByte(body[i+1:], ']')
			if end < 0 {
				// Unterminated class degrades to a literal bracket.
				b.WriteString(`\[`)
				i++
			} else {
				b.WriteString(body[i : i+end+2])
				i += end + 2
			}
		case '/':
			b.WriteByte('/')
			i++
		default:
			if strings.IndexByte(`.^$+(){}|`, c) >= 0 {
				b.WriteByte('\\')
			}
			b.WriteByte(c)
			i++
		}
	}

	return boundary(b.String(), rooted, dirOnly)
}

// boundary wraps a translated body with its anchoring prefix and
// trailing-boundary suffix. Rooted patterns match from the start of the
// relative path only; unrooted ones may also start right after any slash.
// Directory-only patterns require an explicit slash after the match, which
// also makes them cover everything beneath the directory. Other patterns
// accept end-of-string or a following slash.
func boundary(body string, rooted, dirOnly bool) string {
	var b strings.Builder
	if rooted {
		b.WriteString("^")
	} else {
		b.WriteString("(?:^|/)")
	}
	b.WriteString(body)
	if dirOnly {
		b.WriteString("/")
	} else {
		b.WriteString("(?:$|/)")
	}
	return b.String()
}

// trimTrailingWhitespace strips trailing spaces and tabs unless the last one
// is escaped with a backslash.
func trimTrailingWhitespace(s string) string {
	end := len(s)
	for end > 0 && (s[end-1] == ' ' || s[end-1] == '\t') {
		if end >= 2 && s[end-2] == '\\' {
			break
		}
		end--
	}
	return s[:end]
}
