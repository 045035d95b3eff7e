package shell

// scanState tracks where the delimiter scanner is inside the input.
// Brackets are only significant in scanNormal; inside a string every
// bracket character is inert.
type scanState int

const (
	scanNormal scanState = iota
	scanInString
	scanEscaped
)

// MatchParen returns the byte index of the ')' matching the '(' at open.
// '{' and '[' increase nesting depth and '}', ']' and ')' decrease it, but
// only a ')' seen at depth zero terminates the match: a stray '}' or ']'
// inside the call never closes it. Single- and double-quoted strings are
// skipped, honoring backslash escapes.
func MatchParen(s string, open int) (int, error) {
	if open < 0 || open >= len(s) || s[open] != '(' {
		return 0, &ParseError{Message: "unmatched parenthesis", Offset: open, Length: 1}
	}

	state := scanNormal
	var quote byte
	depth := 0

	for i := open + 1; i < len(s); i++ {
		c := s[i]

		switch state {
		case scanEscaped:
			state = scanInString

		case scanInString:
			switch c {
			case '\\':
				state = scanEscaped
			case quote:
				state = scanNormal
			}

		case scanNormal:
			switch c {
			case '\'', '"':
				state = scanInString
				quote = c
			case '(', '{', '[':
				depth++
			case ')':
				if depth == 0 {
					return i, nil
				}
				depth--
			case '}', ']':
				if depth > 0 {
					depth--
				}
			}
		}
	}

	return 0, &ParseError{Message: "unmatched parenthesis", Offset: open, Length: len(s) - open}
}

// SplitArgs splits the contents of an argument list on top-level commas,
// tracking nesting and strings the same way MatchParen does. Each argument
// is returned trimmed; an empty list and a lone empty argument both yield nil.
func SplitArgs(s string) []string {
	args, _ := splitArgsAt(s, 0)
	return args
}

// splitArgsAt is SplitArgs plus the byte offset (relative to base) at which
// each argument starts, before trimming is applied. The offsets feed the
// positional parse errors.
func splitArgsAt(s string, base int) ([]string, []int) {
	state := scanNormal
	var quote byte
	depth := 0
	start := 0

	var args []string
	var offsets []int

	push := func(raw string, at int) {
		trimmed, lead := trimWithOffset(raw)
		args = append(args, trimmed)
		offsets = append(offsets, base+at+lead)
	}

	for i := 0; i < len(s); i++ {
		c := s[i]

		switch state {
		case scanEscaped:
			state = scanInString

		case scanInString:
			switch c {
			case '\\':
				state = scanEscaped
			case quote:
				state = scanNormal
			}

		case scanNormal:
			switch c {
			case '\'', '"':
				state = scanInString
				quote = c
			case '(', '{', '[':
				depth++
			case ')', '}', ']':
				if depth > 0 {
					depth--
				}
			case ',':
				if depth == 0 {
					push(s[start:i], start)
					start = i + 1
				}
			}
		}
	}

	push(s[start:], start)

	if len(args) == 1 && args[0] == "" {
		return nil, nil
	}
	return args, offsets
}

// trimWithOffset trims surrounding whitespace and reports how many leading
// bytes were removed.
func trimWithOffset(s string) (string, int) {
	lead := 0
	for lead < len(s) && isSpace(s[lead]) {
		lead++
	}
	end := len(s)
	for end > lead && isSpace(s[end-1]) {
		end--
	}
	return s[lead:end], lead
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}
