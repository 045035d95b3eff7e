package shell

import "strings"

// NormalizeRelaxedJSON rewrites shell-style object literals into strict
// JSON text: single-quoted strings become double-quoted and unquoted object
// keys are wrapped in double quotes. Anything else passes through untouched,
// so text that is already strict JSON comes back byte for byte, and non-key
// junk is left for the JSON decoder to reject with a real error.
func NormalizeRelaxedJSON(s string) string {
	var out strings.Builder
	out.Grow(len(s) + 16)

	for i := 0; i < len(s); i++ {
		c := s[i]

		switch c {
		case '"':
			i = copyString(&out, s, i)

		case '\'':
			i = rewriteSingleQuoted(&out, s, i)

		case '{', ',':
			out.WriteByte(c)
			if next := quoteKeyAfter(&out, s, i+1); next > i {
				i = next
			}

		default:
			out.WriteByte(c)
		}
	}

	return out.String()
}

// copyString copies a double-quoted string verbatim, returning the index of
// its closing quote (or the last byte if unterminated).
func copyString(out *strings.Builder, s string, start int) int {
	out.WriteByte('"')
	for i := start + 1; i < len(s); i++ {
		c := s[i]
		out.WriteByte(c)
		if c == '\\' && i+1 < len(s) {
			i++
			out.WriteByte(s[i])
			continue
		}
		if c == '"' {
			return i
		}
	}
	return len(s) - 1
}

// rewriteSingleQuoted emits a single-quoted string as a double-quoted one.
// Escapes carry over; a literal '"' inside gains a backslash and an escaped
// quote loses one, since it no longer needs escaping.
func rewriteSingleQuoted(out *strings.Builder, s string, start int) int {
	out.WriteByte('"')
	for i := start + 1; i < len(s); i++ {
		c := s[i]
		switch c {
		case '\\':
			if i+1 < len(s) {
				i++
				if s[i] == '\'' {
					out.WriteByte('\'')
				} else {
					out.WriteByte('\\')
					out.WriteByte(s[i])
				}
				continue
			}
			out.WriteByte('\\')
		case '\'':
			out.WriteByte('"')
			return i
		case '"':
			out.WriteString(`\"`)
		default:
			out.WriteByte(c)
		}
	}
	return len(s) - 1
}

// quoteKeyAfter looks past position from for an unquoted identifier followed
// by ':'. When found it emits the skipped whitespace and the identifier in
// double quotes, and returns the index of the identifier's last byte so the
// caller resumes right before the ':'. Otherwise it returns from-1 and emits
// nothing.
func quoteKeyAfter(out *strings.Builder, s string, from int) int {
	i := from
	for i < len(s) && isSpace(s[i]) {
		i++
	}

	start := i
	for i < len(s) && isIdentByte(s[i]) {
		i++
	}
	if i == start {
		return from - 1
	}

	j := i
	for j < len(s) && isSpace(s[j]) {
		j++
	}
	if j >= len(s) || s[j] != ':' {
		return from - 1
	}

	out.WriteString(s[from:start])
	out.WriteByte('"')
	out.WriteString(s[start:i])
	out.WriteByte('"')
	return i - 1
}

// isIdentByte reports whether c can appear in a shell identifier or
// unquoted object key.
func isIdentByte(c byte) bool {
	return c >= 'a' && c <= 'z' ||
		c >= 'A' && c <= 'Z' ||
		c >= '0' && c <= '9' ||
		c == '_' || c == '$'
}
