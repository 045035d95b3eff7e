package danger

import "strings"

// cteFollowers are the tokens that may open the main statement after a CTE's
// closing parenthesis.
var cteFollowers = map[string]bool{
	"delete":   true,
	"update":   true,
	"insert":   true,
	"select":   true,
	"truncate": true,
}

// classifySQL applies the SQL heuristic: strip comments, split the input on
// ';' into statements, and check each statement's leading keyword. A script
// with more than one statement is reported as Script when any of its
// statements is dangerous, rather than as the specific kind.
func classifySQL(text string) (Kind, bool) {
	var statements []string
	for _, stmt := range strings.Split(stripLeadingComments(text), ";") {
		stmt = strings.TrimSpace(stripLeadingComments(stmt))
		if stmt != "" {
			statements = append(statements, stmt)
		}
	}

	switch len(statements) {
	case 0:
		return 0, false
	case 1:
		return classifyStatement(statements[0])
	default:
		for _, stmt := range statements {
			if _, dangerous := classifyStatement(stmt); dangerous {
				return Script, true
			}
		}
		return 0, false
	}
}

// classifyStatement checks a single comment-free statement.
func classifyStatement(stmt string) (Kind, bool) {
	lower := strings.ToLower(stmt)

	if strings.HasPrefix(lower, "with ") {
		lower = skipCTE(lower)
	}

	switch {
	case strings.HasPrefix(lower, "delete"):
		if !strings.Contains(lower, " where ") {
			return DeleteNoWhere, true
		}
	case strings.HasPrefix(lower, "update"):
		if !strings.Contains(lower, " where ") {
			return UpdateNoWhere, true
		}
	case strings.HasPrefix(lower, "truncate"):
		return Truncate, true
	case strings.HasPrefix(lower, "drop"):
		return Drop, true
	case strings.HasPrefix(lower, "alter"):
		return Alter, true
	}

	return 0, false
}

// skipCTE advances past a WITH prologue: it finds the first ')' whose next
// token opens a main statement (delete/update/insert/select/truncate) and
// returns the text from that token on. If no such ')' exists the input comes
// back unchanged, which leaves the "with" prefix matching nothing dangerous.
func skipCTE(lower string) string {
	for i := 0; i < len(lower); i++ {
		if lower[i] != ')' {
			continue
		}
		rest := lower[i+1:]
		trimmed := strings.TrimLeft(rest, " \t\r\n,")
		if word := leadingWord(trimmed); cteFollowers[word] {
			return trimmed
		}
	}
	return lower
}

// leadingWord returns the run of letters at the start of s, lower-cased
// input assumed.
func leadingWord(s string) string {
	end := 0
	for end < len(s) && s[end] >= 'a' && s[end] <= 'z' {
		end++
	}
	return s[:end]
}

// stripLeadingComments removes line (--) and block comments from the start
// of the text. An unterminated block comment swallows the remainder.
func stripLeadingComments(s string) string {
	for {
		s = strings.TrimLeft(s, " \t\r\n")

		if strings.HasPrefix(s, "--") {
			nl := strings.IndexByte(s, '\n')
			if nl < 0 {
				return ""
			}
			s = s[nl+1:]
			continue
		}

		if strings.HasPrefix(s, "/*") {
			end := strings.Index(s, "*/")
			if end < 0 {
				return ""
			}
			s = s[end+2:]
			continue
		}

		return s
	}
}
