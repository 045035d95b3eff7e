package danger

import "strings"

// classifyShell applies the document-shell heuristic over lower-cased text.
// Drop calls are always flagged; deleteMany/updateMany only when their
// filter argument is empty.
func classifyShell(text string) (Kind, bool) {
	lower := strings.ToLower(text)

	if strings.Contains(lower, ".dropdatabase(") {
		return MongoDropDatabase, true
	}
	if strings.Contains(lower, ".drop(") {
		return MongoDropCollection, true
	}
	if idx := strings.Index(lower, ".deletemany("); idx >= 0 {
		if emptyFilterArg(lower[idx+len(".deletemany("):]) {
			return MongoDeleteMany, true
		}
	}
	if idx := strings.Index(lower, ".updatemany("); idx >= 0 {
		if emptyFilterArg(lower[idx+len(".updatemany("):]) {
			return MongoUpdateMany, true
		}
	}

	return 0, false
}

// emptyFilterArg reports whether the text right after a call's opening paren
// denotes an empty filter: an immediate ')', a literal '{}', or a braced
// span whose interior is only whitespace.
func emptyFilterArg(after string) bool {
	after = strings.TrimLeft(after, " \t\r\n")
	if after == "" {
		return false
	}
	if after[0] == ')' {
		return true
	}
	if after[0] != '{' {
		return false
	}

	closing := strings.IndexByte(after, '}')
	if closing < 0 {
		return false
	}
	return strings.TrimSpace(after[1:closing]) == ""
}
