package danger

import "strings"

// ClassifyCommand applies the key-value-command heuristic. Command syntax is
// not distinguishable from SQL by prefix, so this is invoked explicitly by
// callers that already know the dialect.
func ClassifyCommand(text string) (Kind, bool) {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return 0, false
	}

	switch strings.ToUpper(fields[0]) {
	case "FLUSHALL":
		return RedisFlushAll, true
	case "FLUSHDB":
		return RedisFlushDb, true
	case "KEYS":
		return RedisKeysPattern, true
	case "DEL":
		// A single-key DEL is routine; only the multi-key form is flagged.
		if len(fields) > 2 {
			return RedisMultiDelete, true
		}
	}

	return 0, false
}
