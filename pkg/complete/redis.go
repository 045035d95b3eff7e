package complete

import (
	"strconv"
	"strings"
	"unicode"
)

var redisCommands = []string{
	"GET", "SET", "DEL", "EXISTS", "EXPIRE", "TTL", "PERSIST", "TYPE",
	"INCR", "DECR", "INCRBY", "DECRBY", "APPEND", "STRLEN",
	"MGET", "MSET", "SETNX", "GETSET", "GETDEL",
	"HGET", "HSET", "HDEL", "HGETALL", "HKEYS", "HVALS", "HLEN",
	"LPUSH", "RPUSH", "LPOP", "RPOP", "LRANGE", "LLEN",
	"SADD", "SREM", "SMEMBERS", "SCARD", "SISMEMBER",
	"ZADD", "ZREM", "ZRANGE", "ZSCORE", "ZCARD",
	"KEYS", "SCAN", "SELECT", "DBSIZE", "FLUSHDB", "FLUSHALL",
	"PING", "ECHO", "INFO",
}

// argPositions says at which argument indexes a command takes key names.
type argPositions int

const (
	keyNone  argPositions = iota
	keyFirst              // key at argument 0 only
	keyEvery              // every argument is a key (MGET, DEL)
	keyEven               // keys at even argument indexes (MSET)
)

var redisKeyArgs = map[string]argPositions{
	"GET": keyFirst, "SET": keyFirst, "EXISTS": keyEvery, "DEL": keyEvery,
	"EXPIRE": keyFirst, "TTL": keyFirst, "PERSIST": keyFirst, "TYPE": keyFirst,
	"INCR": keyFirst, "DECR": keyFirst, "INCRBY": keyFirst, "DECRBY": keyFirst,
	"APPEND": keyFirst, "STRLEN": keyFirst,
	"MGET": keyEvery, "MSET": keyEven, "SETNX": keyFirst,
	"GETSET": keyFirst, "GETDEL": keyFirst,
	"HGET": keyFirst, "HSET": keyFirst, "HDEL": keyFirst,
	"HGETALL": keyFirst, "HKEYS": keyFirst, "HVALS": keyFirst, "HLEN": keyFirst,
	"LPUSH": keyFirst, "RPUSH": keyFirst, "LPOP": keyFirst, "RPOP": keyFirst,
	"LRANGE": keyFirst, "LLEN": keyFirst,
	"SADD": keyFirst, "SREM": keyFirst, "SMEMBERS": keyFirst,
	"SCARD": keyFirst, "SISMEMBER": keyFirst,
	"ZADD": keyFirst, "ZREM": keyFirst, "ZRANGE": keyFirst,
	"ZSCORE": keyFirst, "ZCARD": keyFirst,
}

// redisOptions lists per-command option flags and the first argument index
// at which they may appear.
var redisOptions = map[string]struct {
	fromArg int
	opts    []string
}{
	"SET":    {2, []string{"NX", "XX", "EX", "PX", "EXAT", "PXAT", "KEEPTTL", "GET"}},
	"EXPIRE": {2, []string{"NX", "XX", "GT", "LT"}},
	"ZADD":   {1, []string{"NX", "XX", "GT", "LT", "CH", "INCR"}},
}

type redisCompleter struct{}

func (redisCompleter) keywords() []string { return redisCommands }

func (redisCompleter) complete(text string, cursor int, meta *Metadata) []Item {
	before := text[:cursor]
	fields := strings.Fields(before)

	startingNewToken := len(before) > 0 &&
		unicode.IsSpace(rune(before[len(before)-1]))

	// Still typing the command name itself.
	if len(fields) == 0 || (len(fields) == 1 && !startingNewToken) {
		prefix := ""
		if len(fields) == 1 {
			prefix = fields[0]
		}
		return keywordItems(redisCommands, prefix)
	}

	command := strings.ToUpper(fields[0])
	prefix := ""
	argIndex := len(fields) - 1
	if !startingNewToken {
		prefix = fields[len(fields)-1]
		argIndex = len(fields) - 2
	}

	var items []Item
	if command == "SELECT" && argIndex == 0 {
		for _, ks := range meta.Keyspaces {
			label := strconv.Itoa(ks)
			if strings.HasPrefix(label, prefix) {
				items = append(items, Item{Label: label, Kind: KindValue})
			}
		}
		return items
	}

	if opt, ok := redisOptions[command]; ok && argIndex >= opt.fromArg {
		for _, o := range opt.opts {
			if hasPrefixFold(o, prefix) {
				items = append(items, Item{Label: o, Kind: KindKeyword})
			}
		}
	}

	if keyArgAllowed(command, argIndex) {
		for _, key := range meta.Keys {
			if hasPrefixFold(key, prefix) {
				items = append(items, Item{Label: key, Kind: KindValue})
			}
		}
	}

	return items
}

func keyArgAllowed(command string, argIndex int) bool {
	switch redisKeyArgs[command] {
	case keyFirst:
		return argIndex == 0
	case keyEvery:
		return true
	case keyEven:
		return argIndex%2 == 0
	}
	return false
}
