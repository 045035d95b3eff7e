package shell

import "testing"

func TestNormalizeRelaxedJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"unquoted key", "{name: 'a'}", `{"name": "a"}`},
		{"multiple keys", "{a: 1, b: 2}", `{"a": 1, "b": 2}`},
		{"dollar key", "{$set: {x: 1}}", `{"$set": {"x": 1}}`},
		{"underscore key", "{_id: 1}", `{"_id": 1}`},
		{"single-quoted value", "{\"a\": 'hello'}", `{"a": "hello"}`},
		{"escaped single quote", `{a: 'it\'s'}`, `{"a": "it's"}`},
		{"double quote inside single", `{a: 'say "hi"'}`, `{"a": "say \"hi\""}`},
		{"no whitespace", "{a:1}", `{"a":1}`},
		{"whitespace around key", "{ a : 1 }", `{ "a" : 1 }`},
		{"array of objects", "[{a: 1}, {b: 2}]", `[{"a": 1}, {"b": 2}]`},
		{"nested", "{a: {b: {c: 'd'}}}", `{"a": {"b": {"c": "d"}}}`},
		{"colon in string not a key", `{"a": "b:c"}`, `{"a": "b:c"}`},
		{"ident without colon untouched", "{a}", "{a}"},
		{"bare value untouched", "true", "true"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeRelaxedJSON(tt.in)
			if got != tt.want {
				t.Errorf("NormalizeRelaxedJSON(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

// Normalizing strict JSON must be a no-op, including a second pass over
// already-normalized output.
func TestNormalizeRelaxedJSONIdempotent(t *testing.T) {
	strict := []string{
		`{}`,
		`{"name": "John"}`,
		`{"a": 1, "b": [1, 2, 3]}`,
		`{"a": {"b": "c"}, "d": null}`,
		`{"s": "unquoted: not a key, here"}`,
		`{"esc": "a \"quoted\" word"}`,
	}

	for _, s := range strict {
		if got := NormalizeRelaxedJSON(s); got != s {
			t.Errorf("NormalizeRelaxedJSON(%q) = %q, want unchanged", s, got)
		}
	}

	relaxed := []string{"{name: 'a'}", "{a: 1, b: {c: 'd'}}"}
	for _, s := range relaxed {
		once := NormalizeRelaxedJSON(s)
		if twice := NormalizeRelaxedJSON(once); twice != once {
			t.Errorf("normalize not idempotent: %q -> %q -> %q", s, once, twice)
		}
	}
}
