package queryast

import (
	"encoding/base64"
	"strings"
	"unicode/utf16"
)

// foldResult is the accumulated effect of folding a modifier chain over a
// raw field entry: which MatchOp the leaves use, whether list values are
// OR'd (default) or AND'd (the "all" modifier), and the final transformed
// value list.
type foldResult struct {
	op              MatchOp
	allOf           bool
	caseInsensitive bool
	values          []interface{}
}

// foldModifiers applies modifiers left to right, exactly the order they
// appeared in "field|mod1|mod2...". Transform modifiers (base64,
// base64offset, wide/utf16) act on the value list in place; op modifiers
// (contains, startswith, endswith, re, cidr, lt/lte/gt/gte) set the
// leaves' MatchOp; "all" flips list semantics from OR to AND; "cased"
// clears caseInsensitive and has no other effect, per the unresolved open
// question on its semantics.
func foldModifiers(modifiers []string, values []interface{}) foldResult {
	r := foldResult{op: Equals, caseInsensitive: true, values: values}
	for _, mod := range modifiers {
		switch mod {
		case "contains":
			r.op = Contains
		case "startswith":
			r.op = StartsWith
		case "endswith":
			r.op = EndsWith
		case "re":
			r.op = Regex
		case "cidr":
			r.op = CidrIn
		case "lt":
			r.op = NumericLt
		case "lte":
			r.op = NumericLte
		case "gt":
			r.op = NumericGt
		case "gte":
			r.op = NumericGte
		case "all":
			r.allOf = true
		case "base64":
			r.values = mapStrings(r.values, applyBase64)
		case "base64offset":
			r.values = mapStrings(r.values, applyBase64Offset)
		case "wide", "utf16":
			r.values = mapStrings(r.values, applyUTF16LEHex)
		case "cased":
			// clears the case-insensitive flag and does nothing else: see
			// design notes on the |cased modifier.
			r.caseInsensitive = false
		}
	}
	return r
}

// mapStrings applies fn to every string-typed element of values, leaving
// non-string elements (numbers, bools, nil) untouched since the encoding
// modifiers only make sense against string literals.
func mapStrings(values []interface{}, fn func(string) []string) []interface{} {
	out := make([]interface{}, 0, len(values))
	for _, v := range values {
		s, ok := v.(string)
		if !ok {
			out = append(out, v)
			continue
		}
		for _, encoded := range fn(s) {
			out = append(out, encoded)
		}
	}
	return out
}

// applyBase64 pre-computes the base64-encoded literal for a contains/
// equality match against base64-encoded telemetry (e.g. PowerShell
// -EncodedCommand payloads).
func applyBase64(v string) []string {
	return []string{base64.StdEncoding.EncodeToString([]byte(v))}
}

// applyBase64Offset produces the three byte-alignment variants a base64
// decoder of a substring can land on, the way a contains match against the
// encoded stream needs: each variant drops the leading characters that
// depend on the bytes before v and, when the encoding is padded, the final
// character that depends on the bytes after it.
func applyBase64Offset(v string) []string {
	b := []byte(v)
	variants := make([]string, 0, 3)
	variants = append(variants, trimBase64Padding(base64.StdEncoding.EncodeToString(b)))

	padded1 := append([]byte{0}, b...)
	enc1 := base64.StdEncoding.EncodeToString(padded1)
	if len(enc1) > 2 {
		variants = append(variants, trimBase64Padding(enc1[2:]))
	}

	padded2 := append([]byte{0, 0}, b...)
	enc2 := base64.StdEncoding.EncodeToString(padded2)
	if len(enc2) > 3 {
		variants = append(variants, trimBase64Padding(enc2[3:]))
	}
	return variants
}

// trimBase64Padding strips "=" padding and, when there was any, the
// partially determined character before it.
func trimBase64Padding(s string) string {
	t := strings.TrimRight(s, "=")
	if len(t) < len(s) && len(t) > 0 {
		t = t[:len(t)-1]
	}
	return t
}

// applyUTF16LEHex encodes v as UTF-16LE and returns its lowercase hex
// representation, matching how `wide`/`utf16` values show up in raw
// Windows telemetry such as registry or PowerShell ScriptBlock data.
func applyUTF16LEHex(v string) []string {
	u16 := utf16.Encode([]rune(v))
	buf := make([]byte, 0, len(u16)*2)
	for _, code := range u16 {
		buf = append(buf, byte(code&0xFF), byte(code>>8))
	}
	const hexDigits = "0123456789abcdef"
	hex := make([]byte, 0, len(buf)*2)
	for _, b := range buf {
		hex = append(hex, hexDigits[b>>4], hexDigits[b&0x0F])
	}
	return []string{string(hex)}
}
