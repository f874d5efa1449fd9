package splrecognizer

import (
	"fmt"
	"strings"

	"github.com/Johnny9802/sigma-spl-bridge/internal/queryast"
)

// Preamble carries the index/sourcetype defaults recovered from the
// leading "search ..." segment, mirroring spl.Overrides on the forward
// path closely enough that a caller can round-trip one into the other.
type Preamble struct {
	Index      string
	Sourcetype string
}

// splitPipeline splits text on top-level "|" characters, the ones that
// separate SPL pipeline stages, while never splitting inside a
// double-quoted string literal.
func splitPipeline(text string) []string {
	var segments []string
	var cur strings.Builder
	inQuotes := false
	for i := 0; i < len(text); i++ {
		c := text[i]
		switch {
		case c == '"':
			inQuotes = !inQuotes
			cur.WriteByte(c)
		case c == '\\' && inQuotes && i+1 < len(text):
			cur.WriteByte(c)
			cur.WriteByte(text[i+1])
			i++
		case c == '|' && !inQuotes:
			segments = append(segments, cur.String())
			cur.Reset()
		default:
			cur.WriteByte(c)
		}
	}
	segments = append(segments, cur.String())
	for i := range segments {
		segments[i] = strings.TrimSpace(segments[i])
	}
	return segments
}

// splitPreamble strips a leading "search" keyword and any "index=" /
// "sourcetype=" assignments from the first pipeline segment, returning
// what recovered defaults it found plus whatever predicate text remains.
func splitPreamble(segment string) (Preamble, string) {
	fields := strings.Fields(segment)
	var pre Preamble
	i := 0
	if i < len(fields) && strings.EqualFold(fields[i], "search") {
		i++
	}
	for i < len(fields) {
		f := fields[i]
		switch {
		case strings.HasPrefix(f, "index="):
			pre.Index = strings.TrimPrefix(f, "index=")
		case strings.HasPrefix(f, "sourcetype="):
			pre.Sourcetype = strings.TrimPrefix(f, "sourcetype=")
		case strings.HasPrefix(f, "earliest="):
			// time range override; recovered but not modeled on the
			// Sigma side, so it is simply dropped from the predicate text.
		default:
			return pre, strings.Join(fields[i:], " ")
		}
		i++
	}
	return pre, ""
}

// Result is everything Recognize extracts from one SPL query: the
// reconstructed Query AST, the logsource defaults, the stats-clause field
// list, and every fragment it could not place anywhere, which become
// correlation notes rather than a hard failure (§4.9's best-effort
// contract).
type Result struct {
	Query            queryast.Query
	Preamble         Preamble
	StatsFields      []string
	CorrelationNotes []string
}

// Recognize parses a restricted SPL query into the Query AST plus the
// logsource/field-list context the Sigma renderer needs, degrading
// unsupported fragments into correlation notes instead of aborting.
func Recognize(splText string) (Result, error) {
	segments := splitPipeline(splText)
	if len(segments) == 0 || strings.TrimSpace(segments[0]) == "" {
		return Result{}, ErrEmptyQuery{}
	}

	pre, predicateText := splitPreamble(segments[0])
	result := Result{Preamble: pre}

	var terms []queryast.Query
	if predicateText != "" {
		q, err := parsePredicate(predicateText)
		if err != nil {
			result.CorrelationNotes = append(result.CorrelationNotes,
				"skipped unrecognized search predicate fragment: "+err.Error())
		} else {
			terms = append(terms, q)
		}
	}

	for _, seg := range segments[1:] {
		if seg == "" {
			continue
		}
		q, fields, note, err := parseStage(seg)
		if err != nil {
			result.CorrelationNotes = append(result.CorrelationNotes,
				fmt.Sprintf("skipped unrecognized pipeline stage %q: %v", seg, err))
			continue
		}
		if note != "" {
			result.CorrelationNotes = append(result.CorrelationNotes, note)
		}
		if q != nil {
			terms = append(terms, q)
		}
		if fields != nil {
			result.StatsFields = fields
		}
	}

	if len(terms) == 0 {
		return result, ErrEmptyQuery{}
	}
	if len(terms) == 1 {
		result.Query = terms[0]
	} else {
		result.Query = queryast.And{Terms: terms}
	}
	return result, nil
}

// parseStage dispatches one "| ..." segment by its leading keyword.
func parseStage(seg string) (queryast.Query, []string, string, error) {
	fields := strings.Fields(seg)
	if len(fields) == 0 {
		return nil, nil, "", nil
	}
	keyword := strings.ToLower(fields[0])
	rest := strings.TrimSpace(strings.TrimPrefix(seg, fields[0]))

	switch keyword {
	case "where":
		q, err := parsePredicate(rest)
		if err != nil {
			return nil, nil, "", err
		}
		return q, nil, "", nil

	case "regex":
		q, err := parseRegexStage(rest)
		if err != nil {
			return nil, nil, "", err
		}
		return q, nil, "", nil

	case "stats":
		statsFields := parseStatsFields(rest)
		return nil, statsFields, "", nil

	default:
		return nil, nil, "", ErrUnsupportedSpl{Fragment: seg}
	}
}

func parseRegexStage(rest string) (queryast.Query, error) {
	toks, err := tokenize(rest)
	if err != nil {
		return nil, err
	}
	if len(toks) < 3 || toks[0].kind != tIdent || (toks[1].kind != tEq && toks[1].kind != tNeq) || toks[2].kind != tString {
		return nil, ErrUnsupportedSpl{Fragment: rest}
	}
	m := queryast.Match{Field: toks[0].val, SigmaField: toks[0].val, Op: queryast.Regex, Value: queryast.StringLiteral(toks[2].val)}
	if toks[1].kind == tNeq {
		return queryast.Not{Term: m}, nil
	}
	return m, nil
}

// parseStatsFields pulls the "by f1, f2, ..." field list out of a stats
// stage, ignoring the aggregation function itself (only "count" is ever
// emitted by this system's own output, per §4.5).
func parseStatsFields(rest string) []string {
	lower := strings.ToLower(rest)
	idx := strings.Index(lower, "by ")
	if idx < 0 {
		return nil
	}
	raw := rest[idx+3:]
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
