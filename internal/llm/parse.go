package llm

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/travelmaker/backend/internal/domain"
)

// snippetLen caps the raw-response prefix carried by a ParseError.
const snippetLen = 200

// ParseError reports that no cascade stage could extract usable JSON from a
// model response. Snippet holds a truncated prefix of the raw text for
// diagnostics; it is surfaced to the caller, never swallowed.
type ParseError struct {
	Snippet string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("could not extract itinerary JSON from model response: %q", e.Snippet)
}

// newParseError builds a ParseError for raw, truncating the snippet.
func newParseError(raw string) *ParseError {
	s := strings.TrimSpace(raw)
	if len(s) > snippetLen {
		s = s[:snippetLen]
	}
	return &ParseError{Snippet: s}
}

// ParseItinerary runs the extraction cascade and shape normalization over a
// raw model response. It fails with a *ParseError when no stage yields a
// usable structure — an unusable response is surfaced, never silently
// normalized into an empty itinerary.
func ParseItinerary(raw, startDate string) ([]domain.NormalizedDay, *domain.CurrencyInfo, error) {
	parsed, err := ExtractJSON(raw)
	if err != nil {
		return nil, nil, err
	}
	days, currency := Normalize(parsed, startDate)
	if len(days) == 0 {
		return nil, nil, newParseError(raw)
	}
	return days, currency, nil
}

// ExtractJSON pulls a JSON value (array or object) out of untrusted model
// output. Stages run in order, each only if the previous yielded nothing:
//
//  1. the whole text parsed directly;
//  2. the interior of a fenced code block (``` with optional json tag);
//  3. a bracket-depth walk from the first [ or { to the minimal balanced span;
//  4. heuristic repair of a truncated span (close the open string, then all
//     pending }, then all pending ]).
//
// The repair closes by depth counts, not a stack, so it is only correct when
// brace and bracket nesting does not interleave at the truncation point.
// Interleaved truncations fail with a ParseError instead of being mended.
func ExtractJSON(raw string) (any, error) {
	if v, ok := decodeValue(raw); ok {
		return v, nil
	}
	if inner, ok := fencedBlock(raw); ok {
		if v, ok := decodeValue(inner); ok {
			return v, nil
		}
	}
	if span, state, balanced := scanSpan(raw); span != "" {
		if balanced {
			if v, ok := decodeValue(span); ok {
				return v, nil
			}
		} else if v, ok := decodeValue(repairSpan(span, state)); ok {
			return v, nil
		}
	}
	return nil, newParseError(raw)
}

// decodeValue parses s as JSON and accepts only arrays and objects — a bare
// string or number is prose, not an itinerary.
func decodeValue(s string) (any, bool) {
	var v any
	if err := json.Unmarshal([]byte(strings.TrimSpace(s)), &v); err != nil {
		return nil, false
	}
	switch v.(type) {
	case []any, map[string]any:
		return v, true
	default:
		return nil, false
	}
}

// fencedBlock returns the interior of the first triple-backtick block,
// skipping an optional language tag on the opening line.
func fencedBlock(raw string) (string, bool) {
	start := strings.Index(raw, "```")
	if start < 0 {
		return "", false
	}
	rest := raw[start+3:]

	// Drop a language tag such as "json" up to the first newline.
	if nl := strings.IndexByte(rest, '\n'); nl >= 0 {
		tag := strings.TrimSpace(rest[:nl])
		if tag == "" || !strings.ContainsAny(tag, "[{") {
			rest = rest[nl+1:]
		}
	}

	end := strings.Index(rest, "```")
	if end < 0 {
		// Unterminated fence: take everything after the opening.
		return rest, true
	}
	return rest[:end], true
}

// scanState is the bracket-depth walker's state at the end of a scan.
type scanState struct {
	braceDepth   int
	bracketDepth int
	inString     bool
}

// scanSpan finds the first [ or { in raw and walks forward, respecting
// string literals and escape sequences, until both depths return to zero.
// It returns the span, the final state, and whether the span is balanced.
// An unbalanced span (truncated output) extends to the end of the text.
func scanSpan(raw string) (string, scanState, bool) {
	start := strings.IndexAny(raw, "[{")
	if start < 0 {
		return "", scanState{}, false
	}

	// Explicit state machine: normal, in-string, escaped.
	const (
		stNormal = iota
		stInString
		stEscaped
	)
	state := stNormal
	var s scanState

	for i := start; i < len(raw); i++ {
		ch := raw[i]
		switch state {
		case stEscaped:
			state = stInString
		case stInString:
			switch ch {
			case '\\':
				state = stEscaped
			case '"':
				state = stNormal
			}
		default: // stNormal
			switch ch {
			case '"':
				state = stInString
			case '{':
				s.braceDepth++
			case '}':
				s.braceDepth--
			case '[':
				s.bracketDepth++
			case ']':
				s.bracketDepth--
			}
			if s.braceDepth == 0 && s.bracketDepth == 0 && i > start {
				return raw[start : i+1], s, true
			}
		}
	}

	s.inString = state != stNormal
	return raw[start:], s, false
}

// repairSpan closes whatever the truncation left open: the string literal
// first, then all pending braces, then all pending brackets. Counts only —
// see ExtractJSON for the known limits of this approximation.
func repairSpan(span string, state scanState) string {
	var b strings.Builder
	b.WriteString(span)
	if state.inString {
		b.WriteByte('"')
	}
	for i := 0; i < state.braceDepth; i++ {
		b.WriteByte('}')
	}
	for i := 0; i < state.bracketDepth; i++ {
		b.WriteByte(']')
	}
	return b.String()
}
