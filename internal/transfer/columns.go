package transfer

import (
	"regexp"
	"strings"

	"github.com/rs/zerolog/log"
)

var (
	parensRe = regexp.MustCompile(`\([^)]*\)`)
	spacesRe = regexp.MustCompile(`\s+`)
)

// StripParentheses removes parenthesized annotations from a header cell,
// including ones spanning line breaks, and collapses the remaining
// whitespace. "Needs(Multiple)\n(Food, Medicine)" becomes "Needs".
func StripParentheses(text string) string {
	cleaned := parensRe.ReplaceAllString(text, "")
	cleaned = spacesRe.ReplaceAllString(cleaned, " ")
	return strings.TrimSpace(cleaned)
}

// MapColumns resolves logical field names to column indices in a header row.
// Exact trimmed matches win; parenthesis-stripped matches are the fallback
// for human-edited headers that grew annotations. Fields with no match are
// omitted from the result. The first column doubles as the form timestamp
// when nothing else claims the "timestamp" field by name.
func MapColumns(headers []string, expected map[string]string) map[string]int {
	columns := make(map[string]int)

	for logical, header := range expected {
		cleanExpected := StripParentheses(strings.TrimSpace(header))

		for i, actual := range headers {
			if strings.TrimSpace(actual) == strings.TrimSpace(header) {
				columns[logical] = i
				break
			}

			cleanActual := StripParentheses(strings.TrimSpace(actual))
			if cleanActual == cleanExpected {
				columns[logical] = i
				log.Debug().
					Str("column", logical).
					Str("header", actual).
					Str("matched", cleanActual).
					Msg("Matched column by removing parentheses")
				break
			}
		}
	}

	if _, ok := columns["timestamp"]; !ok && len(headers) > 0 {
		columns["timestamp"] = 0
	}

	for logical := range expected {
		if _, ok := columns[logical]; !ok {
			log.Warn().
				Str("column", logical).
				Str("header", expected[logical]).
				Msg("Could not map column")
		}
	}

	return columns
}
