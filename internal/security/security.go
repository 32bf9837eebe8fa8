// Package security holds the input scrubbing applied to relay payloads
// before they reach the spreadsheet, plus privacy-preserving IP hashing for
// the location log.
package security

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	htmlPolicy = bluemonday.StrictPolicy()
	newlinesRe = regexp.MustCompile(`\r\n|\r|\n`)
)

// ErrNoSalt is returned when IP hashing is attempted without a configured
// salt. An unsalted hash of an IPv4 address is trivially reversible.
var ErrNoSalt = errors.New("ip hash salt is not configured")

// SanitizeInput strips HTML from a value headed for a sheet cell, drops a
// leading equals sign so the cell can never become a formula, and flattens
// newlines to single spaces.
func SanitizeInput(value string) string {
	sanitized := htmlPolicy.Sanitize(value)
	sanitized = strings.TrimPrefix(sanitized, "=")
	return newlinesRe.ReplaceAllString(sanitized, " ")
}

// SanitizeValues sanitizes every string cell in a value block, leaving
// numbers and other cell types untouched.
func SanitizeValues(values [][]interface{}) [][]interface{} {
	cleaned := make([][]interface{}, len(values))
	for i, row := range values {
		cleaned[i] = make([]interface{}, len(row))
		for j, cell := range row {
			if s, ok := cell.(string); ok {
				cleaned[i][j] = SanitizeInput(s)
			} else {
				cleaned[i][j] = cell
			}
		}
	}
	return cleaned
}

// HashIPAddress returns the first 8 hex characters of an HMAC-SHA256 of the
// address. Short like a git abbreviation: distinct enough to correlate
// repeat submissions, useless for recovering the address.
func HashIPAddress(salt, ip string) (string, error) {
	if ip == "" {
		return "", nil
	}
	if salt == "" {
		return "", ErrNoSalt
	}

	mac := hmac.New(sha256.New, []byte(salt))
	mac.Write([]byte(ip))
	return hex.EncodeToString(mac.Sum(nil))[:8], nil
}
