package phonenumber

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/restoreflow/vapi-sheets-webhook/configmanager"
	"github.com/ttacon/libphonenumber"
)

var nonDigitRegexp = regexp.MustCompile(`\D`)

// FormatNational formats a raw NANP number as (AAA) BBB-CCCC. All non digit
// characters are stripped first and a leading country code 1 is dropped.
// Anything that does not reduce to 10 digits is returned untouched, the
// formatting is best effort.
func FormatNational(raw string) string {
	digits := nonDigitRegexp.ReplaceAllString(raw, "")
	if len(digits) == 11 && digits[0] == '1' {
		digits = digits[1:]
	}
	if len(digits) != 10 {
		return raw
	}
	return fmt.Sprintf("(%s) %s-%s", digits[0:3], digits[3:6], digits[6:10])
}

// ResolveCallerID decides between the AI extracted phone candidate and the
// telecom supplied ones. The AI candidate is kept unless it is empty, names
// an unknown caller, or is too short to be a phone number, in which case the
// first available telecom candidate wins. The AI candidate is returned as a
// last resort so the destination still shows what the model produced.
func ResolveCallerID(aiCandidate string, telecomCandidates ...string) string {
	lower := strings.ToLower(aiCandidate)
	untrustworthy := aiCandidate == "" ||
		strings.Contains(lower, "unknown") ||
		strings.Contains(lower, "caller") ||
		len(aiCandidate) < 7
	if !untrustworthy {
		return aiCandidate
	}
	for _, candidate := range telecomCandidates {
		if candidate != "" {
			return candidate
		}
	}
	return aiCandidate
}

// IsParseable reports whether the number parses as a valid phone number in
// the configured default region. Used for diagnostics only, the number is
// persisted either way.
func IsParseable(raw string) bool {
	defaultRegion := "US"
	if configmanager.ConfStore != nil && configmanager.ConfStore.DefaultRegion != "" {
		defaultRegion = configmanager.ConfStore.DefaultRegion
	}
	number, err := libphonenumber.Parse(raw, defaultRegion)
	if err != nil {
		return false
	}
	return libphonenumber.IsValidNumber(number)
}
