// Package phone splits, joins and formats phone numbers that are stored as
// one canonical string: dialing code followed by the local digits.
package phone

import (
	"strings"

	"ems-admin/internal/refdata"
)

// Split recovers (countryCode, localNumber) from a stored full number by
// longest-prefix match against the country table. Inputs without a leading
// "+" or without a matching prefix degrade to the default code with the
// input returned unchanged as the local part. Split never fails.
func Split(full string, table []refdata.CountryCode) (code, local string) {
	if !strings.HasPrefix(full, "+") {
		return refdata.DefaultCountryCode, full
	}

	best := ""
	for _, c := range table {
		if strings.HasPrefix(full, c.Code) && len(c.Code) > len(best) {
			best = c.Code
		}
	}
	if best == "" {
		return refdata.DefaultCountryCode, full
	}
	return best, full[len(best):]
}

// Join builds the canonical wire form. The invariant
// Split(Join(c, l)) == (c, l) holds whenever c is a table member and l does
// not itself start with "+".
func Join(code, local string) string {
	return code + local
}

// Format renders a combined number for display: the dialing code, then the
// local digits in groups of three (last group may be longer to avoid a
// trailing single digit). Purely presentational; unknown shapes pass
// through untouched.
func Format(full string) string {
	code, local := Split(full, refdata.CountryCodes())
	if local == "" {
		return code
	}
	if strings.HasPrefix(local, "+") || !digitsOnly(local) {
		return full
	}

	var groups []string
	rest := local
	for len(rest) > 4 {
		groups = append(groups, rest[:3])
		rest = rest[3:]
	}
	groups = append(groups, rest)
	return code + " " + strings.Join(groups, " ")
}

func digitsOnly(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
