package employee

import (
	"fmt"
	"strings"
	"unicode"

	"dayflow-hrms/internal/shared/counter"
)

const loginIDPad = 'X'

// namePrefix returns the first two letters of s upper-cased, padded with X.
func namePrefix(s string) string {
	out := make([]rune, 0, 2)
	for _, r := range s {
		if len(out) == 2 {
			break
		}
		if unicode.IsLetter(r) && r < unicode.MaxASCII {
			out = append(out, unicode.ToUpper(r))
		}
	}
	for len(out) < 2 {
		out = append(out, loginIDPad)
	}
	return string(out)
}

// BuildLoginID formats <company><first><last><year><serial>, e.g. DAJODO20260001.
func BuildLoginID(companyName, firstName, lastName string, year int, serial int64) string {
	return fmt.Sprintf("%s%s%s%04d%04d",
		namePrefix(companyName),
		namePrefix(firstName),
		namePrefix(lastName),
		year,
		serial,
	)
}

// loginIDCounter keys the serial by company prefix and joining year.
func loginIDCounter(companyName string, year int) (scope, counterType string) {
	return namePrefix(companyName), fmt.Sprintf("%s:%d", counter.TypeLoginID, year)
}

func FormatEmployeeCode(serial int64) string {
	return fmt.Sprintf("EMP-%06d", serial)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
