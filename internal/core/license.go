package core

import (
	"fmt"
	"strings"

	"github.com/github/go-spdx/v2/spdxexp"
)

// ValidateLicense checks that a license string is a valid SPDX
// expression: a single identifier or a disjunction such as
// "MIT OR Apache-2.0".
func ValidateLicense(expr string) error {
	valid, invalid := spdxexp.ValidateLicenses([]string{expr})
	if !valid {
		return fmt.Errorf("invalid SPDX license expression %q (unknown: %s)", expr, strings.Join(invalid, ", "))
	}
	return nil
}
