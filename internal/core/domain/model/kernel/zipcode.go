package kernel

import (
	"fmt"

	"herdshare/internal/pkg/errs"
)

// zipLength is the number of digits in a US ZIP code.
const zipLength = 5

// prefixLength is the number of leading ZIP digits used for geo-cluster matching.
const prefixLength = 3

// ZipCode is a value object for a five-digit US ZIP code. It carries the
// prefix used for geo-cluster matching so callers never slice raw strings.
//
// The zero value is invalid; construct through NewZipCode.
//
// Example:
//
//	zip, err := kernel.NewZipCode("80202")
//	if err != nil {
//	    return err
//	}
//	fmt.Println(zip.Prefix()) // "802"
type ZipCode struct {
	value string
}

// NewZipCode creates a ZipCode after validating it is exactly five ASCII digits.
func NewZipCode(value string) (ZipCode, error) {
	if value == "" {
		return ZipCode{}, errs.NewValueIsRequiredError("zip code")
	}
	if len(value) != zipLength {
		return ZipCode{}, errs.NewValueIsInvalidErrorWithCause("zip code",
			fmt.Errorf("%q is not %d characters long", value, zipLength))
	}
	for _, r := range value {
		if r < '0' || r > '9' {
			return ZipCode{}, errs.NewValueIsInvalidErrorWithCause("zip code",
				fmt.Errorf("%q contains a non-digit character", value))
		}
	}
	return ZipCode{value: value}, nil
}

// String returns the full five-digit ZIP code.
func (z ZipCode) String() string {
	return z.value
}

// Prefix returns the leading three digits used for geo-cluster matching.
func (z ZipCode) Prefix() string {
	return z.value[:prefixLength]
}

// IsEqual reports whether two ZIP codes are the same.
func (z ZipCode) IsEqual(other ZipCode) bool {
	return z.value == other.value
}

// Validate returns an error if the ZipCode is the zero value.
func (z ZipCode) Validate() error {
	if z.value == "" {
		return errs.NewValueIsRequiredError("zip code must be created via NewZipCode")
	}
	return nil
}
