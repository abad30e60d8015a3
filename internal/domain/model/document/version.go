package document

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ErrInvalidVersion is returned when a string is not a major.minor decimal
var ErrInvalidVersion = errors.New("invalid document version")

var versionPattern = regexp.MustCompile(`^(\d+)\.(\d+)$`)

// InitialVersion is applied to documents without any revision rows
var InitialVersion = Version{Major: 1, Fraction: "0"}

// Version is a decimal-encoded major.minor document version.
// Fraction keeps the digits after the dot as written ("3" for 1.3, "10" for 1.10)
// so comparisons follow decimal value: 1.10 == 1.1 < 1.9.
type Version struct {
	Major    int
	Fraction string
}

// ParseVersion parses "major.minor"
func ParseVersion(s string) (Version, error) {
	m := versionPattern.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return Version{}, fmt.Errorf("%w: %q", ErrInvalidVersion, s)
	}
	major, err := strconv.Atoi(m[1])
	if err != nil {
		return Version{}, fmt.Errorf("%w: %q: %v", ErrInvalidVersion, s, err)
	}
	return Version{Major: major, Fraction: m[2]}, nil
}

// Compare returns -1, 0 or 1 comparing the decimal values of v and o
func (v Version) Compare(o Version) int {
	switch {
	case v.Major < o.Major:
		return -1
	case v.Major > o.Major:
		return 1
	}
	a, b := v.Fraction, o.Fraction
	for len(a) < len(b) {
		a += "0"
	}
	for len(b) < len(a) {
		b += "0"
	}
	return strings.Compare(a, b)
}

// Next returns the following version.
// The minor digit is trunc(fraction*10)+1, i.e. the first fractional digit plus one;
// past 9 it rolls over to the next major. Only minors 0-9 are ever produced.
func (v Version) Next() Version {
	first := 0
	if v.Fraction != "" {
		first = int(v.Fraction[0] - '0')
	}
	minor := first + 1
	if minor > 9 {
		return Version{Major: v.Major + 1, Fraction: "0"}
	}
	return Version{Major: v.Major, Fraction: strconv.Itoa(minor)}
}

func (v Version) String() string {
	f := v.Fraction
	if f == "" {
		f = "0"
	}
	return fmt.Sprintf("%d.%s", v.Major, f)
}
