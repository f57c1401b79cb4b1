package domain

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

var ErrEmptyToken = errors.New("empty location token")

// LocationKind enumerates the three interpreted variants of a raw token.
type LocationKind int

const (
	KindCoordinate LocationKind = iota
	KindIdentifier
	KindAddress
)

func (k LocationKind) String() string {
	switch k {
	case KindCoordinate:
		return "coordinate"
	case KindIdentifier:
		return "identifier"
	default:
		return "address"
	}
}

// Location is the classified form of a raw token. Coordinate is set only
// for KindCoordinate; Facility only when an identifier was resolved during
// classification.
type Location struct {
	Kind       LocationKind
	Raw        string
	Coordinate Coordinate
	Facility   *Facility
}

// Strictly two signed decimal fields joined by a comma, nothing else.
// Tokens with direction suffixes ("10 N, 20 E") are not coordinate
// literals and fall through to address interpretation.
var coordLiteral = regexp.MustCompile(`^\s*([-+]?\d+(?:\.\d+)?)\s*,\s*([-+]?\d+(?:\.\d+)?)\s*$`)

// LooksLikeCoordinate reports whether the token matches the coordinate
// literal grammar, without validating ranges.
func LooksLikeCoordinate(token string) bool {
	return coordLiteral.MatchString(token)
}

// ParseCoordinateLiteral parses a "lat,lon" literal. A token that matches
// the literal grammar but carries out-of-range values is a validation
// error, not an address.
func ParseCoordinateLiteral(token string) (Coordinate, error) {
	m := coordLiteral.FindStringSubmatch(token)
	if m == nil {
		return Coordinate{}, fmt.Errorf("not a coordinate literal: %q", token)
	}
	lat, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return Coordinate{}, fmt.Errorf("parse latitude %q: %w", m[1], err)
	}
	lon, err := strconv.ParseFloat(m[2], 64)
	if err != nil {
		return Coordinate{}, fmt.Errorf("parse longitude %q: %w", m[2], err)
	}
	return NewCoordinate(lat, lon)
}

// LooksLikeIdentifier reports whether the token has the shape of a
// facility identifier: purely numeric, or short alphanumeric. Short
// alphanumeric shapes still need a directory hit to classify as one.
func LooksLikeIdentifier(token string) bool {
	t := strings.TrimSpace(token)
	if t == "" {
		return false
	}
	if isDigits(t) {
		return true
	}
	compact := strings.ReplaceAll(t, " ", "")
	return len(t) <= 10 && isAlnum(compact)
}

// IsNumericIdentifier reports whether the token is purely numeric, which
// classifies as an identifier without consulting the directory.
func IsNumericIdentifier(token string) bool {
	return isDigits(strings.TrimSpace(token))
}

// PlausibleAddress is the advisory pre-check for free-form addresses:
// contains both letters and digits and has a reasonable length. A failing
// check never blocks resolution.
func PlausibleAddress(token string) bool {
	t := strings.TrimSpace(token)
	if len(t) < 5 || len(t) > 200 {
		return false
	}
	var hasLetter, hasDigit bool
	for _, r := range t {
		if unicode.IsLetter(r) {
			hasLetter = true
		}
		if unicode.IsDigit(r) {
			hasDigit = true
		}
	}
	return hasLetter && hasDigit
}

func isDigits(s string) bool {
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

func isAlnum(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
