// Package cssval renders numeric layout parameters as CSS values.
//
// A value is either a single scalar, a pair which becomes max(), or a triple
// which becomes clamp(). Numbers get the requested unit appended, tokens (text
// like "auto" or "50%") are always emitted as is. The middle element of a pair
// is measured in em and the middle element of a triple in vw, so
//
//	Format(Pair{Num(12), Num(8)}, "px")          == "max(12px,8em)"
//	Format(Triple{Num(12), Num(8), Num(4)}, "px") == "clamp(12px,8vw,4px)"
//
// Format never fails. Loosely typed input (decoded YAML, JSON, command line)
// goes through Parse which rejects shapes that have no CSS rendering.
package cssval

import (
	"math"
	"strconv"
	"strings"
)

// DefaultUnit is the unit callers use when configuration does not say
// otherwise. Format itself never substitutes it.
const DefaultUnit = "px"

const (
	pairMiddleUnit   = "em"
	tripleMiddleUnit = "vw"
)

// Value is one of Scalar, Pair or Triple.
type Value interface {
	format(unit string) string
}

// Scalar is a number or a token.
type Scalar struct {
	num   float64
	token string
	isTok bool
}

// Num returns numeric scalar.
func Num(v float64) Scalar {
	return Scalar{num: v}
}

// Token returns scalar which is emitted verbatim. It is expected to be unit
// qualified already ("50%", "1rem") or be a keyword ("auto").
func Token(s string) Scalar {
	return Scalar{token: s, isTok: true}
}

func (s Scalar) IsToken() bool {
	return s.isTok
}

// Float returns numeric value, false for tokens.
func (s Scalar) Float() (float64, bool) {
	return s.num, !s.isTok
}

func (s Scalar) String() string {
	if s.isTok {
		return s.token
	}
	return formatNumber(s.num)
}

// withUnit renders scalar as a member of sequence.
func (s Scalar) withUnit(unit string) string {
	if s.isTok {
		return s.token
	}
	return formatNumber(s.num) + unit
}

func (s Scalar) format(unit string) string {
	if !s.isTok && (math.IsNaN(s.num) || math.IsInf(s.num, 0)) {
		// not a length, pass through as is
		return formatNumber(s.num)
	}
	return s.withUnit(unit)
}

// Pair renders as max(A, B) with B in em.
type Pair struct {
	A, B Scalar
}

func (p Pair) format(unit string) string {
	return "max(" + p.A.withUnit(unit) + "," + p.B.withUnit(pairMiddleUnit) + ")"
}

// Triple renders as clamp(A, B, C) with B in vw.
type Triple struct {
	A, B, C Scalar
}

func (t Triple) format(unit string) string {
	return "clamp(" + t.A.withUnit(unit) + "," + t.B.withUnit(tripleMiddleUnit) + "," + t.C.withUnit(unit) + ")"
}

// Format renders v as CSS value using unit for numbers. Empty unit produces
// unitless numbers ("1.5" for line-height), nil value renders as empty string.
func Format(v Value, unit string) string {
	if v == nil {
		return ""
	}
	return v.format(unit)
}

// Declaration renders "property: value;".
func Declaration(property string, v Value, unit string) string {
	return property + ": " + Format(v, unit) + ";"
}

// formatNumber produces the same text JavaScript produces when number is
// converted to string: shortest representation, exponent form outside of
// [1e-6, 1e21), no leading zeros in exponent.
func formatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		// negative zero included
		return "0"
	}

	if abs := math.Abs(f); abs >= 1e-6 && abs < 1e21 {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}

	s := strconv.FormatFloat(f, 'e', -1, 64)
	mant, exp, _ := strings.Cut(s, "e")
	sign := exp[:1]
	exp = strings.TrimLeft(exp[1:], "0")
	return mant + "e" + sign + exp
}
