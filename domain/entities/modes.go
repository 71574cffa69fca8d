package entities

import "fmt"

// ExcludeMode selects which historical prize tiers a generated draw
// must avoid matching.
type ExcludeMode string

const (
	ExcludeModeNone   ExcludeMode = "NONE"
	ExcludeModeFirst  ExcludeMode = "FIRST"
	ExcludeModeSecond ExcludeMode = "SECOND"
	ExcludeModeThird  ExcludeMode = "THIRD"
	ExcludeModeAll    ExcludeMode = "ALL"
)

// ParseExcludeMode validates a raw mode string.
func ParseExcludeMode(raw string) (ExcludeMode, error) {
	switch ExcludeMode(raw) {
	case ExcludeModeNone, ExcludeModeFirst, ExcludeModeSecond, ExcludeModeThird, ExcludeModeAll:
		return ExcludeMode(raw), nil
	}
	return "", fmt.Errorf("invalid exclude mode %q", raw)
}

// ConsecutiveMode controls whether the sorted result must or must not
// contain at least one pair of numerically adjacent values.
type ConsecutiveMode string

const (
	ConsecutiveAllow   ConsecutiveMode = "ALLOW"
	ConsecutiveRequire ConsecutiveMode = "REQUIRE"
	ConsecutiveForbid  ConsecutiveMode = "FORBID"
)

// ParseConsecutiveMode validates a raw consecutive mode string.
// An empty string means the default, ALLOW.
func ParseConsecutiveMode(raw string) (ConsecutiveMode, error) {
	if raw == "" {
		return ConsecutiveAllow, nil
	}
	switch ConsecutiveMode(raw) {
	case ConsecutiveAllow, ConsecutiveRequire, ConsecutiveForbid:
		return ConsecutiveMode(raw), nil
	}
	return "", fmt.Errorf("invalid consecutive mode %q", raw)
}

// LastDigitMode controls whether two result numbers may share the same
// last decimal digit.
type LastDigitMode string

const (
	LastDigitAllow  LastDigitMode = "ALLOW"
	LastDigitForbid LastDigitMode = "FORBID"
)

// ParseLastDigitMode validates a raw last-digit mode string.
// An empty string means the default, ALLOW.
func ParseLastDigitMode(raw string) (LastDigitMode, error) {
	if raw == "" {
		return LastDigitAllow, nil
	}
	switch LastDigitMode(raw) {
	case LastDigitAllow, LastDigitForbid:
		return LastDigitMode(raw), nil
	}
	return "", fmt.Errorf("invalid last digit mode %q", raw)
}

// RangeBucket names one of the five decade buckets a range filter can
// constrain.
type RangeBucket string

const (
	Bucket1To10  RangeBucket = "1-10"
	Bucket11To20 RangeBucket = "11-20"
	Bucket21To30 RangeBucket = "21-30"
	Bucket31To40 RangeBucket = "31-40"
	Bucket41To45 RangeBucket = "41-45"
)

var bucketBounds = map[RangeBucket][2]int{
	Bucket1To10:  {1, 10},
	Bucket11To20: {11, 20},
	Bucket21To30: {21, 30},
	Bucket31To40: {31, 40},
	Bucket41To45: {41, 45},
}

// Bounds returns the inclusive low/high bounds of the bucket.
func (b RangeBucket) Bounds() (low, high int, ok bool) {
	bounds, ok := bucketBounds[b]
	if !ok {
		return 0, 0, false
	}
	return bounds[0], bounds[1], true
}
