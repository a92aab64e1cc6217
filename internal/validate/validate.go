// Package validate holds small composable field constraints. A Checker runs
// the rules for each field, keeps the first failure per field and reports
// every failing field at once.
package validate

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

type ErrField struct {
	Field string `json:"field"`
	Msg   string `json:"msg"`
}

type Errs []ErrField

func (e Errs) Error() string { // error interface
	var b strings.Builder
	for i, ef := range e {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(ef.Field + ": " + ef.Msg)
	}
	return b.String()
}

// StringRule returns an empty string when v is acceptable.
type StringRule func(v string) string

// IntRule returns an empty string when v is acceptable.
type IntRule func(v int64) string

func Required() StringRule {
	return func(v string) string {
		if v == "" {
			return "is required"
		}
		return ""
	}
}

func MinLen(n int) StringRule {
	return func(v string) string {
		if utf8.RuneCountInString(v) < n {
			return "must be at least " + strconv.Itoa(n) + " characters"
		}
		return ""
	}
}

func MaxLen(n int) StringRule {
	return func(v string) string {
		if utf8.RuneCountInString(v) > n {
			return "must be at most " + strconv.Itoa(n) + " characters"
		}
		return ""
	}
}

// Length is MinLen and MaxLen together.
func Length(min, max int) StringRule {
	lo, hi := MinLen(min), MaxLen(max)
	return func(v string) string {
		if msg := lo(v); msg != "" {
			return msg
		}
		return hi(v)
	}
}

func Positive() IntRule {
	return func(v int64) string {
		if v <= 0 {
			return "must be positive"
		}
		return ""
	}
}

func Min(min int64) IntRule {
	return func(v int64) string {
		if v < min {
			return "must be >= " + strconv.FormatInt(min, 10)
		}
		return ""
	}
}

func Max(max int64) IntRule {
	return func(v int64) string {
		if v > max {
			return "must be <= " + strconv.FormatInt(max, 10)
		}
		return ""
	}
}

type Checker struct {
	errs Errs
}

func (c *Checker) String(field, v string, rules ...StringRule) {
	for _, rule := range rules {
		if msg := rule(v); msg != "" {
			c.Add(field, msg)
			return
		}
	}
}

// OptionalString skips the rules when v is nil. A non-nil empty string
// still goes through them.
func (c *Checker) OptionalString(field string, v *string, rules ...StringRule) {
	if v == nil {
		return
	}
	c.String(field, *v, rules...)
}

func (c *Checker) Int(field string, v int64, rules ...IntRule) {
	for _, rule := range rules {
		if msg := rule(v); msg != "" {
			c.Add(field, msg)
			return
		}
	}
}

func (c *Checker) Add(field, msg string) {
	c.errs = append(c.errs, ErrField{Field: field, Msg: msg})
}

func (c *Checker) Errs() Errs { return c.errs }

// Err returns nil when every field passed, otherwise the collected Errs.
func (c *Checker) Err() error {
	if len(c.errs) == 0 {
		return nil
	}
	return c.errs
}
