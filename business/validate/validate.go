// Package validate holds the field-level validation rules shared by the
// business domains. Every rule is a pure function returning an error whose
// message is safe to show to the end user.
package validate

import (
	"errors"
	"regexp"
	"unicode/utf8"
)

var (
	usernameRx       = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9]+$`)
	emailRx          = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9._%+-]*@[a-zA-Z0-9-]+\.[a-zA-Z0-9-]+(\.[a-zA-Z0-9-]+)?$`)
	personalNumberRx = regexp.MustCompile(`^[0-9]{10}$`)
	lowerRx          = regexp.MustCompile(`[a-z]`)
	upperRx          = regexp.MustCompile(`[A-Z]`)
	digitRx          = regexp.MustCompile(`[0-9]`)
)

// Username requires at least 5 characters, letters and digits only, starting
// with a letter.
func Username(username string) error {
	if len(username) < 5 || !usernameRx.MatchString(username) {
		return errors.New("The username must contain at least 5 characters and consist only of letters and numbers, starting with a letter.")
	}
	return nil
}

// Email requires a local@domain.tld shape.
func Email(email string) error {
	if !emailRx.MatchString(email) {
		return errors.New("The email is not valid.")
	}
	return nil
}

// PersonalNumber requires exactly 10 digits.
func PersonalNumber(personalNumber string) error {
	if !personalNumberRx.MatchString(personalNumber) {
		return errors.New("Employee ID must be 10 numbers.")
	}
	return nil
}

// Password requires at least 8 characters with at least one lowercase letter,
// one uppercase letter and one digit. The rule applies to the plaintext, the
// stored value is always a hash.
func Password(password string) error {
	if utf8.RuneCountInString(password) < 8 || !lowerRx.MatchString(password) || !upperRx.MatchString(password) || !digitRx.MatchString(password) {
		return errors.New("Password must contain at least 8 characters, including lowercase, uppercase, and a number.")
	}
	return nil
}

// FieldErrors collects one message per invalid field so the caller sees every
// problem at once.
type FieldErrors []string

func (fe FieldErrors) Error() string {
	out := ""
	for i, msg := range fe {
		if i > 0 {
			out += "; "
		}
		out += msg
	}
	return out
}

// Collect appends the message of every non-nil error and returns the
// accumulated list.
func Collect(fe FieldErrors, errs ...error) FieldErrors {
	for _, err := range errs {
		if err != nil {
			fe = append(fe, err.Error())
		}
	}
	return fe
}
