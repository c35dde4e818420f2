package domain

import (
	"strings"
	"unicode/utf8"
)

const (
	MinPasswordLength = 8
	MaxPasswordLength = 50
	MaxUsernameLength = 50

	// SpecialCharacters is the only punctuation accepted in usernames and passwords.
	SpecialCharacters = "!@#$%^&*()-_+=[]:;,."
)

const (
	ReasonBlank           = "Username or password are blank!"
	ReasonPasswordLength  = "Password must be between 8 and 50 characters."
	ReasonPasswordWeak    = "Password must contain a letter, a digit and a special character."
	ReasonPasswordInvalid = "Password uses invalid characters."
	ReasonUsernameInvalid = "Username has an invalid character or is too long."
	ReasonUsernameTaken   = "Username is already taken."
)

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isSpecial(r rune) bool {
	return strings.ContainsRune(SpecialCharacters, r)
}

func isAllowed(r rune) bool {
	return isDigit(r) || isLetter(r) || isSpecial(r)
}

func allAllowed(s string) bool {
	for _, r := range s {
		if !isAllowed(r) {
			return false
		}
	}
	return true
}

// ValidateRegistration applies the username and password policy in order and
// returns the first failing rule. Username uniqueness needs the store and is
// checked by the caller afterwards.
func ValidateRegistration(username, password string) error {
	if username == "" || password == "" {
		return Invalid(ReasonBlank)
	}

	n := utf8.RuneCountInString(password)
	if n < MinPasswordLength || n > MaxPasswordLength {
		return Invalid(ReasonPasswordLength)
	}

	var digit, letter, special bool
	for _, r := range password {
		switch {
		case isDigit(r):
			digit = true
		case isLetter(r):
			letter = true
		case isSpecial(r):
			special = true
		}
	}
	if !digit || !letter || !special {
		return Invalid(ReasonPasswordWeak)
	}

	if !allAllowed(password) {
		return Invalid(ReasonPasswordInvalid)
	}

	if utf8.RuneCountInString(username) > MaxUsernameLength || !allAllowed(username) {
		return Invalid(ReasonUsernameInvalid)
	}

	return nil
}
