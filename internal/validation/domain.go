// Package validation holds field-level validators shared by the service layer.
package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	loginRegex      = regexp.MustCompile(`^[a-zA-Z0-9_-]{3,10}$`)
	emailRegex      = regexp.MustCompile(`^[\w.+-]+@([\w-]+\.)+[\w-]{2,}$`)
	websiteURLRegex = regexp.MustCompile(`^https://([a-zA-Z0-9_-]+\.)+[a-zA-Z0-9_-]+(/[a-zA-Z0-9_-]+)*/?$`)
)

// ValidateLogin checks the 3-10 character login format.
func ValidateLogin(login string) error {
	if !loginRegex.MatchString(login) {
		return fmt.Errorf("login must be 3-10 characters: letters, digits, underscore or dash")
	}
	return nil
}

func ValidateEmail(email string) error {
	if len(email) > 254 || !emailRegex.MatchString(email) {
		return fmt.Errorf("email has invalid format")
	}
	return nil
}

func ValidatePassword(password string) error {
	n := utf8.RuneCountInString(password)
	if n < 6 || n > 20 {
		return fmt.Errorf("password must be 6-20 characters")
	}
	return nil
}

// requireLength enforces a trimmed min/max rune length for a named field.
func requireLength(field, value string, min, max int) error {
	n := utf8.RuneCountInString(strings.TrimSpace(value))
	if n < min {
		if min == 1 {
			return fmt.Errorf("%s is required", field)
		}
		return fmt.Errorf("%s must be at least %d characters", field, min)
	}
	if n > max {
		return fmt.Errorf("%s must be at most %d characters", field, max)
	}
	return nil
}

func ValidateBlogName(name string) error {
	return requireLength("name", name, 1, 15)
}

func ValidateBlogDescription(description string) error {
	return requireLength("description", description, 1, 500)
}

func ValidateWebsiteURL(url string) error {
	if len(url) > 100 || !websiteURLRegex.MatchString(url) {
		return fmt.Errorf("websiteUrl must be a valid https URL of at most 100 characters")
	}
	return nil
}

func ValidatePostTitle(title string) error {
	return requireLength("title", title, 1, 30)
}

func ValidatePostShortDescription(shortDescription string) error {
	return requireLength("shortDescription", shortDescription, 1, 100)
}

func ValidatePostContent(content string) error {
	return requireLength("content", content, 1, 1000)
}

func ValidateCommentContent(content string) error {
	return requireLength("content", content, 20, 300)
}
