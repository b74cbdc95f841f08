package validation

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	nicknameRegex = regexp.MustCompile(`^[a-zA-Z0-9가-힣._-]{2,20}$`)
	loginIDRegex  = regexp.MustCompile(`^[a-z0-9_-]{4,30}$`)
)

var reservedNicknames = map[string]struct{}{
	"admin":    {},
	"api":      {},
	"auth":     {},
	"diary":    {},
	"diaries":  {},
	"follow":   {},
	"like":     {},
	"users":    {},
	"me":       {},
	"settings": {},
	"swagger":  {},
	"metrics":  {},
	"login":    {},
	"signup":   {},
	"logout":   {},
}

// ValidateNickname validates nickname format and reserved names.
func ValidateNickname(nickname string) error {
	if !nicknameRegex.MatchString(nickname) {
		return fmt.Errorf("nickname must be 2-20 characters of letters, digits, dots, underscores, or hyphens")
	}

	if strings.HasPrefix(nickname, ".") || strings.HasSuffix(nickname, ".") {
		return fmt.Errorf("nickname cannot start or end with a dot")
	}

	if _, exists := reservedNicknames[strings.ToLower(nickname)]; exists {
		return fmt.Errorf("nickname is reserved")
	}

	return nil
}

// ValidateLoginID validates login ID format for local accounts.
func ValidateLoginID(loginID string) error {
	if !loginIDRegex.MatchString(loginID) {
		return fmt.Errorf("login ID must be 4-30 characters of lowercase letters, digits, underscores, or hyphens")
	}
	return nil
}
