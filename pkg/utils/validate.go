package utils

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	MinAliasLength = 3
	MaxAliasLength = 30
)

var aliasPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// Route prefixes and other codes that must never resolve as short links.
var reservedCodes = map[string]bool{
	"api":       true,
	"health":    true,
	"qrcode":    true,
	"static":    true,
	"links":     true,
	"shorten":   true,
	"stats":     true,
	"dashboard": true,
	"login":     true,
	"logout":    true,
	"register":  true,
	"admin":     true,
	"www":       true,
}

// ValidateAlias checks a user-chosen short code against the allowed
// charset, length bounds and the reserved-word list.
func ValidateAlias(alias string) error {
	if len(alias) < MinAliasLength {
		return fmt.Errorf("alias must be at least %d characters", MinAliasLength)
	}
	if len(alias) > MaxAliasLength {
		return fmt.Errorf("alias must be at most %d characters", MaxAliasLength)
	}
	if !aliasPattern.MatchString(alias) {
		return fmt.Errorf("alias may only contain letters, numbers, hyphens and underscores")
	}
	if reservedCodes[strings.ToLower(alias)] {
		return fmt.Errorf("alias %q is reserved", alias)
	}
	return nil
}
