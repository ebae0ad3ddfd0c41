package jsonwebtoken

import (
	"fmt"
	"strings"
)

const (
	maxStringLength = 256
	maxArraySize    = 100
	maxExtraSize    = 50
)

// validateClaims rejects claim sets a Processor will not sign: no subject
// identity, oversized fields, control characters, script-like content, or
// nested maps in Extra.
func validateClaims(claims *Claims) error {
	if claims.UserID == "" && claims.Username == "" {
		return ErrInvalidClaims
	}

	fields := [...]struct {
		name  string
		value string
	}{
		{"user_id", claims.UserID},
		{"username", claims.Username},
		{"role", claims.Role},
		{"session_id", claims.SessionID},
		{"client_id", claims.ClientID},
		{"iss", claims.Issuer},
		{"sub", claims.Subject},
		{"jti", claims.ID},
	}
	for _, f := range fields {
		if err := validateString(f.name, f.value); err != nil {
			return err
		}
	}

	lists := [...]struct {
		name  string
		items []string
	}{
		{"permissions", claims.Permissions},
		{"scopes", claims.Scopes},
		{"aud", claims.Audience},
	}
	for _, l := range lists {
		if err := validateStringArray(l.name, l.items); err != nil {
			return err
		}
	}

	return validateExtra(claims.Extra)
}

func validateExtra(extra map[string]any) error {
	if len(extra) > maxExtraSize {
		return &ValidationError{
			Field:   "extra",
			Message: fmt.Sprintf("too many fields: maximum %d allowed", maxExtraSize),
		}
	}

	for key, value := range extra {
		if err := validateString("extra", key); err != nil {
			return err
		}
		field := "extra." + key
		switch v := value.(type) {
		case string:
			if err := validateString(field, v); err != nil {
				return err
			}
		case []string:
			if err := validateStringArray(field, v); err != nil {
				return err
			}
		case map[string]any:
			return &ValidationError{Field: field, Message: "nested maps not allowed"}
		}
	}
	return nil
}

func validateStringArray(name string, items []string) error {
	if len(items) > maxArraySize {
		return &ValidationError{
			Field:   name,
			Message: fmt.Sprintf("too many items: maximum %d allowed", maxArraySize),
		}
	}
	for _, item := range items {
		if err := validateString(name, item); err != nil {
			return err
		}
	}
	return nil
}

func validateString(field, value string) error {
	if value == "" {
		return nil
	}
	if len(value) > maxStringLength {
		return &ValidationError{
			Field:   field,
			Message: fmt.Sprintf("too long: maximum %d characters", maxStringLength),
		}
	}

	for i := 0; i < len(value); i++ {
		c := value[i]
		if c < 0x20 && c != '\t' && c != '\n' && c != '\r' {
			return &ValidationError{Field: field, Message: "contains invalid control character"}
		}
	}

	lower := strings.ToLower(value)
	for _, pattern := range dangerousPatterns {
		if strings.Contains(lower, pattern) {
			return &ValidationError{Field: field, Message: "contains suspicious pattern"}
		}
	}
	return nil
}

var dangerousPatterns = [...]string{
	"<script", "javascript:", "data:", "eval(", "../", "file://", "vbscript:",
}
