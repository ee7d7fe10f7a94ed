package service

import "unicode"

// ValidatePasswordStrength checks a raw password against the registration
// policy. Rules are evaluated in order and the first failure wins, so the
// returned reason always names the rule that broke. Classification is
// Unicode-aware: any code point the unicode tables consider an uppercase
// letter satisfies the uppercase rule, and so on.
func ValidatePasswordStrength(password string) (bool, string) {
	runes := []rune(password)

	if len(runes) < 8 {
		return false, "Password must be at least 8 characters long"
	}
	if len(runes) > 128 {
		return false, "Password must be less than 128 characters"
	}

	var hasUpper, hasLower, hasDigit, hasSpecial bool
	for _, r := range runes {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			hasSpecial = true
		}
	}

	if !hasUpper {
		return false, "Password must contain at least one uppercase letter"
	}
	if !hasLower {
		return false, "Password must contain at least one lowercase letter"
	}
	if !hasDigit {
		return false, "Password must contain at least one number"
	}
	if !hasSpecial {
		return false, "Password must contain at least one special character"
	}

	return true, ""
}
