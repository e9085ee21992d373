package utils

// IsValidCustomCode reports whether a user-chosen short code is
// acceptable: 3-20 characters, lowercase letters, digits and hyphens
// only, not starting or ending with a hyphen. Callers are expected to
// lowercase and trim the code first.
func IsValidCustomCode(code string) bool {
	if len(code) < 3 || len(code) > 20 {
		return false
	}
	if code[0] == '-' || code[len(code)-1] == '-' {
		return false
	}
	for _, c := range code {
		switch {
		case c >= 'a' && c <= 'z':
		case c >= '0' && c <= '9':
		case c == '-':
		default:
			return false
		}
	}
	return true
}
