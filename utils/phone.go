package utils

import "strings"

// FormatPhoneNumber normalizes a Korean mobile number into the dashed form
// the service stores ("010-0000-0000"), so digits-only input logs in too.
func FormatPhoneNumber(phone string) string {
	digits := strings.ReplaceAll(strings.TrimSpace(phone), "-", "")
	switch len(digits) {
	case 11:
		return digits[:3] + "-" + digits[3:7] + "-" + digits[7:]
	case 10:
		return digits[:3] + "-" + digits[3:6] + "-" + digits[6:]
	}
	return digits
}
