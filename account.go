package rentroll

// ValidAccount reports whether id is a valid payment account identifier.
//
// It applies the Luhn mod-10 checksum to the decimal digits of id. Spaces and
// dashes are ignored as separators; any other non-digit rune, or an empty
// identifier, makes the account invalid. This is a checksum only, it does not
// authorize anything.
func ValidAccount(id string) bool {
	digits := make([]int, 0, len(id))
	for _, r := range id {
		switch {
		case r >= '0' && r <= '9':
			digits = append(digits, int(r-'0'))
		case r == ' ' || r == '-':
			continue
		default:
			return false
		}
	}
	if len(digits) == 0 {
		return false
	}

	sum := 0
	isSecond := false
	for i := len(digits) - 1; i >= 0; i-- {
		digit := digits[i]
		if isSecond {
			digit *= 2
			if digit > 9 {
				digit -= 9
			}
		}
		sum += digit
		isSecond = !isSecond
	}
	return sum%10 == 0
}
