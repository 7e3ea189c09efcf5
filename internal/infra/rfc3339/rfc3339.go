package rfc3339

// Checker satisfies the validation engine's TimestampChecker port.
type Checker struct{}

func (Checker) Valid(value string) bool {
	return Valid(value)
}

// Valid reports whether value matches the RFC 3339 date-time grammar:
// four-digit year, real calendar date, T (or t) separator, 24-hour clock,
// seconds 00-60 (a leap second is admitted), optional fraction, and a Z
// (or z) or +-hh:mm offset. time.Parse is too lenient on leap seconds and
// too strict elsewhere, so the fields are checked directly.
func Valid(value string) bool {
	// Shortest acceptable form: 2006-01-02T15:04:05Z
	if len(value) < 20 {
		return false
	}

	year, ok := atoi(value[0:4])
	if !ok || value[4] != '-' {
		return false
	}
	month, ok := atoi(value[5:7])
	if !ok || month < 1 || month > 12 || value[7] != '-' {
		return false
	}
	day, ok := atoi(value[8:10])
	if !ok || day < 1 || day > daysIn(month, year) {
		return false
	}

	if value[10] != 'T' && value[10] != 't' {
		return false
	}

	hour, ok := atoi(value[11:13])
	if !ok || hour > 23 || value[13] != ':' {
		return false
	}
	minute, ok := atoi(value[14:16])
	if !ok || minute > 59 || value[16] != ':' {
		return false
	}
	second, ok := atoi(value[17:19])
	if !ok || second > 60 {
		return false
	}

	rest := value[19:]
	if rest[0] == '.' {
		i := 1
		for i < len(rest) && rest[i] >= '0' && rest[i] <= '9' {
			i++
		}
		if i == 1 {
			return false
		}
		rest = rest[i:]
	}

	if len(rest) == 0 {
		return false
	}
	switch rest[0] {
	case 'Z', 'z':
		return len(rest) == 1
	case '+', '-':
		if len(rest) != 6 || rest[3] != ':' {
			return false
		}
		offsetHour, ok := atoi(rest[1:3])
		if !ok || offsetHour > 23 {
			return false
		}
		offsetMinute, ok := atoi(rest[4:6])
		return ok && offsetMinute <= 59
	default:
		return false
	}
}

func atoi(s string) (int, bool) {
	n := 0
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, false
		}
		n = n*10 + int(s[i]-'0')
	}
	return n, true
}

func daysIn(month, year int) int {
	switch month {
	case 1, 3, 5, 7, 8, 10, 12:
		return 31
	case 4, 6, 9, 11:
		return 30
	default:
		if year%4 == 0 && (year%100 != 0 || year%400 == 0) {
			return 29
		}
		return 28
	}
}
