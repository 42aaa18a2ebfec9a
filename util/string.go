package util

// StringTakeUntil returns the string up to and excluding char as well as the remainder excluding char
//
// if char was not found, then tail returns the empty string
func StringTakeUntil(s string, char rune) (head string, tail string) {
	for i, r := range s {
		if r == char {
			return s[:i], s[i+len(string(char)):]
		}
	}
	return s, ""
}
