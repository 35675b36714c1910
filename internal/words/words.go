// Package words splits identifiers into words and rejoins them in other
// cases.
package words

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// SplitWords splits a string into words based on character transitions. It
// detects word boundaries at:
//   - Uppercase letter after lowercase letter: "getID" -> "get" + "ID"
//   - Around underscores: "send_nowait" -> "send" + "_" + "nowait"
//   - Around digits: "file2name" -> "file" + "2" + "name"
func SplitWords(s string) []string {
	var words []string
	i := 0
	for i < len(s) {
		splitted := false

		j := i + 1
		for ; j < len(s); j++ {
			var next byte
			if j != len(s)-1 {
				next = s[j+1]
			}

			if isWordBoundary(s[j-1], s[j], next) {
				words = append(words, s[i:j])
				i = j
				splitted = true
				break
			}
		}

		if !splitted {
			words = append(words, s[i:])
			break
		}
	}
	return words
}

// isWordBoundary detects word boundaries based on character transitions.
func isWordBoundary(prev, curr, next byte) bool {
	// Uppercase after lowercase (camelCase transition)
	if prev >= 'a' && prev <= 'z' && curr >= 'A' && curr <= 'Z' {
		return true
	}
	// Uppercase before lowercase (camelCase transition)
	if curr >= 'A' && curr <= 'Z' && next >= 'a' && next <= 'z' {
		return true
	}

	// Underscore after non-underscore
	if prev != '_' && curr == '_' {
		return true
	}
	// Non-underscore after underscore
	if prev == '_' && curr != '_' {
		return true
	}

	// Digit after letter
	if (prev >= 'a' && prev <= 'z' || prev >= 'A' && prev <= 'Z') && (curr >= '0' && curr <= '9') {
		return true
	}
	// Letter after digit
	if (prev >= '0' && prev <= '9') && (curr >= 'a' && curr <= 'z' || curr >= 'A' && curr <= 'Z') {
		return true
	}

	return false
}

// LowerCamel lower-cases the leading word of an identifier. An acronym at the
// start is lower-cased as a whole, the rest of the words are kept as is.
//
//	Name     => name
//	UserID   => userID
//	URLPath  => urlPath
//	ID       => id
//	user_id  => user_id
func LowerCamel(s string) string {
	words := SplitWords(s)
	if len(words) == 0 {
		return s
	}
	words[0] = cases.Lower(language.Und).String(words[0])
	return strings.Join(words, "")
}
