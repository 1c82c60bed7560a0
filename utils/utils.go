package utils

import (
	"math/rand"
	"path"
	"strings"
)

const letters = "abcdefghijklmnopqrstuvwxyz"

// ContainsString returns true iff the provided string slice hay contains
// string needle.
func ContainsString(hay []string, needle string) bool {
	for _, str := range hay {
		if str == needle {
			return true
		}
	}
	return false
}

// RandomAlphabetString returns a random lower case string of length n.
func RandomAlphabetString(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = letters[rand.Intn(len(letters))]
	}
	return string(b)
}

// GetFileExtWithDot returns the extension of the file name including the
// leading dot, or empty string if there is none.
func GetFileExtWithDot(fileName string) string {
	ext := path.Ext(fileName)
	if ext == "." {
		return ""
	}
	return strings.ToLower(ext)
}
