package utils

import (
	"crypto/rand"
	"math/big"
)

const (
	passwordUppercase = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	passwordLowercase = "abcdefghijklmnopqrstuvwxyz"
	passwordDigits    = "0123456789"
)

func randomIndex(n int) int {
	idx, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		// crypto/rand only fails when the OS entropy source is broken.
		panic(err)
	}
	return int(idx.Int64())
}

// GeneratePassword builds a 12-character password guaranteed to contain at
// least one uppercase letter, one lowercase letter and one digit, then
// shuffles it so the guaranteed characters are not in a predictable position.
func GeneratePassword() string {
	allChars := passwordUppercase + passwordLowercase + passwordDigits

	chars := make([]byte, 0, 12)
	chars = append(chars, passwordUppercase[randomIndex(len(passwordUppercase))])
	chars = append(chars, passwordLowercase[randomIndex(len(passwordLowercase))])
	chars = append(chars, passwordDigits[randomIndex(len(passwordDigits))])
	for i := 0; i < 9; i++ {
		chars = append(chars, allChars[randomIndex(len(allChars))])
	}

	// Fisher-Yates shuffle.
	for i := len(chars) - 1; i > 0; i-- {
		j := randomIndex(i + 1)
		chars[i], chars[j] = chars[j], chars[i]
	}

	return string(chars)
}
