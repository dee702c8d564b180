package service

import (
	"crypto/rand"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

const generatedPasswordLength = 12

// Character classes for generated passwords. One character from each class is
// guaranteed so generated passwords meet the minimum-strength policy.
const (
	lowerChars  = "abcdefghijkmnpqrstuvwxyz"
	upperChars  = "ABCDEFGHJKLMNPQRSTUVWXYZ"
	digitChars  = "23456789"
	symbolChars = "!@#$%&*"
)

var passwordAlphabet = lowerChars + upperChars + digitChars + symbolChars

type credentials struct {
	plaintext string
	digest    string
}

// provisionCredentials uses the supplied password verbatim when present,
// otherwise generates one, and always derives the bcrypt digest persisted in
// the user store.
func provisionCredentials(password string) (credentials, error) {
	plaintext := password
	if plaintext == "" {
		generated, err := generatePassword()
		if err != nil {
			return credentials{}, err
		}
		plaintext = generated
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return credentials{}, fmt.Errorf("hash password: %w", err)
	}

	return credentials{plaintext: plaintext, digest: string(hash)}, nil
}

func generatePassword() (string, error) {
	buf := make([]byte, generatedPasswordLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate password: %w", err)
	}

	out := make([]byte, generatedPasswordLength)
	for i, b := range buf {
		out[i] = passwordAlphabet[int(b)%len(passwordAlphabet)]
	}

	// Pin one character of each class to fixed positions; the remaining
	// positions stay random.
	out[0] = lowerChars[int(buf[0])%len(lowerChars)]
	out[1] = upperChars[int(buf[1])%len(upperChars)]
	out[2] = digitChars[int(buf[2])%len(digitChars)]
	out[3] = symbolChars[int(buf[3])%len(symbolChars)]

	return string(out), nil
}
