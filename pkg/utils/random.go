package utils

import (
	"crypto/rand"
	"encoding/base64"
)

// charset deliberately drops 0, 1, I, l and O so codes survive being
// read aloud or copied by hand.
const charset = "23456789abcdefghjkmnpqrstuvwxyz"

// rejection bound: accepting bytes at or above this would bias the modulo
const charsetMax = byte(len(charset) * (256 / len(charset)))

// GenerateShortCode returns a random code of the given length drawn
// uniformly from the unambiguous alphabet. Short codes double as
// unguessable tokens for unlisted links, so the randomness comes from
// crypto/rand rather than a seeded PRNG.
func GenerateShortCode(length int) string {
	code := make([]byte, 0, length)
	buf := make([]byte, length)
	for len(code) < length {
		if _, err := rand.Read(buf); err != nil {
			panic("utils: crypto/rand unavailable: " + err.Error())
		}
		for _, b := range buf {
			if b >= charsetMax {
				continue
			}
			code = append(code, charset[int(b)%len(charset)])
			if len(code) == length {
				break
			}
		}
	}
	return string(code)
}

// GenerateAPIKey returns a new API key for an authenticated user.
func GenerateAPIKey() string {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		panic("utils: crypto/rand unavailable: " + err.Error())
	}
	return "structo_" + base64.RawURLEncoding.EncodeToString(buf)
}
