package utils

import (
	"crypto/md5"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"math/big"
)

func ToNullString(str string) sql.NullString {
	if str == "" {
		return sql.NullString{
			String: str,
			Valid:  false,
		}
	}
	return sql.NullString{
		String: str,
		Valid:  true,
	}
}

// DigestHex returns the lowercase hex md5 digest of s. Legacy sys_user rows
// store passwords in this form, so login compares recomputed digests directly.
func DigestHex(s string) string {
	sum := md5.Sum([]byte(s))
	return hex.EncodeToString(sum[:])
}

const codeAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// GenerateRandomCode returns a random lowercase alphanumeric code of the given
// length, using crypto/rand
func GenerateRandomCode(length int) string {
	code := make([]byte, length)
	for i := range code {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(codeAlphabet))))
		if err != nil {
			// crypto/rand failing means the platform RNG is broken
			panic(err)
		}
		code[i] = codeAlphabet[n.Int64()]
	}
	return string(code)
}
