package utils

import (
	"crypto/rand"
	"math/big"
	"strconv"
)

// NewVerificationCode returns a 6-digit numeric code drawn uniformly from
// 100000-999999, so the code never has a leading zero.
func NewVerificationCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(n.Int64()+100000, 10), nil
}
