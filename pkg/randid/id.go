// Package randid generates short random identifiers.
package randid

import (
	"crypto/rand"
	"math/big"
)

const alphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

var alphabetLen = big.NewInt(int64(len(alphabet)))

// Generate returns a random lowercase alphanumeric string of the given
// length. Randomness comes from crypto/rand; a read failure panics since
// no caller can meaningfully proceed without entropy.
func Generate(length int) string {
	buf := make([]byte, length)
	for i := range buf {
		n, err := rand.Int(rand.Reader, alphabetLen)
		if err != nil {
			panic("randid: " + err.Error())
		}
		buf[i] = alphabet[n.Int64()]
	}
	return string(buf)
}
