package id

import (
	"crypto/rand"
	"encoding/hex"
	"math/big"
	"strconv"
	"time"
)

const base36 = "0123456789abcdefghijklmnopqrstuvwxyz"

// NewID32 returns exactly 32 hex characters (no separators/prefixes).
func NewID32() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

// NewPolicyNumber returns "POL-<unixMillis>-<6 base36 chars>".
// Uniqueness is not checked here; the policies table carries a unique index.
func NewPolicyNumber(now time.Time) string {
	return "POL-" + strconv.FormatInt(now.UnixMilli(), 10) + "-" + randomBase36(6)
}

func randomBase36(n int) string {
	out := make([]byte, n)
	max := big.NewInt(int64(len(base36)))
	for i := range out {
		v, err := rand.Int(rand.Reader, max)
		if err != nil {
			out[i] = '0'
			continue
		}
		out[i] = base36[v.Int64()]
	}
	return string(out)
}
