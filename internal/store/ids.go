package store

import (
	"math/rand/v2"
	"strconv"
	"time"
)

const idAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// idRandomLen is the number of base36 chars in the random fragment (~36 bits).
const idRandomLen = 7

// NewID returns prefix-<random>-<millis> where both fragments are base36.
// Uniqueness is probabilistic: good for in-session keys, never for anything security related.
func NewID(prefix string) string {
	return newIDAt(prefix, time.Now(), rand.IntN)
}

func newIDAt(prefix string, now time.Time, intn func(int) int) string {
	var b [idRandomLen]byte
	for i := range b {
		b[i] = idAlphabet[intn(len(idAlphabet))]
	}
	return prefix + "-" + string(b[:]) + "-" + strconv.FormatInt(now.UnixMilli(), 36)
}
