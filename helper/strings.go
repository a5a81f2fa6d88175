package helper

import (
	"math/rand"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/Masterminds/goutils"
)

var (
	slugStrip    = regexp.MustCompile(`[^a-zA-Z0-9\-\s]`)
	slugSeparate = regexp.MustCompile(`[^a-zA-Z0-9\-]+`)
)

// Parameterize turns an arbitrary label into a lower-case, hyphenated slug.
func Parameterize(s string) string {
	s = slugStrip.ReplaceAllString(strings.TrimSpace(s), "")
	return strings.ToLower(slugSeparate.ReplaceAllString(s, "-"))
}

const (
	randomAlpha    = "abcdefghijklmnopqrstuvwxyz"
	randomAlphaNum = "abcdefghijklmnopqrstuvwxyz0123456789 "

	DefaultRandomLength = 8
)

var (
	randMu      sync.Mutex
	defaultRand = rand.New(rand.NewSource(time.Now().UnixNano()))
)

// RandomString is not safe for secrets.
func RandomString(length int) string {
	randMu.Lock()
	defer randMu.Unlock()
	return RandomStringFrom(defaultRand, length)
}

// RandomStringFrom draws from rng. The first character is always a letter.
func RandomStringFrom(rng *rand.Rand, length int) string {
	if length == 0 {
		length = DefaultRandomLength
	}
	if length < 0 {
		return ""
	}

	first := pick(rng, 1, randomAlpha)
	return first + pick(rng, length-1, randomAlphaNum)
}

func pick(rng *rand.Rand, count int, set string) string {
	chars := []rune(set)
	s, err := goutils.RandomSeed(count, 0, len(chars), false, false, chars, rng)
	if err != nil {
		return ""
	}
	return s
}
