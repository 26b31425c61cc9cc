// Package guard derives the second-factor values a mobile session needs from
// the account's shared and identity secrets.
package guard

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/base64"
	"encoding/binary"
	"errors"
	"time"

	"triad/internal/util/memzero"
)

// Alphabet is the character set of generated login codes.
const Alphabet = "23456789BCDFGHJKMNPQRTVWXY"

// CodeLength is the number of characters in a login code.
const CodeLength = 5

// Step is the validity window of one login code.
const Step = 30 * time.Second

// ErrEmptySecret is returned when no secret is configured.
var ErrEmptySecret = errors.New("guard: empty secret")

// Code returns the login code for sharedSecret (base64) at time at.
func Code(sharedSecret string, at time.Time) (string, error) {
	secret, err := decode(sharedSecret)
	if err != nil {
		return "", err
	}
	defer memzero.Zero(secret)

	var msg [8]byte
	binary.BigEndian.PutUint64(msg[:], uint64(at.Unix()/int64(Step/time.Second)))

	mac := hmac.New(sha1.New, secret)
	mac.Write(msg[:])
	sum := mac.Sum(nil)
	defer memzero.Zero(sum)

	off := sum[len(sum)-1] & 0x0f
	full := binary.BigEndian.Uint32(sum[off:off+4]) & 0x7fffffff

	out := make([]byte, CodeLength)
	for i := range out {
		out[i] = Alphabet[full%uint32(len(Alphabet))]
		full /= uint32(len(Alphabet))
	}
	return string(out), nil
}

// ConfirmationKey returns the base64 key that authorises a confirmation
// action tagged tag at time at, derived from identitySecret (base64).
func ConfirmationKey(identitySecret, tag string, at time.Time) (string, error) {
	secret, err := decode(identitySecret)
	if err != nil {
		return "", err
	}
	defer memzero.Zero(secret)

	msg := make([]byte, 8, 8+len(tag))
	binary.BigEndian.PutUint64(msg, uint64(at.Unix()))
	msg = append(msg, tag...)

	mac := hmac.New(sha1.New, secret)
	mac.Write(msg)
	return base64.StdEncoding.EncodeToString(mac.Sum(nil)), nil
}

func decode(secret string) ([]byte, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}
	return base64.StdEncoding.DecodeString(secret)
}
