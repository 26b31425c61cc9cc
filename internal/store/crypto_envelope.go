package store

import (
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/scrypt"

	"triad/internal/util/memzero"
)

const (
	// The current supported version of the sealed document format stored on disk.
	envelopeFormatVersion = 1
)

var (
	// ErrWrongPassphrase is returned when the passphrase is incorrect or the
	// ciphertext has been modified / corrupted.
	ErrWrongPassphrase = errors.New("store: wrong passphrase or corrupted document")
)

// blob is the on‑disk JSON structure holding the ciphertext and KDF parameters.
type blob struct {
	V      int    `json:"v"`
	Salt   []byte `json:"salt"`
	N      int    `json:"scrypt_N"`
	R      int    `json:"scrypt_r"`
	P      int    `json:"scrypt_p"`
	Nonce  []byte `json:"nonce"`
	Cipher []byte `json:"cipher"`
}

// sealer encrypts namespace documents with a passphrase-derived key.
// Derived keys are cached per salt so repeated reads skip scrypt.
type sealer struct {
	passphrase []byte
	n, r, p    int

	mu   sync.Mutex
	salt []byte
	keys map[string][]byte
}

func newSealer(passphrase string, n, r, p int) *sealer {
	return &sealer{
		passphrase: []byte(passphrase),
		n:          n,
		r:          r,
		p:          p,
		keys:       make(map[string][]byte),
	}
}

func (s *sealer) key(salt []byte, n, r, p int) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if k, ok := s.keys[string(salt)]; ok {
		return k, nil
	}
	k, err := scrypt.Key(s.passphrase, salt, n, r, p, chacha20poly1305.KeySize)
	if err != nil {
		return nil, err
	}
	s.keys[string(salt)] = k
	return k, nil
}

func (s *sealer) writeSalt() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.salt == nil {
		salt := make([]byte, 16)
		if _, err := rand.Read(salt); err != nil {
			return nil, err
		}
		s.salt = salt
	}
	return s.salt, nil
}

// seal encrypts raw into a JSON blob.
func (s *sealer) seal(raw []byte) ([]byte, error) {
	salt, err := s.writeSalt()
	if err != nil {
		return nil, err
	}
	key, err := s.key(salt, s.n, s.r, s.p)
	if err != nil {
		return nil, err
	}
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, err
	}

	return json.Marshal(blob{
		V:      envelopeFormatVersion,
		Salt:   salt,
		N:      s.n,
		R:      s.r,
		P:      s.p,
		Nonce:  nonce,
		Cipher: aead.Seal(nil, nonce, raw, salt),
	})
}

// open decrypts a JSON blob produced by seal.
func (s *sealer) open(b []byte) ([]byte, error) {
	var bl blob
	if err := json.Unmarshal(b, &bl); err != nil {
		return nil, err
	}
	if bl.V > envelopeFormatVersion {
		return nil, fmt.Errorf("store: unsupported document version %d", bl.V)
	}

	key, err := s.key(bl.Salt, bl.N, bl.R, bl.P)
	if err != nil {
		return nil, err
	}
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, err
	}
	if len(bl.Nonce) != aead.NonceSize() {
		return nil, ErrWrongPassphrase
	}
	pt, err := aead.Open(nil, bl.Nonce, bl.Cipher, bl.Salt)
	if err != nil {
		return nil, ErrWrongPassphrase
	}
	return pt, nil
}

// wipe zeroes the passphrase and every cached key.
func (s *sealer) wipe() {
	s.mu.Lock()
	defer s.mu.Unlock()

	memzero.Zero(s.passphrase)
	for salt, k := range s.keys {
		memzero.Zero(k)
		delete(s.keys, salt)
	}
}

// Tunables for scrypt key derivation.
func scryptParamsDefault() (N, r, p int) { return 1 << 15, 8, 1 }
