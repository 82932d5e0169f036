// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

import (
	"crypto/subtle"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/blake2b"
)

// codeBytes is the number of MAC bytes kept in a confirmation code (20 hex characters).
const codeBytes = 10

// CodeSubject is the account state a confirmation code is bound to.
//
// Any change to these fields invalidates previously issued codes. The token
// exchange stamps LastLoginAt, which is what makes a code single-use.
type CodeSubject struct {
	UserID      string
	Username    string
	Email       string
	LastLoginAt *time.Time
}

// ConfirmationCodes creates and checks stateless confirmation codes.
//
// A code is a keyed BLAKE2b MAC of the [CodeSubject]. Nothing is stored: the
// code is recomputed from the current account state when it is checked.
type ConfirmationCodes struct {
	key []byte
}

// NewConfirmationCodes derives the MAC key from the configured secret.
func NewConfirmationCodes(secret string) (*ConfirmationCodes, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, errors.New("sec: confirmation secret must not be empty")
	}

	derived := blake2b.Sum512([]byte("yamdb.confirmation-code:" + secret))
	return &ConfirmationCodes{key: derived[:]}, nil
}

// Make returns the confirmation code for the subject's current state.
func (codes *ConfirmationCodes) Make(subject CodeSubject) string {
	return hex.EncodeToString(codes.mac(subject))
}

// Check reports whether code matches the subject's current state.
func (codes *ConfirmationCodes) Check(subject CodeSubject, code string) bool {
	decoded, err := hex.DecodeString(strings.ToLower(strings.TrimSpace(code)))
	if err != nil || len(decoded) != codeBytes {
		return false
	}
	return subtle.ConstantTimeCompare(decoded, codes.mac(subject)) == 1
}

func (codes *ConfirmationCodes) mac(subject CodeSubject) []byte {
	// The key is 64 bytes, which blake2b always accepts.
	hash, _ := blake2b.New256(codes.key)

	for _, field := range []string{subject.UserID, subject.Username, subject.Email} {
		hash.Write([]byte(field))
		hash.Write([]byte{0})
	}

	var lastLogin int64
	if subject.LastLoginAt != nil {
		lastLogin = subject.LastLoginAt.UTC().UnixMicro()
	}
	hash.Write(binary.BigEndian.AppendUint64(nil, uint64(lastLogin)))

	return hash.Sum(nil)[:codeBytes]
}
