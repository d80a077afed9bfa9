package services

import (
	"encoding/hex"
	"strings"

	"golang.org/x/crypto/blake2b"
)

// SessionHasher derives pseudonymous submitter sessions from client addresses.
type SessionHasher struct {
	key []byte
}

func NewSessionHasher(salt string) *SessionHasher {
	if salt == "" {
		return &SessionHasher{}
	}
	sum := blake2b.Sum256([]byte(salt))
	return &SessionHasher{key: sum[:]}
}

// Token returns the first 16 hex characters of the keyed BLAKE2b-256 of ip,
// or "" when ip is empty.
func (h *SessionHasher) Token(ip string) string {
	ip = strings.TrimSpace(ip)
	if ip == "" {
		return ""
	}
	mac, err := blake2b.New256(h.key)
	if err != nil {
		return ""
	}
	mac.Write([]byte(ip))
	return hex.EncodeToString(mac.Sum(nil))[:16]
}
