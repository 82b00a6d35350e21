package cryptox

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// Token size constants (in bytes before encoding).
const (
	// TokenSize128 provides 128 bits of entropy (32 hex chars).
	TokenSize128 = 16
	// TokenSize256 provides 256 bits of entropy (64 hex chars).
	TokenSize256 = 32
)

// InviteTokenLen is the encoded length of an invite token generated with
// TokenSize256. Handlers use it to reject obviously malformed tokens
// before touching the store.
const InviteTokenLen = TokenSize256 * 2

// GenerateToken creates a cryptographically secure random token of the
// specified byte length, returned as lowercase hex. Hex keeps tokens safe
// to embed in URLs and chat messages without escaping.
//
// Common sizes:
//   - TokenSize128 (16 bytes): short-lived correlation tokens
//   - TokenSize256 (32 bytes): invite tokens (recommended)
func GenerateToken(size int) (string, error) {
	if size <= 0 {
		return "", fmt.Errorf("token size must be positive, got %d", size)
	}

	buf := make([]byte, size)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate random token: %w", err)
	}

	return hex.EncodeToString(buf), nil
}

// GenerateInviteToken creates a 256-bit invite token (64 lowercase hex
// chars). The token is the sole redemption credential, so its entropy is
// what keeps invites unguessable.
func GenerateInviteToken() (string, error) {
	return GenerateToken(TokenSize256)
}

// MustGenerateToken is like GenerateToken but panics on error.
// Use this only during initialization or in tests where failure is unrecoverable.
func MustGenerateToken(size int) string {
	token, err := GenerateToken(size)
	if err != nil {
		panic(fmt.Sprintf("cryptox: failed to generate token: %v", err))
	}
	return token
}
