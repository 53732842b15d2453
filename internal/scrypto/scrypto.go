package scrypto

import (
	"crypto/sha256"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"syscall"

	"github.com/faanross/stegokey/internal/params"
	"golang.org/x/crypto/chacha20"
	"golang.org/x/crypto/pbkdf2"
	"golang.org/x/term"
)

// keyCache memoizes DeriveKey; only P distinct secrets exist
var keyCache sync.Map // int -> []byte

// DeriveKey stretches the shared secret into a ChaCha20 key using PBKDF2
func DeriveKey(secret int) []byte {
	if cached, ok := keyCache.Load(secret); ok {
		return cached.([]byte)
	}

	password := []byte(strconv.Itoa(secret))
	key := pbkdf2.Key(password, []byte(params.KEY_SALT), params.PBKDF2_ITERS, params.KEY_SIZE, sha256.New)

	actual, _ := keyCache.LoadOrStore(secret, key)
	return actual.([]byte)
}

// Transform XORs data with a keystream seeded by secret. Applying it twice
// with the same secret returns the original bytes. The input is never modified.
func Transform(data []byte, secret int) []byte {
	out := make([]byte, len(data))
	if len(data) == 0 {
		return out
	}

	// Key and nonce sizes are fixed, so construction cannot fail
	var nonce [chacha20.NonceSize]byte
	stream, err := chacha20.NewUnauthenticatedCipher(DeriveKey(secret), nonce[:])
	if err != nil {
		panic(fmt.Sprintf("scrypto: keystream setup: %v", err))
	}
	stream.XORKeyStream(out, data)
	return out
}

// Fingerprint is a short printable tag of the derived key, safe to display
func Fingerprint(secret int) string {
	return fmt.Sprintf("%X", DeriveKey(secret)[:4])
}

// GetSecureKey prompts for a private key with hidden input
func GetSecureKey(prompt string) (int, error) {
	fmt.Print(prompt)
	raw, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println() // New line after key

	if err != nil {
		return 0, fmt.Errorf("key read failed: %w", err)
	}

	key, err := strconv.Atoi(strings.TrimSpace(string(raw)))
	if err != nil {
		return 0, fmt.Errorf("key must be an integer: %w", err)
	}
	return key, nil
}
