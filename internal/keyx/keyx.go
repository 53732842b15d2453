// Package keyx implements the toy Diffie-Hellman style key agreement used to
// seed the keyed transform. The group is deliberately tiny; it is not meant to
// resist brute force.
package keyx

import (
	"fmt"

	"github.com/faanross/stegokey/internal/params"
	"github.com/faanross/stegokey/internal/stegerr"
)

// Group holds the public parameters of the exchange. It is an immutable
// value; copies are safe to share between goroutines.
type Group struct {
	generator int
	modulus   int
}

// KeyPair is the (private, public) pair a caller supplies per operation
type KeyPair struct {
	Private int `json:"private" yaml:"private"`
	Public  int `json:"public" yaml:"public"`
}

func (kp KeyPair) String() string {
	return fmt.Sprintf("(%d, %d)", kp.Private, kp.Public)
}

// DefaultGroup returns G=9, P=23
func DefaultGroup() Group {
	return Group{generator: params.GENERATOR, modulus: params.MODULUS}
}

// NewGroup builds a group from explicit parameters
func NewGroup(generator, modulus int) (Group, error) {
	if modulus < 3 {
		return Group{}, fmt.Errorf("modulus %d too small", modulus)
	}
	if generator < 2 || generator >= modulus {
		return Group{}, fmt.Errorf("generator %d outside [2, %d)", generator, modulus)
	}
	return Group{generator: generator, modulus: modulus}, nil
}

func (g Group) Generator() int { return g.generator }
func (g Group) Modulus() int   { return g.modulus }

// MaxPrivate is the largest accepted private key (P-1)
func (g Group) MaxPrivate() int { return g.modulus - 1 }

// DerivePublic computes G^private mod P
func (g Group) DerivePublic(private int) (int, error) {
	if err := g.checkPrivate(private); err != nil {
		return 0, stegerr.Wrap("derive_public", err)
	}
	return modPow(g.generator, private, g.modulus), nil
}

// DeriveSecret computes public^private mod P. A public key of 0 is a
// degenerate but valid input and simply yields 0.
func (g Group) DeriveSecret(private, public int) (int, error) {
	if err := g.checkPrivate(private); err != nil {
		return 0, stegerr.Wrap("derive_secret", err)
	}
	if err := g.checkPublic(public); err != nil {
		return 0, stegerr.Wrap("derive_secret", err)
	}
	return modPow(public, private, g.modulus), nil
}

// Validate checks key ranges and that Public was derived from Private
func (g Group) Validate(kp KeyPair) error {
	if err := g.checkPrivate(kp.Private); err != nil {
		return stegerr.Wrap("validate", err)
	}
	if err := g.checkPublic(kp.Public); err != nil {
		return stegerr.Wrap("validate", err)
	}
	if want := modPow(g.generator, kp.Private, g.modulus); want != kp.Public {
		return stegerr.Errorf("validate", "pair %s: %w", kp, stegerr.ErrKeyMismatch)
	}
	return nil
}

// Secret validates kp and returns its shared secret
func (g Group) Secret(kp KeyPair) (int, error) {
	if err := g.Validate(kp); err != nil {
		return 0, err
	}
	return modPow(kp.Public, kp.Private, g.modulus), nil
}

// NewKeyPair derives the full pair for a private key
func (g Group) NewKeyPair(private int) (KeyPair, error) {
	public, err := g.DerivePublic(private)
	if err != nil {
		return KeyPair{}, err
	}
	return KeyPair{Private: private, Public: public}, nil
}

// Pairs lists every valid pair of the group in private-key order
func (g Group) Pairs() []KeyPair {
	pairs := make([]KeyPair, 0, g.MaxPrivate())
	for private := 1; private <= g.MaxPrivate(); private++ {
		pairs = append(pairs, KeyPair{Private: private, Public: modPow(g.generator, private, g.modulus)})
	}
	return pairs
}

func (g Group) checkPrivate(private int) error {
	if private < 1 || private > g.MaxPrivate() {
		return fmt.Errorf("private key %d outside [1, %d]: %w", private, g.MaxPrivate(), stegerr.ErrInvalidKeyRange)
	}
	return nil
}

func (g Group) checkPublic(public int) error {
	if public < 0 || public > g.modulus-1 {
		return fmt.Errorf("public key %d outside [0, %d]: %w", public, g.modulus-1, stegerr.ErrInvalidKeyRange)
	}
	return nil
}

// modPow is square-and-multiply over small ints
func modPow(base, exp, mod int) int {
	result := 1 % mod
	base %= mod
	for exp > 0 {
		if exp&1 == 1 {
			result = result * base % mod
		}
		base = base * base % mod
		exp >>= 1
	}
	return result
}
