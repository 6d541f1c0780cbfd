package password

import (
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func newBcrypt(t *testing.T) *Hasher {
	t.Helper()
	h, err := NewHasher(AlgorithmBcrypt, bcrypt.MinCost)
	if err != nil {
		t.Fatalf("NewHasher: %v", err)
	}
	return h
}

func TestHashAndVerify(t *testing.T) {
	h := newBcrypt(t)
	for _, pw := range []string{"password1", "", "with spaces  ", "ünïcödé-pässwörd"} {
		hash, err := h.Hash(pw)
		if err != nil {
			t.Fatalf("Hash(%q): %v", pw, err)
		}
		if hash == pw {
			t.Fatalf("hash equals plaintext for %q", pw)
		}
		if !h.Verify(pw, hash) {
			t.Fatalf("Verify(%q, Hash(%q)) = false", pw, pw)
		}
		if h.Verify(pw+"x", hash) {
			t.Fatalf("Verify accepted a different password for %q", pw)
		}
	}
}

func TestHashIsSalted(t *testing.T) {
	h := newBcrypt(t)
	a, err := h.Hash("password1")
	if err != nil {
		t.Fatal(err)
	}
	b, err := h.Hash("password1")
	if err != nil {
		t.Fatal(err)
	}
	if a == b {
		t.Fatal("two hashes of the same password are identical")
	}
}

func TestVerifyMalformedHash(t *testing.T) {
	h := newBcrypt(t)
	for _, hash := range []string{"", "not-a-hash", "$2a$10$short", "$argon2id$v=19$garbage"} {
		if h.Verify("password1", hash) {
			t.Fatalf("Verify accepted malformed hash %q", hash)
		}
	}
}

func TestArgon2id(t *testing.T) {
	h, err := NewHasher(AlgorithmArgon2id, 0)
	if err != nil {
		t.Fatal(err)
	}
	hash, err := h.Hash("password1")
	if err != nil {
		t.Fatal(err)
	}
	if !h.Verify("password1", hash) {
		t.Fatal("argon2id round trip failed")
	}
	if h.Verify("password2", hash) {
		t.Fatal("argon2id accepted wrong password")
	}

	// A bcrypt-configured hasher still understands argon2id hashes.
	if !newBcrypt(t).Verify("password1", hash) {
		t.Fatal("bcrypt hasher could not verify argon2id hash")
	}
}

func TestNewHasherUnknownAlgorithm(t *testing.T) {
	if _, err := NewHasher("md5", 0); !errors.Is(err, ErrUnknownAlgorithm) {
		t.Fatalf("err = %v, want ErrUnknownAlgorithm", err)
	}
}
