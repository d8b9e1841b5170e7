package password

import (
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

// fastParams keeps argon2id cheap enough for unit tests.
func fastParams() Params {
	return Params{Time: 1, Memory: 8 * 1024, Threads: 1, KeyLen: 32, SaltLen: 16}
}

func TestHasher_HashAndVerify_Match(t *testing.T) {
	h := NewHasher(fastParams())

	hash, err := h.Hash("s3cret-pass")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	if !strings.HasPrefix(hash, "$argon2id$") {
		t.Fatalf("expected argon2id hash, got %q", hash)
	}
	if strings.Contains(hash, "s3cret-pass") {
		t.Fatalf("hash leaks the plaintext")
	}

	res, err := h.Verify(hash, "s3cret-pass")
	if err != nil {
		t.Fatalf("Verify returned error: %v", err)
	}
	if res != Match {
		t.Fatalf("expected Match, got %v", res)
	}
}

func TestHasher_Verify_WrongPassword(t *testing.T) {
	h := NewHasher(fastParams())

	hash, err := h.Hash("right")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}

	res, err := h.Verify(hash, "wrong")
	if err != nil {
		t.Fatalf("wrong password must not be an error, got %v", err)
	}
	if res != NoMatch {
		t.Fatalf("expected NoMatch, got %v", res)
	}
}

func TestHasher_Hash_IsSalted(t *testing.T) {
	h := NewHasher(fastParams())

	h1, err := h.Hash("same-input")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	h2, err := h.Hash("same-input")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	if h1 == h2 {
		t.Fatalf("two hashes of the same password must differ")
	}
}

func TestHasher_Verify_WeakerParamsNeedRehash(t *testing.T) {
	weak := NewHasher(Params{Time: 1, Memory: 4 * 1024, Threads: 1, KeyLen: 32, SaltLen: 16})
	current := NewHasher(fastParams())

	hash, err := weak.Hash("pw")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}

	res, err := current.Verify(hash, "pw")
	if err != nil {
		t.Fatalf("Verify returned error: %v", err)
	}
	if res != RehashNeeded {
		t.Fatalf("expected RehashNeeded for weaker params, got %v", res)
	}

	// Wrong password still reports NoMatch regardless of parameters.
	res, err = current.Verify(hash, "nope")
	if err != nil || res != NoMatch {
		t.Fatalf("expected NoMatch, got %v (err=%v)", res, err)
	}
}

func TestHasher_Verify_LegacyBcryptNeedsRehash(t *testing.T) {
	h := NewHasher(fastParams())

	legacy, err := bcrypt.GenerateFromPassword([]byte("old-pass"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt hash: %v", err)
	}

	res, err := h.Verify(string(legacy), "old-pass")
	if err != nil {
		t.Fatalf("Verify returned error: %v", err)
	}
	if res != RehashNeeded {
		t.Fatalf("expected RehashNeeded for bcrypt hash, got %v", res)
	}

	res, err = h.Verify(string(legacy), "bad")
	if err != nil || res != NoMatch {
		t.Fatalf("expected NoMatch, got %v (err=%v)", res, err)
	}
}

func TestHasher_Verify_UnknownFormat(t *testing.T) {
	h := NewHasher(fastParams())

	if _, err := h.Verify("plaintext-or-garbage", "pw"); err == nil {
		t.Fatalf("expected error for unrecognised hash format")
	}
}
