package password

import "testing"

func TestHashProducesDistinctDigests(t *testing.T) {
	h1, err := Hash("secret1")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	h2, err := Hash("secret1")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	if h1 == h2 {
		t.Fatal("two hashes of the same password must differ (salted)")
	}
	if !Verify("secret1", h1) || !Verify("secret1", h2) {
		t.Fatal("verify must succeed against both digests")
	}
}

func TestVerifyRejectsWrongPassword(t *testing.T) {
	h, _ := Hash("secret1")
	if Verify("secret2", h) {
		t.Fatal("verify must fail for wrong password")
	}
}

func TestVerifyMalformedDigestReturnsFalse(t *testing.T) {
	if Verify("secret1", "not-a-bcrypt-digest") {
		t.Fatal("verify must return false on malformed digest")
	}
}
