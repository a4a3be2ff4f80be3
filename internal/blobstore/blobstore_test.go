package blobstore

import (
	"strings"
	"testing"
)

func TestProofObjectKeyLayout(t *testing.T) {
	key := ProofObjectKey(42, "passport.pdf")
	if !strings.HasPrefix(key, "customer_proofs/42/") {
		t.Fatalf("unexpected key prefix: %q", key)
	}
	if !strings.HasSuffix(key, "_passport.pdf") {
		t.Fatalf("key should end with the filename: %q", key)
	}
}

func TestProofObjectKeyIsCollisionFree(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 64; i++ {
		key := ProofObjectKey(1, "same.pdf")
		if _, dup := seen[key]; dup {
			t.Fatalf("duplicate key generated: %q", key)
		}
		seen[key] = struct{}{}
	}
}
