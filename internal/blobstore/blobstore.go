package blobstore

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const proofKeyPrefix = "customer_proofs"

// BlobStore is the byte-storage abstraction used by the document
// coordinator. Keys are opaque strings chosen by the caller.
type BlobStore interface {
	// Put stores content under key with the given content type and returns
	// a fetchable URL for the object.
	Put(ctx context.Context, key string, content []byte, contentType string) (string, error)
	// Delete removes the object. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
	// URL returns the fetchable URL for an existing key.
	URL(key string) string
}

// ProofObjectKey derives a fresh object key for a customer's identity-proof
// document: customer_proofs/<id>/<unix-ms>-<nonce>_<filename>. The millisecond
// timestamp plus random nonce makes concurrent or repeated uploads for the
// same customer collision-free, so the blob namespace needs no locking.
func ProofObjectKey(customerID int64, safeFilename string) string {
	nonce := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("%s/%d/%d-%s_%s", proofKeyPrefix, customerID, time.Now().UnixMilli(), nonce, safeFilename)
}
