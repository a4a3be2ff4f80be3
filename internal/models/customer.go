package models

import "time"

// Customer is a guest record. At most one identity-proof document is
// attached; ProofKey is the object-store key of the current blob and empty
// means no document. A committed non-empty ProofKey always refers to an
// existing blob; the write happens before the pointer update inside the
// same row-lock scope.
type Customer struct {
	ID              int64      `db:"id" json:"id"`
	Name            string     `db:"name" json:"name"`
	Email           string     `db:"email" json:"email"`
	Phone           string     `db:"phone" json:"phone"`
	Address         string     `db:"address" json:"address"`
	ProofOfIdentity string     `db:"proof_of_identity" json:"proof_of_identity"`
	ProofKey        string     `db:"proof_key" json:"-"`
	ProofFilename   string     `db:"proof_filename" json:"proof_filename,omitempty"`
	ProofUploadedAt *time.Time `db:"proof_uploaded_at" json:"proof_uploaded_at,omitempty"`
	CreatedAt       time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time  `db:"updated_at" json:"updated_at"`
}

// HasProof reports whether a document is currently attached.
func (c *Customer) HasProof() bool {
	return c != nil && c.ProofKey != ""
}
