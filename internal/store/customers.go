package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"innkeep/internal/models"
)

// ErrCustomerNotFound is returned when a customer id does not exist.
var ErrCustomerNotFound = errors.New("customer not found")

const customerColumns = "id, name, email, phone, address, proof_of_identity, proof_key, proof_filename, proof_uploaded_at, created_at, updated_at"

// CustomerDocument is the row-locked view of one customer's attachment
// pointer. It is only valid inside the WithCustomerForUpdate callback; the
// transaction that holds the lock commits or rolls back when the callback
// returns.
type CustomerDocument interface {
	// ProofKey returns the current attachment pointer, empty when no
	// document is attached.
	ProofKey() string
	// SetProof points the record at a new blob key.
	SetProof(key, filename string, uploadedAt time.Time) error
	// ClearProof removes the attachment pointer.
	ClearProof() error
}

type lockedCustomer struct {
	ctx      context.Context
	tx       *sqlx.Tx
	id       int64
	proofKey string
}

func (c *lockedCustomer) ProofKey() string {
	return c.proofKey
}

func (c *lockedCustomer) SetProof(key, filename string, uploadedAt time.Time) error {
	_, err := c.tx.ExecContext(c.ctx,
		`UPDATE customers SET proof_key = $1, proof_filename = $2, proof_uploaded_at = $3, updated_at = now() WHERE id = $4`,
		key, filename, uploadedAt, c.id)
	if err != nil {
		return err
	}
	c.proofKey = key
	return nil
}

func (c *lockedCustomer) ClearProof() error {
	_, err := c.tx.ExecContext(c.ctx,
		`UPDATE customers SET proof_key = '', proof_filename = '', proof_uploaded_at = NULL, updated_at = now() WHERE id = $1`,
		c.id)
	if err != nil {
		return err
	}
	c.proofKey = ""
	return nil
}

// WithCustomerForUpdate opens a transaction, locks the customer row with a
// SELECT ... FOR UPDATE, and invokes fn with the locked record. The
// transaction commits if fn returns nil and rolls back otherwise. Two
// concurrent calls for the same id serialize on the row lock; calls for
// different ids proceed independently. This is the sole concurrency-control
// mechanism for attachment updates.
func (s *Store) WithCustomerForUpdate(ctx context.Context, id int64, fn func(CustomerDocument) error) (err error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var proofKey string
	err = tx.QueryRowContext(ctx, `SELECT proof_key FROM customers WHERE id = $1 FOR UPDATE`, id).Scan(&proofKey)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = ErrCustomerNotFound
		}
		return err
	}

	locked := &lockedCustomer{ctx: ctx, tx: tx, id: id, proofKey: proofKey}
	if err = fn(locked); err != nil {
		return err
	}

	err = tx.Commit()
	return err
}

// CreateCustomer inserts one customer row and fills in the generated id and
// timestamps.
func (s *Store) CreateCustomer(ctx context.Context, customer *models.Customer) error {
	return s.db.QueryRowContext(ctx,
		`INSERT INTO customers (name, email, phone, address, proof_of_identity)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at, updated_at`,
		customer.Name, customer.Email, customer.Phone, customer.Address, customer.ProofOfIdentity,
	).Scan(&customer.ID, &customer.CreatedAt, &customer.UpdatedAt)
}

// GetCustomer returns one customer by id, or nil when absent.
func (s *Store) GetCustomer(ctx context.Context, id int64) (*models.Customer, error) {
	var customer models.Customer
	err := s.db.GetContext(ctx, &customer, `SELECT `+customerColumns+` FROM customers WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

// ListCustomers lists all customers ordered by id.
func (s *Store) ListCustomers(ctx context.Context) ([]models.Customer, error) {
	customers := []models.Customer{}
	err := s.db.SelectContext(ctx, &customers, `SELECT `+customerColumns+` FROM customers ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	return customers, nil
}
