package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"innkeep/internal/models"
)

func newMockStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewWithDB(sqlx.NewDb(db, "sqlmock")), mock
}

const selectForUpdateSQL = `SELECT proof_key FROM customers WHERE id = $1 FOR UPDATE`

func TestWithCustomerForUpdateSetsProofAndCommits(t *testing.T) {
	st, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(selectForUpdateSQL)).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"proof_key"}).AddRow("customer_proofs/7/old.pdf"))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE customers SET proof_key = $1, proof_filename = $2, proof_uploaded_at = $3, updated_at = now() WHERE id = $4`)).
		WithArgs("customer_proofs/7/new.pdf", "new.pdf", sqlmock.AnyArg(), int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	var previous string
	err := st.WithCustomerForUpdate(context.Background(), 7, func(record CustomerDocument) error {
		previous = record.ProofKey()
		return record.SetProof("customer_proofs/7/new.pdf", "new.pdf", time.Now().UTC())
	})
	require.NoError(t, err)
	assert.Equal(t, "customer_proofs/7/old.pdf", previous)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithCustomerForUpdateClearsProof(t *testing.T) {
	st, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(selectForUpdateSQL)).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"proof_key"}).AddRow("customer_proofs/7/old.pdf"))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE customers SET proof_key = '', proof_filename = '', proof_uploaded_at = NULL, updated_at = now() WHERE id = $1`)).
		WithArgs(int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := st.WithCustomerForUpdate(context.Background(), 7, func(record CustomerDocument) error {
		require.Equal(t, "customer_proofs/7/old.pdf", record.ProofKey())
		if err := record.ClearProof(); err != nil {
			return err
		}
		assert.Equal(t, "", record.ProofKey())
		return nil
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithCustomerForUpdateMissingCustomer(t *testing.T) {
	st, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(selectForUpdateSQL)).
		WithArgs(int64(99)).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	called := false
	err := st.WithCustomerForUpdate(context.Background(), 99, func(record CustomerDocument) error {
		called = true
		return nil
	})
	require.ErrorIs(t, err, ErrCustomerNotFound)
	assert.False(t, called, "callback must not run for a missing customer")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithCustomerForUpdateRollsBackOnCallbackError(t *testing.T) {
	st, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(selectForUpdateSQL)).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"proof_key"}).AddRow(""))
	mock.ExpectRollback()

	wantErr := fmt.Errorf("blob write failed")
	err := st.WithCustomerForUpdate(context.Background(), 7, func(record CustomerDocument) error {
		return wantErr
	})
	require.ErrorIs(t, err, wantErr)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithCustomerForUpdateCommitError(t *testing.T) {
	st, mock := newMockStore(t)

	commitErr := fmt.Errorf("connection reset")
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(selectForUpdateSQL)).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"proof_key"}).AddRow(""))
	mock.ExpectCommit().WillReturnError(commitErr)

	err := st.WithCustomerForUpdate(context.Background(), 7, func(record CustomerDocument) error {
		return nil
	})
	require.ErrorIs(t, err, commitErr)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateCustomer(t *testing.T) {
	st, mock := newMockStore(t)

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO customers (name, email, phone, address, proof_of_identity)`)).
		WithArgs("Asha Rao", "asha@example.com", "555-0101", "12 Hill Road", "passport").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(3), now, now))

	customer := &models.Customer{
		Name:            "Asha Rao",
		Email:           "asha@example.com",
		Phone:           "555-0101",
		Address:         "12 Hill Road",
		ProofOfIdentity: "passport",
	}
	require.NoError(t, st.CreateCustomer(context.Background(), customer))
	assert.Equal(t, int64(3), customer.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetCustomerAbsentReturnsNil(t *testing.T) {
	st, mock := newMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT `+customerColumns+` FROM customers WHERE id = $1`)).
		WithArgs(int64(404)).
		WillReturnError(sql.ErrNoRows)

	customer, err := st.GetCustomer(context.Background(), 404)
	require.NoError(t, err)
	assert.Nil(t, customer)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetCustomer(t *testing.T) {
	st, mock := newMockStore(t)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "name", "email", "phone", "address", "proof_of_identity", "proof_key", "proof_filename", "proof_uploaded_at", "created_at", "updated_at"}).
		AddRow(int64(3), "Asha Rao", "asha@example.com", "555-0101", "12 Hill Road", "passport", "customer_proofs/3/a.pdf", "a.pdf", now, now, now)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT `+customerColumns+` FROM customers WHERE id = $1`)).
		WithArgs(int64(3)).
		WillReturnRows(rows)

	customer, err := st.GetCustomer(context.Background(), 3)
	require.NoError(t, err)
	require.NotNil(t, customer)
	assert.Equal(t, "Asha Rao", customer.Name)
	assert.True(t, customer.HasProof())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIsUniqueViolation(t *testing.T) {
	assert.False(t, IsUniqueViolation(nil))
	assert.False(t, IsUniqueViolation(errors.New("plain error")))
}
