package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"innkeep/internal/blobstore"
	"innkeep/internal/filecheck"
	"innkeep/internal/store"
)

// customerLockStore is the slice of the record store the coordinator needs:
// the row-locked accessor over one customer's attachment pointer.
type customerLockStore interface {
	WithCustomerForUpdate(ctx context.Context, id int64, fn func(store.CustomerDocument) error) error
}

// DocumentService coordinates a customer's identity-proof document across
// the object store and the relational record.
//
// Upload sequence: validate, lock the customer row, write the new blob,
// update the pointer, commit, then best-effort cleanup of the superseded
// blob. The blob write happens before the pointer update inside the lock
// scope, so a committed pointer always refers to an existing blob. The
// inverse is not guaranteed: a failure between blob write and commit leaves
// an orphaned blob, which is an accepted, bounded risk. There is no
// two-phase protocol and no cleanup retry.
type DocumentService struct {
	customers customerLockStore
	blobs     blobstore.BlobStore
	validator *filecheck.Validator
	cleaner   *Cleaner
	logger    *slog.Logger
}

// DocumentResult reports a committed upload.
type DocumentResult struct {
	Key         string
	URL         string
	Filename    string
	ContentType string
	UploadedAt  time.Time
}

// NewDocumentService constructs a DocumentService.
func NewDocumentService(customers customerLockStore, blobs blobstore.BlobStore, validator *filecheck.Validator, cleaner *Cleaner, logger *slog.Logger) *DocumentService {
	if logger == nil {
		logger = slog.Default()
	}
	return &DocumentService{
		customers: customers,
		blobs:     blobs,
		validator: validator,
		cleaner:   cleaner,
		logger:    logger,
	}
}

// Upload validates content, stores it as the customer's current document,
// and replaces any previous one. On success exactly one new blob is durably
// stored and referenced, and at most one stale blob is scheduled for
// removal.
func (s *DocumentService) Upload(ctx context.Context, customerID int64, filename string, content []byte) (DocumentResult, error) {
	var zero DocumentResult
	if s == nil || s.customers == nil || s.blobs == nil || s.validator == nil {
		return zero, internalError(fmt.Errorf("document service is not configured"))
	}

	// Reject before touching any store.
	checked, err := s.validator.Validate(filename, content)
	if err != nil {
		return zero, validationError(err)
	}

	var (
		result      DocumentResult
		previousKey string
	)
	err = s.customers.WithCustomerForUpdate(ctx, customerID, func(record store.CustomerDocument) error {
		previousKey = record.ProofKey()

		key := blobstore.ProofObjectKey(customerID, checked.SafeFilename)
		url, putErr := s.blobs.Put(ctx, key, content, checked.ContentType)
		if putErr != nil {
			// Nothing was mutated in the record store; the whole
			// operation is safe to retry.
			return storageUnavailable(fmt.Errorf("store document: %w", putErr))
		}

		uploadedAt := time.Now().UTC()
		if setErr := record.SetProof(key, checked.SafeFilename, uploadedAt); setErr != nil {
			return storeFailure(fmt.Errorf("update customer record: %w", setErr))
		}

		result = DocumentResult{
			Key:         key,
			URL:         url,
			Filename:    checked.SafeFilename,
			ContentType: checked.ContentType,
			UploadedAt:  uploadedAt,
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, store.ErrCustomerNotFound) {
			return zero, notFoundCode(fmt.Errorf("customer %d not found", customerID), ErrCodeCustomerNotFound)
		}
		var apiErr apiError
		if errors.As(err, &apiErr) {
			return zero, err
		}
		// Commit failed after the blob write: the new blob is an orphan
		// (accepted), the record is unchanged, and retrying is safe.
		return zero, storeFailure(fmt.Errorf("commit document update: %w", err))
	}

	if previousKey != "" && previousKey != result.Key {
		s.cleaner.ScheduleCleanup(ctx, previousKey)
	}

	s.logger.Info("document uploaded", "customer_id", customerID, "key", result.Key, "content_type", result.ContentType)
	return result, nil
}

// Detach removes the customer's current document reference. Detaching a
// customer with no document is a successful no-op. The record is cleared
// first and the blob deleted after commit, so the system never reports a
// document that cannot be fetched.
func (s *DocumentService) Detach(ctx context.Context, customerID int64) error {
	if s == nil || s.customers == nil {
		return internalError(fmt.Errorf("document service is not configured"))
	}

	var previousKey string
	err := s.customers.WithCustomerForUpdate(ctx, customerID, func(record store.CustomerDocument) error {
		previousKey = record.ProofKey()
		if previousKey == "" {
			// Idempotent: nothing attached, nothing to do.
			return nil
		}
		if clearErr := record.ClearProof(); clearErr != nil {
			return storeFailure(fmt.Errorf("clear customer record: %w", clearErr))
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, store.ErrCustomerNotFound) {
			return notFoundCode(fmt.Errorf("customer %d not found", customerID), ErrCodeCustomerNotFound)
		}
		var apiErr apiError
		if errors.As(err, &apiErr) {
			return err
		}
		return storeFailure(fmt.Errorf("commit document removal: %w", err))
	}

	if previousKey != "" {
		s.cleaner.ScheduleCleanup(ctx, previousKey)
		s.logger.Info("document detached", "customer_id", customerID, "key", previousKey)
	}
	return nil
}

// validationError maps a filecheck rejection onto an HTTP-facing error.
func validationError(err error) error {
	switch {
	case errors.Is(err, filecheck.ErrFileTooLarge):
		return badRequestCode(err, ErrCodeFileTooLarge)
	case errors.Is(err, filecheck.ErrTypeNotAllowed), errors.Is(err, filecheck.ErrContentMismatch):
		return unsupportedMediaCode(err, ErrCodeFileTypeRejected)
	case errors.Is(err, filecheck.ErrBadFilename):
		return badRequestCode(err, ErrCodeBadFilename)
	default:
		return badRequest(err)
	}
}
