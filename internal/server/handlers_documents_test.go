package server

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"innkeep/internal/api"
	"innkeep/internal/auth"
)

func newTestServer(customers *fakeCustomerStore, blobs *fakeBlobStore) *Server {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return &Server{
		documentService: newTestDocumentService(customers, blobs),
		logger:          logger,
		multipartMemory: 8 << 20,
		maxUploadBytes:  10 << 20,
	}
}

func multipartUpload(t *testing.T, filename string, content []byte, documentType string) (*bytes.Buffer, string) {
	t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("write part: %v", err)
	}
	if documentType != "" {
		if err := writer.WriteField("document_type", documentType); err != nil {
			t.Fatalf("write field: %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return &body, writer.FormDataContentType()
}

func TestHandleUploadDocument(t *testing.T) {
	customers := newFakeCustomerStore(1)
	blobs := newFakeBlobStore()
	srv := newTestServer(customers, blobs)

	body, contentType := multipartUpload(t, "passport.pdf", pdfContent, "passport")
	req := httptest.NewRequest(http.MethodPost, "/v1/customers/1/document", body)
	req.Header.Set("Content-Type", contentType)
	req.SetPathValue("id", "1")
	rec := httptest.NewRecorder()

	srv.handleUploadDocument(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp api.DocumentUploadResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.CustomerID != 1 {
		t.Fatalf("unexpected customer id %d", resp.CustomerID)
	}
	if resp.FileURL == "" || resp.FileName != "passport.pdf" {
		t.Fatalf("unexpected response %+v", resp)
	}
	if resp.DocumentType != "passport" {
		t.Fatalf("unexpected document type %q", resp.DocumentType)
	}
	if customers.proofKey(1) == "" {
		t.Fatal("pointer should be set after upload")
	}
}

func TestHandleUploadDocumentMissingFile(t *testing.T) {
	srv := newTestServer(newFakeCustomerStore(1), newFakeBlobStore())

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	if err := writer.WriteField("document_type", "passport"); err != nil {
		t.Fatalf("write field: %v", err)
	}
	writer.Close()

	req := httptest.NewRequest(http.MethodPost, "/v1/customers/1/document", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.SetPathValue("id", "1")
	rec := httptest.NewRecorder()

	srv.handleUploadDocument(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	var resp api.ErrorResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.ErrorCode != ErrCodeMissingRequired {
		t.Fatalf("expected error code %d, got %d", ErrCodeMissingRequired, resp.ErrorCode)
	}
}

func TestHandleUploadDocumentRejectedType(t *testing.T) {
	customers := newFakeCustomerStore(1)
	blobs := newFakeBlobStore()
	srv := newTestServer(customers, blobs)

	body, contentType := multipartUpload(t, "script.sh", []byte("#!/bin/sh\necho hi"), "")
	req := httptest.NewRequest(http.MethodPost, "/v1/customers/1/document", body)
	req.Header.Set("Content-Type", contentType)
	req.SetPathValue("id", "1")
	rec := httptest.NewRecorder()

	srv.handleUploadDocument(rec, req)

	if rec.Code != http.StatusUnsupportedMediaType {
		t.Fatalf("expected 415, got %d: %s", rec.Code, rec.Body.String())
	}
	if blobs.putCount() != 0 {
		t.Fatal("rejected upload must not write a blob")
	}
}

func TestHandleUploadDocumentInvalidID(t *testing.T) {
	srv := newTestServer(newFakeCustomerStore(1), newFakeBlobStore())

	body, contentType := multipartUpload(t, "passport.pdf", pdfContent, "")
	req := httptest.NewRequest(http.MethodPost, "/v1/customers/abc/document", body)
	req.Header.Set("Content-Type", contentType)
	req.SetPathValue("id", "abc")
	rec := httptest.NewRecorder()

	srv.handleUploadDocument(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestHandleDeleteDocument(t *testing.T) {
	customers := newFakeCustomerStore(1)
	blobs := newFakeBlobStore()
	srv := newTestServer(customers, blobs)

	body, contentType := multipartUpload(t, "passport.pdf", pdfContent, "")
	upReq := httptest.NewRequest(http.MethodPost, "/v1/customers/1/document", body)
	upReq.Header.Set("Content-Type", contentType)
	upReq.SetPathValue("id", "1")
	srv.handleUploadDocument(httptest.NewRecorder(), upReq)

	req := httptest.NewRequest(http.MethodDelete, "/v1/customers/1/document", nil)
	req.SetPathValue("id", "1")
	rec := httptest.NewRecorder()

	srv.handleDeleteDocument(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp api.DocumentDeleteResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.Success || resp.CustomerID != 1 {
		t.Fatalf("unexpected response %+v", resp)
	}
	if customers.proofKey(1) != "" {
		t.Fatal("pointer should be cleared after delete")
	}
}

func TestHandleDeleteDocumentWithoutDocument(t *testing.T) {
	srv := newTestServer(newFakeCustomerStore(1), newFakeBlobStore())

	req := httptest.NewRequest(http.MethodDelete, "/v1/customers/1/document", nil)
	req.SetPathValue("id", "1")
	rec := httptest.NewRecorder()

	srv.handleDeleteDocument(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("delete with nothing attached must succeed, got %d", rec.Code)
	}
}

func TestHandleDeleteDocumentUnknownCustomer(t *testing.T) {
	srv := newTestServer(newFakeCustomerStore(1), newFakeBlobStore())

	req := httptest.NewRequest(http.MethodDelete, "/v1/customers/99/document", nil)
	req.SetPathValue("id", "99")
	rec := httptest.NewRecorder()

	srv.handleDeleteDocument(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestRequireAuthRejectsMissingOrBadToken(t *testing.T) {
	srv := newTestServer(newFakeCustomerStore(1), newFakeBlobStore())
	tokens, err := auth.NewTokenIssuer("test-secret", time.Minute)
	if err != nil {
		t.Fatalf("new issuer: %v", err)
	}
	srv.tokens = tokens

	called := false
	handler := srv.requireAuth(func(w http.ResponseWriter, r *http.Request) { called = true })

	t.Run("missing header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/customers", nil)
		rec := httptest.NewRecorder()
		handler(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
		if rec.Header().Get("WWW-Authenticate") == "" {
			t.Fatal("expected WWW-Authenticate header")
		}
	})

	t.Run("garbage token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/customers", nil)
		req.Header.Set("Authorization", "Bearer not.a.token")
		rec := httptest.NewRecorder()
		handler(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})

	if called {
		t.Fatal("handler must not run without credentials")
	}
}

func TestHandleHealth(t *testing.T) {
	srv := newTestServer(newFakeCustomerStore(1), newFakeBlobStore())

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	srv.handleHealth(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp api.HealthResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Status != "ok" {
		t.Fatalf("unexpected status %q", resp.Status)
	}
}
