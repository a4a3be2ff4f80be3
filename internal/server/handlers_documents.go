package server

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"innkeep/internal/api"
)

func (s *Server) handleUploadDocument(w http.ResponseWriter, r *http.Request) {
	customerID, ok := s.pathID(w, r)
	if !ok {
		return
	}

	// Leave headroom for multipart framing on top of the file ceiling.
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes+s.multipartMemory)
	if err := r.ParseMultipartForm(s.multipartMemory); err != nil {
		s.writeErrorReq(w, r, http.StatusBadRequest, classifyMultipartError(err))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		s.writeErrorReq(w, r, http.StatusBadRequest,
			badRequestCode(fmt.Errorf("file is required"), ErrCodeMissingRequired))
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		s.writeErrorReq(w, r, http.StatusBadRequest, badRequest(fmt.Errorf("read upload: %w", err)))
		return
	}

	documentType := strings.TrimSpace(r.FormValue("document_type"))

	result, err := s.documentService.Upload(r.Context(), customerID, header.Filename, content)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusCreated, api.DocumentUploadResponse{
		CustomerID:   customerID,
		FileURL:      result.URL,
		FileName:     result.Filename,
		ContentType:  result.ContentType,
		DocumentType: documentType,
		UploadedAt:   result.UploadedAt,
	})
}

func (s *Server) handleDeleteDocument(w http.ResponseWriter, r *http.Request) {
	customerID, ok := s.pathID(w, r)
	if !ok {
		return
	}

	if err := s.documentService.Detach(r.Context(), customerID); err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, api.DocumentDeleteResponse{
		Success:    true,
		Message:    "document deleted",
		CustomerID: customerID,
	})
}

func classifyMultipartError(err error) error {
	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		return badRequestCode(fmt.Errorf("upload too large"), ErrCodeRequestTooLarge)
	}
	return badRequestCode(fmt.Errorf("invalid multipart form: %w", err), ErrCodeInvalidArgument)
}
