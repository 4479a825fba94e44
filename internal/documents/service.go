package documents

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"career-backend/internal/extract"
	"career-backend/internal/shared/storage/object"
	"career-backend/internal/shared/telemetry"
)

// Service contains business logic for documents.
type Service struct {
	Store    object.ObjectStore
	Repo     Repo
	Provider string
}

// Upload saves the file to object storage, records the document, and
// extracts its text inline. A failed extraction is not fatal; the
// document is kept and the text can be extracted again on demand.
func (s *Service) Upload(ctx context.Context, userID, fileName string, r io.Reader) (Document, error) {
	if strings.TrimSpace(fileName) == "" {
		return Document{}, fmt.Errorf("%w: file name is required", ErrInvalidInput)
	}

	storageKey, size, mimeType, err := s.Store.Save(ctx, userID, fileName, r)
	if err != nil {
		return Document{}, err
	}

	doc := Document{
		ID:              uuid.NewString(),
		UserID:          userID,
		FileName:        fileName,
		MimeType:        mimeType,
		SizeBytes:       size,
		StorageProvider: s.Provider,
		StorageKey:      storageKey,
		CreatedAt:       time.Now().UTC(),
	}

	if _, err := extract.ExtractText(ctx, s.Store, storageKey, mimeType, fileName); err != nil {
		telemetry.Warn("document.extract_failed", map[string]any{
			"documentId": doc.ID,
			"error":      err.Error(),
		})
	} else {
		now := time.Now().UTC()
		doc.ExtractedTextKey = storageKey + ".extracted.txt"
		doc.ExtractedAt = &now
	}

	if err := s.Repo.Create(ctx, doc); err != nil {
		return Document{}, err
	}
	return doc, nil
}

// Get returns one document scoped to its owner.
func (s *Service) Get(ctx context.Context, userID, docID string) (Document, error) {
	return s.Repo.GetByID(ctx, userID, docID)
}

// List returns a page of the user's documents, newest first.
func (s *Service) List(ctx context.Context, userID string, limit, offset int) ([]Document, error) {
	return s.Repo.ListByUser(ctx, userID, limit, offset)
}

// Delete soft-deletes a document. The stored objects are kept.
func (s *Service) Delete(ctx context.Context, userID, docID string) error {
	return s.Repo.SoftDelete(ctx, userID, docID)
}

// ExtractedText loads the extracted text of a document, extracting on
// demand when the upload-time pass failed.
func (s *Service) ExtractedText(ctx context.Context, userID, docID string) (string, error) {
	doc, err := s.Repo.GetByID(ctx, userID, docID)
	if err != nil {
		return "", err
	}

	if doc.ExtractedTextKey != "" {
		body, err := s.Store.Open(ctx, doc.ExtractedTextKey)
		if err == nil {
			defer body.Close()
			raw, err := io.ReadAll(body)
			if err != nil {
				return "", err
			}
			return string(raw), nil
		}
	}

	if doc.StorageKey == "" {
		return "", ErrNotExtracted
	}
	text, err := extract.ExtractText(ctx, s.Store, doc.StorageKey, doc.MimeType, doc.FileName)
	if err != nil {
		return "", errors.Join(ErrNotExtracted, err)
	}
	if err := s.Repo.MarkExtracted(ctx, userID, docID, doc.StorageKey+".extracted.txt"); err != nil {
		return "", err
	}
	return text, nil
}
