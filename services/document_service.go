package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"strings"

	"legaldocs_api_go/models"

	"gorm.io/gorm"
)

// DocumentInput contains the metadata fields accepted when uploading a
// document. The file itself arrives as a multipart header; file_size is
// always taken from the stored result, never from the client.
type DocumentInput struct {
	CaseID         string
	DocumentType   string
	Title          string
	Description    string
	IsConfidential bool
}

// DocumentUpdate contains the metadata fields accepted on a partial update.
type DocumentUpdate struct {
	DocumentType   *string `json:"document_type"`
	Title          *string `json:"title"`
	Description    *string `json:"description"`
	IsConfidential *bool   `json:"is_confidential"`
}

// CreateDocument validates the upload, stores the file and persists the
// document record with the byte length the storage collaborator reported.
func CreateDocument(ctx context.Context, db *gorm.DB, storage StorageProvider, input DocumentInput, fileHeader *multipart.FileHeader, uploadedByID string) (*models.Document, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, &ValidationError{Field: "title", Message: "is required"}
	}
	if !models.IsValidDocumentType(input.DocumentType) {
		return nil, &ValidationError{Field: "document_type", Message: "is not a valid document type"}
	}

	var caseRecord models.Case
	if err := db.First(&caseRecord, "id = ?", input.CaseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &ValidationError{Field: "case_id", Message: "references a case that does not exist"}
		}
		return nil, fmt.Errorf("failed to fetch case: %w", err)
	}

	if err := ValidateDocumentUpload(fileHeader); err != nil {
		return nil, err
	}

	key, err := BuildDocumentKey(input.CaseID, fileHeader)
	if err != nil {
		return nil, err
	}

	stored, err := storage.Upload(ctx, fileHeader, key)
	if err != nil {
		return nil, fmt.Errorf("failed to store file: %w", err)
	}

	document := &models.Document{
		CaseID:           input.CaseID,
		DocumentType:     input.DocumentType,
		Title:            strings.TrimSpace(input.Title),
		Description:      strings.TrimSpace(input.Description),
		FileKey:          stored.Key,
		FileOriginalName: fileHeader.Filename,
		FileSize:         stored.FileSize,
		MimeType:         stored.MimeType,
		IsConfidential:   input.IsConfidential,
	}
	if uploadedByID != "" {
		document.UploadedByID = &uploadedByID
	}

	if err := db.Create(document).Error; err != nil {
		// Do not leave a stored blob behind a failed insert.
		if cleanupErr := storage.Delete(ctx, stored.Key); cleanupErr != nil {
			log.Printf("Warning: failed to clean up stored file %s: %v", stored.Key, cleanupErr)
		}
		return nil, fmt.Errorf("failed to create document: %w", err)
	}

	InvalidateDashboardCache()
	return document, nil
}

// GetDocument fetches a document with its case and uploader
func GetDocument(db *gorm.DB, id string) (*models.Document, error) {
	var document models.Document
	err := db.Preload("Case").Preload("UploadedBy").First(&document, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "document", ID: id}
		}
		return nil, fmt.Errorf("failed to fetch document: %w", err)
	}
	return &document, nil
}

// UpdateDocument applies a partial metadata update and, when a replacement
// file is supplied, stores it and recomputes file_size from the stored
// result.
func UpdateDocument(ctx context.Context, db *gorm.DB, storage StorageProvider, id string, update DocumentUpdate, fileHeader *multipart.FileHeader) (*models.Document, error) {
	document, err := GetDocument(db, id)
	if err != nil {
		return nil, err
	}

	if update.Title != nil {
		if strings.TrimSpace(*update.Title) == "" {
			return nil, &ValidationError{Field: "title", Message: "cannot be empty"}
		}
		document.Title = strings.TrimSpace(*update.Title)
	}
	if update.DocumentType != nil {
		if !models.IsValidDocumentType(*update.DocumentType) {
			return nil, &ValidationError{Field: "document_type", Message: "is not a valid document type"}
		}
		document.DocumentType = *update.DocumentType
	}
	if update.Description != nil {
		document.Description = strings.TrimSpace(*update.Description)
	}
	if update.IsConfidential != nil {
		document.IsConfidential = *update.IsConfidential
	}

	oldKey := ""
	if fileHeader != nil {
		if err := ValidateDocumentUpload(fileHeader); err != nil {
			return nil, err
		}
		key, err := BuildDocumentKey(document.CaseID, fileHeader)
		if err != nil {
			return nil, err
		}
		stored, err := storage.Upload(ctx, fileHeader, key)
		if err != nil {
			return nil, fmt.Errorf("failed to store file: %w", err)
		}
		oldKey = document.FileKey
		document.FileKey = stored.Key
		document.FileOriginalName = fileHeader.Filename
		document.FileSize = stored.FileSize
		document.MimeType = stored.MimeType
	}

	if err := db.Save(document).Error; err != nil {
		return nil, fmt.Errorf("failed to update document: %w", err)
	}

	if oldKey != "" && oldKey != document.FileKey {
		if err := storage.Delete(ctx, oldKey); err != nil {
			log.Printf("Warning: failed to delete replaced file %s: %v", oldKey, err)
		}
	}

	InvalidateDashboardCache()
	return document, nil
}

// DeleteDocument removes a document and its stored file. Only the uploader
// or a staff user may delete a document.
func DeleteDocument(ctx context.Context, db *gorm.DB, storage StorageProvider, id string, caller *models.User) error {
	document, err := GetDocument(db, id)
	if err != nil {
		return err
	}

	if !caller.IsStaff {
		if document.UploadedByID == nil || *document.UploadedByID != caller.ID {
			return &PermissionError{Message: "only the uploader or staff can delete a document"}
		}
	}

	if err := db.Delete(document).Error; err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}

	if err := storage.Delete(ctx, document.FileKey); err != nil {
		log.Printf("Warning: failed to delete stored file %s: %v", document.FileKey, err)
	}

	InvalidateDashboardCache()
	return nil
}

// DownloadDocument streams a document's file from storage
func DownloadDocument(ctx context.Context, db *gorm.DB, storage StorageProvider, id string) (*models.Document, io.ReadCloser, string, error) {
	document, err := GetDocument(db, id)
	if err != nil {
		return nil, nil, "", err
	}

	reader, contentType, err := storage.Get(ctx, document.FileKey)
	if err != nil {
		return nil, nil, "", fmt.Errorf("failed to open stored file: %w", err)
	}
	if document.MimeType != "" {
		contentType = document.MimeType
	}
	return document, reader, contentType, nil
}

// ListDocuments returns a page of documents plus the total count
func ListDocuments(db *gorm.DB, opts ListOptions) ([]models.Document, int64, error) {
	query, err := applyListOptions(db.Model(&models.Document{}), documentQuerySpec, opts)
	if err != nil {
		return nil, 0, err
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count documents: %w", err)
	}

	query, _, _ = paginate(query, opts)

	var documents []models.Document
	if err := query.Preload("UploadedBy").Find(&documents).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch documents: %w", err)
	}
	return documents, total, nil
}
