package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Document type constants
const (
	DocumentTypeContrato  = "contrato"
	DocumentTypeDemanda   = "demanda"
	DocumentTypePoder     = "poder"
	DocumentTypeSentencia = "sentencia"
	DocumentTypeEscritura = "escritura"
	DocumentTypeOtro      = "otro"
)

// Document represents an uploaded file attached to a case.
// FileSize is derived from the stored file on every save that includes a
// file; it is never taken from client input.
type Document struct {
	ID         string    `gorm:"type:uuid;primarykey" json:"id"`
	UploadedAt time.Time `gorm:"autoCreateTime;index" json:"uploaded_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	// Case relationship (documents are removed together with their case)
	CaseID string `gorm:"type:uuid;not null;index" json:"case_id"`
	Case   *Case  `gorm:"foreignKey:CaseID" json:"case,omitempty"`

	DocumentType string `gorm:"size:20;not null;index" json:"document_type"`
	Title        string `gorm:"size:200;not null" json:"title"`
	Description  string `gorm:"type:text" json:"description"`

	// File metadata (FileKey points into the storage collaborator)
	FileKey          string `gorm:"not null" json:"-"`
	FileOriginalName string `gorm:"not null" json:"file_name"`
	FileSize         int64  `gorm:"not null" json:"file_size"`
	MimeType         string `json:"mime_type,omitempty"`

	IsConfidential bool `gorm:"not null" json:"is_confidential"`

	// Upload tracking
	UploadedByID *string `gorm:"type:uuid" json:"uploaded_by_id,omitempty"`
	UploadedBy   *User   `gorm:"foreignKey:UploadedByID;constraint:OnDelete:SET NULL" json:"uploaded_by,omitempty"`

	// Normalized copies for accent-insensitive substring search
	SearchTitle       string `json:"-"`
	SearchDescription string `json:"-"`
}

// BeforeCreate hook to generate UUID
func (d *Document) BeforeCreate(tx *gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.New().String()
	}
	return nil
}

// BeforeSave hook to maintain the normalized search columns
func (d *Document) BeforeSave(tx *gorm.DB) error {
	d.SearchTitle = NormalizeSearchTerm(d.Title)
	d.SearchDescription = NormalizeSearchTerm(d.Description)
	return nil
}

// TableName specifies the table name for Document model
func (Document) TableName() string {
	return "documents"
}

// IsValidDocumentType checks if the document type is valid
func IsValidDocumentType(documentType string) bool {
	switch documentType {
	case DocumentTypeContrato, DocumentTypeDemanda, DocumentTypePoder,
		DocumentTypeSentencia, DocumentTypeEscritura, DocumentTypeOtro:
		return true
	}
	return false
}
