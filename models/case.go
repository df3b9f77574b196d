package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Case status constants
const (
	CaseStatusEnProceso           = "en_proceso"
	CaseStatusPendienteDocumentos = "pendiente_documentos"
	CaseStatusEnRevision          = "en_revision"
	CaseStatusCerrado             = "cerrado"
)

// Case type constants
const (
	CaseTypeCivil     = "civil"
	CaseTypePenal     = "penal"
	CaseTypeLaboral   = "laboral"
	CaseTypeMercantil = "mercantil"
	CaseTypeFamilia   = "familia"
)

// Case priority constants
const (
	CasePriorityBaja    = "baja"
	CasePriorityMedia   = "media"
	CasePriorityAlta    = "alta"
	CasePriorityUrgente = "urgente"
)

// Case represents a legal case/matter linked to a client.
// Case numbers are system-generated (CASE-YYYY-NNNN) and immutable after
// creation. Documents cascade-delete with their case.
type Case struct {
	ID        string    `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Client relationship (deletion of the client is blocked while cases exist)
	ClientID string `gorm:"type:uuid;not null;index" json:"client_id"`
	Client   Client `gorm:"foreignKey:ClientID" json:"client,omitempty"`

	// Case identification
	CaseNumber  string `gorm:"size:20;not null;uniqueIndex" json:"case_number"`
	Title       string `gorm:"size:200;not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	CaseType    string `gorm:"size:20;not null;index" json:"case_type"`

	// Status and lifecycle
	Status     string     `gorm:"size:30;not null;index" json:"status"`
	Priority   string     `gorm:"size:20;not null" json:"priority"`
	StartDate  time.Time  `gorm:"not null;index" json:"start_date"`
	Deadline   *time.Time `json:"deadline,omitempty"`
	ClosedDate *time.Time `json:"closed_date,omitempty"`

	// Assignment
	AssignedToID *string `gorm:"type:uuid" json:"assigned_to_id,omitempty"`
	AssignedTo   *User   `gorm:"foreignKey:AssignedToID;constraint:OnDelete:SET NULL" json:"assigned_to,omitempty"`

	// Deadline reminder tracking (set once the reminder email goes out)
	DeadlineReminderSentAt *time.Time `json:"-"`

	// Normalized title for accent-insensitive substring search
	SearchTitle string `json:"-"`

	// Relationships
	Documents []Document `gorm:"foreignKey:CaseID" json:"documents,omitempty"`
}

// BeforeCreate hook to generate UUID
func (c *Case) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return nil
}

// BeforeSave hook to maintain the normalized search column
func (c *Case) BeforeSave(tx *gorm.DB) error {
	c.SearchTitle = NormalizeSearchTerm(c.Title)
	return nil
}

// TableName specifies the table name for Case model
func (Case) TableName() string {
	return "cases"
}

// IsClosed checks if the case has reached the terminal cerrado status
func (c *Case) IsClosed() bool {
	return c.Status == CaseStatusCerrado
}

// IsValidCaseStatus checks if the status is valid
func IsValidCaseStatus(status string) bool {
	switch status {
	case CaseStatusEnProceso, CaseStatusPendienteDocumentos, CaseStatusEnRevision, CaseStatusCerrado:
		return true
	}
	return false
}

// IsValidCaseType checks if the case type is valid
func IsValidCaseType(caseType string) bool {
	switch caseType {
	case CaseTypeCivil, CaseTypePenal, CaseTypeLaboral, CaseTypeMercantil, CaseTypeFamilia:
		return true
	}
	return false
}

// IsValidCasePriority checks if the priority is valid
func IsValidCasePriority(priority string) bool {
	switch priority {
	case CasePriorityBaja, CasePriorityMedia, CasePriorityAlta, CasePriorityUrgente:
		return true
	}
	return false
}
