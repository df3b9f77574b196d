package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Client represents a person or entity that engages legal services.
// Clients own cases; a client cannot be deleted while cases reference it.
type Client struct {
	ID        string    `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	FullName             string `gorm:"size:200;not null" json:"full_name"`
	IdentificationNumber string `gorm:"size:50;not null;uniqueIndex" json:"identification_number"`
	Email                string `gorm:"not null" json:"email"`
	Phone                string `gorm:"size:20" json:"phone"`
	Address              string `gorm:"type:text" json:"address"`
	Notes                string `gorm:"type:text" json:"notes"`
	IsActive             bool   `gorm:"not null" json:"is_active"`

	// Lowercased, accent-folded copies kept for substring search.
	// SQLite's LIKE only folds ASCII case, so these columns carry the
	// normalization that makes "garcia" match "García".
	SearchName  string `gorm:"index" json:"-"`
	SearchEmail string `json:"-"`

	// Relationships
	Cases []Case `gorm:"foreignKey:ClientID" json:"cases,omitempty"`
}

// BeforeCreate hook to generate UUID
func (c *Client) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return nil
}

// BeforeSave hook to maintain the normalized search columns
func (c *Client) BeforeSave(tx *gorm.DB) error {
	c.SearchName = NormalizeSearchTerm(c.FullName)
	c.SearchEmail = NormalizeSearchTerm(c.Email)
	return nil
}

// TableName specifies the table name for Client model
func (Client) TableName() string {
	return "clients"
}
