package services

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"legaldocs_api_go/models"

	"gorm.io/gorm"
)

// ClientInput contains the fields accepted when creating a client
type ClientInput struct {
	FullName             string `json:"full_name"`
	IdentificationNumber string `json:"identification_number"`
	Email                string `json:"email"`
	Phone                string `json:"phone"`
	Address              string `json:"address"`
	Notes                string `json:"notes"`
	IsActive             *bool  `json:"is_active"`
}

// ClientUpdate contains the fields accepted on a partial update; nil fields
// are left untouched.
type ClientUpdate struct {
	FullName             *string `json:"full_name"`
	IdentificationNumber *string `json:"identification_number"`
	Email                *string `json:"email"`
	Phone                *string `json:"phone"`
	Address              *string `json:"address"`
	Notes                *string `json:"notes"`
	IsActive             *bool   `json:"is_active"`
}

// CreateClient validates and persists a new client. A duplicate
// identification number surfaces as a ConflictError.
func CreateClient(db *gorm.DB, input ClientInput) (*models.Client, error) {
	if strings.TrimSpace(input.FullName) == "" {
		return nil, &ValidationError{Field: "full_name", Message: "is required"}
	}
	if strings.TrimSpace(input.IdentificationNumber) == "" {
		return nil, &ValidationError{Field: "identification_number", Message: "is required"}
	}
	if err := validateEmail(input.Email); err != nil {
		return nil, err
	}

	client := &models.Client{
		FullName:             strings.TrimSpace(input.FullName),
		IdentificationNumber: strings.TrimSpace(input.IdentificationNumber),
		Email:                strings.TrimSpace(input.Email),
		Phone:                strings.TrimSpace(input.Phone),
		Address:              strings.TrimSpace(input.Address),
		Notes:                SanitizeRichText(input.Notes),
		IsActive:             true,
	}
	if input.IsActive != nil {
		client.IsActive = *input.IsActive
	}

	if err := db.Create(client).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, &ConflictError{Resource: "client", Message: "identification number already exists"}
		}
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	InvalidateDashboardCache()
	return client, nil
}

// GetClient fetches a client by id
func GetClient(db *gorm.DB, id string) (*models.Client, error) {
	var client models.Client
	if err := db.First(&client, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "client", ID: id}
		}
		return nil, fmt.Errorf("failed to fetch client: %w", err)
	}
	return &client, nil
}

// UpdateClient applies a partial update to a client
func UpdateClient(db *gorm.DB, id string, update ClientUpdate) (*models.Client, error) {
	client, err := GetClient(db, id)
	if err != nil {
		return nil, err
	}

	if update.FullName != nil {
		if strings.TrimSpace(*update.FullName) == "" {
			return nil, &ValidationError{Field: "full_name", Message: "cannot be empty"}
		}
		client.FullName = strings.TrimSpace(*update.FullName)
	}
	if update.IdentificationNumber != nil {
		if strings.TrimSpace(*update.IdentificationNumber) == "" {
			return nil, &ValidationError{Field: "identification_number", Message: "cannot be empty"}
		}
		client.IdentificationNumber = strings.TrimSpace(*update.IdentificationNumber)
	}
	if update.Email != nil {
		if err := validateEmail(*update.Email); err != nil {
			return nil, err
		}
		client.Email = strings.TrimSpace(*update.Email)
	}
	if update.Phone != nil {
		client.Phone = strings.TrimSpace(*update.Phone)
	}
	if update.Address != nil {
		client.Address = strings.TrimSpace(*update.Address)
	}
	if update.Notes != nil {
		client.Notes = SanitizeRichText(*update.Notes)
	}
	if update.IsActive != nil {
		client.IsActive = *update.IsActive
	}

	if err := db.Save(client).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, &ConflictError{Resource: "client", Message: "identification number already exists"}
		}
		return nil, fmt.Errorf("failed to update client: %w", err)
	}

	InvalidateDashboardCache()
	return client, nil
}

// DeleteClient removes a client. Deletion is refused while any case still
// references the client (referential protection, not cascade).
func DeleteClient(db *gorm.DB, id string) error {
	client, err := GetClient(db, id)
	if err != nil {
		return err
	}

	var caseCount int64
	if err := db.Model(&models.Case{}).Where("client_id = ?", id).Count(&caseCount).Error; err != nil {
		return fmt.Errorf("failed to count client cases: %w", err)
	}
	if caseCount > 0 {
		return &ConflictError{
			Resource: "client",
			Message:  fmt.Sprintf("client has %d associated case(s) and cannot be deleted", caseCount),
		}
	}

	if err := db.Delete(client).Error; err != nil {
		return fmt.Errorf("failed to delete client: %w", err)
	}

	InvalidateDashboardCache()
	return nil
}

// ListClients returns a page of clients plus the total count
func ListClients(db *gorm.DB, opts ListOptions) ([]models.Client, int64, error) {
	query, err := applyListOptions(db.Model(&models.Client{}), clientQuerySpec, opts)
	if err != nil {
		return nil, 0, err
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count clients: %w", err)
	}

	query, _, _ = paginate(query, opts)

	var clients []models.Client
	if err := query.Find(&clients).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch clients: %w", err)
	}
	return clients, total, nil
}

// GetClientCases returns all cases belonging to a client
func GetClientCases(db *gorm.DB, id string) ([]models.Case, error) {
	if _, err := GetClient(db, id); err != nil {
		return nil, err
	}

	var cases []models.Case
	if err := db.Where("client_id = ?", id).Order("start_date DESC").Find(&cases).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch client cases: %w", err)
	}
	return cases, nil
}

func validateEmail(email string) error {
	if strings.TrimSpace(email) == "" {
		return &ValidationError{Field: "email", Message: "is required"}
	}
	if _, err := mail.ParseAddress(strings.TrimSpace(email)); err != nil {
		return &ValidationError{Field: "email", Message: "is not a valid email address"}
	}
	return nil
}
