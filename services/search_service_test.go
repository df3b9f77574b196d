package services

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"legaldocs_api_go/models"

	"github.com/stretchr/testify/assert"
)

func TestSearchEmptyQuery(t *testing.T) {
	db := setupTestDB(t)
	service := NewSearchService(db)

	for _, query := range []string{"", "   "} {
		_, err := service.Search(context.Background(), query)
		var validationErr *ValidationError
		assert.ErrorAs(t, err, &validationErr)
		assert.Equal(t, "q", validationErr.Field)
	}
}

func TestSearchAccentAndCaseInsensitive(t *testing.T) {
	db := setupTestDB(t)
	service := NewSearchService(db)

	_, err := CreateClient(db, ClientInput{
		FullName:             "José García",
		IdentificationNumber: "GAR-001",
		Email:                "jose@example.com",
	})
	assert.NoError(t, err)

	// Accentless lowercase query matches the accented name
	results, err := service.Search(context.Background(), "garcia")
	assert.NoError(t, err)
	assert.Equal(t, 1, results.Counts.Clients)
	assert.Equal(t, "José García", results.Clients[0].FullName)

	// Accented query matches too
	results, err = service.Search(context.Background(), "GARCÍA")
	assert.NoError(t, err)
	assert.Equal(t, 1, results.Counts.Clients)
}

func TestSearchAcrossEntities(t *testing.T) {
	db := setupTestDB(t)
	service := NewSearchService(db)
	client := createTestClient(t, db, "Demanda Holder")

	caseRecord, err := CreateCase(db, CaseInput{
		ClientID:  client.ID,
		Title:     "Demanda por despido",
		CaseType:  models.CaseTypeLaboral,
		StartDate: "2026-01-10",
	})
	assert.NoError(t, err)

	storage := newMockStorage()
	_, err = CreateDocument(context.Background(), db, storage, DocumentInput{
		CaseID:       caseRecord.ID,
		DocumentType: models.DocumentTypeDemanda,
		Title:        "Demanda inicial",
	}, createMockFileHeader(t, "demanda.pdf", pdfContent(20)), "")
	assert.NoError(t, err)

	results, err := service.Search(context.Background(), "demanda")
	assert.NoError(t, err)
	assert.Equal(t, 1, results.Counts.Clients)
	assert.Equal(t, 1, results.Counts.Cases)
	assert.Equal(t, 1, results.Counts.Documents)
	assert.Equal(t, 3, results.Counts.Total)

	// Case numbers are searchable
	results, err = service.Search(context.Background(), strings.ToLower(caseRecord.CaseNumber))
	assert.NoError(t, err)
	assert.Equal(t, 1, results.Counts.Cases)
	assert.Equal(t, caseRecord.CaseNumber, results.Cases[0].CaseNumber)
}

func TestSearchCapsResultsPerKind(t *testing.T) {
	db := setupTestDB(t)
	service := NewSearchService(db)

	for i := 0; i < 15; i++ {
		_, err := CreateClient(db, ClientInput{
			FullName:             fmt.Sprintf("Common Name %02d", i),
			IdentificationNumber: fmt.Sprintf("CAP-%02d", i),
			Email:                "cap@example.com",
		})
		assert.NoError(t, err)
	}

	results, err := service.Search(context.Background(), "common")
	assert.NoError(t, err)
	assert.Len(t, results.Clients, searchResultLimit)

	// Deterministic id ordering
	for i := 1; i < len(results.Clients); i++ {
		assert.Less(t, results.Clients[i-1].ID, results.Clients[i].ID)
	}
}

func TestSearchNoMatches(t *testing.T) {
	db := setupTestDB(t)
	service := NewSearchService(db)
	createTestClient(t, db, "Someone Here")

	results, err := service.Search(context.Background(), "zzzznotfound")
	assert.NoError(t, err)
	assert.Equal(t, 0, results.Counts.Total)
	assert.NotNil(t, results.Clients)
	assert.Empty(t, results.Clients)
}
