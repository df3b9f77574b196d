package services

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestListRejectsUnknownFilterField(t *testing.T) {
	db := setupTestDB(t)

	_, _, err := ListClients(db, ListOptions{Filters: map[string]string{"password": "x"}})
	var validationErr *ValidationError
	assert.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "password", validationErr.Field)

	_, _, err = ListCases(db, ListOptions{Filters: map[string]string{"deadline": "2026-01-01"}})
	assert.ErrorAs(t, err, &validationErr)
}

func TestListRejectsUnknownSortField(t *testing.T) {
	db := setupTestDB(t)

	_, _, err := ListClients(db, ListOptions{OrderBy: "password"})
	var validationErr *ValidationError
	assert.ErrorAs(t, err, &validationErr)

	// The descending marker does not smuggle an unknown field through
	_, _, err = ListClients(db, ListOptions{OrderBy: "-password"})
	assert.ErrorAs(t, err, &validationErr)
}

func TestListDescendingSort(t *testing.T) {
	db := setupTestDB(t)

	for _, name := range []string{"Alpha", "Bravo", "Charlie"} {
		_, err := CreateClient(db, ClientInput{
			FullName:             name,
			IdentificationNumber: "SORT-" + name,
			Email:                "sort@example.com",
		})
		assert.NoError(t, err)
	}

	clients, _, err := ListClients(db, ListOptions{OrderBy: "-full_name"})
	assert.NoError(t, err)
	assert.Equal(t, "Charlie", clients[0].FullName)
	assert.Equal(t, "Alpha", clients[2].FullName)

	clients, _, err = ListClients(db, ListOptions{OrderBy: "full_name"})
	assert.NoError(t, err)
	assert.Equal(t, "Alpha", clients[0].FullName)
}

func TestListPageSizeClamping(t *testing.T) {
	db := setupTestDB(t)

	for i := 0; i < 25; i++ {
		_, err := CreateClient(db, ClientInput{
			FullName:             "Page Client",
			IdentificationNumber: fmt.Sprintf("PAGE-%03d", i),
			Email:                "page@example.com",
		})
		assert.NoError(t, err)
	}

	// Default page size applies when none is requested
	clients, total, err := ListClients(db, ListOptions{})
	assert.NoError(t, err)
	assert.Equal(t, int64(25), total)
	assert.Len(t, clients, DefaultPageSize)

	// Oversized requests are clamped, not honored
	clients, _, err = ListClients(db, ListOptions{PageSize: 10000})
	assert.NoError(t, err)
	assert.Len(t, clients, 25)

	// Page two carries the remainder
	clients, _, err = ListClients(db, ListOptions{Page: 2, PageSize: 20})
	assert.NoError(t, err)
	assert.Len(t, clients, 5)
}
