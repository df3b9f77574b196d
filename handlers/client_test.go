package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCreateClientHandler(t *testing.T) {
	setupTestDB(t)

	body := `{"full_name":"Nuevo Cliente","identification_number":"NC-001","email":"nc@example.com"}`
	_, c, rec := setupEcho(http.MethodPost, "/api/clients", strings.NewReader(body))

	err := CreateClientHandler(c)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusCreated, rec.Code)

	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, "Nuevo Cliente", response["full_name"])
	assert.Equal(t, true, response["is_active"])
}

func TestCreateClientHandlerConflict(t *testing.T) {
	testDB := setupTestDB(t)
	seedClient(t, testDB, "Existing", "DUP-100")

	body := `{"full_name":"Duplicado","identification_number":"DUP-100","email":"d@example.com"}`
	_, c, rec := setupEcho(http.MethodPost, "/api/clients", strings.NewReader(body))

	err := CreateClientHandler(c)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestDeleteClientHandlerWithCases(t *testing.T) {
	testDB := setupTestDB(t)
	client := seedClient(t, testDB, "Protected", "PROT-1")
	seedCase(t, testDB, client.ID, "Blocking matter")

	_, c, rec := setupEcho(http.MethodDelete, "/api/clients/"+client.ID, nil)
	c.SetParamNames("id")
	c.SetParamValues(client.ID)

	err := DeleteClientHandler(c)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestGetClientCasesHandler(t *testing.T) {
	testDB := setupTestDB(t)
	client := seedClient(t, testDB, "Owner", "OWN-1")
	seedCase(t, testDB, client.ID, "First matter")
	seedCase(t, testDB, client.ID, "Second matter")

	_, c, rec := setupEcho(http.MethodGet, "/api/clients/"+client.ID+"/cases", nil)
	c.SetParamNames("id")
	c.SetParamValues(client.ID)

	err := GetClientCasesHandler(c)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	var cases []map[string]interface{}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cases))
	assert.Len(t, cases, 2)
}

func TestUpdateClientHandlerPartial(t *testing.T) {
	testDB := setupTestDB(t)
	client := seedClient(t, testDB, "Before", "UPD-1")

	body := `{"phone":"555-0202"}`
	_, c, rec := setupEcho(http.MethodPatch, "/api/clients/"+client.ID, strings.NewReader(body))
	c.SetParamNames("id")
	c.SetParamValues(client.ID)

	err := UpdateClientHandler(c)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, "555-0202", response["phone"])
	assert.Equal(t, "Before", response["full_name"])
}
