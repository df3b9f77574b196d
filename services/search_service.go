package services

import (
	"context"
	"fmt"
	"strings"

	"legaldocs_api_go/models"

	"gorm.io/gorm"
)

// searchResultLimit caps results per entity kind
const searchResultLimit = 10

// ClientSearchResult is the minimal projection of a matching client
type ClientSearchResult struct {
	ID       string `json:"id"`
	Type     string `json:"type"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
}

// CaseSearchResult is the minimal projection of a matching case
type CaseSearchResult struct {
	ID         string `json:"id"`
	Type       string `json:"type"`
	CaseNumber string `json:"case_number"`
	Title      string `json:"title"`
}

// DocumentSearchResult is the minimal projection of a matching document
type DocumentSearchResult struct {
	ID           string `json:"id"`
	Type         string `json:"type"`
	Title        string `json:"title"`
	DocumentType string `json:"document_type"`
}

// SearchCounts holds per-kind result counts plus the total
type SearchCounts struct {
	Clients   int `json:"clients"`
	Cases     int `json:"cases"`
	Documents int `json:"documents"`
	Total     int `json:"total"`
}

// SearchResults is the unified result of a global search
type SearchResults struct {
	Query     string                 `json:"query"`
	Clients   []ClientSearchResult   `json:"clients"`
	Cases     []CaseSearchResult     `json:"cases"`
	Documents []DocumentSearchResult `json:"documents"`
	Counts    SearchCounts           `json:"counts"`
}

// SearchService performs the global cross-entity search
type SearchService struct {
	db *gorm.DB
}

// NewSearchService creates a new search service instance
func NewSearchService(db *gorm.DB) *SearchService {
	return &SearchService{db: db}
}

// Search matches the query as a case- and accent-insensitive substring
// against a fixed field set per entity kind (client: full name, email;
// case: title, case number; document: title), returning at most 10 matches
// per kind ordered by id. An empty query is an input error, not an empty
// success.
func (s *SearchService) Search(ctx context.Context, query string) (*SearchResults, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, &ValidationError{Field: "q", Message: "is required and cannot be empty"}
	}

	pattern := "%" + models.NormalizeSearchTerm(query) + "%"
	results := &SearchResults{
		Query:     query,
		Clients:   []ClientSearchResult{},
		Cases:     []CaseSearchResult{},
		Documents: []DocumentSearchResult{},
	}

	var clients []models.Client
	err := s.db.WithContext(ctx).
		Where("search_name LIKE ? OR search_email LIKE ?", pattern, pattern).
		Order("id ASC").
		Limit(searchResultLimit).
		Find(&clients).Error
	if err != nil {
		return nil, fmt.Errorf("client search failed: %w", err)
	}
	for _, c := range clients {
		results.Clients = append(results.Clients, ClientSearchResult{
			ID:       c.ID,
			Type:     "client",
			FullName: c.FullName,
			Email:    c.Email,
		})
	}

	var cases []models.Case
	err = s.db.WithContext(ctx).
		Where("search_title LIKE ? OR case_number LIKE ?", pattern, pattern).
		Order("id ASC").
		Limit(searchResultLimit).
		Find(&cases).Error
	if err != nil {
		return nil, fmt.Errorf("case search failed: %w", err)
	}
	for _, c := range cases {
		results.Cases = append(results.Cases, CaseSearchResult{
			ID:         c.ID,
			Type:       "case",
			CaseNumber: c.CaseNumber,
			Title:      c.Title,
		})
	}

	var documents []models.Document
	err = s.db.WithContext(ctx).
		Where("search_title LIKE ?", pattern).
		Order("id ASC").
		Limit(searchResultLimit).
		Find(&documents).Error
	if err != nil {
		return nil, fmt.Errorf("document search failed: %w", err)
	}
	for _, d := range documents {
		results.Documents = append(results.Documents, DocumentSearchResult{
			ID:           d.ID,
			Type:         "document",
			Title:        d.Title,
			DocumentType: d.DocumentType,
		})
	}

	results.Counts = SearchCounts{
		Clients:   len(results.Clients),
		Cases:     len(results.Cases),
		Documents: len(results.Documents),
		Total:     len(results.Clients) + len(results.Cases) + len(results.Documents),
	}
	return results, nil
}
