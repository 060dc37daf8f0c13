package main

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
)

// ListSegmentMappings retrieves the segment mappings for a transaction type.
// The list is read-only reference data: it feeds the editor's segment picker
// and the add-from-segment type inference path.
func (s *Service) ListSegmentMappings(transactionType string) ([]SegmentMapping, error) {
	var query string

	switch s.config.DBEngine {
	case "postgresql", "postgres":
		query = `
			SELECT segment, data_key, description
			FROM segment_mappings
			WHERE transaction_type = $1
			ORDER BY segment ASC
		`
	case "mysql", "mariadb", "sqlite", "sqlite3":
		query = `
			SELECT segment, data_key, description
			FROM segment_mappings
			WHERE transaction_type = ?
			ORDER BY segment ASC
		`
	default:
		return nil, fmt.Errorf("unsupported database engine: %s", s.config.DBEngine)
	}

	rows, err := s.db.Query(query, transactionType)
	if err != nil {
		return nil, fmt.Errorf("failed to query segment mappings: %w", err)
	}
	defer rows.Close()

	mappings := []SegmentMapping{}
	for rows.Next() {
		var m SegmentMapping
		if err := rows.Scan(&m.Segment, &m.Key, &m.Description); err != nil {
			continue
		}
		mappings = append(mappings, m)
	}

	return mappings, nil
}

// SearchSegmentMappings filters a transaction type's mappings by a
// case-insensitive substring match over segment, key, and description.
func (s *Service) SearchSegmentMappings(transactionType, query string) ([]SegmentMapping, error) {
	mappings, err := s.ListSegmentMappings(transactionType)
	if err != nil {
		return nil, err
	}

	queryLower := strings.ToLower(query)
	filtered := []SegmentMapping{}
	for _, m := range mappings {
		if strings.Contains(strings.ToLower(m.Segment), queryLower) ||
			strings.Contains(strings.ToLower(m.Key), queryLower) ||
			strings.Contains(strings.ToLower(m.Description), queryLower) {
			filtered = append(filtered, m)
		}
	}

	return filtered, nil
}

// findSegmentMapping looks up one mapping by segment reference
func (s *Service) findSegmentMapping(transactionType, segment string) (*SegmentMapping, error) {
	mappings, err := s.ListSegmentMappings(transactionType)
	if err != nil {
		return nil, err
	}
	for _, m := range mappings {
		if m.Segment == segment {
			return &m, nil
		}
	}
	return nil, fmt.Errorf("segment %s not mapped for transaction type %s", segment, transactionType)
}

// HTTP Handlers for segment mappings

func (s *Service) handleListSegmentMappings(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	transactionType := vars["type"]

	mappings, err := s.ListSegmentMappings(transactionType)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, SegmentMappingListResponse{
		TransactionType: transactionType,
		Count:           len(mappings),
		Results:         mappings,
	})
}

func (s *Service) handleSearchSegmentMappings(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	query := r.URL.Query().Get("q")
	if query == "" {
		respondError(w, http.StatusBadRequest, "Query parameter 'q' is required")
		return
	}

	mappings, err := s.SearchSegmentMappings(vars["type"], query)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, mappings)
}
