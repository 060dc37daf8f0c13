package main

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

// ErrLayoutNotFound is returned when no live layout row matches
var ErrLayoutNotFound = errors.New("layout not found")

// GetLayout retrieves the layout for a transaction type and tenant. A tenant
// that has never customized the transaction type gets a default layout,
// created and persisted on first load.
func (s *Service) GetLayout(transactionType, tenantID string) (*Layout, error) {
	layout, err := s.findLayout(transactionType, tenantID)
	if err == nil {
		return layout, nil
	}
	if !errors.Is(err, ErrLayoutNotFound) {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"component":        "layouts",
		"transaction_type": transactionType,
		"tenant_id":        tenantID,
	}).Info("creating default layout")

	return s.SaveLayout(transactionType, tenantID, defaultLayoutConfig(transactionType))
}

// findLayout fetches the live layout row without creating anything
func (s *Service) findLayout(transactionType, tenantID string) (*Layout, error) {
	var query string

	switch s.config.DBEngine {
	case "postgresql", "postgres":
		query = `
			SELECT id, transaction_type, tenant_id, config, created, modified
			FROM layouts
			WHERE transaction_type = $1 AND tenant_id = $2 AND deleted_at IS NULL
		`
	case "mysql", "mariadb", "sqlite", "sqlite3":
		query = `
			SELECT id, transaction_type, tenant_id, config, created, modified
			FROM layouts
			WHERE transaction_type = ? AND tenant_id = ? AND deleted_at IS NULL
		`
	default:
		return nil, fmt.Errorf("unsupported database engine: %s", s.config.DBEngine)
	}

	row := s.db.QueryRow(query, transactionType, tenantID)
	layout, err := scanLayout(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrLayoutNotFound
		}
		return nil, err
	}
	return &layout, nil
}

// SaveLayout replaces the stored configuration wholesale. There is no delta
// or merge step: the save is last-writer-wins over the whole document.
func (s *Service) SaveLayout(transactionType, tenantID string, config LayoutConfig) (*Layout, error) {
	configJSON, err := json.Marshal(config)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal layout config: %w", err)
	}

	var updateQuery string
	switch s.config.DBEngine {
	case "postgresql", "postgres":
		updateQuery = `
			UPDATE layouts SET config = $1::jsonb, modified = CURRENT_TIMESTAMP
			WHERE transaction_type = $2 AND tenant_id = $3 AND deleted_at IS NULL
		`
	case "mysql", "mariadb", "sqlite", "sqlite3":
		updateQuery = `
			UPDATE layouts SET config = ?, modified = CURRENT_TIMESTAMP
			WHERE transaction_type = ? AND tenant_id = ? AND deleted_at IS NULL
		`
	default:
		return nil, fmt.Errorf("unsupported database engine: %s", s.config.DBEngine)
	}

	result, err := s.db.Exec(updateQuery, string(configJSON), transactionType, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to save layout: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to save layout: %w", err)
	}

	if affected == 0 {
		var insertQuery string
		switch s.config.DBEngine {
		case "postgresql", "postgres":
			insertQuery = `
				INSERT INTO layouts (transaction_type, tenant_id, config)
				VALUES ($1, $2, $3::jsonb)
			`
		case "mysql", "mariadb", "sqlite", "sqlite3":
			insertQuery = `
				INSERT INTO layouts (transaction_type, tenant_id, config)
				VALUES (?, ?, ?)
			`
		}
		if _, err := s.db.Exec(insertQuery, transactionType, tenantID, string(configJSON)); err != nil {
			return nil, fmt.Errorf("failed to create layout: %w", err)
		}
	}

	return s.findLayout(transactionType, tenantID)
}

// ListLayouts retrieves all live layouts for a tenant
func (s *Service) ListLayouts(tenantID string) ([]Layout, error) {
	var query string

	switch s.config.DBEngine {
	case "postgresql", "postgres":
		query = `
			SELECT id, transaction_type, tenant_id, config, created, modified
			FROM layouts
			WHERE tenant_id = $1 AND deleted_at IS NULL
			ORDER BY transaction_type ASC
		`
	case "mysql", "mariadb", "sqlite", "sqlite3":
		query = `
			SELECT id, transaction_type, tenant_id, config, created, modified
			FROM layouts
			WHERE tenant_id = ? AND deleted_at IS NULL
			ORDER BY transaction_type ASC
		`
	default:
		return nil, fmt.Errorf("unsupported database engine: %s", s.config.DBEngine)
	}

	rows, err := s.db.Query(query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to query layouts: %w", err)
	}
	defer rows.Close()

	layouts := []Layout{}
	for rows.Next() {
		layout, err := scanLayout(rows)
		if err != nil {
			continue
		}
		layouts = append(layouts, layout)
	}

	return layouts, nil
}

// DeleteLayout soft-deletes a tenant's layout; the next load recreates the default
func (s *Service) DeleteLayout(transactionType, tenantID string) error {
	var deleteQuery string

	switch s.config.DBEngine {
	case "postgresql", "postgres":
		deleteQuery = `
			UPDATE layouts SET deleted_at = CURRENT_TIMESTAMP
			WHERE transaction_type = $1 AND tenant_id = $2 AND deleted_at IS NULL
		`
	case "mysql", "mariadb", "sqlite", "sqlite3":
		deleteQuery = `
			UPDATE layouts SET deleted_at = CURRENT_TIMESTAMP
			WHERE transaction_type = ? AND tenant_id = ? AND deleted_at IS NULL
		`
	default:
		return fmt.Errorf("unsupported database engine: %s", s.config.DBEngine)
	}

	result, err := s.db.Exec(deleteQuery, transactionType, tenantID)
	if err != nil {
		return fmt.Errorf("failed to delete layout: %w", err)
	}

	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return ErrLayoutNotFound
	}
	return nil
}

// rowScanner covers *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanLayout scans a Layout from a database row or rows
func scanLayout(scanner rowScanner) (Layout, error) {
	var layout Layout
	var id sql.NullInt64
	var configJSON string
	var created, modified sql.NullString

	if err := scanner.Scan(&id, &layout.TransactionType, &layout.TenantID, &configJSON, &created, &modified); err != nil {
		return layout, err
	}

	if id.Valid {
		idInt := int(id.Int64)
		layout.ID = &idInt
	}
	if created.Valid {
		layout.Created = &created.String
	}
	if modified.Valid {
		layout.Modified = &modified.String
	}

	if err := json.Unmarshal([]byte(configJSON), &layout.Config); err != nil {
		return layout, fmt.Errorf("failed to unmarshal layout config: %w", err)
	}

	return layout, nil
}

// HTTP Handlers for layouts

func (s *Service) handleListLayouts(w http.ResponseWriter, r *http.Request) {
	tenantID := getTenantIDFromRequest(r)

	layouts, err := s.ListLayouts(tenantID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, LayoutListResponse{
		Count:   len(layouts),
		Results: layouts,
	})
}

func (s *Service) handleGetLayout(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	tenantID := getTenantIDFromRequest(r)

	layout, err := s.GetLayout(vars["type"], tenantID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, layout)
}

func (s *Service) handleSaveLayout(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	tenantID := getTenantIDFromRequest(r)

	var config LayoutConfig
	if err := json.NewDecoder(r.Body).Decode(&config); err != nil {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	layout, err := s.SaveLayout(vars["type"], tenantID, config)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, layout)
}

func (s *Service) handleDeleteLayout(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	tenantID := getTenantIDFromRequest(r)

	if err := s.DeleteLayout(vars["type"], tenantID); err != nil {
		if errors.Is(err, ErrLayoutNotFound) {
			respondError(w, http.StatusNotFound, err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
