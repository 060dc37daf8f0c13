package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

// HTTP surface for the editor operations. The SaaS frontend applies these
// optimistically in the browser; exposing the same pure operations here lets
// other clients drive a layout without reimplementing the algorithms. Each
// handler loads the current layout, applies one operation, persists the
// result wholesale, and returns the saved layout. Operations that miss their
// target (unknown section id, stale index) save the configuration unchanged
// and still return 200, matching the editor's silent no-op semantics.

type addSectionRequest struct {
	Title         string `json:"title"`
	Type          string `json:"type"`
	DataSourceKey string `json:"data_source_key,omitempty"`
}

type reorderSectionsRequest struct {
	FromID string `json:"from_id"`
	ToID   string `json:"to_id"`
}

type addFieldRequest struct {
	// Segment selects the add-from-segment path: the field is built from
	// the transaction type's mapping with an inferred display type.
	Segment string `json:"segment,omitempty"`
	Field   *Field `json:"field,omitempty"`
}

type addColumnRequest struct {
	Segment string  `json:"segment,omitempty"`
	Column  *Column `json:"column,omitempty"`
}

// mutateLayout runs one editor operation against the stored layout
func (s *Service) mutateLayout(w http.ResponseWriter, r *http.Request, operation string, apply func(LayoutConfig) LayoutConfig) {
	vars := mux.Vars(r)
	transactionType := vars["type"]
	tenantID := getTenantIDFromRequest(r)

	logger := s.log.WithFields(logrus.Fields{
		"component":        "editor",
		"operation":        operation,
		"transaction_type": transactionType,
		"tenant_id":        tenantID,
		"request_id":       newRequestID(),
	})

	layout, err := s.GetLayout(transactionType, tenantID)
	if err != nil {
		logger.Errorf("load failed: %v", err)
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	saved, err := s.SaveLayout(transactionType, tenantID, apply(layout.Config))
	if err != nil {
		logger.Errorf("save failed: %v", err)
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	logger.Info("layout updated")
	respondJSON(w, http.StatusOK, saved)
}

func (s *Service) handleAddSection(w http.ResponseWriter, r *http.Request) {
	var req addSectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request body: %v", err))
		return
	}
	if req.Title == "" {
		respondError(w, http.StatusBadRequest, "Title is required")
		return
	}
	if req.Type != SectionTypeFields && req.Type != SectionTypeTable {
		respondError(w, http.StatusBadRequest, "Type must be 'fields' or 'table'")
		return
	}

	s.mutateLayout(w, r, "add_section", func(cfg LayoutConfig) LayoutConfig {
		next, _ := cfg.AddSection(req.Title, req.Type, req.DataSourceKey)
		return next
	})
}

func (s *Service) handleReorderSections(w http.ResponseWriter, r *http.Request) {
	var req reorderSectionsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	s.mutateLayout(w, r, "reorder_sections", func(cfg LayoutConfig) LayoutConfig {
		return cfg.ReorderSections(req.FromID, req.ToID)
	})
}

func (s *Service) handleUpdateSection(w http.ResponseWriter, r *http.Request) {
	sectionID := mux.Vars(r)["sectionId"]

	var patch SectionPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	s.mutateLayout(w, r, "update_section", func(cfg LayoutConfig) LayoutConfig {
		return cfg.UpdateSection(sectionID, patch)
	})
}

func (s *Service) handleDeleteSection(w http.ResponseWriter, r *http.Request) {
	sectionID := mux.Vars(r)["sectionId"]

	s.mutateLayout(w, r, "delete_section", func(cfg LayoutConfig) LayoutConfig {
		return cfg.DeleteSection(sectionID)
	})
}

func (s *Service) handleAddField(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	sectionID := vars["sectionId"]

	var req addFieldRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	if req.Segment != "" {
		mapping, err := s.findSegmentMapping(vars["type"], req.Segment)
		if err != nil {
			respondError(w, http.StatusNotFound, err.Error())
			return
		}
		s.mutateLayout(w, r, "add_field_from_segment", func(cfg LayoutConfig) LayoutConfig {
			// The picker disables mappings whose key the section already
			// uses; a direct call gets the same quiet refusal.
			if sec := cfg.findSection(sectionID); sec != nil && sec.HasKey(mapping.Key) {
				return cfg.clone()
			}
			return cfg.AddFieldFromSegment(sectionID, *mapping)
		})
		return
	}

	if req.Field == nil {
		respondError(w, http.StatusBadRequest, "Either 'segment' or 'field' is required")
		return
	}
	field := *req.Field
	if field.Type == "" {
		// Manually created fields are not auto-classified
		field.Type = DisplayTypeText
	}

	s.mutateLayout(w, r, "add_field", func(cfg LayoutConfig) LayoutConfig {
		return cfg.AddField(sectionID, field)
	})
}

func (s *Service) handleAddColumn(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	sectionID := vars["sectionId"]

	var req addColumnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	if req.Segment != "" {
		mapping, err := s.findSegmentMapping(vars["type"], req.Segment)
		if err != nil {
			respondError(w, http.StatusNotFound, err.Error())
			return
		}
		s.mutateLayout(w, r, "add_column_from_segment", func(cfg LayoutConfig) LayoutConfig {
			if sec := cfg.findSection(sectionID); sec != nil && sec.HasKey(mapping.Key) {
				return cfg.clone()
			}
			return cfg.AddColumnFromSegment(sectionID, *mapping)
		})
		return
	}

	if req.Column == nil {
		respondError(w, http.StatusBadRequest, "Either 'segment' or 'column' is required")
		return
	}
	column := *req.Column
	if column.Type == "" {
		column.Type = DisplayTypeText
	}

	s.mutateLayout(w, r, "add_column", func(cfg LayoutConfig) LayoutConfig {
		return cfg.AddColumn(sectionID, column)
	})
}

func (s *Service) handleUpdateField(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	sectionID := vars["sectionId"]
	index, err := strconv.Atoi(vars["index"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid field index")
		return
	}

	var patch FieldPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	s.mutateLayout(w, r, "update_field", func(cfg LayoutConfig) LayoutConfig {
		return cfg.UpdateField(sectionID, index, patch)
	})
}

func (s *Service) handleUpdateColumn(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	sectionID := vars["sectionId"]
	index, err := strconv.Atoi(vars["index"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid column index")
		return
	}

	var patch FieldPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	s.mutateLayout(w, r, "update_column", func(cfg LayoutConfig) LayoutConfig {
		return cfg.UpdateColumn(sectionID, index, patch)
	})
}

func (s *Service) handleDeleteField(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	sectionID := vars["sectionId"]
	index, err := strconv.Atoi(vars["index"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid field index")
		return
	}

	s.mutateLayout(w, r, "delete_field", func(cfg LayoutConfig) LayoutConfig {
		return cfg.DeleteField(sectionID, index)
	})
}

func (s *Service) handleDeleteColumn(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	sectionID := vars["sectionId"]
	index, err := strconv.Atoi(vars["index"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid column index")
		return
	}

	s.mutateLayout(w, r, "delete_column", func(cfg LayoutConfig) LayoutConfig {
		return cfg.DeleteColumn(sectionID, index)
	})
}
