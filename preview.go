package main

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
)

// HTTP Handlers for document previews. GET renders against the builtin
// sample record for the transaction type; POST renders against a
// caller-supplied data record (the converter calls this with real document
// data). The renderer itself cannot tell the two apart.

func (s *Service) handleGetPreview(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	transactionType := vars["type"]
	tenantID := getTenantIDFromRequest(r)

	layout, err := s.GetLayout(transactionType, tenantID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	markup := RenderHTML(layout.Config, sampleDataForType(transactionType), documentNameForType(transactionType))
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(markup))
}

func (s *Service) handlePostPreview(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	transactionType := vars["type"]
	tenantID := getTenantIDFromRequest(r)

	var data map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	layout, err := s.GetLayout(transactionType, tenantID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	markup := RenderHTML(layout.Config, data, documentNameForType(transactionType))
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(markup))
}

func (s *Service) handleGetPreviewExcel(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	transactionType := vars["type"]
	tenantID := getTenantIDFromRequest(r)

	layout, err := s.GetLayout(transactionType, tenantID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	f, err := RenderExcel(layout.Config, sampleDataForType(transactionType), documentNameForType(transactionType))
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s-preview.xlsx", transactionType))
	if err := f.Write(w); err != nil {
		s.log.WithField("component", "preview").Errorf("failed to write xlsx response: %v", err)
	}
}
