package main

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestService spins up a service against a throwaway SQLite database
func newTestService(t *testing.T) *Service {
	t.Helper()

	config := &Config{
		DBEngine: "sqlite",
		DBPath:   filepath.Join(t.TempDir(), "layouts.db"),
	}

	service, err := NewService(config, newLogger("error"))
	require.NoError(t, err)
	t.Cleanup(func() { service.db.Close() })

	return service
}

func TestLayoutConfigJSONRoundTrip(t *testing.T) {
	bold := StyleBold
	cfg := LayoutConfig{
		TitleFormat: "Invoice",
		ThemeColor:  "#0f766e",
		Sections: []Section{
			{
				ID:      "header",
				Title:   "Header",
				Type:    SectionTypeFields,
				Visible: true,
				Fields: []Field{
					{Key: "invoice_number", Label: "Invoice #", Type: DisplayTypeText, Style: &bold, Visible: true},
					{Key: "", Label: "Unbound", Type: DisplayTypeText, Visible: false},
				},
				Columns: []Column{},
			},
			{
				ID:            "items",
				Title:         "Items",
				Type:          SectionTypeTable,
				Visible:       false,
				Fields:        []Field{},
				Columns:       []Column{{Key: "quantity", Label: "Qty", Type: DisplayTypeNumber, Visible: true}},
				DataSourceKey: "line_items",
			},
			{
				ID:      "empty",
				Title:   "Empty",
				Type:    SectionTypeFields,
				Visible: true,
				Fields:  []Field{},
				Columns: []Column{},
			},
		},
	}

	raw, err := json.Marshal(cfg)
	require.NoError(t, err)

	// Null style stays null on the wire
	assert.Contains(t, string(raw), `"style":null`)

	var back LayoutConfig
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.Equal(t, cfg, back)
}

func TestLayoutConfigJSONRoundTripEmpty(t *testing.T) {
	cfg := LayoutConfig{Sections: []Section{}}

	raw, err := json.Marshal(cfg)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"sections":[]`)

	var back LayoutConfig
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.Equal(t, cfg, back)
}

func TestGetLayoutCreatesDefault(t *testing.T) {
	s := newTestService(t)

	layout, err := s.GetLayout("850", "acme")
	require.NoError(t, err)
	require.NotNil(t, layout.ID)
	assert.Equal(t, "850", layout.TransactionType)
	assert.Equal(t, "acme", layout.TenantID)
	assert.Equal(t, defaultLayoutConfig("850"), layout.Config)

	// A second load returns the same row, not another default
	again, err := s.GetLayout("850", "acme")
	require.NoError(t, err)
	assert.Equal(t, *layout.ID, *again.ID)
}

func TestSaveLayoutRoundTrip(t *testing.T) {
	s := newTestService(t)

	cfg := defaultLayoutConfig("810")
	cfg, _ = cfg.AddSection("Payment Terms", SectionTypeFields, "")
	cfg = cfg.AddFieldFromSegment("payment_terms", SegmentMapping{
		Segment: "ITD07", Key: "due_date", Description: "Payment Due Date",
	})
	cfg = cfg.ToggleFieldBold("payment_terms", 0)
	cfg = cfg.ReorderSections("payment_terms", "document_details")

	saved, err := s.SaveLayout("810", "acme", cfg)
	require.NoError(t, err)

	loaded, err := s.GetLayout("810", "acme")
	require.NoError(t, err)

	// Field-for-field, order-for-order equality after the round trip
	assert.Equal(t, cfg, loaded.Config)
	assert.Equal(t, saved.Config, loaded.Config)
	assert.Equal(t, "payment_terms", loaded.Config.Sections[0].ID)
}

func TestSaveLayoutIsWholesaleReplace(t *testing.T) {
	s := newTestService(t)

	first, err := s.GetLayout("850", "acme")
	require.NoError(t, err)

	replacement := LayoutConfig{TitleFormat: "Stripped", Sections: []Section{}}
	_, err = s.SaveLayout("850", "acme", replacement)
	require.NoError(t, err)

	loaded, err := s.GetLayout("850", "acme")
	require.NoError(t, err)
	assert.Equal(t, replacement, loaded.Config)
	assert.Equal(t, *first.ID, *loaded.ID, "save replaces the row content, not the row")
}

func TestLayoutsAreTenantScoped(t *testing.T) {
	s := newTestService(t)

	cfg := LayoutConfig{TitleFormat: "Acme Custom", Sections: []Section{}}
	_, err := s.SaveLayout("850", "acme", cfg)
	require.NoError(t, err)

	other, err := s.GetLayout("850", "globex")
	require.NoError(t, err)
	assert.Equal(t, defaultLayoutConfig("850"), other.Config)

	layouts, err := s.ListLayouts("acme")
	require.NoError(t, err)
	require.Len(t, layouts, 1)
	assert.Equal(t, "Acme Custom", layouts[0].Config.TitleFormat)
}

func TestDeleteLayout(t *testing.T) {
	s := newTestService(t)

	custom := LayoutConfig{TitleFormat: "Custom", Sections: []Section{}}
	_, err := s.SaveLayout("856", "acme", custom)
	require.NoError(t, err)

	require.NoError(t, s.DeleteLayout("856", "acme"))

	// Deleting again reports not found
	assert.ErrorIs(t, s.DeleteLayout("856", "acme"), ErrLayoutNotFound)

	// The next load recreates the default
	layout, err := s.GetLayout("856", "acme")
	require.NoError(t, err)
	assert.Equal(t, defaultLayoutConfig("856"), layout.Config)
}

func TestSegmentMappingsSeededAndSearchable(t *testing.T) {
	s := newTestService(t)

	mappings, err := s.ListSegmentMappings("850")
	require.NoError(t, err)
	assert.Len(t, mappings, len(builtinSegmentMappings["850"]))

	found, err := s.findSegmentMapping("850", "BEG03")
	require.NoError(t, err)
	assert.Equal(t, "po_number", found.Key)

	_, err = s.findSegmentMapping("850", "ZZZ99")
	assert.Error(t, err)

	results, err := s.SearchSegmentMappings("810", "invoice")
	require.NoError(t, err)
	require.NotEmpty(t, results)
	for _, m := range results {
		assert.Contains(t, m.Key+" "+m.Description, "nvoice")
	}

	none, err := s.ListSegmentMappings("999")
	require.NoError(t, err)
	assert.Empty(t, none)
}
