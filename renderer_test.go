package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderFieldsSectionScenario(t *testing.T) {
	cfg := LayoutConfig{
		Sections: []Section{{
			ID:      "vendor",
			Title:   "Vendor",
			Type:    SectionTypeFields,
			Visible: true,
			Fields: []Field{
				{Key: "vendor_name", Label: "Vendor", Type: DisplayTypeText, Visible: true},
			},
		}},
	}
	data := map[string]interface{}{"vendor_name": "Acme Corp"}

	out := RenderHTML(cfg, data, "Invoice")
	assert.Contains(t, out, "<h1>Invoice</h1>")
	assert.Contains(t, out, ">Vendor</dt>")
	assert.Contains(t, out, "Acme Corp")

	// Hiding the field removes its row; the section shell remains
	hidden := cfg.ToggleFieldVisible("vendor", 0)
	hiddenOut := RenderHTML(hidden, data, "Invoice")
	assert.Contains(t, hiddenOut, ">Vendor</h2>")
	assert.NotContains(t, hiddenOut, "Acme Corp")
	assert.NotContains(t, hiddenOut, "<dt")

	// Restoring visibility restores identical output
	restored := hidden.ToggleFieldVisible("vendor", 0)
	assert.Equal(t, out, RenderHTML(restored, data, "Invoice"))
}

func TestRenderMissingValuePlaceholder(t *testing.T) {
	cfg := LayoutConfig{
		Sections: []Section{{
			ID:      "header",
			Title:   "Header",
			Type:    SectionTypeFields,
			Visible: true,
			Fields: []Field{
				{Key: "po_number", Label: "PO Number", Type: DisplayTypeText, Visible: true},
			},
		}},
	}

	out := RenderHTML(cfg, map[string]interface{}{}, "Invoice")
	assert.Contains(t, out, valuePlaceholder)
	assert.NotContains(t, out, "undefined")

	// Nil value and empty-string key behave the same way
	out = RenderHTML(cfg, map[string]interface{}{"po_number": nil}, "Invoice")
	assert.Contains(t, out, valuePlaceholder)

	cfg.Sections[0].Fields[0].Key = ""
	out = RenderHTML(cfg, map[string]interface{}{"po_number": "PO-1"}, "Invoice")
	assert.Contains(t, out, valuePlaceholder)
}

func TestRenderHiddenSectionSkipped(t *testing.T) {
	cfg := testConfig()
	data := sampleDataForType("850")

	visible := RenderHTML(cfg, data, "Purchase Order")
	assert.Contains(t, visible, `id="items"`)

	hidden := cfg.ToggleSectionVisible("items")
	out := RenderHTML(hidden, data, "Purchase Order")
	assert.NotContains(t, out, `id="items"`)
	assert.NotContains(t, out, "<table")

	restored := hidden.ToggleSectionVisible("items")
	assert.Equal(t, visible, RenderHTML(restored, data, "Purchase Order"))
}

func TestRenderTableSection(t *testing.T) {
	cfg := testConfig()
	data := map[string]interface{}{
		"line_items": []interface{}{
			map[string]interface{}{"description": "Hex bolt", "quantity": 50.0},
			map[string]interface{}{"description": "Bearing"},
		},
	}

	out := RenderHTML(cfg, data, "Purchase Order")
	assert.Contains(t, out, "<th>Description</th><th>Qty</th>")
	assert.Contains(t, out, "<td>Hex bolt</td><td>50</td>")
	// Missing cell renders the placeholder
	assert.Contains(t, out, "<td>Bearing</td><td>"+valuePlaceholder+"</td>")
}

func TestRenderTableNonArrayDataSource(t *testing.T) {
	cfg := testConfig()
	data := map[string]interface{}{"line_items": "not-an-array"}

	out := RenderHTML(cfg, data, "Purchase Order")
	// Header row present, zero body rows
	assert.Contains(t, out, "<th>Description</th>")
	assert.NotContains(t, out, "<td>")

	// Missing key entirely behaves the same
	out = RenderHTML(cfg, map[string]interface{}{}, "Purchase Order")
	assert.Contains(t, out, "<th>Description</th>")
	assert.NotContains(t, out, "<td>")
}

func TestRenderHiddenColumnContributesNothing(t *testing.T) {
	cfg := testConfig()
	cfg = cfg.ToggleColumnVisible("items", 1)
	data := map[string]interface{}{
		"line_items": []interface{}{
			map[string]interface{}{"description": "Hex bolt", "quantity": 50.0},
		},
	}

	out := RenderHTML(cfg, data, "Purchase Order")
	assert.Contains(t, out, "<th>Description</th>")
	assert.NotContains(t, out, "<th>Qty</th>")
	assert.NotContains(t, out, "50")
}

func TestRenderFormatting(t *testing.T) {
	cfg := LayoutConfig{
		Sections: []Section{{
			ID:      "totals",
			Title:   "Totals",
			Type:    SectionTypeFields,
			Visible: true,
			Fields: []Field{
				{Key: "total_amount", Label: "Total", Type: DisplayTypeCurrency, Visible: true},
				{Key: "order_date", Label: "Date", Type: DisplayTypeDate, Visible: true},
				{Key: "note_date", Label: "Note Date", Type: DisplayTypeDate, Visible: true},
				{Key: "quantity", Label: "Qty", Type: DisplayTypeNumber, Visible: true},
			},
		}},
	}
	data := map[string]interface{}{
		"total_amount": "4,812.50",
		"order_date":   "2024-03-14",
		"note_date":    "sometime soon", // unparseable, passes through raw
		"quantity":     62.0,
	}

	out := RenderHTML(cfg, data, "Invoice")
	// Currency trusts the stored string and only prefixes the symbol
	assert.Contains(t, out, "$4,812.50")
	assert.Contains(t, out, "14 Mar 2024")
	assert.Contains(t, out, "sometime soon")
	assert.Contains(t, out, ">62<")
}

func TestRenderBoldStyle(t *testing.T) {
	bold := StyleBold
	cfg := LayoutConfig{
		Sections: []Section{{
			ID:      "header",
			Title:   "Header",
			Type:    SectionTypeFields,
			Visible: true,
			Fields: []Field{
				{Key: "po_number", Label: "PO", Type: DisplayTypeText, Style: &bold, Visible: true},
				{Key: "vendor_name", Label: "Vendor", Type: DisplayTypeText, Visible: true},
			},
		}},
	}
	data := map[string]interface{}{"po_number": "PO-1", "vendor_name": "Acme"}

	out := RenderHTML(cfg, data, "PO")
	assert.Contains(t, out, `class="edi-field-value bold">PO-1`)
	assert.Contains(t, out, `class="edi-field-value">Acme`)
}

func TestDocumentReferenceProbing(t *testing.T) {
	assert.Equal(t, "CN-9", documentReference(map[string]interface{}{
		"credit_note_number": "CN-9",
		"po_number":          "PO-1",
	}))
	assert.Equal(t, "DN-4", documentReference(map[string]interface{}{
		"debit_note_number": "DN-4",
		"po_number":         "PO-1",
	}))
	assert.Equal(t, "PO-1", documentReference(map[string]interface{}{"po_number": "PO-1"}))
	// Empty values do not win the probe
	assert.Equal(t, "PO-1", documentReference(map[string]interface{}{
		"credit_note_number": "",
		"po_number":          "PO-1",
	}))
	assert.Equal(t, "N/A", documentReference(map[string]interface{}{}))
}

func TestRenderIsDeterministicAndPure(t *testing.T) {
	cfg := testConfig()
	data := sampleDataForType("850")

	snapshot := RenderHTML(cfg, data, "Purchase Order")
	for i := 0; i < 3; i++ {
		assert.Equal(t, snapshot, RenderHTML(cfg, data, "Purchase Order"))
	}

	// Inputs are never mutated
	require.Equal(t, testConfig(), cfg)
	assert.Equal(t, "Acme Industrial Supply", data["vendor_name"])
	rows := data["line_items"].([]interface{})
	assert.Len(t, rows, 2)
}

func TestRenderEscapesValues(t *testing.T) {
	cfg := LayoutConfig{
		Sections: []Section{{
			ID:      "header",
			Title:   "Header <script>",
			Type:    SectionTypeFields,
			Visible: true,
			Fields: []Field{
				{Key: "vendor_name", Label: "Vendor", Type: DisplayTypeText, Visible: true},
			},
		}},
	}
	data := map[string]interface{}{"vendor_name": `<img src=x onerror=alert(1)>`}

	out := RenderHTML(cfg, data, "Invoice & Co")
	assert.NotContains(t, out, "<img")
	assert.NotContains(t, out, "Header <script>")
	assert.Contains(t, out, "Invoice &amp; Co")
	assert.True(t, strings.Contains(out, "&lt;img"))
}
