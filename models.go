package main

// Section types
const (
	SectionTypeFields = "fields"
	SectionTypeTable  = "table"
)

// Display types for fields and columns
const (
	DisplayTypeText     = "text"
	DisplayTypeCurrency = "currency"
	DisplayTypeDate     = "date"
	DisplayTypeNumber   = "number"
	DisplayTypeStatus   = "status"
)

// StyleBold is the only recognized field style tag
const StyleBold = "bold"

// DefaultDataSourceKey is the row-array key a table section falls back to
const DefaultDataSourceKey = "line_items"

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// LayoutConfig is the per-transaction-type document layout configuration.
// Section order is display order and must survive persistence unchanged.
type LayoutConfig struct {
	TitleFormat string    `json:"title_format"`
	ThemeColor  string    `json:"theme_color"`
	Sections    []Section `json:"sections"`
}

// Section is a titled, orderable block within a layout: either a key-value
// block (fields) or a row-table block (table). Type is fixed at creation;
// the renderer only consults the list matching Type.
type Section struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Type          string   `json:"type"`
	Visible       bool     `json:"visible"`
	Fields        []Field  `json:"fields"`
	Columns       []Column `json:"columns"`
	DataSourceKey string   `json:"data_source_key,omitempty"`
}

// Field is a key-value display row. Style and FormatString are nullable and
// must round-trip as null, so they stay pointers without omitempty.
type Field struct {
	Key          string  `json:"key"`
	Label        string  `json:"label"`
	Type         string  `json:"type"`
	Style        *string `json:"style"`
	Visible      bool    `json:"visible"`
	FormatString *string `json:"format_string"`
}

// Column describes how every row's value under Key is rendered in a table
// section, both the header cell and the body cells.
type Column struct {
	Key     string `json:"key"`
	Label   string `json:"label"`
	Type    string `json:"type"`
	Visible bool   `json:"visible"`
}

// SegmentMapping ties a raw EDI segment element reference to the data-record
// key it populates. Read-only reference data, supplied per transaction type.
type SegmentMapping struct {
	Segment     string `json:"segment"`
	Key         string `json:"key"`
	Description string `json:"description"`
}

// SegmentMappingListResponse represents a list of segment mappings
type SegmentMappingListResponse struct {
	TransactionType string           `json:"transaction_type"`
	Count           int              `json:"count"`
	Results         []SegmentMapping `json:"results"`
}

// Layout wraps a stored LayoutConfig with its persistence metadata
type Layout struct {
	ID              *int         `json:"id,omitempty"`
	TransactionType string       `json:"transaction_type"`
	TenantID        string       `json:"tenant_id"`
	Config          LayoutConfig `json:"config"`
	Created         *string      `json:"created,omitempty"`
	Modified        *string      `json:"modified,omitempty"`
	DeletedAt       *string      `json:"deleted_at,omitempty"`
}

// LayoutListResponse represents a list of layouts for a tenant
type LayoutListResponse struct {
	Count   int      `json:"count"`
	Results []Layout `json:"results"`
}

// defaultLayoutConfig is the layout a transaction type starts with before a
// tenant has customized anything.
func defaultLayoutConfig(transactionType string) LayoutConfig {
	return LayoutConfig{
		TitleFormat: documentNameForType(transactionType),
		ThemeColor:  "#1e40af",
		Sections: []Section{
			{
				ID:      "document_details",
				Title:   "Document Details",
				Type:    SectionTypeFields,
				Visible: true,
				Fields: []Field{
					{Key: "po_number", Label: "PO Number", Type: DisplayTypeText, Visible: true},
					{Key: "order_date", Label: "Order Date", Type: DisplayTypeDate, Visible: true},
					{Key: "vendor_name", Label: "Vendor", Type: DisplayTypeText, Visible: true},
				},
				Columns: []Column{},
			},
			{
				ID:      "line_items",
				Title:   "Line Items",
				Type:    SectionTypeTable,
				Visible: true,
				Fields:  []Field{},
				Columns: []Column{
					{Key: "item_number", Label: "Item", Type: DisplayTypeText, Visible: true},
					{Key: "description", Label: "Description", Type: DisplayTypeText, Visible: true},
					{Key: "quantity", Label: "Qty", Type: DisplayTypeNumber, Visible: true},
					{Key: "unit_price", Label: "Unit Price", Type: DisplayTypeCurrency, Visible: true},
				},
				DataSourceKey: DefaultDataSourceKey,
			},
		},
	}
}
