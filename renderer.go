package main

import (
	"fmt"
	"html"
	"strings"
	"time"
)

// valuePlaceholder is rendered wherever a field or cell has no value
const valuePlaceholder = "&mdash;"

// referenceKeys are probed in order for the document reference shown in the
// header; the first present, non-empty value wins.
var referenceKeys = []string{"credit_note_number", "debit_note_number", "po_number"}

// dateLayouts are tried in order when formatting a date-typed value
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"01/02/2006",
	"20060102",
}

// RenderHTML renders a document preview from a layout configuration and a
// flat data record. It is a pure function: identical inputs produce
// byte-identical markup, neither argument is mutated, and nothing inside can
// fail. The same routine backs the live editor preview and final HTML
// generation; it does not know whether the data is sample or real.
func RenderHTML(config LayoutConfig, data map[string]interface{}, documentName string) string {
	var b strings.Builder

	b.WriteString(`<div class="edi-document">` + "\n")
	b.WriteString(`<header class="edi-document-header">` + "\n")
	fmt.Fprintf(&b, "<h1>%s</h1>\n", html.EscapeString(documentName))
	fmt.Fprintf(&b, `<p class="edi-document-reference">Ref: %s</p>`+"\n", html.EscapeString(documentReference(data)))
	b.WriteString("</header>\n")

	for _, section := range config.Sections {
		if !section.Visible {
			continue
		}
		switch section.Type {
		case SectionTypeTable:
			renderTableSection(&b, section, data)
		default:
			renderFieldsSection(&b, section, data)
		}
	}

	b.WriteString("</div>\n")
	return b.String()
}

// documentReference picks the header reference number from the data record
func documentReference(data map[string]interface{}) string {
	for _, key := range referenceKeys {
		if v, ok := data[key]; ok && v != nil {
			if s := stringify(v); s != "" {
				return s
			}
		}
	}
	return "N/A"
}

func renderFieldsSection(b *strings.Builder, section Section, data map[string]interface{}) {
	fmt.Fprintf(b, `<section class="edi-section" id="%s">`+"\n", html.EscapeString(section.ID))
	fmt.Fprintf(b, "<h2>%s</h2>\n", html.EscapeString(section.Title))
	b.WriteString(`<dl class="edi-fields">` + "\n")
	for _, field := range section.Fields {
		if !field.Visible {
			continue
		}
		value := renderValue(field.Type, field.Key, data)
		class := "edi-field-value"
		if field.Style != nil && *field.Style == StyleBold {
			class += " bold"
		}
		fmt.Fprintf(b, `<dt class="edi-field-label">%s</dt><dd class="%s">%s</dd>`+"\n",
			html.EscapeString(field.Label), class, value)
	}
	b.WriteString("</dl>\n</section>\n")
}

func renderTableSection(b *strings.Builder, section Section, data map[string]interface{}) {
	fmt.Fprintf(b, `<section class="edi-section" id="%s">`+"\n", html.EscapeString(section.ID))
	fmt.Fprintf(b, "<h2>%s</h2>\n", html.EscapeString(section.Title))
	b.WriteString(`<table class="edi-table">` + "\n<thead>\n<tr>")
	for _, col := range section.Columns {
		if !col.Visible {
			continue
		}
		fmt.Fprintf(b, "<th>%s</th>", html.EscapeString(col.Label))
	}
	b.WriteString("</tr>\n</thead>\n<tbody>\n")

	for _, row := range tableRows(section, data) {
		b.WriteString("<tr>")
		for _, col := range section.Columns {
			if !col.Visible {
				continue
			}
			fmt.Fprintf(b, "<td>%s</td>", renderValue(col.Type, col.Key, row))
		}
		b.WriteString("</tr>\n")
	}
	b.WriteString("</tbody>\n</table>\n</section>\n")
}

// tableRows resolves a table section's row records from the data record.
// A missing key, a non-array value, or non-record rows all degrade to zero
// usable rows rather than an error.
func tableRows(section Section, data map[string]interface{}) []map[string]interface{} {
	key := section.DataSourceKey
	if key == "" {
		key = DefaultDataSourceKey
	}

	var rows []map[string]interface{}
	switch v := data[key].(type) {
	case []interface{}:
		for _, item := range v {
			if row, ok := item.(map[string]interface{}); ok {
				rows = append(rows, row)
			} else {
				rows = append(rows, nil)
			}
		}
	case []map[string]interface{}:
		rows = v
	}
	return rows
}

// renderValue looks the key up in the record and formats it per the display
// type, already HTML-escaped. Missing or nil values render the placeholder.
func renderValue(displayType, key string, record map[string]interface{}) string {
	v, ok := record[key]
	if !ok || v == nil {
		return valuePlaceholder
	}
	return html.EscapeString(formatValue(displayType, v))
}

// formatValue applies per-type display formatting to a raw value.
// Currency values are trusted as already formatted: the symbol is prefixed
// without any numeric re-parsing or rounding. Date values are reformatted to
// a short day/month-name/year form when parseable and passed through raw
// otherwise. Everything else is the raw string form.
func formatValue(displayType string, v interface{}) string {
	raw := stringify(v)
	switch displayType {
	case DisplayTypeCurrency:
		return "$" + raw
	case DisplayTypeDate:
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, raw); err == nil {
				return t.Format("02 Jan 2006")
			}
		}
		return raw
	default:
		return raw
	}
}

// stringify renders a raw record value as a string. JSON-decoded numbers
// arrive as float64; integral ones print without a trailing ".0" so that a
// quantity of 5 renders as "5".
func stringify(v interface{}) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		if t == float64(int64(t)) {
			return fmt.Sprintf("%d", int64(t))
		}
		return fmt.Sprintf("%v", t)
	default:
		return fmt.Sprintf("%v", t)
	}
}
