package main

// sampleDataByType holds the per-transaction-type sample records the live
// preview renders against before any real document has been converted. The
// shapes match what a JSON-decoded converted document looks like, nested row
// arrays included, so the preview and the real render path exercise the same
// code.
var sampleDataByType = map[string]map[string]interface{}{
	"850": {
		"po_number":               "PO-2024-00118",
		"order_date":              "2024-03-14",
		"vendor_name":             "Acme Industrial Supply",
		"ship_to_address":         "1400 Commerce Blvd, Dayton OH 45402",
		"requested_delivery_date": "2024-03-28",
		"shipping_terms":          "FOB Origin",
		"total_quantity":          62.0,
		"total_amount":            "4,812.50",
		"line_items": []interface{}{
			map[string]interface{}{
				"item_number": "ACM-5501",
				"description": "Hex bolt, 3/8 in, zinc plated",
				"quantity":    50.0,
				"unit_price":  "12.25",
			},
			map[string]interface{}{
				"item_number": "ACM-7740",
				"description": "Bearing assembly, sealed",
				"quantity":    12.0,
				"unit_price":  "350.00",
			},
		},
	},
	"810": {
		"invoice_number": "INV-88213",
		"invoice_date":   "2024-04-02",
		"po_number":      "PO-2024-00118",
		"vendor_name":    "Acme Industrial Supply",
		"due_date":       "2024-05-02",
		"total_amount":   "4,812.50",
		"line_items": []interface{}{
			map[string]interface{}{
				"item_number": "ACM-5501",
				"description": "Hex bolt, 3/8 in, zinc plated",
				"quantity":    50.0,
				"unit_price":  "12.25",
			},
			map[string]interface{}{
				"item_number": "ACM-7740",
				"description": "Bearing assembly, sealed",
				"quantity":    12.0,
				"unit_price":  "350.00",
			},
		},
	},
	"856": {
		"shipment_number": "SHP-44091",
		"ship_date":       "2024-03-26",
		"carrier_name":    "Mercury Freight Lines",
		"tracking_number": "MFL991272834",
		"po_number":       "PO-2024-00118",
		"line_items": []interface{}{
			map[string]interface{}{
				"item_number":      "ACM-5501",
				"quantity_shipped": 50.0,
				"shipment_status":  "In Transit",
			},
			map[string]interface{}{
				"item_number":      "ACM-7740",
				"quantity_shipped": 12.0,
				"shipment_status":  "In Transit",
			},
		},
	},
}

// documentNameForType maps a transaction type to its display name
func documentNameForType(transactionType string) string {
	switch transactionType {
	case "850":
		return "Purchase Order"
	case "810":
		return "Invoice"
	case "856":
		return "Advance Ship Notice"
	case "997":
		return "Functional Acknowledgment"
	default:
		return "EDI " + transactionType
	}
}

// sampleDataForType returns the sample record for a transaction type, or an
// empty record when none is registered.
func sampleDataForType(transactionType string) map[string]interface{} {
	if data, ok := sampleDataByType[transactionType]; ok {
		return data
	}
	return map[string]interface{}{}
}
