package main

import "fmt"

// builtinSegmentMappings is the stock X12 element-to-key reference data the
// service ships with. It covers the transaction sets the converter supports
// out of the box: 850 (purchase order), 810 (invoice), 856 (ship notice).
// Deployments layer tenant-specific mappings on top via the database.
var builtinSegmentMappings = map[string][]SegmentMapping{
	"850": {
		{Segment: "BEG03", Key: "po_number", Description: "Purchase Order Number"},
		{Segment: "BEG05", Key: "order_date", Description: "Order Date"},
		{Segment: "N102", Key: "vendor_name", Description: "Vendor Name"},
		{Segment: "N301", Key: "ship_to_address", Description: "Ship To Address"},
		{Segment: "DTM02", Key: "requested_delivery_date", Description: "Requested Delivery Date"},
		{Segment: "FOB01", Key: "shipping_terms", Description: "Shipping Terms"},
		{Segment: "PO102", Key: "quantity", Description: "Quantity Ordered"},
		{Segment: "PO104", Key: "unit_price", Description: "Unit Price"},
		{Segment: "PO107", Key: "item_number", Description: "Item Number"},
		{Segment: "PID05", Key: "description", Description: "Item Description"},
		{Segment: "CTT02", Key: "total_quantity", Description: "Total Quantity"},
		{Segment: "AMT02", Key: "total_amount", Description: "Total Amount"},
	},
	"810": {
		{Segment: "BIG01", Key: "invoice_date", Description: "Invoice Date"},
		{Segment: "BIG02", Key: "invoice_number", Description: "Invoice Number"},
		{Segment: "BIG04", Key: "po_number", Description: "Purchase Order Number"},
		{Segment: "N102", Key: "vendor_name", Description: "Vendor Name"},
		{Segment: "ITD07", Key: "due_date", Description: "Payment Due Date"},
		{Segment: "IT102", Key: "quantity", Description: "Quantity Invoiced"},
		{Segment: "IT104", Key: "unit_price", Description: "Unit Price"},
		{Segment: "IT107", Key: "item_number", Description: "Item Number"},
		{Segment: "PID05", Key: "description", Description: "Item Description"},
		{Segment: "TDS01", Key: "total_amount", Description: "Total Amount Due"},
	},
	"856": {
		{Segment: "BSN02", Key: "shipment_number", Description: "Shipment Number"},
		{Segment: "BSN03", Key: "ship_date", Description: "Ship Date"},
		{Segment: "TD505", Key: "carrier_name", Description: "Carrier Name"},
		{Segment: "REF02", Key: "tracking_number", Description: "Tracking Number"},
		{Segment: "PRF01", Key: "po_number", Description: "Purchase Order Number"},
		{Segment: "LIN03", Key: "item_number", Description: "Item Number"},
		{Segment: "SN102", Key: "quantity_shipped", Description: "Quantity Shipped"},
		{Segment: "SN103", Key: "shipment_status", Description: "Shipment Status"},
	},
}

// seedSegmentMappings loads the builtin mappings into an empty
// segment_mappings table. A populated table is left alone so operator edits
// survive restarts.
func (s *Service) seedSegmentMappings() error {
	var count int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM segment_mappings").Scan(&count); err != nil {
		return fmt.Errorf("failed to count segment mappings: %w", err)
	}
	if count > 0 {
		return nil
	}

	var insertQuery string
	switch s.config.DBEngine {
	case "postgresql", "postgres":
		insertQuery = `
			INSERT INTO segment_mappings (transaction_type, segment, data_key, description)
			VALUES ($1, $2, $3, $4)
		`
	case "mysql", "mariadb", "sqlite", "sqlite3":
		insertQuery = `
			INSERT INTO segment_mappings (transaction_type, segment, data_key, description)
			VALUES (?, ?, ?, ?)
		`
	default:
		return fmt.Errorf("unsupported database engine: %s", s.config.DBEngine)
	}

	seeded := 0
	for transactionType, mappings := range builtinSegmentMappings {
		for _, m := range mappings {
			if _, err := s.db.Exec(insertQuery, transactionType, m.Segment, m.Key, m.Description); err != nil {
				return fmt.Errorf("failed to seed segment mapping %s/%s: %w", transactionType, m.Segment, err)
			}
			seeded++
		}
	}

	s.log.WithField("component", "database").Infof("seeded %d builtin segment mappings", seeded)
	return nil
}
