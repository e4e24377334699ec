package mockapi

import "tabbytools/internal/books"

// sampleInvoices returns upstream-shaped records covering the field-name
// variants the normalizer resolves: snake_case accounting exports, camelCase
// API payloads, nested customer objects and bare customer strings.
func sampleInvoices() []books.Record {
	return []books.Record{
		{
			"invoice_id":     "INV-2024-0001",
			"invoice_number": "INV-2024-0001",
			"status":         "Paid",
			"date":           "2024-06-01",
			"due_date":       "2024-07-01",
			"customer_name":  "Mzansi Fibre (Pty) Ltd",
			"email":          "accounts@mzansifibre.co.za",
			"currency_code":  "ZAR",
			"sub_total":      1250.00,
			"tax_total":      187.50,
			"total":          1437.50,
			"amount_paid":    1437.50,
			"client_id":      "CL-1001",
			"debit_order_id": "DO-2024-0458",
			"line_items": []any{
				map[string]any{
					"name":     "Monthly debit order collections",
					"quantity": 1.0,
					"rate":     1250.00,
					"amount":   1250.00,
					"item_id":  "SVC-COLLECT",
				},
			},
		},
		{
			"invoiceId":   "INV-2024-0002",
			"invoiceNo":   "INV-2024-0002",
			"status":      "Sent",
			"issuedDate":  "2024-06-05",
			"dueDate":     "2024-07-05",
			"customer":    map[string]any{"name": "Karoo Wellness Spa", "email": "billing@karoowellness.co.za"},
			"currency":    "ZAR",
			"subtotalZar": 860.00,
			"vatZar":      129.00,
			"totalZar":    989.00,
			"paymentMade": 500.00,
			"balanceDue":  489.00,
			"clientId":    "CL-1002",
			"items": []any{
				map[string]any{
					"description": "Debit order batch fee - June",
					"qty":         1.0,
					"unitPrice":   650.00,
					"amountZar":   650.00,
					"itemId":      "FEE-BATCH",
				},
				map[string]any{
					"description": "Failed collection re-submissions",
					"qty":         3.0,
					"unitPrice":   70.00,
					"amountZar":   210.00,
					"itemId":      "FEE-RESUB",
				},
			},
		},
		{
			"id":                 "INV-2024-0003",
			"number":             "INV-2024-0003",
			"invoice_status":     "Overdue",
			"invoice_date":       "2024-05-12",
			"due_date":           "2024-06-12",
			"contact_name":       "Ubuntu Gym Group",
			"contact_email":      "finance@ubuntugym.co.za",
			"amount":             3200.00,
			"transaction_amount": 1200.00,
			"reference_number":   "DO-2024-0112",
		},
		{
			"invoice_id": "INV-2024-0004",
			"number":     "INV-2024-0004",
			"status":     "Draft",
			"date":       "2024-06-20",
			"customer":   "Shosholoza Transport CC",
			"total":      15600.00,
			"sub_total":  13565.22,
			"tax_total":  2034.78,
			"client_id":  "CL-1004",
			"line_items": []any{
				map[string]any{
					"item_name": "Annual mandate management",
					"quantity":  12.0,
					"rate":      1300.00,
					"total":     15600.00,
					"code":      "SVC-MANDATE",
				},
			},
		},
		{
			// Deliberately sparse: exercises every default.
			"clientName": "Protea Print Works",
		},
	}
}
