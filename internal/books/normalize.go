package books

// MapBooksInvoice converts an upstream invoice record into the fixed shape
// the UI consumes. It is total: any input, including nil, yields a fully
// populated Invoice, and it never panics.
//
// Candidate fields are evaluated in priority order and the first truthy one
// wins. For monetary fields this means a value of exactly 0 in a
// higher-priority field is skipped in favor of a later synonym. That quirk is
// load-bearing for existing integrations and must not be "fixed" here.
func MapBooksInvoice(rec Record) Invoice {
	if rec == nil {
		rec = Record{}
	}

	total := pickNumber(rec, 0,
		key("total"), key("totalZar"), key("amount"))
	paid := pickNumber(rec, 0,
		key("amount_paid"), key("payment_made"), key("paymentMade"), key("transaction_amount"))

	// Derived balance never goes negative; an explicit upstream balance
	// passes through as-is.
	derived := total - paid
	if derived < 0 {
		derived = 0
	}

	return Invoice{
		ID: pickString(rec, "",
			key("invoice_id"), key("invoiceId"), key("id"), key("invoice_number")),
		InvoiceNo: pickString(rec, "",
			key("invoice_number"), key("invoiceNo"), key("number"), key("invoice_no"), key("id")),
		BooksInvoiceID: pickString(rec, "",
			key("invoice_id"), key("invoiceId"), key("id")),
		Status: pickString(rec, "Unknown",
			key("status"), key("invoice_status")),
		IssuedDate: pickString(rec, "",
			key("date"), key("invoice_date"), key("issued_date"), key("issuedDate")),
		DueDate: pickString(rec, "",
			key("due_date"), key("dueDate")),
		Customer: pickString(rec, "Customer",
			key("customer_name"), path("customer", "name"), key("contact_name"),
			stringKey("customer"), key("clientName")),
		CustomerEmail: pickString(rec, "",
			key("email"), key("customer_email"), path("customer", "email"), key("contact_email")),
		Currency: pickString(rec, "ZAR",
			key("currency_code"), key("currency")),
		Items: mapLineItems(rec),
		Totals: Totals{
			SubtotalZar: pickNumber(rec, 0,
				key("sub_total"), key("subtotal"), key("subtotalZar")),
			VatZar: pickNumber(rec, 0,
				key("tax_total"), key("vat"), key("vatZar")),
			TotalZar:       total,
			PaymentMadeZar: paid,
			BalanceZar: pickNumber(rec, derived,
				key("balance"), key("balance_due"), key("balanceDue")),
		},
		Refs: Refs{
			ClientID: pickString(rec, "",
				key("client_id"), key("clientId")),
			DebitOrderID: pickString(rec, "",
				key("debit_order_id"), key("debitOrderId"), key("reference_number")),
		},
		Raw: rec,
	}
}

// mapLineItems selects line_items when it is a non-empty sequence, falling
// back to items. Each element is mapped independently with the same coercion
// rules as the invoice itself; non-object elements yield a default line.
func mapLineItems(rec Record) []LineItem {
	src, _ := rec["line_items"].([]any)
	if len(src) == 0 {
		src, _ = rec["items"].([]any)
	}

	out := make([]LineItem, 0, len(src))
	for _, el := range src {
		item, _ := el.(map[string]any)
		r := Record(item)
		out = append(out, LineItem{
			Description: pickString(r, "Item",
				key("name"), key("item_name"), key("description"), key("item")),
			Qty: pickNumber(r, 1,
				key("quantity"), key("qty")),
			UnitPrice: pickNumber(r, 0,
				key("rate"), key("unit_price"), key("unitPrice")),
			AmountZar: pickNumber(r, 0,
				key("amount"), key("total"), key("amountZar")),
			ItemID: pickString(r, "",
				key("item_id"), key("itemId"), key("code")),
		})
	}
	return out
}
