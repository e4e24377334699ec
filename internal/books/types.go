package books

// Invoice is the fixed-shape invoice record the UI consumes. Dates stay as
// strings: whatever form the upstream system used is passed through.
type Invoice struct {
	ID             string `json:"id"`
	InvoiceNo      string `json:"invoiceNo"`
	BooksInvoiceID string `json:"booksInvoiceId"`
	Status         string `json:"status"`
	IssuedDate     string `json:"issuedDate"`
	DueDate        string `json:"dueDate"`
	Customer       string `json:"customer"`
	CustomerEmail  string `json:"customerEmail"`
	Currency       string `json:"currency"`

	Items  []LineItem `json:"items"`
	Totals Totals     `json:"totals"`
	Refs   Refs       `json:"refs"`

	// Raw is the untouched upstream record, retained for diagnostics.
	Raw Record `json:"raw,omitempty"`
}

// LineItem is one normalized invoice line.
type LineItem struct {
	Description string  `json:"description"`
	Qty         float64 `json:"qty"`
	UnitPrice   float64 `json:"unitPrice"`
	AmountZar   float64 `json:"amountZar"`
	ItemID      string  `json:"itemId"`
}

// Totals carries the monetary summary of an invoice. Every field is a finite
// number; missing or invalid upstream values coerce to 0.
type Totals struct {
	SubtotalZar    float64 `json:"subtotalZar"`
	VatZar         float64 `json:"vatZar"`
	TotalZar       float64 `json:"totalZar"`
	PaymentMadeZar float64 `json:"paymentMadeZar"`
	BalanceZar     float64 `json:"balanceZar"`
}

// Refs links an invoice back to TabbyTech entities.
type Refs struct {
	ClientID     string `json:"clientId"`
	DebitOrderID string `json:"debitOrderId"`
}

// InvoiceList is one fetched page of normalized invoices.
type InvoiceList struct {
	OK       bool      `json:"ok"`
	Page     int       `json:"page"`
	PerPage  int       `json:"perPage"`
	Count    int       `json:"count"`
	Invoices []Invoice `json:"invoices"`

	// Raw is the response envelope as received.
	Raw Record `json:"raw,omitempty"`
}
