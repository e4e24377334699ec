package books_test

import (
	"fmt"

	"tabbytools/internal/books"
)

// Example demonstrates normalizing a raw upstream record into the UI shape.
func ExampleMapBooksInvoice() {
	rec := books.Record{
		"invoice_id":    "INV-1",
		"customer_name": "Acme",
		"total":         500.0,
		"amount_paid":   300.0,
	}

	inv := books.MapBooksInvoice(rec)

	fmt.Printf("%s %s %s\n", inv.ID, inv.Customer, inv.Status)
	fmt.Printf("%.2f %s, balance %.2f\n", inv.Totals.TotalZar, inv.Currency, inv.Totals.BalanceZar)
	// Output:
	// INV-1 Acme Unknown
	// 500.00 ZAR, balance 200.00
}
