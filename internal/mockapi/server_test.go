package mockapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tabbytools/internal/books"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func doRequest(t *testing.T, router *gin.Engine, path string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	req, err := http.NewRequest(http.MethodGet, path, nil)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w, body
}

func TestListInvoicesPagination(t *testing.T) {
	router := New().Router()

	w, body := doRequest(t, router, "/api/invoices?page=1&perPage=2")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["ok"])

	items, ok := body["items"].([]any)
	require.True(t, ok)
	assert.Len(t, items, 2)
	assert.Equal(t, float64(1), body["page"])
	assert.Equal(t, float64(2), body["perPage"])
	assert.Equal(t, float64(5), body["count"])

	// Page past the end comes back empty, not failing.
	_, body = doRequest(t, router, "/api/invoices?page=99&perPage=20")
	items, ok = body["items"].([]any)
	require.True(t, ok)
	assert.Empty(t, items)
}

func TestGetInvoiceByID(t *testing.T) {
	router := New().Router()

	w, body := doRequest(t, router, "/api/invoices/INV-2024-0001")
	assert.Equal(t, http.StatusOK, w.Code)

	inv, ok := body["invoice"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "INV-2024-0001", inv["invoice_id"])
}

func TestGetInvoiceNotFound(t *testing.T) {
	router := New().Router()

	w, body := doRequest(t, router, "/api/invoices/NOPE-1")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, false, body["ok"])
	assert.Equal(t, "invoice not found", body["error"])
}

// The client and the mock API agree end to end: every sample record, whatever
// its field-name convention, normalizes into the fixed UI shape.
func TestClientAgainstMockAPI(t *testing.T) {
	ts := httptest.NewServer(New().Router())
	defer ts.Close()

	client := books.New(books.Config{BaseURL: ts.URL, Timeout: 5 * time.Second})

	list, err := client.FetchInvoices(context.Background(), books.ListOptions{Page: 1, PerPage: 20})
	require.NoError(t, err)
	assert.True(t, list.OK)
	assert.Equal(t, 5, list.Count)
	require.Len(t, list.Invoices, 5)

	for _, inv := range list.Invoices {
		assert.NotEmpty(t, inv.Status)
		assert.NotEmpty(t, inv.Customer)
		assert.Equal(t, "ZAR", inv.Currency)
	}

	// The camelCase record resolves through its own chains.
	second := list.Invoices[1]
	assert.Equal(t, "INV-2024-0002", second.ID)
	assert.Equal(t, "Karoo Wellness Spa", second.Customer)
	assert.Equal(t, 989.0, second.Totals.TotalZar)
	assert.Equal(t, 489.0, second.Totals.BalanceZar)
	require.Len(t, second.Items, 2)

	// The sparse record falls back to every default.
	sparse := list.Invoices[4]
	assert.Equal(t, "Protea Print Works", sparse.Customer)
	assert.Equal(t, "Unknown", sparse.Status)

	inv, err := client.FetchInvoiceByID(context.Background(), "INV-2024-0003", "")
	require.NoError(t, err)
	assert.Equal(t, "Ubuntu Gym Group", inv.Customer)
	assert.Equal(t, "Overdue", inv.Status)
	assert.Equal(t, 2000.0, inv.Totals.BalanceZar)
	assert.Equal(t, "DO-2024-0112", inv.Refs.DebitOrderID)
}
