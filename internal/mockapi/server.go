// Package mockapi serves a small in-memory rendition of the Books accounting
// API so the invoice client and its fallback chains can be exercised without
// upstream access. The sample records deliberately vary their field names the
// way real source systems do.
package mockapi

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"tabbytools/internal/books"
	"tabbytools/internal/logger"
)

// Server holds the in-memory invoice set.
type Server struct {
	records []books.Record
	log     zerolog.Logger
}

// New creates a Server preloaded with the sample invoices.
func New() *Server {
	return &Server{
		records: sampleInvoices(),
		log:     logger.WithComponent("mock-api"),
	}
}

// Router builds the gin handler exposing the invoice endpoints.
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	api := router.Group("/api")
	{
		api.GET("/invoices", s.listInvoices)
		api.GET("/invoices/:id", s.getInvoice)
	}

	return router
}

// Run starts the server on addr and blocks.
func (s *Server) Run(addr string) error {
	s.log.Info().
		Str("addr", addr).
		Int("invoices", len(s.records)).
		Msg("Starting mock Books API")
	return s.Router().Run(addr)
}

func (s *Server) listInvoices(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	perPage, _ := strconv.Atoi(c.DefaultQuery("perPage", "20"))
	if perPage < 1 {
		perPage = books.DefaultPerPage
	}

	start := (page - 1) * perPage
	if start > len(s.records) {
		start = len(s.records)
	}
	end := start + perPage
	if end > len(s.records) {
		end = len(s.records)
	}

	s.log.Debug().
		Int("page", page).
		Int("per_page", perPage).
		Int("returned", end-start).
		Msg("Serving invoice page")

	c.JSON(http.StatusOK, gin.H{
		"ok":      true,
		"items":   s.records[start:end],
		"page":    page,
		"perPage": perPage,
		"count":   len(s.records),
	})
}

func (s *Server) getInvoice(c *gin.Context) {
	id := c.Param("id")

	for _, rec := range s.records {
		if matchesID(rec, id) {
			c.JSON(http.StatusOK, gin.H{"invoice": rec})
			return
		}
	}

	s.log.Debug().Str("invoice_id", id).Msg("Invoice not found")
	c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "invoice not found"})
}

// matchesID resolves the record's identifier through the same normalizer the
// client uses, since sample records vary their id field names.
func matchesID(rec books.Record, id string) bool {
	inv := books.MapBooksInvoice(rec)
	return inv.ID == id || inv.InvoiceNo == id
}
