package handler

import (
	"time"

	invoicingapp "github.com/backoffice/backend/internal/application/invoicing"
	"github.com/backoffice/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// InvoiceDraftHandler handles invoice draft composition endpoints
type InvoiceDraftHandler struct {
	BaseHandler
	drafts *invoicingapp.DraftService
}

// NewInvoiceDraftHandler creates a new InvoiceDraftHandler
func NewInvoiceDraftHandler(drafts *invoicingapp.DraftService) *InvoiceDraftHandler {
	return &InvoiceDraftHandler{drafts: drafts}
}

// AttachClientRequest selects the client being invoiced
type AttachClientRequest struct {
	ClientID string `json:"client_id" binding:"required,uuid"`
}

// ToggleItemRequest toggles a catalog item on or off the draft
type ToggleItemRequest struct {
	CatalogItemID string `json:"catalog_item_id" binding:"required,uuid"`
}

// SetQuantityRequest sets a line item quantity. Values are deliberately
// unvalidated; non-positive quantities are normalized to 1 downstream.
type SetQuantityRequest struct {
	Quantity int64 `json:"quantity"`
}

// SetTaxRateRequest sets a tax rate percentage. Out-of-range values are
// normalized to 0 downstream rather than rejected.
type SetTaxRateRequest struct {
	TaxRate float64 `json:"tax_rate"`
}

// SetDatesRequest sets the invoice and due dates
type SetDatesRequest struct {
	InvoiceDate time.Time `json:"invoice_date" binding:"required"`
	DueDate     time.Time `json:"due_date" binding:"required"`
}

// SetNotesRequest sets the free-form notes
type SetNotesRequest struct {
	Notes string `json:"notes"`
}

// SetTermsRequest sets the payment terms text
type SetTermsRequest struct {
	Terms string `json:"terms"`
}

// OverrideNumberRequest replaces the generated invoice number
type OverrideNumberRequest struct {
	Number string `json:"number" binding:"required,notblank"`
}

// Create handles POST /invoicing/drafts
func (h *InvoiceDraftHandler) Create(c *gin.Context) {
	draft, err := h.drafts.Create(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, draft)
}

// Get handles GET /invoicing/drafts/:id
func (h *InvoiceDraftHandler) Get(c *gin.Context) {
	draftID, ok := h.draftID(c)
	if !ok {
		return
	}

	draft, err := h.drafts.Get(c.Request.Context(), draftID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, draft)
}

// Discard handles DELETE /invoicing/drafts/:id
func (h *InvoiceDraftHandler) Discard(c *gin.Context) {
	draftID, ok := h.draftID(c)
	if !ok {
		return
	}

	if err := h.drafts.Discard(c.Request.Context(), draftID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// AttachClient handles PUT /invoicing/drafts/:id/client
func (h *InvoiceDraftHandler) AttachClient(c *gin.Context) {
	draftID, ok := h.draftID(c)
	if !ok {
		return
	}

	var req AttachClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.bindError(c, err)
		return
	}

	clientID, err := uuid.Parse(req.ClientID)
	if err != nil {
		h.BadRequest(c, "Invalid client ID format")
		return
	}

	draft, err := h.drafts.AttachClient(c.Request.Context(), draftID, clientID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, draft)
}

// Catalog handles GET /invoicing/drafts/:id/catalog
func (h *InvoiceDraftHandler) Catalog(c *gin.Context) {
	draftID, ok := h.draftID(c)
	if !ok {
		return
	}

	items, err := h.drafts.Catalog(c.Request.Context(), draftID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, items)
}

// ToggleItem handles POST /invoicing/drafts/:id/items/toggle
func (h *InvoiceDraftHandler) ToggleItem(c *gin.Context) {
	draftID, ok := h.draftID(c)
	if !ok {
		return
	}

	var req ToggleItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.bindError(c, err)
		return
	}

	catalogItemID, err := uuid.Parse(req.CatalogItemID)
	if err != nil {
		h.BadRequest(c, "Invalid catalog item ID format")
		return
	}

	draft, err := h.drafts.ToggleItem(c.Request.Context(), draftID, catalogItemID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, draft)
}

// ClearItems handles DELETE /invoicing/drafts/:id/items
func (h *InvoiceDraftHandler) ClearItems(c *gin.Context) {
	draftID, ok := h.draftID(c)
	if !ok {
		return
	}

	draft, err := h.drafts.ClearItems(c.Request.Context(), draftID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, draft)
}

// SetItemQuantity handles PUT /invoicing/drafts/:id/items/:itemId/quantity
func (h *InvoiceDraftHandler) SetItemQuantity(c *gin.Context) {
	draftID, ok := h.draftID(c)
	if !ok {
		return
	}
	catalogItemID, ok := h.itemID(c)
	if !ok {
		return
	}

	var req SetQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.bindError(c, err)
		return
	}

	draft, err := h.drafts.SetItemQuantity(c.Request.Context(), draftID, catalogItemID, req.Quantity)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, draft)
}

// SetItemTaxRate handles PUT /invoicing/drafts/:id/items/:itemId/tax-rate
func (h *InvoiceDraftHandler) SetItemTaxRate(c *gin.Context) {
	draftID, ok := h.draftID(c)
	if !ok {
		return
	}
	catalogItemID, ok := h.itemID(c)
	if !ok {
		return
	}

	var req SetTaxRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.bindError(c, err)
		return
	}

	draft, err := h.drafts.SetItemTaxRate(c.Request.Context(), draftID, catalogItemID, req.TaxRate)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, draft)
}

// SetDefaultTaxRate handles PUT /invoicing/drafts/:id/tax-rate
func (h *InvoiceDraftHandler) SetDefaultTaxRate(c *gin.Context) {
	draftID, ok := h.draftID(c)
	if !ok {
		return
	}

	var req SetTaxRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.bindError(c, err)
		return
	}

	draft, err := h.drafts.SetDefaultTaxRate(c.Request.Context(), draftID, req.TaxRate)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, draft)
}

// SetDates handles PUT /invoicing/drafts/:id/dates
func (h *InvoiceDraftHandler) SetDates(c *gin.Context) {
	draftID, ok := h.draftID(c)
	if !ok {
		return
	}

	var req SetDatesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.bindError(c, err)
		return
	}

	draft, err := h.drafts.SetDates(c.Request.Context(), draftID, invoicingapp.SetDatesRequest{
		InvoiceDate: req.InvoiceDate,
		DueDate:     req.DueDate,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, draft)
}

// SetNotes handles PUT /invoicing/drafts/:id/notes
func (h *InvoiceDraftHandler) SetNotes(c *gin.Context) {
	draftID, ok := h.draftID(c)
	if !ok {
		return
	}

	var req SetNotesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.bindError(c, err)
		return
	}

	draft, err := h.drafts.SetNotes(c.Request.Context(), draftID, req.Notes)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, draft)
}

// SetTerms handles PUT /invoicing/drafts/:id/terms
func (h *InvoiceDraftHandler) SetTerms(c *gin.Context) {
	draftID, ok := h.draftID(c)
	if !ok {
		return
	}

	var req SetTermsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.bindError(c, err)
		return
	}

	draft, err := h.drafts.SetTerms(c.Request.Context(), draftID, req.Terms)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, draft)
}

// OverrideNumber handles PUT /invoicing/drafts/:id/number
func (h *InvoiceDraftHandler) OverrideNumber(c *gin.Context) {
	draftID, ok := h.draftID(c)
	if !ok {
		return
	}

	var req OverrideNumberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.bindError(c, err)
		return
	}

	draft, err := h.drafts.OverrideNumber(c.Request.Context(), draftID, req.Number)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, draft)
}

// Submit handles POST /invoicing/drafts/:id/submit
func (h *InvoiceDraftHandler) Submit(c *gin.Context) {
	draftID, ok := h.draftID(c)
	if !ok {
		return
	}

	draft, err := h.drafts.Submit(c.Request.Context(), draftID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, draft)
}

// RegisterRoutes registers all invoice draft routes
func (h *InvoiceDraftHandler) RegisterRoutes(rg *gin.RouterGroup) {
	drafts := rg.Group("/invoicing/drafts")
	{
		drafts.POST("", h.Create)
		drafts.GET("/:id", h.Get)
		drafts.DELETE("/:id", h.Discard)
		drafts.PUT("/:id/client", h.AttachClient)
		drafts.GET("/:id/catalog", h.Catalog)
		drafts.POST("/:id/items/toggle", h.ToggleItem)
		drafts.DELETE("/:id/items", h.ClearItems)
		drafts.PUT("/:id/items/:itemId/quantity", h.SetItemQuantity)
		drafts.PUT("/:id/items/:itemId/tax-rate", h.SetItemTaxRate)
		drafts.PUT("/:id/tax-rate", h.SetDefaultTaxRate)
		drafts.PUT("/:id/dates", h.SetDates)
		drafts.PUT("/:id/notes", h.SetNotes)
		drafts.PUT("/:id/terms", h.SetTerms)
		drafts.PUT("/:id/number", h.OverrideNumber)
		drafts.POST("/:id/submit", h.Submit)
	}
}

// draftID parses the :id path parameter, responding with 400 on failure
func (h *InvoiceDraftHandler) draftID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid draft ID format")
		return uuid.Nil, false
	}
	return id, true
}

// itemID parses the :itemId path parameter, responding with 400 on failure
func (h *InvoiceDraftHandler) itemID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("itemId"))
	if err != nil {
		h.BadRequest(c, "Invalid catalog item ID format")
		return uuid.Nil, false
	}
	return id, true
}

// bindError responds with field details for validation failures and a
// generic bad request otherwise
func (h *InvoiceDraftHandler) bindError(c *gin.Context, err error) {
	if _, ok := err.(validator.ValidationErrors); ok {
		middleware.HandleValidationError(c, err)
		return
	}
	h.BadRequest(c, err.Error())
}
