// internal/adapters/in/http/site/handler/cart_handler.go
package siteHandler

import (
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	usecase "folio/internal/application/usecase"
	cartdom "folio/internal/domain/cart"
)

// CartHandler serves the session cart. JSON clients get the cart view back;
// HTML form posts are redirected to the page they came from.
type CartHandler struct {
	uc  *usecase.CartUsecase
	log *zap.Logger
}

func NewCartHandler(uc *usecase.CartUsecase, log *zap.Logger) *CartHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &CartHandler{uc: uc, log: log.Named("cart_handler")}
}

type cartItemRequest struct {
	ItemID   string `json:"itemId"`
	Variant  string `json:"variant"`
	Quantity *int   `json:"quantity"`
}

func (h *CartHandler) readItem(w http.ResponseWriter, r *http.Request) (cartItemRequest, bool) {
	var req cartItemRequest
	if isFormPost(r) {
		if err := r.ParseForm(); err != nil {
			writeErr(w, http.StatusBadRequest, "invalid form")
			return req, false
		}
		req.ItemID = r.PostForm.Get("itemId")
		req.Variant = r.PostForm.Get("variant")
		if q := strings.TrimSpace(r.PostForm.Get("quantity")); q != "" {
			n, err := strconv.Atoi(q)
			if err != nil {
				writeErr(w, http.StatusBadRequest, "invalid quantity")
				return req, false
			}
			req.Quantity = &n
		}
		return req, true
	}
	if err := decodeJSON(w, r, &req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json")
		return req, false
	}
	return req, true
}

func (h *CartHandler) respond(w http.ResponseWriter, r *http.Request, c *cartdom.Cart) {
	if isFormPost(r) {
		redirectBack(w, r, "/cart")
		return
	}
	writeJSON(w, http.StatusOK, usecase.ViewOf(c))
}

// Get handles GET /api/cart.
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	v, err := h.uc.View(r.Context(), sessionID(r))
	if err != nil {
		h.log.Error("view failed", zap.Error(err))
		writeUsecaseErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

// Add handles POST /api/cart/items. Quantity defaults to 1.
func (h *CartHandler) Add(w http.ResponseWriter, r *http.Request) {
	req, ok := h.readItem(w, r)
	if !ok {
		return
	}
	qty := 1
	if req.Quantity != nil {
		qty = *req.Quantity
	}
	c, err := h.uc.AddItem(r.Context(), sessionID(r), req.ItemID, req.Variant, qty)
	if err != nil {
		writeUsecaseErr(w, err)
		return
	}
	h.respond(w, r, c)
}

// Update handles PUT /api/cart/items (and its form alias). A quantity of
// zero or less removes the line.
func (h *CartHandler) Update(w http.ResponseWriter, r *http.Request) {
	req, ok := h.readItem(w, r)
	if !ok {
		return
	}
	if req.Quantity == nil {
		writeErr(w, http.StatusBadRequest, "quantity is required")
		return
	}
	c, err := h.uc.SetQty(r.Context(), sessionID(r), req.ItemID, req.Variant, *req.Quantity)
	if err != nil {
		writeUsecaseErr(w, err)
		return
	}
	h.respond(w, r, c)
}

// Remove handles DELETE /api/cart/items (and its form alias).
func (h *CartHandler) Remove(w http.ResponseWriter, r *http.Request) {
	req, ok := h.readItem(w, r)
	if !ok {
		return
	}
	c, err := h.uc.RemoveItem(r.Context(), sessionID(r), req.ItemID, req.Variant)
	if err != nil {
		writeUsecaseErr(w, err)
		return
	}
	h.respond(w, r, c)
}

// Clear handles DELETE /api/cart (and its form alias).
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	if err := h.uc.Clear(r.Context(), sessionID(r)); err != nil {
		writeUsecaseErr(w, err)
		return
	}
	if isFormPost(r) {
		redirectBack(w, r, "/cart")
		return
	}
	writeJSON(w, http.StatusOK, usecase.ViewOf(nil))
}
