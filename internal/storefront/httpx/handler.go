package httpx

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jcmexdev/restaurant-ordering/internal/cart"
	"github.com/jcmexdev/restaurant-ordering/internal/catalog"
	"github.com/jcmexdev/restaurant-ordering/internal/coordinator/checkoutlog"
	"github.com/jcmexdev/restaurant-ordering/internal/ledger"
	"github.com/jcmexdev/restaurant-ordering/internal/storefront"
	"github.com/jcmexdev/restaurant-ordering/internal/storefront/httpx/middlewares"
)

const placedAtLayout = "2006-01-02T15:04:05.000Z07:00"

// Handler serves the storefront session over HTTP.
type Handler struct {
	session     *storefront.Session
	checkoutLog checkoutlog.Reader // nil when the checkout log is disabled
}

// NewHandler builds the handler. checkoutLog may be nil, in which case the
// checkout log route answers 404.
func NewHandler(session *storefront.Session, checkoutLog checkoutlog.Reader) *Handler {
	return &Handler{session: session, checkoutLog: checkoutLog}
}

func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ListMenu returns the menu, narrowed by the optional q query parameter.
func (h *Handler) ListMenu(w http.ResponseWriter, r *http.Request) {
	items := h.session.Menu(r.URL.Query().Get("q"))
	out := make([]MenuItemResponse, len(items))
	for i, it := range items {
		out[i] = mapMenuItem(it)
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) GetMenuItem(w http.ResponseWriter, r *http.Request) {
	item, ok := h.session.Item(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusNotFound, "item_not_found", "")
		return
	}
	writeJSON(w, http.StatusOK, mapMenuItem(item))
}

func (h *Handler) GetCart(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, mapCart(h.session.Cart()))
}

// AddCartItem adds quantity units of an item, one unit when quantity is omitted.
func (h *Handler) AddCartItem(w http.ResponseWriter, r *http.Request) {
	var req AddCartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}
	if req.ItemID == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "item_id is required")
		return
	}
	qty := 1
	if req.Quantity != nil {
		qty = *req.Quantity
	}

	view, err := h.session.AddItem(req.ItemID, qty)
	switch {
	case errors.Is(err, cart.ErrUnknownItem):
		writeError(w, http.StatusNotFound, "item_not_found", err.Error())
		return
	case errors.Is(err, cart.ErrInvalidQuantity):
		writeError(w, http.StatusBadRequest, "invalid_quantity", err.Error())
		return
	case err != nil:
		writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, mapCart(view))
}

// UpdateCartItem sets a line's quantity. Values below one are stored as one.
func (h *Handler) UpdateCartItem(w http.ResponseWriter, r *http.Request) {
	var req UpdateCartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}
	if req.Quantity == nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "quantity is required")
		return
	}
	writeJSON(w, http.StatusOK, mapCart(h.session.SetQuantity(chi.URLParam(r, "id"), *req.Quantity)))
}

func (h *Handler) RemoveCartItem(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, mapCart(h.session.RemoveItem(chi.URLParam(r, "id"))))
}

func (h *Handler) ClearCart(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, mapCart(h.session.ClearCart()))
}

// PlaceOrder checks the cart out. The body is optional; a missing or blank
// customer_name places the order for the guest customer.
func (h *Handler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	var req PlaceOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}

	ctx := r.Context()
	order, err := h.session.PlaceOrder(ctx, req.CustomerName)
	switch {
	case errors.Is(err, ledger.ErrEmptyCart):
		writeError(w, http.StatusConflict, "cart_empty", err.Error())
		return
	case errors.Is(err, cart.ErrUnknownItem):
		writeError(w, http.StatusUnprocessableEntity, "unknown_item", err.Error())
		return
	case errors.Is(err, ledger.ErrPersist):
		slog.ErrorContext(ctx, "order not saved", "request_id", middlewares.RequestID(ctx), "error", err)
		writeError(w, http.StatusServiceUnavailable, "order_not_saved", err.Error())
		return
	case err != nil:
		slog.ErrorContext(ctx, "placing order", "request_id", middlewares.RequestID(ctx), "error", err)
		writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, h.mapOrder(order))
}

// ListOrders returns the order history, newest first.
func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	history := h.session.History(r.Context())
	out := make([]OrderResponse, len(history))
	for i, o := range history {
		out[i] = h.mapOrder(o)
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) CountOrders(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, OrderCountResponse{Count: h.session.OrderCount(r.Context())})
}

// GetCheckoutLog shows every recorded transition of one order placement,
// including placements that were rolled back.
func (h *Handler) GetCheckoutLog(w http.ResponseWriter, r *http.Request) {
	if h.checkoutLog == nil {
		writeError(w, http.StatusNotFound, "checkout_log_disabled", "")
		return
	}
	ctx := r.Context()
	orderID := chi.URLParam(r, "id")

	latest, err := h.checkoutLog.GetLatest(ctx, orderID)
	if errors.Is(err, checkoutlog.ErrNotFound) {
		writeError(w, http.StatusNotFound, "order_not_found", "")
		return
	}
	if err != nil {
		slog.ErrorContext(ctx, "reading checkout log", "request_id", middlewares.RequestID(ctx), "order_id", orderID, "error", err)
		writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
		return
	}

	entries, err := h.checkoutLog.List(ctx, orderID)
	if err != nil {
		slog.ErrorContext(ctx, "listing checkout log", "request_id", middlewares.RequestID(ctx), "order_id", orderID, "error", err)
		writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
		return
	}

	out := CheckoutLogResponse{
		OrderID: orderID,
		Status:  string(latest.Status),
		Entries: make([]CheckoutLogEntryResponse, len(entries)),
	}
	for i, e := range entries {
		errs := e.ErrorMessages
		if errs == "" {
			errs = "[]"
		}
		out.Entries[i] = CheckoutLogEntryResponse{
			Status:    string(e.Status),
			Step:      e.CurrentStep,
			Errors:    json.RawMessage(errs),
			TraceID:   e.TraceID,
			UpdatedAt: e.UpdatedAt.UTC().Format(placedAtLayout),
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func mapMenuItem(it catalog.Item) MenuItemResponse {
	return MenuItemResponse{
		ID:          it.ID,
		Name:        it.Name,
		Description: it.Description,
		Price:       cart.FormatMoney(it.UnitPrice),
		Image:       it.ImageRef,
	}
}

func mapCart(view storefront.CartView) CartResponse {
	lines := make([]CartLineResponse, len(view.Lines))
	for i, l := range view.Lines {
		lines[i] = CartLineResponse{
			ItemID:    l.ItemID,
			Name:      l.Name,
			UnitPrice: cart.FormatMoney(l.UnitPrice),
			Quantity:  l.Quantity,
			LineTotal: cart.FormatMoney(l.LineTotal),
		}
	}
	return CartResponse{
		Items:     lines,
		ItemCount: view.ItemCount,
		Subtotal:  cart.FormatMoney(view.Totals.Subtotal),
		Tax:       cart.FormatMoney(view.Totals.Tax),
		Total:     cart.FormatMoney(view.Totals.GrandTotal),
	}
}

// mapOrder names order lines from the current catalog; items since removed
// from the menu render as storefront.UnknownItemName.
func (h *Handler) mapOrder(o ledger.Order) OrderResponse {
	items := make([]OrderItemResponse, len(o.Lines))
	for i, l := range o.Lines {
		items[i] = OrderItemResponse{
			ItemID:   l.ItemID,
			Name:     h.session.ItemName(l.ItemID),
			Quantity: l.Quantity,
		}
	}
	return OrderResponse{
		ID:           o.ID,
		CustomerName: o.CustomerName,
		Status:       string(o.Status),
		Items:        items,
		ItemCount:    o.TotalQuantity(),
		Subtotal:     cart.FormatMoney(o.Subtotal),
		Tax:          cart.FormatMoney(o.Tax),
		Total:        cart.FormatMoney(o.GrandTotal),
		PlacedAt:     o.PlacedAt.UTC().Format(placedAtLayout),
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, ErrorResponse{
		Error:   code,
		Message: msg,
	})
}
