package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/internal/cartstore"
	"storefront/internal/domain"
)

type cartHandlers struct {
	carts *cartstore.Manager
}

// cartResponse is the UI read surface in JSON form.
type cartResponse struct {
	Cart          *domain.Cart `json:"cart"`
	ItemCount     int          `json:"itemCount"`
	Total         string       `json:"total"`
	Currency      string       `json:"currency"`
	IsDisplayOpen bool         `json:"isDisplayOpen"`
	IsMutating    bool         `json:"isMutating"`
	LastError     string       `json:"lastError,omitempty"`
}

func toCartResponse(snap cartstore.Snapshot) cartResponse {
	out := cartResponse{
		Cart:          snap.Cart,
		ItemCount:     snap.ItemCount,
		Total:         snap.Total,
		Currency:      snap.Currency,
		IsDisplayOpen: snap.IsDisplayOpen,
		IsMutating:    snap.IsMutating,
	}
	if snap.LastError != nil {
		out.LastError = snap.LastError.Error()
	}
	return out
}

// store resolves the visitor's cart store, initializing it on first use.
func (h *cartHandlers) store(c *gin.Context) (*cartstore.Store, bool) {
	st := h.carts.Store(c.GetString(visitorCtxKey))
	if err := st.Init(c.Request.Context()); err != nil {
		writeCartError(c, err)
		return nil, false
	}
	return st, true
}

func (h *cartHandlers) get(c *gin.Context) {
	st, ok := h.store(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, toCartResponse(st.Snapshot()))
}

type addLineRequest struct {
	VariantID string `json:"variantId"`
	Quantity  *int   `json:"quantity"`
}

func (h *cartHandlers) addLine(c *gin.Context) {
	var req addLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}
	st, ok := h.store(c)
	if !ok {
		return
	}
	if _, err := st.AddItem(c.Request.Context(), req.VariantID, quantity); err != nil {
		writeCartError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCartResponse(st.Snapshot()))
}

type updateLineRequest struct {
	Quantity int `json:"quantity"`
}

func (h *cartHandlers) updateLine(c *gin.Context) {
	var req updateLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	st, ok := h.store(c)
	if !ok {
		return
	}
	if _, err := st.UpdateQuantity(c.Request.Context(), c.Param("lineId"), req.Quantity); err != nil {
		writeCartError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCartResponse(st.Snapshot()))
}

func (h *cartHandlers) removeLine(c *gin.Context) {
	st, ok := h.store(c)
	if !ok {
		return
	}
	if _, err := st.RemoveItem(c.Request.Context(), c.Param("lineId")); err != nil {
		writeCartError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCartResponse(st.Snapshot()))
}

func (h *cartHandlers) clear(c *gin.Context) {
	st, ok := h.store(c)
	if !ok {
		return
	}
	if _, err := st.Clear(c.Request.Context()); err != nil {
		writeCartError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCartResponse(st.Snapshot()))
}

func (h *cartHandlers) open(c *gin.Context) {
	st, ok := h.store(c)
	if !ok {
		return
	}
	st.OpenDisplay()
	c.JSON(http.StatusOK, toCartResponse(st.Snapshot()))
}

func (h *cartHandlers) close(c *gin.Context) {
	st, ok := h.store(c)
	if !ok {
		return
	}
	st.CloseDisplay()
	c.JSON(http.StatusOK, toCartResponse(st.Snapshot()))
}

func writeCartError(c *gin.Context, err error) {
	var rejected *domain.RejectedError
	var network *domain.NetworkError
	switch {
	case errors.Is(err, domain.ErrBusy):
		c.JSON(http.StatusConflict, gin.H{"error": "another cart operation is in flight"})
	case errors.Is(err, domain.ErrNotReady):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "cart not ready"})
	case errors.As(err, &rejected):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": rejected.Error(), "userErrors": rejected.UserErrors})
	case errors.As(err, &network):
		c.JSON(http.StatusBadGateway, gin.H{"error": "commerce platform unreachable"})
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	}
}
