package devgateway

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/kpfoody/foody/internal/client/models"
)

// ---- catalog handlers ----

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	out := append([]models.Category(nil), s.categories...)
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleListMenu(w http.ResponseWriter, r *http.Request) {
	categoryID := r.URL.Query().Get("category")
	query := strings.ToLower(r.URL.Query().Get("q"))

	s.mu.Lock()
	out := make([]models.MenuItem, 0, len(s.menu))
	for _, item := range s.menu {
		if categoryID != "" && item.CategoryID != categoryID {
			continue
		}
		if query != "" && !strings.Contains(strings.ToLower(item.Name), query) {
			continue
		}
		out = append(out, item)
	}
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetMenuItem(w http.ResponseWriter, r *http.Request) {
	itemID := chi.URLParam(r, "itemID")

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, item := range s.menu {
		if item.ID == itemID {
			writeJSON(w, http.StatusOK, item)
			return
		}
	}
	writeError(w, http.StatusNotFound, "not_found", "", "menu item not found")
}

// ---- payment handler ----

type createOrderRequest struct {
	Amount float64 `json:"amount"`
}

type createOrderResponse struct {
	Success bool          `json:"success"`
	Order   *models.Order `json:"order,omitempty"`
	Error   string        `json:"error,omitempty"`
}

func (s *Server) handleCreateOrder(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, createOrderResponse{Success: false, Error: "malformed JSON body"})
		return
	}
	if req.Amount <= 0 {
		writeJSON(w, http.StatusBadRequest, createOrderResponse{Success: false, Error: "amount must be positive"})
		return
	}

	order := &models.Order{ID: "order_" + uuid.NewString(), Amount: req.Amount}
	s.log.Info(r.Context(), "payment order created", "order_id", order.ID, "amount", order.Amount)
	writeJSON(w, http.StatusOK, createOrderResponse{Success: true, Order: order})
}
