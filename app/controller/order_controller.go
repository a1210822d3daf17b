package controller

import (
	"net/http"

	log "github.com/sirupsen/logrus"

	"dropxcult-admin/repository"
)

// OrderController handles HTTP requests for orders
type OrderController struct {
	repository repository.OrderRepositoryInterface
}

// NewOrderController creates a new OrderController
func NewOrderController(repo repository.OrderRepositoryInterface) *OrderController {
	return &OrderController{repository: repo}
}

// List handles GET /api/orders, newest first with buyer name and email
func (c *OrderController) List(w http.ResponseWriter, r *http.Request) {
	orders, err := c.repository.List(r.Context())
	if err != nil {
		log.Errorf("❌ ListOrders: %v", err)
		writeJSONError(w, http.StatusInternalServerError, "Failed to fetch orders")
		return
	}
	writeJSON(w, http.StatusOK, orders)
}
