package controller

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"dropxcult-admin/models"
	"dropxcult-admin/repository"
)

// ProductController handles HTTP requests for products
type ProductController struct {
	repository repository.ProductRepositoryInterface
}

// NewProductController creates a new ProductController
func NewProductController(repo repository.ProductRepositoryInterface) *ProductController {
	return &ProductController{repository: repo}
}

// List handles GET /api/products, newest first
func (c *ProductController) List(w http.ResponseWriter, r *http.Request) {
	products, err := c.repository.List(r.Context())
	if err != nil {
		log.Errorf("❌ ListProducts: %v", err)
		writeJSONError(w, http.StatusInternalServerError, "Failed to fetch products")
		return
	}
	writeJSON(w, http.StatusOK, products)
}

// Get handles GET /api/products/{id}
func (c *ProductController) Get(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	product, err := c.repository.GetByID(r.Context(), id)
	if err != nil {
		log.Errorf("❌ GetProduct: id=%s: %v", id, err)
		writeRepositoryError(w, err, "Failed to fetch product")
		return
	}
	writeJSON(w, http.StatusOK, product)
}

// Create handles POST /api/products
// Example request:
// POST /api/products
// {
//   "name": "Cult Oversized Tee",
//   "slug": "cult-oversized-tee",
//   "price": 1499,
//   "image": "https://cdn.dropxcult.in/tee.png",
//   "category": "tees"
// }
// Sizes default to S, M, L, XL and stock to 50.
func (c *ProductController) Create(w http.ResponseWriter, r *http.Request) {
	log.Infof("📥 CreateProduct: Received %s request to %s", r.Method, r.URL.Path)

	var req models.CreateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warnf("❌ CreateProduct: Failed to decode request body: %v", err)
		writeJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if !req.Validate() {
		log.Warnf("❌ CreateProduct: missing required fields")
		writeJSONError(w, http.StatusBadRequest, "Missing required fields")
		return
	}

	product, err := c.repository.Create(r.Context(), &req)
	if err != nil {
		log.Errorf("❌ CreateProduct: %v", err)
		writeJSONError(w, http.StatusInternalServerError, "Failed to create product")
		return
	}

	log.Infof("✅ CreateProduct: Successfully created product id=%s", product.ID)
	writeJSON(w, http.StatusCreated, product)
}

// Update handles PUT /api/products/{id}
func (c *ProductController) Update(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req models.UpdateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Price != nil && *req.Price <= 0 {
		writeJSONError(w, http.StatusBadRequest, "price must be positive")
		return
	}

	product, err := c.repository.Update(r.Context(), id, &req)
	if err != nil {
		log.Errorf("❌ UpdateProduct: id=%s: %v", id, err)
		writeRepositoryError(w, err, "Failed to update product")
		return
	}
	writeJSON(w, http.StatusOK, product)
}

// Delete handles DELETE /api/products/{id}
func (c *ProductController) Delete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := c.repository.Delete(r.Context(), id); err != nil {
		log.Errorf("❌ DeleteProduct: id=%s: %v", id, err)
		writeRepositoryError(w, err, "Failed to delete product")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Product deleted"})
}
