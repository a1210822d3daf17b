package controller

import (
	"net/http"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"dropxcult-admin/repository"
)

// UserController handles HTTP requests for users
type UserController struct {
	repository repository.UserRepositoryInterface
}

// NewUserController creates a new UserController
func NewUserController(repo repository.UserRepositoryInterface) *UserController {
	return &UserController{repository: repo}
}

// List handles GET /api/users
func (c *UserController) List(w http.ResponseWriter, r *http.Request) {
	users, err := c.repository.List(r.Context())
	if err != nil {
		log.Errorf("❌ ListUsers: %v", err)
		writeJSONError(w, http.StatusInternalServerError, "Failed to fetch users")
		return
	}
	writeJSON(w, http.StatusOK, users)
}

// Delete handles DELETE /api/users/{id}; administrators cannot be deleted
func (c *UserController) Delete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := c.repository.Delete(r.Context(), id); err != nil {
		log.Errorf("❌ DeleteUser: id=%s: %v", id, err)
		writeRepositoryError(w, err, "Failed to delete user")
		return
	}
	log.Infof("✅ DeleteUser: removed %s", id)
	writeJSON(w, http.StatusOK, map[string]string{"message": "User removed"})
}
