package service

import (
	"context"

	"dropxcult-admin/models"
)

// ModerationServiceInterface defines the contract for custom design moderation
type ModerationServiceInterface interface {
	// Apply runs an admin action ("accept", "reject", "offer_royalty") on a pending design
	// and returns the design with its new status
	Apply(ctx context.Context, id, action, note string) (*models.CustomDesign, error)
}
