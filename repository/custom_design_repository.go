package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"dropxcult-admin/db"
	"dropxcult-admin/models"
)

// CustomDesignRepository handles database operations for custom design requests
// Implements CustomDesignRepositoryInterface
type CustomDesignRepository struct{}

// NewCustomDesignRepository creates a new CustomDesignRepository
func NewCustomDesignRepository() *CustomDesignRepository {
	return &CustomDesignRepository{}
}

// Ensure CustomDesignRepository implements CustomDesignRepositoryInterface
var _ CustomDesignRepositoryInterface = (*CustomDesignRepository)(nil)

const customDesignSelect = `
	SELECT d.id, d.type, d.color, d.size,
	       d.front_image, d.back_image, d.left_image, d.right_image,
	       d.design_config, d.text_config, d.status, d.admin_note,
	       d.created_at, d.updated_at,
	       u.id, u.name, u.email
	FROM custom_designs d
	LEFT JOIN users u ON u.id = d.user_id
`

func scanCustomDesign(row rowScanner) (*models.CustomDesign, error) {
	var (
		d                  models.CustomDesign
		designCfg, textCfg []byte
		status             string
		userID, name, mail sql.NullString
	)
	if err := row.Scan(&d.ID, &d.Type, &d.Color, &d.Size,
		&d.FrontImage, &d.BackImage, &d.LeftImage, &d.RightImage,
		&designCfg, &textCfg, &status, &d.AdminNote,
		&d.CreatedAt, &d.UpdatedAt,
		&userID, &name, &mail); err != nil {
		return nil, err
	}
	d.Status = models.DesignStatus(status)
	if len(designCfg) > 0 {
		d.DesignConfig = append([]byte(nil), designCfg...)
	}
	if len(textCfg) > 0 {
		d.TextConfig = append([]byte(nil), textCfg...)
	}
	if userID.Valid {
		d.User = &models.UserSummary{ID: userID.String, Name: name.String, Email: mail.String}
	}
	return &d, nil
}

// List returns every custom design request with its submitter, newest first
func (r *CustomDesignRepository) List(ctx context.Context) ([]models.CustomDesign, error) {
	rows, err := db.DB.QueryContext(ctx, customDesignSelect+` ORDER BY d.created_at DESC`)
	if err != nil {
		log.Errorf("❌ Error listing custom designs: %v", err)
		return nil, fmt.Errorf("failed to list custom designs: %w", err)
	}
	defer rows.Close()

	designs := []models.CustomDesign{}
	for rows.Next() {
		d, err := scanCustomDesign(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan custom design: %w", err)
		}
		designs = append(designs, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating custom designs: %w", err)
	}

	log.Debugf("🎨 Listed %d custom designs", len(designs))
	return designs, nil
}

// GetByID returns one custom design or ErrNotFound
func (r *CustomDesignRepository) GetByID(ctx context.Context, id string) (*models.CustomDesign, error) {
	d, err := scanCustomDesign(db.DB.QueryRowContext(ctx, customDesignSelect+` WHERE d.id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		log.Errorf("❌ Error fetching custom design %s: %v", id, err)
		return nil, fmt.Errorf("failed to get custom design: %w", err)
	}
	return d, nil
}

// UpdateStatus moves a design from one status to another. The row must currently hold
// from; otherwise ErrInvalidTransition (or ErrNotFound when the id does not exist).
func (r *CustomDesignRepository) UpdateStatus(ctx context.Context, id string, from, to models.DesignStatus, note string) error {
	log.Infof("🔄 Updating custom design %s: %s -> %s", id, from, to)

	query := `
		UPDATE custom_designs
		SET status = $1, admin_note = $2, updated_at = $3
		WHERE id = $4 AND status = $5
	`
	result, err := db.DB.ExecContext(ctx, query, string(to), note, time.Now().UTC(), id, string(from))
	if err != nil {
		log.Errorf("❌ Error updating custom design %s: %v", id, err)
		return fmt.Errorf("failed to update custom design status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected > 0 {
		return nil
	}

	var exists bool
	if err := db.DB.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM custom_designs WHERE id = $1)`, id).Scan(&exists); err != nil {
		return fmt.Errorf("failed to check custom design existence: %w", err)
	}
	if !exists {
		return ErrNotFound
	}
	return ErrInvalidTransition
}
