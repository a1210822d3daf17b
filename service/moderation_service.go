package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"

	"dropxcult-admin/models"
	"dropxcult-admin/preview"
	"dropxcult-admin/repository"
)

// ErrUnknownAction is returned for moderation actions outside models.ModerationActions
var ErrUnknownAction = errors.New("unknown moderation action")

// PreviewRenderer renders one view of a design to an encoded image
type PreviewRenderer interface {
	Render(ctx context.Context, plan preview.RenderPlan, width, height int) ([]byte, error)
}

// ModerationService moves custom designs through the moderation workflow and archives
// the preview of accepted designs to Drive
// Implements ModerationServiceInterface
type ModerationService struct {
	designs  repository.CustomDesignRepositoryInterface
	resolver *preview.Resolver
	renderer PreviewRenderer
	drive    DriveServiceInterface
	folderID string
	width    int
	height   int
}

// ModerationOptions configures the archive step; a nil Drive or empty FolderID disables it
type ModerationOptions struct {
	Drive    DriveServiceInterface
	FolderID string
	Width    int
	Height   int
}

// NewModerationService creates a new ModerationService
func NewModerationService(
	designs repository.CustomDesignRepositoryInterface,
	resolver *preview.Resolver,
	renderer PreviewRenderer,
	opts ModerationOptions,
) *ModerationService {
	return &ModerationService{
		designs:  designs,
		resolver: resolver,
		renderer: renderer,
		drive:    opts.Drive,
		folderID: opts.FolderID,
		width:    opts.Width,
		height:   opts.Height,
	}
}

// Ensure ModerationService implements ModerationServiceInterface
var _ ModerationServiceInterface = (*ModerationService)(nil)

// Apply runs action on the design. Only pending designs can be moderated.
func (s *ModerationService) Apply(ctx context.Context, id, action, note string) (*models.CustomDesign, error) {
	action = strings.ToLower(strings.TrimSpace(action))
	to, ok := models.ModerationActions[action]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAction, action)
	}

	log.Infof("🔄 Moderating design %s: action=%s", id, action)

	design, err := s.designs.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if design.Status != models.StatusPending {
		log.Warnf("⚠️  Design %s is %s, not %s", id, design.Status, models.StatusPending)
		return nil, repository.ErrInvalidTransition
	}

	if err := s.designs.UpdateStatus(ctx, id, models.StatusPending, to, note); err != nil {
		return nil, err
	}
	design.Status = to
	design.AdminNote = note

	if to == models.StatusAccepted {
		s.archive(ctx, design)
	}

	log.Infof("✅ Design %s is now %s", id, to)
	return design, nil
}

// archive uploads the front preview of an accepted design. Failures are logged only:
// the status change has already been committed.
func (s *ModerationService) archive(ctx context.Context, design *models.CustomDesign) {
	if s.drive == nil || s.folderID == "" {
		log.Debugf("⏭️  Drive archive not configured, skipping design %s", design.ID)
		return
	}

	record, err := design.DesignRecord()
	if err != nil {
		log.Errorf("❌ Archive: %v", err)
		return
	}
	plan := s.resolver.Resolve(record, preview.ViewFront)

	png, err := s.renderer.Render(ctx, plan, s.width, s.height)
	if err != nil {
		log.Errorf("❌ Archive: failed to render design %s: %v", design.ID, err)
		return
	}

	name := PreviewFileName(design.ID, preview.ViewFront)
	fileID, err := s.drive.UploadFile(ctx, s.folderID, name, "image/png", png)
	if err != nil {
		log.Errorf("❌ Archive: failed to upload design %s: %v", design.ID, err)
		return
	}
	log.Infof("☁️  Archived design %s as %s (%s)", design.ID, name, fileID)
}

// PreviewFileName is the file name used for a rendered view of a design
func PreviewFileName(designID string, view preview.View) string {
	return fmt.Sprintf("custom-design-%s-%s.png", designID, view)
}
