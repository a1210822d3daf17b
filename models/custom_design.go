package models

import (
	"encoding/json"
	"fmt"
	"time"

	"dropxcult-admin/preview"
)

// DesignStatus is the moderation state of a custom design
type DesignStatus string

const (
	StatusPending        DesignStatus = "Pending"
	StatusAccepted       DesignStatus = "Accepted"
	StatusRejected       DesignStatus = "Rejected"
	StatusRoyaltyPending DesignStatus = "Royalty_Pending"
)

// ModerationActions maps an admin action to the status it produces
var ModerationActions = map[string]DesignStatus{
	"accept":        StatusAccepted,
	"reject":        StatusRejected,
	"offer_royalty": StatusRoyaltyPending,
}

// CustomDesign is a user-submitted garment customization awaiting moderation
type CustomDesign struct {
	ID           string          `json:"id"`
	User         *UserSummary    `json:"user"`
	Type         string          `json:"type"`
	Color        string          `json:"color"`
	Size         string          `json:"size"`
	FrontImage   string          `json:"frontImage"`
	BackImage    string          `json:"backImage"`
	LeftImage    string          `json:"leftImage"`
	RightImage   string          `json:"rightImage"`
	DesignConfig json.RawMessage `json:"designConfig,omitempty"`
	TextConfig   json.RawMessage `json:"textConfig,omitempty"`
	Status       DesignStatus    `json:"status"`
	AdminNote    string          `json:"adminNote,omitempty"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

// DesignRecord converts the stored row into the resolver input.
// Malformed JSON configs are reported; unknown view keys inside them are dropped.
func (d *CustomDesign) DesignRecord() (preview.DesignRecord, error) {
	placements, err := preview.DecodePlacements(d.DesignConfig)
	if err != nil {
		return preview.DesignRecord{}, fmt.Errorf("design %s: %w", d.ID, err)
	}
	texts, err := preview.DecodeTexts(d.TextConfig)
	if err != nil {
		return preview.DesignRecord{}, fmt.Errorf("design %s: %w", d.ID, err)
	}

	images := make(map[preview.View]string, 4)
	for view, ref := range map[preview.View]string{
		preview.ViewFront: d.FrontImage,
		preview.ViewBack:  d.BackImage,
		preview.ViewLeft:  d.LeftImage,
		preview.ViewRight: d.RightImage,
	} {
		if ref != "" {
			images[view] = ref
		}
	}

	return preview.DesignRecord{
		GarmentType: preview.GarmentType(d.Type),
		BaseColor:   d.Color,
		Images:      images,
		Placements:  placements,
		Texts:       texts,
	}, nil
}

// ModerationActionRequest is the body of POST /api/customize/{id}/action
type ModerationActionRequest struct {
	Action string `json:"action"`
	Note   string `json:"note,omitempty"`
}
