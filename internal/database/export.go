package database

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/akyairhashvil/notifit/internal/models"
)

const exportVersion = 1

type ExportNotification struct {
	ID           string `json:"id"`
	Level        string `json:"level"`
	Icon         string `json:"icon,omitempty"`
	IncludeImage bool   `json:"include_image"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	HasError     bool   `json:"has_error"`
}

// SheetExport is the JSON backup format of a sheet.
type SheetExport struct {
	Version       int                  `json:"version"`
	ExportedAt    string               `json:"exported_at"`
	Notifications []ExportNotification `json:"notifications"`
}

// ExportSheet serializes the stored sheet as JSON.
func (d *Database) ExportSheet(ctx context.Context) ([]byte, error) {
	ns, err := d.LoadNotifications(ctx)
	if err != nil {
		return nil, err
	}
	export := SheetExport{
		Version:       exportVersion,
		ExportedAt:    time.Now().UTC().Format(time.RFC3339),
		Notifications: make([]ExportNotification, 0, len(ns)),
	}
	for _, n := range ns {
		export.Notifications = append(export.Notifications, ExportNotification{
			ID:           n.ID,
			Level:        string(n.Level),
			Icon:         n.Icon,
			IncludeImage: n.IncludeImage,
			Title:        n.Title,
			Description:  n.Description,
			HasError:     n.HasError,
		})
	}
	return json.MarshalIndent(export, "", "  ")
}

// ImportSheet replaces the stored sheet with an exported one.
func (d *Database) ImportSheet(ctx context.Context, payload []byte) ([]models.Notification, error) {
	ns, err := DecodeSheet(payload)
	if err != nil {
		return nil, err
	}
	if err := d.SaveNotifications(ctx, ns); err != nil {
		return nil, err
	}
	return ns, nil
}

// DecodeSheet parses an export without touching the database.
func DecodeSheet(payload []byte) ([]models.Notification, error) {
	var export SheetExport
	if err := json.Unmarshal(payload, &export); err != nil {
		return nil, fmt.Errorf("import sheet: %w", err)
	}
	if export.Version > exportVersion {
		return nil, fmt.Errorf("import sheet: unsupported version %d", export.Version)
	}
	ns := make([]models.Notification, 0, len(export.Notifications))
	seen := make(map[string]bool, len(export.Notifications))
	for i, e := range export.Notifications {
		if e.ID == "" || seen[e.ID] {
			return nil, fmt.Errorf("import sheet: row %d has a missing or duplicate id", i+1)
		}
		seen[e.ID] = true
		lv := models.Level(e.Level)
		if !lv.Valid() {
			lv = models.LevelInformation
		}
		ns = append(ns, models.Notification{
			ID:           e.ID,
			Level:        lv,
			Icon:         e.Icon,
			IncludeImage: e.IncludeImage,
			Title:        e.Title,
			Description:  e.Description,
			HasError:     e.HasError,
		})
	}
	return ns, nil
}
