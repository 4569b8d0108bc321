package database

import (
	"context"

	"github.com/akyairhashvil/notifit/internal/models"
)

// NotificationRepository stores the sheet rows.
type NotificationRepository interface {
	SaveNotifications(ctx context.Context, ns []models.Notification) error
	LoadNotifications(ctx context.Context) ([]models.Notification, error)
}

// SettingsRepository stores small UI preferences.
type SettingsRepository interface {
	GetSetting(ctx context.Context, key string) (string, bool)
	SetSetting(ctx context.Context, key, value string) error
}

// Repository combines all repository interfaces.
//
//go:generate mockgen -destination=dbmock/repository.go -package=dbmock github.com/akyairhashvil/notifit/internal/database Repository
type Repository interface {
	NotificationRepository
	SettingsRepository
}

var _ Repository = (*Database)(nil)
