package testutil

import (
	"github.com/akyairhashvil/notifit/internal/models"
)

// NotificationBuilder provides fluent API for creating test notifications.
type NotificationBuilder struct {
	n models.Notification
}

func NewNotification() *NotificationBuilder {
	return &NotificationBuilder{
		n: models.Notification{
			ID:    "test-row",
			Level: models.LevelInformation,
		},
	}
}

func (b *NotificationBuilder) WithID(id string) *NotificationBuilder {
	b.n.ID = id
	return b
}

func (b *NotificationBuilder) WithLevel(l models.Level) *NotificationBuilder {
	b.n.Level = l
	return b
}

func (b *NotificationBuilder) WithIcon(icon string) *NotificationBuilder {
	b.n.Icon = icon
	return b
}

func (b *NotificationBuilder) WithImage(include bool) *NotificationBuilder {
	b.n.IncludeImage = include
	return b
}

func (b *NotificationBuilder) WithTitle(title string) *NotificationBuilder {
	b.n.Title = title
	return b
}

func (b *NotificationBuilder) WithDescription(d string) *NotificationBuilder {
	b.n.Description = d
	return b
}

func (b *NotificationBuilder) Build() models.Notification {
	return b.n
}
