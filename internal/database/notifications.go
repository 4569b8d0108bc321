package database

import (
	"context"
	"database/sql"

	"go.uber.org/zap"

	"github.com/akyairhashvil/notifit/internal/models"
	"github.com/akyairhashvil/notifit/internal/util"
)

const notificationColumns = `id, level, icon, include_image, title, description, has_error`

type scanner interface {
	Scan(dest ...any) error
}

func scanNotification(s scanner) (models.Notification, error) {
	var (
		n      models.Notification
		level  string
		icon   sql.NullString
		image  int
		hasErr int
	)
	if err := s.Scan(&n.ID, &level, &icon, &image, &n.Title, &n.Description, &hasErr); err != nil {
		return models.Notification{}, err
	}
	n.Level = models.Level(level)
	if !n.Level.Valid() {
		n.Level = models.LevelInformation
	}
	n.Icon = icon.String
	n.IncludeImage = util.IntToBool(image)
	n.HasError = util.IntToBool(hasErr)
	return n, nil
}

// SaveNotifications replaces the stored sheet with ns, preserving order.
func (d *Database) SaveNotifications(ctx context.Context, ns []models.Notification) error {
	err := d.WithTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM notifications"); err != nil {
			return err
		}
		stmt, err := tx.PrepareContext(ctx, `INSERT INTO notifications
			(id, position, level, icon, include_image, title, description, has_error, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)`)
		if err != nil {
			return err
		}
		defer stmt.Close()
		for i, n := range ns {
			if _, err := stmt.ExecContext(ctx, n.ID, i, string(n.Level), nullableString(n.Icon),
				util.BoolToInt(n.IncludeImage), n.Title, n.Description, util.BoolToInt(n.HasError)); err != nil {
				return wrapNotificationErr("save", n.ID, err)
			}
		}
		return nil
	})
	if err != nil {
		return wrapNotificationErr("save", "", err)
	}
	d.logger.Debug("sheet saved", zap.Int("rows", len(ns)))
	return nil
}

// LoadNotifications returns the stored sheet in order.
func (d *Database) LoadNotifications(ctx context.Context) ([]models.Notification, error) {
	rows, err := d.DB.QueryContext(ctx, "SELECT "+notificationColumns+" FROM notifications ORDER BY position ASC")
	if err != nil {
		return nil, wrapNotificationErr("load", "", err)
	}
	defer rows.Close()

	var out []models.Notification
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, wrapNotificationErr("scan", "", err)
		}
		out = append(out, n)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapNotificationErr("load", "", err)
	}
	return out, nil
}

// SetHasError updates only the stored flag of one row.
func (d *Database) SetHasError(ctx context.Context, id string, hasError bool) error {
	res, err := d.DB.ExecContext(ctx,
		"UPDATE notifications SET has_error = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		util.BoolToInt(hasError), id)
	if err != nil {
		return wrapNotificationErr("flag", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return wrapNotificationErr("flag", id, ErrRowNotFound)
	}
	return nil
}
