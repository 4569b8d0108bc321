package database

import (
	"context"
	"database/sql"
	"errors"
)

// Setting keys persisted between sessions.
const (
	SettingTheme      = "theme"
	SettingOnlyErrors = "only_errors"
)

func (d *Database) GetSetting(ctx context.Context, key string) (string, bool) {
	var value sql.NullString
	err := d.DB.QueryRowContext(ctx, "SELECT value FROM settings WHERE key = ?", key).Scan(&value)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			d.logger.Sugar().Warnw("read setting failed", "key", key, "error", err)
		}
		return "", false
	}
	return value.String, value.Valid
}

func (d *Database) SetSetting(ctx context.Context, key, value string) error {
	_, err := d.DB.ExecContext(ctx,
		"INSERT INTO settings (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		key, value)
	return wrapSettingErr("set", key, err)
}
