package store

import (
	"context"
	"database/sql"
)

// ListDevices returns all devices ordered by id
func (db *DB) ListDevices(ctx context.Context) ([]Device, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT _id, NAME, MODEL, ALIAS FROM DEVICE ORDER BY _id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var devices []Device
	for rows.Next() {
		var d Device
		var model, alias sql.NullString
		if err := rows.Scan(&d.ID, &d.Name, &model, &alias); err != nil {
			return nil, err
		}
		d.Model = model.String
		d.Alias = alias.String
		devices = append(devices, d)
	}

	return devices, rows.Err()
}
