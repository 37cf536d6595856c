package store

const (
	upsertEntry = `
		INSERT INTO entries (
			id,
			vessel,
			date,
			start_time,
			end_time,
			activity,
			tag,
			pending_sync
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			vessel       = excluded.vessel,
			date         = excluded.date,
			start_time   = excluded.start_time,
			end_time     = excluded.end_time,
			activity     = excluded.activity,
			tag          = excluded.tag,
			pending_sync = excluded.pending_sync;`

	getEntry = `
		SELECT
			id,
			vessel,
			date,
			start_time,
			end_time,
			activity,
			tag,
			pending_sync
		FROM entries
		WHERE id = ?;`

	getEntriesForVesselDate = `
		SELECT
			id,
			vessel,
			date,
			start_time,
			end_time,
			activity,
			tag,
			pending_sync
		FROM entries
		WHERE vessel = ? AND date = ?
		ORDER BY start_time, id;`

	deleteEntry = `
		DELETE FROM entries
		WHERE id = ?;`

	deleteSyncedEntriesForVesselDate = `
		DELETE FROM entries
		WHERE vessel = ? AND date = ? AND pending_sync = 0;`

	getListItems = `
		SELECT
			name,
			email,
			role,
			color,
			record_id,
			position
		FROM list_items
		WHERE kind = ?
		ORDER BY position, name;`

	countListItems = `
		SELECT COUNT(*)
		FROM list_items
		WHERE kind = ?;`

	deleteListItems = `
		DELETE FROM list_items
		WHERE kind = ?;`

	insertListItem = `
		INSERT INTO list_items (
			kind,
			name,
			email,
			role,
			color,
			record_id,
			position
		) VALUES (?, ?, ?, ?, ?, ?, ?);`

	saveSession = `
		INSERT INTO session (id, payload, saved_at)
		VALUES (1, ?, CURRENT_TIMESTAMP)
		ON CONFLICT (id) DO UPDATE SET
			payload  = excluded.payload,
			saved_at = CURRENT_TIMESTAMP;`

	getSession = `
		SELECT payload
		FROM session
		WHERE id = 1;`

	deleteSession = `
		DELETE FROM session
		WHERE id = 1;`
)
