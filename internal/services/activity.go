package services

import (
	"time"

	"github.com/feel-write/feelwrite-backend/internal/database"
)

// RecordActivity inserts a page-view event. userID may be empty for anonymous
// views. A missing Postgres connection silently drops the event; activity
// tracking is optional in demo deployments.
func RecordActivity(userID, path string) error {
	if database.PostgresDB == nil {
		return nil
	}
	if len(path) > 500 {
		path = path[:500]
	}
	var err error
	if userID != "" {
		_, err = database.PostgresDB.Exec(`
			INSERT INTO activity_events (user_id, path, event_type, created_at)
			VALUES ($1, $2, 'page_view', NOW())
		`, userID, path)
	} else {
		_, err = database.PostgresDB.Exec(`
			INSERT INTO activity_events (user_id, path, event_type, created_at)
			VALUES (NULL, $1, 'page_view', NOW())
		`, path)
	}
	return err
}

// ActiveDays counts distinct days with recorded activity for the user in the
// trailing window. Returns 0 when Postgres is not configured.
func ActiveDays(userID string, since time.Time) (int, error) {
	if database.PostgresDB == nil || userID == "" {
		return 0, nil
	}
	var count int
	err := database.PostgresDB.QueryRow(`
		SELECT COUNT(DISTINCT (created_at)::date)
		FROM activity_events
		WHERE user_id = $1 AND created_at >= $2
	`, userID, since).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}
