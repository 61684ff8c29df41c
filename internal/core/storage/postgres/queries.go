package postgres

// SQL for the append-only analytics log.

const (
	eventsTable = "analytics_events"

	// queryAppendEvent inserts one event. id and created_at come from the
	// column defaults so the database clock is the single source of time.
	queryAppendEvent = `
		INSERT INTO analytics_events (event_type, metadata)
		VALUES ($1, $2)
		RETURNING id, created_at
	`

	// queryCountEvents is completed by filterClause.
	queryCountEvents = `
		SELECT COUNT(*)
		FROM analytics_events
		WHERE 1=1`

	// queryRetrieveEvents is completed by filterClause and an ORDER BY.
	queryRetrieveEvents = `
		SELECT id, event_type, created_at, metadata
		FROM analytics_events
		WHERE 1=1`

	queryRetrieveOrder = `
		ORDER BY created_at ASC, id ASC`

	// querySchemaExists checks the table created by the first migration.
	querySchemaExists = `
		SELECT EXISTS (
			SELECT FROM information_schema.tables
			WHERE table_name = $1
		)
	`
)
