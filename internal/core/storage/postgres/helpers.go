package postgres

import (
	"encoding/json"
	"fmt"
	"strings"

	v1 "github.com/storefront-lab/pulse/internal/api/v1"
	"github.com/storefront-lab/pulse/internal/core/storage"
)

// marshalMetadata encodes an event's metadata as JSON.
//
// Nil or empty metadata produces nil (SQL NULL) rather than JSON "null".
func marshalMetadata(evt *v1.AnalyticsEvent) ([]byte, error) {
	if len(evt.Metadata) == 0 {
		return nil, nil
	}
	metadataJSON, err := json.Marshal(evt.Metadata)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal metadata: %w", err)
	}
	return metadataJSON, nil
}

// filterClause renders the AND-conditions for filter, numbering
// placeholders from 1, and returns the matching argument list.
func filterClause(filter storage.EventFilter) (string, []interface{}) {
	var (
		b    strings.Builder
		args []interface{}
	)

	add := func(cond string, arg interface{}) {
		args = append(args, arg)
		fmt.Fprintf(&b, " AND %s $%d", cond, len(args))
	}

	if filter.EventType != "" {
		add("event_type =", filter.EventType)
	}
	if !filter.Since.IsZero() {
		add("created_at >=", filter.Since)
	}
	if !filter.Before.IsZero() {
		add("created_at <", filter.Before)
	}
	if !filter.Through.IsZero() {
		add("created_at <=", filter.Through)
	}

	return b.String(), args
}

type scanner interface {
	Scan(dest ...interface{}) error
}

// scanEventRow scans a database row into an AnalyticsEvent.
// Compatible with both sql.Row (single) and sql.Rows (multiple).
func scanEventRow(row scanner) (*v1.AnalyticsEvent, error) {
	var evt v1.AnalyticsEvent
	var metadataJSON []byte

	if err := row.Scan(&evt.ID, &evt.EventType, &evt.CreatedAt, &metadataJSON); err != nil {
		return nil, fmt.Errorf("failed to scan event row: %w", err)
	}

	if len(metadataJSON) > 0 {
		if err := json.Unmarshal(metadataJSON, &evt.Metadata); err != nil {
			return nil, fmt.Errorf("failed to unmarshal metadata: %w", err)
		}
	}

	return &evt, nil
}
