package clickhouse

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/secintel/secintel/internal/entity"
)

// EventsRepository reads and writes security events in ClickHouse. Its read
// side satisfies the analytics engine's EventStore interface.
type EventsRepository struct {
	conn   *Connection
	logger *slog.Logger
}

// NewEventsRepository creates a new events repository
func NewEventsRepository(conn *Connection, logger *slog.Logger) *EventsRepository {
	return &EventsRepository{
		conn:   conn,
		logger: logger,
	}
}

const eventColumns = `
	event_id, timestamp, source_ip, destination_ip,
	source_port, destination_port, protocol, event_type,
	severity, severity_score, description, threat_category,
	action_taken, user_agent, geo_country, raw_log`

func buildWhere(filters entity.EventFilters) (string, []interface{}) {
	conditions := []string{"1=1"}
	args := []interface{}{}

	if filters.Severity != "" {
		conditions = append(conditions, "severity = ?")
		args = append(args, filters.Severity)
	}
	if filters.EventType != "" {
		conditions = append(conditions, "event_type = ?")
		args = append(args, filters.EventType)
	}
	if filters.SrcIP != "" {
		conditions = append(conditions, "source_ip = ?")
		args = append(args, filters.SrcIP)
	}
	if !filters.StartTime.IsZero() {
		conditions = append(conditions, "timestamp >= ?")
		args = append(args, filters.StartTime)
	}
	if !filters.EndTime.IsZero() {
		conditions = append(conditions, "timestamp <= ?")
		args = append(args, filters.EndTime)
	}

	return strings.Join(conditions, " AND "), args
}

// Events retrieves all events matching the filters, ordered newest first.
func (r *EventsRepository) Events(ctx context.Context, filters entity.EventFilters) ([]entity.SecurityEvent, error) {
	whereClause, args := buildWhere(filters)

	query := fmt.Sprintf(`
		SELECT %s
		FROM security_events
		WHERE %s
		ORDER BY timestamp DESC
	`, eventColumns, whereClause)

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer rows.Close()

	var events []entity.SecurityEvent
	for rows.Next() {
		var e entity.SecurityEvent
		if err := rows.Scan(
			&e.EventID, &e.Timestamp, &e.SrcIP, &e.DstIP,
			&e.SrcPort, &e.DstPort, &e.Protocol, &e.EventType,
			&e.Severity, &e.SeverityScore, &e.Description, &e.ThreatCategory,
			&e.ActionTaken, &e.UserAgent, &e.GeoCountry, &e.RawLog,
		); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, e)
	}

	return events, nil
}

// Count reports the number of matching events without materializing rows.
func (r *EventsRepository) Count(ctx context.Context, filters entity.EventFilters) (uint64, error) {
	whereClause, args := buildWhere(filters)

	query := fmt.Sprintf(`SELECT count() FROM security_events WHERE %s`, whereClause)
	var total uint64
	if err := r.conn.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count events: %w", err)
	}

	return total, nil
}

// InsertBatch writes a batch of events. Events whose severity score falls
// outside the tier's range are rejected here; the analytics engine is a
// read-only consumer and never validates.
func (r *EventsRepository) InsertBatch(ctx context.Context, events []entity.SecurityEvent) error {
	for i, e := range events {
		if !entity.ValidScore(e.Severity, e.SeverityScore) {
			return fmt.Errorf("event %d: severity score %d outside %q tier range", i, e.SeverityScore, e.Severity)
		}
	}

	batch, err := r.conn.PrepareBatch(ctx, fmt.Sprintf(`INSERT INTO security_events (%s)`, eventColumns))
	if err != nil {
		return fmt.Errorf("failed to prepare batch: %w", err)
	}

	for _, e := range events {
		if err := batch.Append(
			e.EventID, e.Timestamp, e.SrcIP, e.DstIP,
			e.SrcPort, e.DstPort, e.Protocol, e.EventType,
			e.Severity, e.SeverityScore, e.Description, e.ThreatCategory,
			e.ActionTaken, e.UserAgent, e.GeoCountry, e.RawLog,
		); err != nil {
			return fmt.Errorf("failed to append event: %w", err)
		}
	}

	if err := batch.Send(); err != nil {
		return fmt.Errorf("failed to send batch: %w", err)
	}

	return nil
}
