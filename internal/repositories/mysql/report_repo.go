// repositories/mysql/report_repo.go
// Repo untuk riwayat laporan kualitas udara

package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"
)

type ReportRepo struct {
	DB *sql.DB
}

func NewReportRepo(db *sql.DB) *ReportRepo { return &ReportRepo{DB: db} }

// ReportRow adalah satu baris aq_reports.
type ReportRow struct {
	ID            int64
	CreatedAt     time.Time
	CityCount     int
	Summary       string
	SummarySource string // "llm" | "fallback"
	PostedToSlack bool
	SlackChannel  sql.NullString
	SlackTS       sql.NullString
}

// ReadingRow adalah satu baris aq_readings (detail per kota).
type ReadingRow struct {
	ReportID int64
	City     string
	Slug     string
	AQI      int
	Category string
}

// Filter used by the HTTP/MCP layer
type ReportFilter struct {
	Since  *time.Time
	Until  *time.Time
	Posted *bool
	Limit  int
	Offset int
}

// Save menyimpan satu laporan beserta readings-nya dalam satu transaksi.
func (r *ReportRepo) Save(ctx context.Context, rep ReportRow, readings []ReadingRow) (int64, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		INSERT INTO aq_reports
			(created_at, city_count, summary, summary_source, posted_to_slack, slack_channel, slack_ts)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rep.CreatedAt.UTC(), rep.CityCount, rep.Summary, rep.SummarySource,
		rep.PostedToSlack, rep.SlackChannel, rep.SlackTS,
	)
	if err != nil {
		return 0, fmt.Errorf("insert aq_reports: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}

	if len(readings) > 0 {
		// bulk insert readings
		sb := strings.Builder{}
		sb.WriteString("INSERT INTO aq_readings (report_id, city, slug, aqi, category) VALUES ")
		var args []any
		rows := make([]string, 0, len(readings))
		for _, rd := range readings {
			rows = append(rows, "("+placeholders(5)+")")
			args = append(args, id, rd.City, rd.Slug, rd.AQI, rd.Category)
		}
		sb.WriteString(strings.Join(rows, ","))
		if _, err := tx.ExecContext(ctx, sb.String(), args...); err != nil {
			return 0, fmt.Errorf("insert aq_readings: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return id, nil
}

// List builds a dynamic WHERE and supports limit/offset and time range
func (r *ReportRepo) List(ctx context.Context, f ReportFilter) ([]ReportRow, error) {
	sb := strings.Builder{}
	sb.WriteString(`
		SELECT id, created_at, city_count, summary, summary_source,
		       posted_to_slack, slack_channel, slack_ts
		FROM aq_reports
	`)

	var (
		where []string
		args  []any
	)

	if f.Since != nil {
		where = append(where, "created_at >= ?")
		args = append(args, f.Since.UTC())
	}
	if f.Until != nil {
		where = append(where, "created_at < ?")
		args = append(args, f.Until.UTC())
	}
	if f.Posted != nil {
		where = append(where, "posted_to_slack = ?")
		args = append(args, *f.Posted)
	}

	if len(where) > 0 {
		sb.WriteString(" WHERE ")
		sb.WriteString(strings.Join(where, " AND "))
	}

	sb.WriteString(" ORDER BY created_at DESC ")

	limit := f.Limit
	if limit <= 0 || limit > 200 {
		limit = 20
	}
	offset := f.Offset
	if offset < 0 {
		offset = 0
	}
	sb.WriteString(" LIMIT ? OFFSET ? ")
	args = append(args, limit, offset)

	rows, err := r.DB.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("query aq_reports: %w", err)
	}
	defer rows.Close()

	var out []ReportRow
	for rows.Next() {
		var row ReportRow
		if err := rows.Scan(
			&row.ID, &row.CreatedAt, &row.CityCount, &row.Summary, &row.SummarySource,
			&row.PostedToSlack, &row.SlackChannel, &row.SlackTS,
		); err != nil {
			return nil, fmt.Errorf("scan aq_reports: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// Latest mengambil laporan paling baru (nil bila tabel kosong).
func (r *ReportRepo) Latest(ctx context.Context) (*ReportRow, error) {
	rows, err := r.List(ctx, ReportFilter{Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

// Readings mengambil detail per kota untuk satu laporan.
func (r *ReportRepo) Readings(ctx context.Context, reportID int64) ([]ReadingRow, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT report_id, city, slug, aqi, category
		FROM aq_readings
		WHERE report_id = ?
		ORDER BY city ASC`, reportID)
	if err != nil {
		return nil, fmt.Errorf("query aq_readings: %w", err)
	}
	defer rows.Close()

	var out []ReadingRow
	for rows.Next() {
		var row ReadingRow
		if err := rows.Scan(&row.ReportID, &row.City, &row.Slug, &row.AQI, &row.Category); err != nil {
			return nil, fmt.Errorf("scan aq_readings: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
