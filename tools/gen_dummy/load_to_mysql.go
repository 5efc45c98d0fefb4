/*
Kompilasi manual:
  go build -o tools/gen_dummy/load_to_mysql tools/gen_dummy/load_to_mysql.go

Pakai contoh:
  ./tools/gen_dummy/load_to_mysql \
    -table aq_readings \
    -csv tools/gen_dummy/sample_readings.csv \
    -dsn "aquser:secret@tcp(127.0.0.1:3306)/airquality?parseTime=true&multiStatements=true" \
    -batch 2000
*/

// [FILE] tools/gen_dummy/load_to_mysql.go
package main

import (
	"bufio"
	"database/sql"
	"encoding/csv"
	"errors"
	"flag"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	_ "github.com/go-sql-driver/mysql"
)

var (
	csvPath   = flag.String("csv", "tools/gen_dummy/sample_readings.csv", "CSV path")
	dsn       = flag.String("dsn", "root:password@tcp(127.0.0.1:3306)/airquality?parseTime=true&multiStatements=true", "MySQL DSN")
	table     = flag.String("table", "aq_readings", "Target table (aq_reports|aq_readings)")
	batchSize = flag.Int("batch", 1000, "Insert batch size")
	truncate  = flag.Bool("truncate", false, "TRUNCATE target table first")
)

func must(err error) { if err != nil { log.Fatal(err) } }

func main() {
	flag.Parse()

	allowed := map[string]bool{
		"aq_reports":  true,
		"aq_readings": true,
	}
	if !allowed[*table] {
		log.Fatalf("unsupported table: %s", *table)
	}

	db, err := sql.Open("mysql", *dsn)
	must(err)
	defer db.Close()
	must(db.Ping())

	if *truncate {
		_, err := db.Exec("TRUNCATE TABLE " + *table)
		must(err)
		log.Printf("[ok] truncated %s", *table)
		if *csvPath == "/dev/null" {
			return
		}
	}

	f, err := os.Open(*csvPath)
	must(err)
	defer f.Close()

	r := csv.NewReader(bufio.NewReader(f))
	r.FieldsPerRecord = -1

	head, err := r.Read()
	must(err)

	switch *table {
	case "aq_reports":
		loadReports(db, r, head)
	case "aq_readings":
		loadReadings(db, r, head)
	}
}

/* ======================= Common Helpers ======================= */

func headerIndex(h []string) map[string]int {
	m := map[string]int{}
	for i, c := range h {
		c = strings.TrimSpace(strings.ToLower(c))
		c = strings.TrimPrefix(c, "\ufeff")
		m[c] = i
	}
	return m
}

func ensureColumns(idx map[string]int, need []string) {
	for _, c := range need {
		if _, ok := idx[c]; !ok {
			log.Fatalf("missing column %q in CSV header", c)
		}
	}
}

func readRow(r *csv.Reader) ([]string, error) {
	rec, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		return nil, err
	}
	return rec, nil
}

/* ======================= aq_reports ======================= */

func loadReports(db *sql.DB, r *csv.Reader, head []string) {
	idx := headerIndex(head)
	need := []string{"created_at", "city_count", "summary", "summary_source", "posted_to_slack"}
	ensureColumns(idx, need)

	vals := make([]interface{}, 0, *batchSize*5)
	rows := 0
	for {
		rec, err := readRow(r)
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			log.Fatal(err)
		}

		posted := 0
		if v := strings.TrimSpace(rec[idx["posted_to_slack"]]); v == "1" || strings.EqualFold(v, "true") {
			posted = 1
		}

		vals = append(vals,
			rec[idx["created_at"]],
			rec[idx["city_count"]],
			rec[idx["summary"]],
			rec[idx["summary_source"]],
			posted,
		)
		rows++
		if rows%*batchSize == 0 {
			flushReports(db, &vals)
		}
	}
	if len(vals) > 0 {
		flushReports(db, &vals)
	}
	log.Printf("[ok] inserted aq_reports rows: ~%d", rows)
}

func flushReports(db *sql.DB, vals *[]interface{}) {
	if len(*vals) == 0 {
		return
	}
	placeholders := strings.Repeat("(?, ?, ?, ?, ?),", len(*vals)/5)
	placeholders = strings.TrimRight(placeholders, ",")
	q := "INSERT INTO aq_reports(created_at, city_count, summary, summary_source, posted_to_slack) VALUES " + placeholders
	_, err := db.Exec(q, *vals...)
	must(err)
	*vals = (*vals)[:0]
}

/* ======================= aq_readings ======================= */

func loadReadings(db *sql.DB, r *csv.Reader, head []string) {
	idx := headerIndex(head)
	need := []string{"report_id", "city", "slug", "aqi", "category"}
	ensureColumns(idx, need)

	vals := make([]interface{}, 0, *batchSize*5)
	rows := 0
	for {
		rec, err := readRow(r)
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			log.Fatal(err)
		}

		aqiStr := strings.TrimSpace(rec[idx["aqi"]])
		aqiVal, err := strconv.Atoi(aqiStr)
		if err != nil {
			// baris non-angka dilewati, sama seperti scraper
			log.Printf("[WARN] skip row: aqi %q bukan angka", aqiStr)
			continue
		}

		vals = append(vals,
			rec[idx["report_id"]],
			rec[idx["city"]],
			rec[idx["slug"]],
			aqiVal,
			rec[idx["category"]],
		)
		rows++
		if rows%*batchSize == 0 {
			flushReadings(db, &vals)
		}
	}
	if len(vals) > 0 {
		flushReadings(db, &vals)
	}
	log.Printf("[ok] inserted aq_readings rows: ~%d", rows)
}

func flushReadings(db *sql.DB, vals *[]interface{}) {
	if len(*vals) == 0 {
		return
	}
	placeholders := strings.Repeat("(?, ?, ?, ?, ?),", len(*vals)/5)
	placeholders = strings.TrimRight(placeholders, ",")
	q := "INSERT INTO aq_readings(report_id, city, slug, aqi, category) VALUES " + placeholders
	_, err := db.Exec(q, *vals...)
	must(err)
	*vals = (*vals)[:0]
}
