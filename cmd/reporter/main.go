// cmd/reporter/main.go
// Run-once: scrape AQI 20 kota -> ringkas -> post Slack -> simpan riwayat.
// Dipakai dari cron / CI; exit non-zero bila tidak ada data sama sekali.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"mcp-airquality/internal/config"
	mysqlrepo "mcp-airquality/internal/repositories/mysql"
	"mcp-airquality/internal/services"
	"mcp-airquality/internal/util"
	"mcp-airquality/pkg/db"
)

func main() {
	var (
		citiesCSV = flag.String("cities", "", "comma-separated city slugs (default: semua kota)")
		channel   = flag.String("channel", "", "Slack channel ID override")
		dryRun    = flag.Bool("dry-run", false, "skip posting ke Slack")
		timeout   = flag.Duration("timeout", 3*time.Minute, "run timeout")
	)
	flag.Parse()

	cfg := config.Load()

	// Riwayat opsional: hanya bila MYSQL_PASSWORD atau DB_DSN di-set.
	var repo *mysqlrepo.ReportRepo
	if os.Getenv("DB_DSN") != "" || os.Getenv("MYSQL_PASSWORD") != "" {
		conn, err := db.NewMySQL()
		if err != nil {
			log.Printf("[WARN] open mysql: %v", err)
		} else if err := conn.Ping(); err != nil {
			log.Printf("[WARN] ping mysql: %v (riwayat dilewati)", err)
		} else {
			repo = &mysqlrepo.ReportRepo{DB: conn}
			defer conn.Close()
		}
	}

	pub := services.NewPublisher(cfg, repo)

	var cities []string
	if *citiesCSV != "" {
		for _, s := range strings.Split(*citiesCSV, ",") {
			if s = strings.TrimSpace(s); s != "" {
				cities = append(cities, s)
			}
		}
	}

	runID := util.NewID()
	log.Printf("reporter run %s start (cities=%d dry_run=%v)", runID, len(cities), *dryRun)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	res, err := pub.Run(ctx, services.PublishOptions{
		Cities:    cities,
		ChannelID: *channel,
		DryRun:    *dryRun,
	})
	if err != nil {
		if errors.Is(err, services.ErrNoData) {
			fmt.Println(res.Report.Summary)
			log.Printf("[ERROR] reporter run %s: no readings from any city", runID)
			os.Exit(1)
		}
		log.Fatalf("reporter run %s: %v", runID, err)
	}

	fmt.Println(res.Report.Summary)
	log.Printf("reporter run %s done: cities=%d source=%s posted=%v report_id=%d",
		runID, len(res.Report.Readings), res.Report.Source, res.Posted, res.ReportID)
}
