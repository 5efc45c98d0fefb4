// cmd/worker/main.go
// Scheduler: jalankan pipeline laporan tiap REPORT_INTERVAL (default 6h).
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mcp-airquality/internal/config"
	"mcp-airquality/internal/services"
	"mcp-airquality/internal/util"
)

func main() {
	cfg := config.Load()
	pub := services.NewPublisher(cfg, nil)
	clock := util.RealClock{}

	log.Printf("worker started, interval=%s", cfg.ReportInterval)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(cfg.ReportInterval)
	defer ticker.Stop()

	runOnce(pub)
	for {
		select {
		case <-ticker.C:
			runOnce(pub)
			log.Printf("next run at %s", clock.Now().Add(cfg.ReportInterval).Format(time.RFC3339))
		case sig := <-stop:
			log.Printf("worker stopping (%v)", sig)
			return
		}
	}
}

func runOnce(pub *services.ReportPublisher) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	res, err := pub.Run(ctx, services.PublishOptions{})
	if err != nil {
		log.Printf("[ERROR] scheduled run: %v", err)
		return
	}
	log.Printf("scheduled run done: cities=%d source=%s posted=%v",
		len(res.Report.Readings), res.Report.Source, res.Posted)
}
