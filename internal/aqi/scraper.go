// internal/aqi/scraper.go
// Scraper AQICN: ambil halaman kota lalu parse nilai AQI dari div.aqivalue

package aqi

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"golang.org/x/sync/errgroup"

	"mcp-airquality/pkg/aqiscale"
)

const DefaultBaseURL = "https://aqicn.org/city/indonesia/"

// Scraper mengambil data AQI per kota dari aqicn.org.
type Scraper struct {
	http    *resty.Client
	baseURL string
	maxConc int
}

type ScraperOption func(*Scraper)

// WithBaseURL mengganti base URL (dipakai test dengan httptest.Server).
func WithBaseURL(u string) ScraperOption {
	return func(s *Scraper) {
		if !strings.HasSuffix(u, "/") {
			u += "/"
		}
		s.baseURL = u
	}
}

// WithConcurrency membatasi jumlah fetch paralel.
func WithConcurrency(n int) ScraperOption {
	return func(s *Scraper) {
		if n > 0 {
			s.maxConc = n
		}
	}
}

func NewScraper(opts ...ScraperOption) *Scraper {
	c := resty.New().
		SetTimeout(15 * time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(500 * time.Millisecond).
		SetHeader("User-Agent", "mcp-airquality/1.0 (+air quality reporter)")

	s := &Scraper{
		http:    c,
		baseURL: DefaultBaseURL,
		maxConc: 8,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// FetchCity mengambil satu halaman kota dan mengembalikan Reading.
// Error bila HTTP gagal, div.aqivalue tidak ada, atau nilainya non-numerik
// (aqicn menampilkan "-" saat stasiun offline).
func (s *Scraper) FetchCity(ctx context.Context, slug string) (Reading, error) {
	slug = strings.TrimSpace(strings.ToLower(slug))
	if slug == "" {
		return Reading{}, fmt.Errorf("empty city slug")
	}

	resp, err := s.http.R().SetContext(ctx).Get(s.baseURL + slug)
	if err != nil {
		return Reading{}, fmt.Errorf("fetch %s: %w", slug, err)
	}
	if resp.StatusCode() != 200 {
		return Reading{}, fmt.Errorf("fetch %s: http status %d", slug, resp.StatusCode())
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(resp.String()))
	if err != nil {
		return Reading{}, fmt.Errorf("parse %s: %w", slug, err)
	}

	raw := strings.TrimSpace(doc.Find("div.aqivalue").First().Text())
	if raw == "" {
		return Reading{}, fmt.Errorf("parse %s: aqi value not found", slug)
	}
	val, err := strconv.Atoi(raw)
	if err != nil {
		// "-", "n/a", dsb. -> stasiun tidak melaporkan angka
		return Reading{}, fmt.Errorf("parse %s: non-numeric aqi %q", slug, raw)
	}
	if val < 0 || val > 999 {
		return Reading{}, fmt.Errorf("parse %s: aqi %d out of range", slug, val)
	}

	r := Reading{
		City:      DisplayName(slug),
		Slug:      slug,
		AQI:       val,
		Category:  aqiscale.Category(val),
		FetchedAt: time.Now().UTC(),
	}
	// Polutan dominan opsional; tidak semua halaman menampilkannya.
	if p := strings.TrimSpace(doc.Find("#dominentpollutant").First().Text()); p != "" {
		r.Pollutant = p
	}
	return r, nil
}

// FetchAll mengambil semua kota secara paralel (dibatasi maxConc).
// Kota yang gagal hanya di-log lalu dilewati; run tetap berjalan.
func (s *Scraper) FetchAll(ctx context.Context, slugs []string) []Reading {
	if len(slugs) == 0 {
		slugs = DefaultCities
	}

	var (
		mu  sync.Mutex
		out []Reading
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.maxConc)

	for _, slug := range slugs {
		slug := slug
		g.Go(func() error {
			r, err := s.FetchCity(gctx, slug)
			if err != nil {
				log.Printf("[WARN] aqi scrape %s: %v", slug, err)
				return nil // jangan batalkan kota lain
			}
			mu.Lock()
			out = append(out, r)
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	SortReadings(out)
	return out
}
