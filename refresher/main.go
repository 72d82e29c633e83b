package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/beaten-by-the-market/krx-radar/internal/config"
	"github.com/beaten-by-the-market/krx-radar/internal/deepsearch"
	"github.com/beaten-by-the-market/krx-radar/internal/logger"
	"github.com/beaten-by-the-market/krx-radar/internal/models"
	"github.com/beaten-by-the-market/krx-radar/internal/roster"
)

func main() {
	log := logger.New("refresher")
	cfg, err := config.LoadRefresher()
	if err != nil {
		log.Error("load config", slog.Any("err", err))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	store, err := roster.NewStore(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("init roster store", slog.Any("err", err))
		os.Exit(1)
	}
	defer store.Close()

	if err := store.Ping(ctx); err != nil {
		log.Error("database unreachable", slog.Any("err", err))
		os.Exit(1)
	}

	ds := deepsearch.New(deepsearch.Config{
		BaseURL:            cfg.DeepSearchBaseURL,
		APIKey:             cfg.DeepSearchAPIKey,
		Timeout:            cfg.RequestTimeout,
		MaxRetries:         cfg.MaxRetries,
		RetryDelay:         cfg.RetryDelay,
		RequestsPerSecond:  cfg.RequestsPerSecond,
		InsecureSkipVerify: cfg.InsecureSkipVerify,
	}, log)

	if err := refresh(ctx, log, ds, store, cfg); err != nil {
		log.Error("roster refresh failed", slog.Any("err", err))
		os.Exit(1)
	}

	// Zero interval means one-shot, for cron-driven deployments.
	if cfg.Interval <= 0 {
		return
	}

	ticker := time.NewTicker(cfg.Interval)
	defer ticker.Stop()
	log.Info("refresher running", slog.Duration("interval", cfg.Interval))

	for {
		select {
		case <-ctx.Done():
			log.Info("shutdown signal received")
			return
		case <-ticker.C:
			if err := refresh(ctx, log, ds, store, cfg); err != nil {
				log.Warn("roster refresh failed (will retry on next interval)", slog.Any("err", err))
			}
		}
	}
}

// entitySource is the slice of the DeepSearch client the refresh needs.
type entitySource interface {
	ListedCompanies(ctx context.Context, market models.Market) ([]deepsearch.Listing, error)
	EntityProfile(ctx context.Context, symbol string) (models.EntitySummary, error)
}

type rosterWriter interface {
	Replace(ctx context.Context, summaries []models.EntitySummary) error
}

func refresh(ctx context.Context, log *slog.Logger, ds entitySource, store rosterWriter, cfg *config.Refresher) error {
	started := time.Now()

	summaries, err := buildSnapshot(ctx, log, ds, cfg.Markets, cfg.Workers)
	if err != nil {
		return err
	}
	if len(summaries) == 0 {
		return fmt.Errorf("refusing to replace roster with an empty snapshot")
	}

	if err := store.Replace(ctx, summaries); err != nil {
		return err
	}

	log.Info("roster refreshed",
		slog.Int("companies", len(summaries)),
		slog.Duration("took", time.Since(started).Round(time.Second)),
	)
	return nil
}

// buildSnapshot lists every company on the configured boards, fetches each
// registration profile with a bounded worker pool, and stamps the batch
// with the Seoul-time date. Holding companies stay; funds and other
// non-operating vehicles are dropped.
func buildSnapshot(ctx context.Context, log *slog.Logger, ds entitySource, markets []models.Market, workers int) ([]models.EntitySummary, error) {
	var listings []deepsearch.Listing
	for _, market := range markets {
		batch, err := ds.ListedCompanies(ctx, market)
		if err != nil {
			return nil, fmt.Errorf("list %s: %w", market, err)
		}
		log.Info("listed companies fetched",
			slog.String("market", string(market)),
			slog.Int("count", len(batch)),
		)
		listings = append(listings, batch...)
	}

	if workers <= 0 {
		workers = 1
	}
	results := make([]*models.EntitySummary, len(listings))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				listing := listings[i]
				sum, err := ds.EntityProfile(ctx, listing.Symbol)
				if err != nil {
					log.Warn("profile fetch failed, skipping",
						slog.String("symbol", listing.Symbol),
						slog.Any("err", err),
					)
					continue
				}
				sum.Market = listing.Market
				if sum.Name == "" {
					sum.Name = listing.Name
				}
				results[i] = &sum
			}
		}()
	}

	for i := range listings {
		select {
		case <-ctx.Done():
			close(jobs)
			wg.Wait()
			return nil, ctx.Err()
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()

	stamp := seoulDate(time.Now())
	out := make([]models.EntitySummary, 0, len(results))
	for _, sum := range results {
		if sum == nil {
			continue
		}
		if !isOperatingCompany(*sum) {
			continue
		}
		sum.LastUpdate = stamp
		out = append(out, *sum)
	}

	log.Info("snapshot built",
		slog.Int("listed", len(listings)),
		slog.Int("kept", len(out)),
		slog.String("last_update", stamp),
	)
	return out, nil
}

// isOperatingCompany filters out ETFs and other non-corporate listings.
// Type code 1 is a regular corporation; 8 covers funds and trusts.
func isOperatingCompany(sum models.EntitySummary) bool {
	return sum.CompanyTypeL1 == "1"
}

func seoulDate(now time.Time) string {
	loc, err := time.LoadLocation("Asia/Seoul")
	if err != nil {
		loc = time.FixedZone("KST", 9*60*60)
	}
	return now.In(loc).Format("20060102")
}
