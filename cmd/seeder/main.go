package main

import (
	"context"
	"database/sql"
	"sync"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"villastay/internal/adapters/observability"
	redisad "villastay/internal/adapters/redis"
	"villastay/internal/app"
	"villastay/internal/domain"
	"villastay/internal/shared"
	mysqlrepo "villastay/internal/storage/mysql"
)

type seedVilla struct {
	villa domain.Villa
	// per-night rate: base + idx*step
	base, step int64
	// 0-based night index forced unavailable; -1 for none
	blockedNight int
}

var seedVillas = []seedVilla{
	{villa: domain.Villa{ID: 1, Name: "Villa Goa Sunset", Location: "Goa"}, base: 30000, step: 1000, blockedNight: -1},
	{villa: domain.Villa{ID: 2, Name: "Villa Kerala Backwaters", Location: "Kochi"}, base: 25000, step: 500, blockedNight: 2},
	{villa: domain.Villa{ID: 3, Name: "Villa Alibaug Breeze", Location: "Alibaug"}, base: 18000, step: 750, blockedNight: -1},
	{villa: domain.Villa{ID: 4, Name: "Villa Lonavala Heights", Location: "Lonavala"}, base: 22000, step: 0, blockedNight: 0},
}

func main() {
	ctx := context.Background()
	cfg := shared.Load()

	log.Logger = observability.NewLogger(cfg.AppEnv)

	start, err := domain.ParseDate(cfg.SeedStart)
	if err != nil {
		log.Fatal().Str("seed_start", cfg.SeedStart).Msg("SEED_START must be YYYY-MM-DD")
	}

	log.Info().
		Str("start", cfg.SeedStart).
		Int("days", cfg.SeedDays).
		Int("workers", cfg.SeedWorkers).
		Msg("seeder starting")

	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("db ping ok")

	repo := mysqlrepo.New(db)
	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	seeder := app.NewSeedService(repo, cache, cfg.GSTRate)

	sem := semaphore.NewWeighted(int64(cfg.SeedWorkers))
	var wg sync.WaitGroup

	for _, sv := range seedVillas {
		sv := sv

		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			log.Fatal().Err(err).Msg("semaphore acquire failed")
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			defer sem.Release(1)

			recs := make([]domain.NightlyRecord, 0, cfg.SeedDays)
			for i := 0; i < cfg.SeedDays; i++ {
				recs = append(recs, domain.NightlyRecord{
					Date:        start.AddDate(0, 0, i),
					IsAvailable: i != sv.blockedNight,
					Rate:        sv.base + int64(i)*sv.step,
				})
			}
			if err := seeder.SeedVilla(ctx, sv.villa, recs); err != nil {
				log.Warn().Int64("id", sv.villa.ID).Err(err).Msg("seed failed")
				return
			}
			log.Info().Int64("id", sv.villa.ID).Int("nights", len(recs)).Msg("seed ok")
		}()
	}

	wg.Wait()
	log.Info().Msg("seeding completed")
}
