package cli

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"movie-quiz/internal/app"
	"movie-quiz/internal/config"
	"movie-quiz/internal/domain"
	"movie-quiz/internal/infra/imdb"
	"movie-quiz/internal/infra/imgx"
	"movie-quiz/internal/infra/memory"
	pgstore "movie-quiz/internal/infra/postgres"
	redisstore "movie-quiz/internal/infra/redis"
	"movie-quiz/internal/infra/sqlite"
)

// deps holds the adapters shared by every engine built from one config.
type deps struct {
	source  app.DataSource
	images  app.ImageLoader
	kv      app.KeyValueStore
	closers []func()

	// one store per namespace, so Record is serialized across engines
	statsMu sync.Mutex
	stats   map[string]*app.StatisticsStore
}

func (d *deps) statistics(namespace string) *app.StatisticsStore {
	d.statsMu.Lock()
	defer d.statsMu.Unlock()
	if d.stats == nil {
		d.stats = make(map[string]*app.StatisticsStore)
	}
	store, ok := d.stats[namespace]
	if !ok {
		store = app.NewStatisticsStore(d.kv, app.WithNamespace(namespace))
		d.stats[namespace] = store
	}
	return store
}

func (d *deps) Close() {
	for i := len(d.closers) - 1; i >= 0; i-- {
		d.closers[i]()
	}
}

func buildDeps(ctx context.Context, cfg config.Config) (*deps, error) {
	d := &deps{}

	var pool *pgxpool.Pool
	if cfg.Postgres.URL != "" && (cfg.Source.Kind == "postgres" || cfg.Stats.Backend == "postgres") {
		if err := runMigrationsWithConfig(ctx, cfg); err != nil {
			return nil, err
		}
		p, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return nil, err
		}
		pool = p
		d.closers = append(d.closers, pool.Close)
	}

	client := imdb.NewClient(imdb.Options{
		URL:          cfg.Source.URL,
		APIKey:       cfg.Source.APIKey,
		MaxItems:     cfg.Source.MaxItems,
		Timeout:      config.Duration(cfg.Source.Timeout, 20*time.Second),
		ResizeImages: cfg.Source.ResizeImages,
	})
	d.images = imgx.PlaceholderLoader{Next: client}

	var source memory.CatalogueSource
	switch cfg.Source.Kind {
	case "", "imdb":
		source = client
	case "postgres":
		if pool == nil {
			d.Close()
			return nil, fmt.Errorf("source kind postgres needs postgres.url")
		}
		source = pgstore.NewCatalogueLoader(pool, cfg.Source.MaxItems)
	case "static":
		source = memory.NewStaticCatalogue(sampleMovies())
	default:
		d.Close()
		return nil, fmt.Errorf("unknown source kind %q", cfg.Source.Kind)
	}
	d.source = memory.NewCoalescingSource(source)

	switch cfg.Stats.Backend {
	case "", "memory":
		d.kv = memory.NewKVStore()
	case "redis":
		if cfg.Redis.Addr == "" {
			d.Close()
			return nil, fmt.Errorf("stats backend redis needs redis.addr")
		}
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		d.closers = append(d.closers, func() { _ = rdb.Close() })
		d.kv = redisstore.NewKVStore(rdb)
	case "postgres":
		if pool == nil {
			d.Close()
			return nil, fmt.Errorf("stats backend postgres needs postgres.url")
		}
		d.kv = pgstore.NewKVStore(pool)
	case "sqlite":
		path := cfg.Stats.SQLitePath
		if path == "" {
			path = "movie-quiz.db"
		}
		store, err := sqlite.NewKVStore(ctx, path)
		if err != nil {
			d.Close()
			return nil, err
		}
		d.closers = append(d.closers, func() { _ = store.Close() })
		d.kv = store
	default:
		d.Close()
		return nil, fmt.Errorf("unknown stats backend %q", cfg.Stats.Backend)
	}

	log.Printf("catalogue source=%s stats backend=%s", orDefault(cfg.Source.Kind, "imdb"), orDefault(cfg.Stats.Backend, "memory"))
	return d, nil
}

// newEngine wires one engine. Each engine gets its own factory so question
// pools never leak between sessions; engines on the same namespace share a statistics store.
func (d *deps) newEngine(cfg config.Config, port app.PresentationPort, sched app.Scheduler, namespace string) *app.Engine {
	locale := app.LocaleFor(cfg.Quiz.Locale)
	factory := app.NewQuestionFactory(d.source, d.images, app.WithLocale(locale))
	return app.NewEngine(factory, d.statistics(namespace), imgx.Decoder{}, port, sched, app.EngineConfig{
		QuestionsAmount: cfg.Quiz.Questions,
		FeedbackDelay:   config.Duration(cfg.Quiz.FeedbackDelay, app.DefaultFeedbackDelay),
		Locale:          locale,
	})
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

// sampleMovies backs the offline "static" source. Posters are rendered locally.
func sampleMovies() []domain.Movie {
	movies := []domain.Movie{
		{ID: "tt0111161", Title: "The Shawshank Redemption", Rating: "9.2"},
		{ID: "tt0068646", Title: "The Godfather", Rating: "9.2"},
		{ID: "tt0468569", Title: "The Dark Knight", Rating: "9.0"},
		{ID: "tt0137523", Title: "Fight Club", Rating: "8.8"},
		{ID: "tt1431045", Title: "Deadpool", Rating: "8.0"},
		{ID: "tt3896198", Title: "Guardians of the Galaxy Vol. 2", Rating: "7.6"},
		{ID: "tt8772262", Title: "Midsommar", Rating: "7.1"},
		{ID: "tt6823368", Title: "Glass", Rating: "6.6"},
		{ID: "tt8383596", Title: "Tesla", Rating: "5.1"},
		{ID: "tt8633478", Title: "Vivarium", Rating: "5.8"},
	}
	for i := range movies {
		movies[i].ImageURL = imgx.PlaceholderScheme + movies[i].ID
	}
	return movies
}
