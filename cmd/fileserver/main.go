package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"http-fileserver/server/fileserver"
	"http-fileserver/server/fileserver/domain"
	"http-fileserver/server/fileserver/infra"

	"github.com/redis/go-redis/v9"
)

func main() {
	cfg, err := readConfig()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	info, err := os.Stat(cfg.docRoot)
	if err != nil {
		log.Fatalf("document root %q: %v", cfg.docRoot, err)
	}
	if !info.IsDir() {
		log.Fatalf("document root %q is not a directory", cfg.docRoot)
	}

	resolver, err := infra.NewDocRootResolver(cfg.docRoot)
	if err != nil {
		log.Fatalf("resolver error: %v", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	var rdb *redis.Client
	if cfg.counterBackend == "redis" || cfg.statsEnabled {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.redisAddr,
			Password: cfg.redisPassword,
			DB:       cfg.redisDB,
		})
		defer func() { _ = rdb.Close() }()

		pingCtx, cancelPing := context.WithTimeout(ctx, 2*time.Second)
		_, err := rdb.Ping(pingCtx).Result()
		cancelPing()
		if err != nil {
			log.Fatalf("redis ping error: %v", err)
		}
	}

	var counters domain.CounterStore
	switch cfg.counterBackend {
	case "redis":
		counters = infra.NewRedisCounterStore(rdb, infra.WithCounterPrefix(cfg.counterPrefix))
	default:
		counters = infra.NewMemoryCounterStore(
			infra.WithRacyMode(cfg.demoRace),
			infra.WithStepDelay(cfg.raceStepDelay),
		)
	}

	var stats domain.StatsStore
	if cfg.statsEnabled {
		stats = infra.NewRedisStatsStore(
			rdb,
			infra.WithStatsPrefix(cfg.statsPrefix),
			infra.WithStatsTTL(cfg.statsTTL),
			infra.WithStatsBucket(cfg.statsBucket),
			infra.WithStatsTrackKeys(cfg.statsTrackKeys),
		)
	}

	limiter := infra.NewWindowStore(cfg.rateLimit, cfg.rateWindow)
	limiter.StartJanitor(ctx)

	srv := fileserver.New(fileserver.Options{
		Addr:          cfg.listenAddr,
		Resolver:      resolver,
		Counters:      counters,
		Limiter:       limiter,
		Pool:          infra.NewChanPool(cfg.maxActive),
		Stats:         stats,
		RetryAfter:    cfg.retryAfter,
		PreCheckDelay: cfg.preCheckDelay,
		WorkDelay:     cfg.workDelay,
	})

	log.Printf("file server listening on %s", cfg.listenAddr)
	log.Printf("serving directory: %s", resolver.Root())
	log.Printf("admission: max-active=%d", cfg.maxActive)
	log.Printf("rate: limit=%d window=%s retryAfter=%s", cfg.rateLimit, cfg.rateWindow, cfg.retryAfter)
	log.Printf("counters: backend=%s demoRace=%v", cfg.counterBackend, cfg.demoRace)
	log.Printf("delays: preCheck=%s work=%s", cfg.preCheckDelay, cfg.workDelay)
	if cfg.demoRace {
		log.Printf("WARNING: racy counter demo enabled - counters may lose updates!")
	}

	if err := srv.ListenAndServe(ctx); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

type config struct {
	listenAddr string
	docRoot    string

	maxActive  int
	rateLimit  int
	rateWindow time.Duration
	retryAfter time.Duration

	demoRace      bool
	raceStepDelay time.Duration
	preCheckDelay time.Duration
	workDelay     time.Duration

	counterBackend string
	counterPrefix  string

	redisAddr     string
	redisPassword string
	redisDB       int

	statsEnabled   bool
	statsPrefix    string
	statsTTL       time.Duration
	statsBucket    string
	statsTrackKeys bool
}

func readConfig() (config, error) {
	cfg := config{}
	cfg.listenAddr = getenvDefault("LISTEN_ADDR", "0.0.0.0:8080")
	cfg.docRoot = getenvDefault("DOC_ROOT", "./public")
	cfg.maxActive = getenvIntDefault("MAX_ACTIVE", 10)
	cfg.rateLimit = getenvIntDefault("RATE_LIMIT", 5)
	cfg.rateWindow = getenvDurationDefault("RATE_WINDOW", 1*time.Second)
	cfg.retryAfter = getenvDurationDefault("RETRY_AFTER", 1*time.Second)

	cfg.demoRace = getenvBoolDefault("DEMO_RACE", false)
	cfg.raceStepDelay = getenvDurationDefault("RACE_STEP_DELAY", 100*time.Millisecond)
	cfg.preCheckDelay = getenvDurationDefault("PRECHECK_DELAY", 0)
	// IMPORTANTE: o delay de trabalho vem ligado por padrão, como na demo
	// original; desligue com WORK_DELAY=0 para medir o servidor de verdade.
	cfg.workDelay = getenvDurationDefault("WORK_DELAY", 1*time.Second)

	cfg.counterBackend = strings.ToLower(getenvDefault("COUNTER_BACKEND", "memory"))
	cfg.counterPrefix = getenvDefault("COUNTER_PREFIX", "fileserver:hits")

	cfg.redisAddr = getenvDefault("REDIS_ADDR", "")
	cfg.redisPassword = os.Getenv("REDIS_PASSWORD")
	cfg.redisDB = getenvIntDefault("REDIS_DB", 0)

	cfg.statsEnabled = getenvBoolDefault("STATS_ENABLED", false)
	cfg.statsPrefix = getenvDefault("STATS_PREFIX", "fileserver:stats")
	cfg.statsTTL = getenvDurationDefault("STATS_TTL", 24*time.Hour)
	cfg.statsBucket = getenvDefault("STATS_BUCKET", "minute")
	cfg.statsTrackKeys = getenvBoolDefault("STATS_TRACK_KEYS", false)

	if cfg.maxActive <= 0 {
		return config{}, errors.New("MAX_ACTIVE must be > 0")
	}
	if cfg.rateLimit <= 0 {
		return config{}, errors.New("RATE_LIMIT must be > 0")
	}
	if cfg.rateWindow <= 0 {
		return config{}, errors.New("RATE_WINDOW must be > 0")
	}
	if cfg.counterBackend != "memory" && cfg.counterBackend != "redis" {
		return config{}, errors.New("COUNTER_BACKEND must be memory or redis")
	}
	if cfg.counterBackend == "redis" && strings.TrimSpace(cfg.redisAddr) == "" {
		return config{}, errors.New("REDIS_ADDR is required when COUNTER_BACKEND=redis")
	}
	if cfg.counterBackend == "redis" && cfg.demoRace {
		return config{}, errors.New("DEMO_RACE requires COUNTER_BACKEND=memory (redis increments are atomic)")
	}
	if cfg.statsEnabled && strings.TrimSpace(cfg.redisAddr) == "" {
		return config{}, errors.New("REDIS_ADDR is required when STATS_ENABLED=true")
	}
	return cfg, nil
}

func getenvDefault(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getenvIntDefault(k string, def int) int {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}

func getenvBoolDefault(k string, def bool) bool {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func getenvDurationDefault(k string, def time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}
