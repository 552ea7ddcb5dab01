package main

// Gerador de carga: dispara N requisições one-shot (mesmo formato do
// fileclient) contra o servidor, em rajada ou com vazão controlada, e resume
// os status codes e tempos no final. É com ele que se observa o rate limit
// (montes de 429) e o lost update do contador no modo DEMO_RACE.

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"os"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"golang.org/x/time/rate"
)

type result struct {
	status   int
	bytes    int
	duration time.Duration
	err      error
}

func main() {
	cfg, err := readConfig()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	lim := rate.NewLimiter(rate.Inf, 1)
	if cfg.rps > 0 {
		lim = rate.NewLimiter(rate.Limit(cfg.rps), 1)
	}

	fmt.Printf("target: %s  path: %s  requests: %d  rps: %s\n",
		cfg.addr, cfg.path, cfg.requests, rpsLabel(cfg.rps))

	ctx := context.Background()
	results := make(chan result, cfg.requests)
	var wg sync.WaitGroup

	start := time.Now()
	for i := 0; i < cfg.requests; i++ {
		if err := lim.Wait(ctx); err != nil {
			break
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- doRequest(cfg)
		}()
	}
	wg.Wait()
	close(results)
	elapsed := time.Since(start)

	summarize(results, cfg.requests, elapsed)
}

func doRequest(cfg config) result {
	start := time.Now()

	conn, err := net.Dial("tcp", cfg.addr)
	if err != nil {
		return result{err: err, duration: time.Since(start)}
	}
	defer conn.Close()
	_ = conn.SetDeadline(time.Now().Add(cfg.timeout))

	request := "GET " + cfg.path + " HTTP/1.1\r\n" +
		"Host: " + cfg.addr + "\r\n" +
		"Connection: close\r\n" +
		"\r\n"
	if _, err := conn.Write([]byte(request)); err != nil {
		return result{err: err, duration: time.Since(start)}
	}

	raw, err := io.ReadAll(conn)
	if err != nil {
		return result{err: err, duration: time.Since(start)}
	}
	if len(raw) == 0 {
		return result{err: errors.New("closed without response"), duration: time.Since(start)}
	}

	fields := strings.Fields(strings.SplitN(string(raw), "\r\n", 2)[0])
	if len(fields) < 2 {
		return result{err: errors.New("malformed status line"), duration: time.Since(start)}
	}
	status, err := strconv.Atoi(fields[1])
	if err != nil {
		return result{err: err, duration: time.Since(start)}
	}

	return result{status: status, bytes: len(raw), duration: time.Since(start)}
}

func summarize(results chan result, requested int, elapsed time.Duration) {
	byStatus := make(map[int]int)
	var failures int
	var totalBytes uint64
	var totalDur, maxDur time.Duration
	var done int

	for r := range results {
		done++
		totalDur += r.duration
		if r.duration > maxDur {
			maxDur = r.duration
		}
		if r.err != nil {
			failures++
			continue
		}
		byStatus[r.status]++
		totalBytes += uint64(r.bytes)
	}

	fmt.Printf("\n%d/%d requests finished in %s (%s received)\n",
		done, requested, elapsed.Round(time.Millisecond), humanize.IBytes(totalBytes))
	if done > 0 {
		fmt.Printf("latency: avg=%s max=%s\n",
			(totalDur / time.Duration(done)).Round(time.Millisecond), maxDur.Round(time.Millisecond))
	}

	statuses := make([]int, 0, len(byStatus))
	for st := range byStatus {
		statuses = append(statuses, st)
	}
	sort.Ints(statuses)

	for _, st := range statuses {
		line := fmt.Sprintf("  %d: %d", st, byStatus[st])
		switch {
		case st >= 200 && st < 300:
			color.Green(line)
		case st == 429:
			color.Yellow(line)
		default:
			color.Red(line)
		}
	}
	if failures > 0 {
		color.Red("  connection failures (rejected/timeout): %d", failures)
	}
}

func rpsLabel(rps float64) string {
	if rps <= 0 {
		return "burst"
	}
	return strconv.FormatFloat(rps, 'f', -1, 64)
}

type config struct {
	addr     string
	path     string
	requests int
	rps      float64
	timeout  time.Duration
}

func readConfig() (config, error) {
	cfg := config{}
	cfg.addr = getenvDefault("LOADGEN_ADDR", "localhost:8080")
	cfg.path = getenvDefault("LOADGEN_PATH", "/")
	cfg.requests = getenvIntDefault("LOADGEN_REQUESTS", 20)
	cfg.rps = getenvFloatDefault("LOADGEN_RPS", 0)
	cfg.timeout = getenvDurationDefault("LOADGEN_TIMEOUT", 15*time.Second)

	if cfg.requests <= 0 {
		return config{}, errors.New("LOADGEN_REQUESTS must be > 0")
	}
	if !strings.HasPrefix(cfg.path, "/") {
		return config{}, errors.New("LOADGEN_PATH must start with /")
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

func getenvFloatDefault(k string, def float64) float64 {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}
	return f
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
