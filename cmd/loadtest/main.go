// Нагрузочный тестер REST API магазина: прогоняет сценарии заказа с
// заданной интенсивностью и печатает сводку задержек по каждому вызову.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"math"
	"net/http"
	"os"
	"sort"
	"strconv"
	"sync"
	"sync/atomic"
	"time"
)

type loadMode string

const (
	modeCreate             loadMode = "create"
	modeCreateUpdate       loadMode = "create-update"
	modeCreateUpdateDelete loadMode = "create-update-delete"
)

type config struct {
	baseURL     string
	total       int
	duration    time.Duration
	concurrency int
	timeout     time.Duration
	mode        loadMode
	outputPath  string
}

type latencySummary struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
	Avg float64 `json:"avg"`
	P50 float64 `json:"p50"`
	P95 float64 `json:"p95"`
	P99 float64 `json:"p99"`
}

type endpointReport struct {
	Calls     int64            `json:"calls"`
	Success   int64            `json:"success"`
	Failed    int64            `json:"failed"`
	ErrorRate float64          `json:"error_rate"`
	Statuses  map[string]int64 `json:"statuses"`
	LatencyMs latencySummary   `json:"latency_ms"`
}

type report struct {
	StartedAt         time.Time                 `json:"started_at"`
	DurationSeconds   float64                   `json:"duration_seconds"`
	TotalScenarios    int64                     `json:"total_scenarios"`
	SuccessScenarios  int64                     `json:"success_scenarios"`
	FailedScenarios   int64                     `json:"failed_scenarios"`
	ErrorRate         float64                   `json:"error_rate"`
	RPS               float64                   `json:"rps"`
	ScenarioLatencyMs latencySummary            `json:"scenario_latency_ms"`
	Endpoints         map[string]endpointReport `json:"endpoints"`
}

type endpointStats struct {
	calls     int64
	success   int64
	failed    int64
	statuses  map[string]int64
	latencies []float64
}

type collector struct {
	mu        sync.Mutex
	endpoints map[string]*endpointStats
}

func newCollector() *collector {
	return &collector{endpoints: make(map[string]*endpointStats)}
}

func (c *collector) record(endpoint string, latency time.Duration, status int, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	stats, found := c.endpoints[endpoint]
	if !found {
		stats = &endpointStats{statuses: make(map[string]int64)}
		c.endpoints[endpoint] = stats
	}

	stats.calls++
	if ok {
		stats.success++
	} else {
		stats.failed++
	}
	stats.statuses[strconv.Itoa(status)]++
	stats.latencies = append(stats.latencies, float64(latency.Microseconds())/1000.0)
}

func (c *collector) reports() map[string]endpointReport {
	c.mu.Lock()
	defer c.mu.Unlock()

	result := make(map[string]endpointReport, len(c.endpoints))
	for name, stats := range c.endpoints {
		statuses := make(map[string]int64, len(stats.statuses))
		for code, count := range stats.statuses {
			statuses[code] = count
		}
		errorRate := 0.0
		if stats.calls > 0 {
			errorRate = float64(stats.failed) / float64(stats.calls)
		}
		result[name] = endpointReport{
			Calls:     stats.calls,
			Success:   stats.success,
			Failed:    stats.failed,
			ErrorRate: errorRate,
			Statuses:  statuses,
			LatencyMs: summarize(stats.latencies),
		}
	}
	return result
}

func summarize(latencies []float64) latencySummary {
	if len(latencies) == 0 {
		return latencySummary{}
	}
	sorted := make([]float64, len(latencies))
	copy(sorted, latencies)
	sort.Float64s(sorted)

	sum := 0.0
	for _, v := range sorted {
		sum += v
	}
	return latencySummary{
		Min: sorted[0],
		Max: sorted[len(sorted)-1],
		Avg: sum / float64(len(sorted)),
		P50: percentile(sorted, 50),
		P95: percentile(sorted, 95),
		P99: percentile(sorted, 99),
	}
}

// percentile ожидает отсортированный по возрастанию срез.
func percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	idx := int(math.Ceil(p/100.0*float64(len(sorted)))) - 1
	if idx < 0 {
		idx = 0
	}
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	return sorted[idx]
}

type client struct {
	http      *http.Client
	baseURL   string
	collector *collector
}

func (c *client) call(ctx context.Context, endpoint, method, path string, body, out interface{}) (int, error) {
	var payload *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return 0, err
		}
		payload = bytes.NewReader(raw)
	} else {
		payload = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, payload)
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	latency := time.Since(start)
	if err != nil {
		c.collector.record(endpoint, latency, 0, false)
		return 0, err
	}
	defer resp.Body.Close()

	ok := resp.StatusCode == http.StatusOK
	c.collector.record(endpoint, latency, resp.StatusCode, ok)
	if !ok {
		return resp.StatusCode, fmt.Errorf("%s: unexpected status %d", endpoint, resp.StatusCode)
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return resp.StatusCode, fmt.Errorf("%s: decode response: %w", endpoint, err)
		}
	}
	return resp.StatusCode, nil
}

type orderPayload struct {
	TotalSumMinor int64           `json:"total_sum_minor"`
	PaymentCode   int32           `json:"payment_code"`
	Receiver      receiverPayload `json:"receiver"`
	Details       []detailPayload `json:"details"`
}

type receiverPayload struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

type detailPayload struct {
	CandleID int64 `json:"candle_id"`
	Quantity int32 `json:"quantity"`
}

type orderResponse struct {
	ID int64 `json:"id"`
}

type categoryPayload struct {
	Name string `json:"name"`
}

type categoryResponse struct {
	ID int64 `json:"id"`
}

type candlePayload struct {
	Name            string `json:"name"`
	RealCostMinor   int64  `json:"real_cost_minor"`
	SellPriceMinor  int64  `json:"sell_price_minor"`
	HeightCM        int32  `json:"height_cm"`
	BurningTimeMins int32  `json:"burning_time_mins"`
	Category        string `json:"category"`
	WickDiameterCM  int32  `json:"wick_diameter_cm"`
	WaxNeededGram   int32  `json:"wax_needed_gram"`
}

type candleResponse struct {
	ID int64 `json:"id"`
}

// prepareCatalog создаёт категорию и свечу, на которые будут ссылаться
// позиции генерируемых заказов.
func prepareCatalog(ctx context.Context, c *client, runID string) (int64, error) {
	categoryName := "loadtest-" + runID
	var category categoryResponse
	if _, err := c.call(ctx, "create_category", http.MethodPost, "/api/categories", categoryPayload{Name: categoryName}, &category); err != nil {
		return 0, err
	}

	var created candleResponse
	payload := candlePayload{
		Name:            "loadtest candle " + runID,
		RealCostMinor:   10000,
		SellPriceMinor:  25000,
		HeightCM:        10,
		BurningTimeMins: 300,
		Category:        categoryName,
		WickDiameterCM:  1,
		WaxNeededGram:   180,
	}
	path := fmt.Sprintf("/api/candles?categoryId=%d", category.ID)
	if _, err := c.call(ctx, "create_candle", http.MethodPost, path, payload, &created); err != nil {
		return 0, err
	}
	return created.ID, nil
}

func runScenario(ctx context.Context, c *client, mode loadMode, candleID int64, seq int64) error {
	payload := orderPayload{
		TotalSumMinor: 150000,
		PaymentCode:   int32(seq % 3),
		Receiver: receiverPayload{
			Name:    "loadtest",
			Phone:   fmt.Sprintf("+7 900 %07d", seq%1000000),
			Address: "loadtest address",
		},
		Details: []detailPayload{{CandleID: candleID, Quantity: 1}},
	}

	var created orderResponse
	if _, err := c.call(ctx, "create_order", http.MethodPost, "/api/orders", payload, &created); err != nil {
		return err
	}
	if mode == modeCreate {
		return nil
	}

	payload.TotalSumMinor = 200000
	path := fmt.Sprintf("/api/orders/%d", created.ID)
	if _, err := c.call(ctx, "update_order", http.MethodPut, path, payload, nil); err != nil {
		return err
	}
	if mode == modeCreateUpdate {
		return nil
	}

	if _, err := c.call(ctx, "delete_order", http.MethodDelete, path, nil, nil); err != nil {
		return err
	}
	return nil
}

func run(cfg config) (report, error) {
	collector := newCollector()
	c := &client{
		http:      &http.Client{Timeout: cfg.timeout},
		baseURL:   cfg.baseURL,
		collector: collector,
	}

	ctx := context.Background()
	if cfg.duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.duration)
		defer cancel()
	}

	runID := strconv.FormatInt(time.Now().UnixNano(), 36)
	candleID, err := prepareCatalog(ctx, c, runID)
	if err != nil {
		return report{}, fmt.Errorf("prepare catalog: %w", err)
	}

	var (
		seq       int64
		success   int64
		failed    int64
		latencies []float64
		latMu     sync.Mutex
	)

	start := time.Now()
	var wg sync.WaitGroup
	for i := 0; i < cfg.concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				if ctx.Err() != nil {
					return
				}
				n := atomic.AddInt64(&seq, 1)
				if cfg.total > 0 && n > int64(cfg.total) {
					return
				}

				scenarioStart := time.Now()
				err := runScenario(ctx, c, cfg.mode, candleID, n)
				elapsed := time.Since(scenarioStart)

				latMu.Lock()
				latencies = append(latencies, float64(elapsed.Microseconds())/1000.0)
				latMu.Unlock()

				if err != nil {
					atomic.AddInt64(&failed, 1)
				} else {
					atomic.AddInt64(&success, 1)
				}
			}
		}()
	}
	wg.Wait()
	elapsed := time.Since(start)

	total := success + failed
	errorRate := 0.0
	if total > 0 {
		errorRate = float64(failed) / float64(total)
	}
	return report{
		StartedAt:         start,
		DurationSeconds:   elapsed.Seconds(),
		TotalScenarios:    total,
		SuccessScenarios:  success,
		FailedScenarios:   failed,
		ErrorRate:         errorRate,
		RPS:               float64(total) / elapsed.Seconds(),
		ScenarioLatencyMs: summarize(latencies),
		Endpoints:         collector.reports(),
	}, nil
}

func main() {
	var cfg config
	var mode string

	flag.StringVar(&cfg.baseURL, "addr", "http://localhost:8080", "base URL of the shop API")
	flag.IntVar(&cfg.total, "total", 100, "total scenarios to run (0 = until duration expires)")
	flag.DurationVar(&cfg.duration, "duration", 0, "time limit for the run (0 = no limit)")
	flag.IntVar(&cfg.concurrency, "concurrency", 4, "number of concurrent workers")
	flag.DurationVar(&cfg.timeout, "timeout", 5*time.Second, "per-request timeout")
	flag.StringVar(&mode, "mode", string(modeCreate), "scenario: create|create-update|create-update-delete")
	flag.StringVar(&cfg.outputPath, "output", "", "write JSON report to file (default: stdout)")
	flag.Parse()

	cfg.mode = loadMode(mode)
	switch cfg.mode {
	case modeCreate, modeCreateUpdate, modeCreateUpdateDelete:
	default:
		fmt.Fprintf(os.Stderr, "unsupported mode: %s\n", mode)
		os.Exit(1)
	}
	if cfg.total <= 0 && cfg.duration <= 0 {
		fmt.Fprintln(os.Stderr, "either -total or -duration must be positive")
		os.Exit(1)
	}

	result, err := run(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load test failed: %v\n", err)
		os.Exit(1)
	}

	raw, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "marshal report: %v\n", err)
		os.Exit(1)
	}
	if cfg.outputPath != "" {
		if err := os.WriteFile(cfg.outputPath, raw, 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "write report: %v\n", err)
			os.Exit(1)
		}
		return
	}
	fmt.Println(string(raw))
}
