package health

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"
)

// Status — состояние сервиса или отдельного его компонента.
type Status string

const (
	StatusOK       Status = "ok"
	StatusDegraded Status = "degraded"
	StatusDown     Status = "down"
)

// Component — результат проверки одного компонента сервиса
// (хранилище каталога и заказов, брокер событий и т.п.).
type Component struct {
	Status    Status `json:"status"`
	Error     string `json:"error,omitempty"`
	LatencyMs int64  `json:"latency_ms"`
}

// Build — информация о сборке сервиса, заполняется через -ldflags.
type Build struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	BuiltAt string `json:"built_at"`
}

// Report — сводный ответ /healthz: общее состояние, сборка
// и покомпонентная разбивка. Имя компонента — ключ карты.
type Report struct {
	Service       string               `json:"service"`
	Status        Status               `json:"status"`
	Build         Build                `json:"build"`
	Timestamp     time.Time            `json:"timestamp"`
	UptimeSeconds int64                `json:"uptime_seconds"`
	Components    map[string]Component `json:"components,omitempty"`
}

// Probe проверяет один компонент сервиса.
type Probe interface {
	Probe() Component
}

// ProbeFunc адаптирует функцию проверки в Probe: ошибка означает StatusDown,
// латентность замеряется вокруг вызова.
type ProbeFunc func() error

func (f ProbeFunc) Probe() Component {
	start := time.Now()
	err := f()
	latency := time.Since(start).Milliseconds()

	if err != nil {
		return Component{Status: StatusDown, Error: err.Error(), LatencyMs: latency}
	}
	return Component{Status: StatusOK, LatencyMs: latency}
}

// Handler отдаёт состояние сервиса по HTTP.
type Handler struct {
	mu        sync.RWMutex
	service   string
	build     Build
	startedAt time.Time
	probes    map[string]Probe
}

// NewHandler создаёт health-обработчик для сервиса с данной сборкой.
func NewHandler(service string, build Build) *Handler {
	return &Handler{
		service:   service,
		build:     build,
		startedAt: time.Now(),
		probes:    make(map[string]Probe),
	}
}

// Register добавляет проверку компонента под заданным именем.
func (h *Handler) Register(name string, probe Probe) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.probes[name] = probe
}

func (h *Handler) snapshot() map[string]Probe {
	h.mu.RLock()
	defer h.mu.RUnlock()
	probes := make(map[string]Probe, len(h.probes))
	for name, p := range h.probes {
		probes[name] = p
	}
	return probes
}

// ServeHTTP собирает Report по всем проверкам.
// Любой компонент в StatusDown опускает общий статус до down и даёт 503.
func (h *Handler) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	components := make(map[string]Component)
	overall := StatusOK

	for name, probe := range h.snapshot() {
		c := probe.Probe()
		components[name] = c

		switch {
		case c.Status == StatusDown:
			overall = StatusDown
		case c.Status == StatusDegraded && overall == StatusOK:
			overall = StatusDegraded
		}
	}

	report := Report{
		Service:       h.service,
		Status:        overall,
		Build:         h.build,
		Timestamp:     time.Now(),
		UptimeSeconds: int64(time.Since(h.startedAt).Seconds()),
		Components:    components,
	}

	code := http.StatusOK
	if overall == StatusDown {
		code = http.StatusServiceUnavailable
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(report)
}

// ReadinessHandler отвечает, готов ли сервис принимать запросы:
// degraded ещё считается готовым, down — нет.
func (h *Handler) ReadinessHandler(w http.ResponseWriter, _ *http.Request) {
	for _, probe := range h.snapshot() {
		if probe.Probe().Status == StatusDown {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte("not ready"))
			return
		}
	}

	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

// LivenessHandler — liveness probe, всегда 200 пока процесс жив.
func LivenessHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
