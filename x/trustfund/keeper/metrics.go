package keeper

import (
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

// ---------------------------------------------------------------------------
// Module Metrics -- in-process telemetry for the trustfund module
// ---------------------------------------------------------------------------
//
// All counters use sync/atomic for lock-free concurrent access; timing
// windows use a mutex-protected ring buffer. Metrics are in-memory only and
// surfaced via a per-block SDK event so indexers can consume them without a
// scrape endpoint.
// ---------------------------------------------------------------------------

// AtomicCounter is a lock-free monotonic counter using sync/atomic.
type AtomicCounter struct {
	value int64
}

// Inc increments the counter by 1.
func (c *AtomicCounter) Inc() { atomic.AddInt64(&c.value, 1) }

// Add increments the counter by delta.
func (c *AtomicCounter) Add(delta int64) { atomic.AddInt64(&c.value, delta) }

// Get returns the current counter value.
func (c *AtomicCounter) Get() int64 { return atomic.LoadInt64(&c.value) }

// Reset sets the counter to 0.
func (c *AtomicCounter) Reset() { atomic.StoreInt64(&c.value, 0) }

// AtomicGauge is a lock-free gauge (can go up or down).
type AtomicGauge struct {
	value int64
}

// Set stores a new value.
func (g *AtomicGauge) Set(v int64) { atomic.StoreInt64(&g.value, v) }

// Get returns the current value.
func (g *AtomicGauge) Get() int64 { return atomic.LoadInt64(&g.value) }

// Inc increments the gauge by 1.
func (g *AtomicGauge) Inc() { atomic.AddInt64(&g.value, 1) }

// Dec decrements the gauge by 1.
func (g *AtomicGauge) Dec() { atomic.AddInt64(&g.value, -1) }

// TimingHistogram records the most recent N durations and provides summary
// statistics over that window.
type TimingHistogram struct {
	mu       sync.Mutex
	samples  []time.Duration
	capacity int
	cursor   int
	count    int64
}

// NewTimingHistogram creates a histogram retaining at most capacity samples.
func NewTimingHistogram(capacity int) *TimingHistogram {
	if capacity <= 0 {
		capacity = 1000
	}
	return &TimingHistogram{
		samples:  make([]time.Duration, capacity),
		capacity: capacity,
	}
}

// Record adds a duration sample.
func (h *TimingHistogram) Record(d time.Duration) {
	h.mu.Lock()
	h.samples[h.cursor%h.capacity] = d
	h.cursor++
	h.count++
	h.mu.Unlock()
}

// Time returns a stop function that records the elapsed wall time when
// called. Handlers use this so wall-clock reads stay inside the metrics
// layer.
func (h *TimingHistogram) Time() func() {
	start := time.Now()
	return func() { h.Record(time.Since(start)) }
}

// Count returns the total number of samples ever recorded.
func (h *TimingHistogram) Count() int64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.count
}

// HistogramSummary holds window statistics.
type HistogramSummary struct {
	Count int64
	Min   time.Duration
	Max   time.Duration
	Avg   time.Duration
	P50   time.Duration
	P95   time.Duration
}

// Summary computes statistics from the buffered samples. Count reflects the
// total recorded count, not just the window size.
func (h *TimingHistogram) Summary() HistogramSummary {
	h.mu.Lock()
	defer h.mu.Unlock()

	n := h.cursor
	if n > h.capacity {
		n = h.capacity
	}
	if n == 0 {
		return HistogramSummary{Count: h.count}
	}

	active := make([]time.Duration, n)
	copy(active, h.samples[:n])
	sortDurations(active)

	var sum time.Duration
	for _, d := range active {
		sum += d
	}

	return HistogramSummary{
		Count: h.count,
		Min:   active[0],
		Max:   active[n-1],
		Avg:   sum / time.Duration(n),
		P50:   active[percentileIndex(n, 50)],
		P95:   active[percentileIndex(n, 95)],
	}
}

// sortDurations performs an insertion sort (fast for small N, no alloc).
func sortDurations(a []time.Duration) {
	for i := 1; i < len(a); i++ {
		key := a[i]
		j := i - 1
		for j >= 0 && a[j] > key {
			a[j+1] = a[j]
			j--
		}
		a[j+1] = key
	}
}

// percentileIndex returns the index for the p-th percentile in a sorted
// slice of length n, clamped to [0, n-1].
func percentileIndex(n, p int) int {
	idx := (n * p) / 100
	if idx >= n {
		idx = n - 1
	}
	return idx
}

// ModuleMetrics collects all telemetry for the trustfund module. A singleton
// instance is held by the Keeper.
type ModuleMetrics struct {
	// Stake lifecycle
	StakesAccepted   AtomicCounter
	StakesRejected   AtomicCounter
	ClaimsProcessed  AtomicCounter
	UnstakesEarly    AtomicCounter
	UnstakesComplete AtomicCounter
	ActiveStakers    AtomicGauge

	// Economics (cumulative utrust)
	FeesCollected     AtomicCounter
	YieldsPaid        AtomicCounter
	PenaltiesAssessed AtomicCounter
	YieldReinvested   AtomicCounter

	// Guards
	GuardRejections     AtomicCounter
	RateLimitRejections AtomicCounter
	OracleRejections    AtomicCounter

	// Governance
	ActionsProposed AtomicCounter
	ActionsExecuted AtomicCounter

	// Rebalance
	RebalanceCycles  AtomicCounter
	TiersReassigned  AtomicCounter
	InactivityBurns  AtomicCounter
	RebalanceRunTime *TimingHistogram
}

// NewModuleMetrics creates a new ModuleMetrics with histograms initialized.
func NewModuleMetrics() *ModuleMetrics {
	return &ModuleMetrics{
		RebalanceRunTime: NewTimingHistogram(200),
	}
}

// Reset zeroes all counters and gauges. Intended for testing only.
func (m *ModuleMetrics) Reset() {
	m.StakesAccepted.Reset()
	m.StakesRejected.Reset()
	m.ClaimsProcessed.Reset()
	m.UnstakesEarly.Reset()
	m.UnstakesComplete.Reset()
	m.ActiveStakers.Set(0)

	m.FeesCollected.Reset()
	m.YieldsPaid.Reset()
	m.PenaltiesAssessed.Reset()
	m.YieldReinvested.Reset()

	m.GuardRejections.Reset()
	m.RateLimitRejections.Reset()
	m.OracleRejections.Reset()

	m.ActionsProposed.Reset()
	m.ActionsExecuted.Reset()

	m.RebalanceCycles.Reset()
	m.TiersReassigned.Reset()
	m.InactivityBurns.Reset()

	*m.RebalanceRunTime = *NewTimingHistogram(200)
}

// EmitMetricsEvent emits a metrics summary as an SDK event, designed to be
// called once per block from EndBlocker.
func (m *ModuleMetrics) EmitMetricsEvent(ctx sdk.Context) {
	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			"trustfund_module_metrics",
			sdk.NewAttribute("block_height", strconv.FormatInt(ctx.BlockHeight(), 10)),
			sdk.NewAttribute("stakes_accepted", strconv.FormatInt(m.StakesAccepted.Get(), 10)),
			sdk.NewAttribute("stakes_rejected", strconv.FormatInt(m.StakesRejected.Get(), 10)),
			sdk.NewAttribute("claims_processed", strconv.FormatInt(m.ClaimsProcessed.Get(), 10)),
			sdk.NewAttribute("active_stakers", strconv.FormatInt(m.ActiveStakers.Get(), 10)),
			sdk.NewAttribute("fees_collected_utrust", strconv.FormatInt(m.FeesCollected.Get(), 10)),
			sdk.NewAttribute("yields_paid_utrust", strconv.FormatInt(m.YieldsPaid.Get(), 10)),
			sdk.NewAttribute("guard_rejections", strconv.FormatInt(m.GuardRejections.Get(), 10)),
			sdk.NewAttribute("rebalance_cycles", strconv.FormatInt(m.RebalanceCycles.Get(), 10)),
		),
	)
}
