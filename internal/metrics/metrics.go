package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ViewRequests = promauto.NewCounter(prometheus.CounterOpts{
		Name: "schedule_view_requests_total",
		Help: "Timetable view recomputations served.",
	})
	SlotCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "schedule_view_slot_cache_hits_total",
		Help: "Slot payloads served from the cache.",
	})
	SlotCacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "schedule_view_slot_cache_misses_total",
		Help: "Slot cache lookups that fell through to the backend.",
	})
	SchedulerFetchFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "schedule_view_scheduler_fetch_failures_total",
		Help: "Failed fetches against the scheduler backend.",
	})
	SnapshotFallbacks = promauto.NewCounter(prometheus.CounterOpts{
		Name: "schedule_view_snapshot_fallbacks_total",
		Help: "Requests served from a stale snapshot while the backend was down.",
	})
)
