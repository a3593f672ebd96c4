package metrics

import (
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Registry is the dedicated prometheus registry exposed on /api/metrics.
// A custom registry keeps the endpoint free of default-registry noise
// registered by third-party libraries.
var Registry = prometheus.NewRegistry()

var (
	// Custom histogram buckets optimized for API response times ranging from milliseconds to 30+ seconds
	CustomAPIBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 3, 5, 8, 13, 21, 34, 55}

	// HTTP Metrics
	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_server_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: CustomAPIBuckets,
		},
		[]string{"http_request_method", "http_route", "http_response_status_code"},
	)

	HTTPRequestTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_server_request_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"http_request_method", "http_route", "http_response_status_code"},
	)

	ActiveRequests = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "http_server_active_requests",
			Help: "Number of active HTTP requests",
		},
		[]string{"http_request_method"},
	)

	// Database Client Metrics
	DBOperationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "db_client_operation_duration_seconds",
			Help:    "Database client operation duration in seconds",
			Buckets: CustomAPIBuckets,
		},
		[]string{"operation", "status"},
	)

	// Cache Metrics
	CacheHits = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_hits_total",
			Help: "Total number of cache hits",
		},
		[]string{"cache_name"},
	)

	CacheMisses = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_misses_total",
			Help: "Total number of cache misses",
		},
		[]string{"cache_name"},
	)

	CacheSize = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cache_entries",
			Help: "Number of entries in cache",
		},
		[]string{"cache_name"},
	)

	// Storage Client Metrics
	StorageRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "storage_client_operation_duration_seconds",
			Help:    "Storage client operation duration in seconds",
			Buckets: CustomAPIBuckets,
		},
		[]string{"operation", "status"},
	)

	StorageRequestTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storage_client_operation_total",
			Help: "Total number of storage client operations",
		},
		[]string{"operation", "status"},
	)

	// Business Metrics
	SessionsCreated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mentorhub_sessions_created_total",
			Help: "Total number of session booking attempts",
		},
		[]string{"status"},
	)

	SessionTransitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mentorhub_session_transitions_total",
			Help: "Total number of session lifecycle transitions",
		},
		[]string{"to_status", "status"},
	)

	FeedbackSubmissions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mentorhub_feedback_submissions_total",
			Help: "Total number of feedback submissions",
		},
		[]string{"status"},
	)

	RatingRecomputations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mentorhub_rating_recomputations_total",
			Help: "Total number of mentor rating recomputations",
		},
		[]string{"status"},
	)

	NotificationDispatchFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "mentorhub_notification_dispatch_failures_total",
			Help: "Total number of notification writes that failed (best-effort, never surfaced)",
		},
	)

	ProfileUpdates = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mentorhub_profile_updates_total",
			Help: "Total number of mentor profile updates",
		},
		[]string{"status"},
	)

	ProfilePictureUploads = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mentorhub_profile_picture_uploads_total",
			Help: "Total number of profile picture uploads",
		},
		[]string{"status"},
	)

	SlotResolutions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mentorhub_slot_resolutions_total",
			Help: "Total number of availability slot resolutions",
		},
		[]string{"status"},
	)

	// Infrastructure Metrics
	GoRoutines = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "process_runtime_go_goroutines",
			Help: "Number of goroutines",
		},
	)

	HeapAlloc = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "process_runtime_go_mem_heap_alloc_bytes",
			Help: "Heap allocated bytes",
		},
	)
)

var serviceName string

// Init registers all collectors on the custom registry and records the
// service name used as a constant label source for dashboards.
func Init(name string) {
	serviceName = name

	Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		HTTPRequestDuration,
		HTTPRequestTotal,
		ActiveRequests,
		DBOperationDuration,
		CacheHits,
		CacheMisses,
		CacheSize,
		StorageRequestDuration,
		StorageRequestTotal,
		SessionsCreated,
		SessionTransitions,
		FeedbackSubmissions,
		RatingRecomputations,
		NotificationDispatchFailures,
		ProfileUpdates,
		ProfilePictureUploads,
		SlotResolutions,
		GoRoutines,
		HeapAlloc,
	)
}

// ServiceName returns the name the metrics were initialized with.
func ServiceName() string {
	return serviceName
}

// RecordInfrastructureMetrics collects infrastructure metrics periodically
func RecordInfrastructureMetrics() {
	ticker := time.NewTicker(15 * time.Second)
	go func() {
		for range ticker.C {
			var m runtime.MemStats
			runtime.ReadMemStats(&m)

			GoRoutines.Set(float64(runtime.NumGoroutine()))
			HeapAlloc.Set(float64(m.HeapAlloc))
		}
	}()
}

// MeasureDuration measures the duration of an operation
func MeasureDuration(start time.Time) float64 {
	return time.Since(start).Seconds()
}
