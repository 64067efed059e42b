package metrics

import (
	"database/sql"
	"log"
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const metricPrefix = "metro_ticketing_"

var requestsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: metricPrefix + "http_requests_total",
		Help: "HTTP requests by method, path and status",
	},
	[]string{"method", "path", "status"},
)

func init() {
	prometheus.MustRegister(requestsTotal)
}

// Handler exposes the metrics endpoint
func Handler() http.Handler {
	return promhttp.Handler()
}

// Instrument counts requests per route
func Instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(recorder, r)
		requestsTotal.WithLabelValues(r.Method, r.URL.Path, strconv.Itoa(recorder.status)).Inc()
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(code int) {
	rec.status = code
	rec.ResponseWriter.WriteHeader(code)
}

// RegisterDBMetrics exposes ticket counts per status as gauges backed
// by the database. Only wired when the server runs against Postgres.
func RegisterDBMetrics(db *sql.DB, logger *log.Logger) {
	statuses := []string{"booked", "entered", "exited", "expired"}
	for _, status := range statuses {
		status := status
		prometheus.MustRegister(prometheus.NewGaugeFunc(
			prometheus.GaugeOpts{
				Name:        metricPrefix + "tickets",
				Help:        "Tickets currently stored, by status",
				ConstLabels: prometheus.Labels{"status": status},
			},
			func() float64 {
				return queryCount(db, logger, "SELECT COUNT(*) FROM tickets WHERE status = $1", status)
			},
		))
	}
}

func queryCount(db *sql.DB, logger *log.Logger, query string, args ...interface{}) float64 {
	if db == nil {
		return 0
	}
	var count int64
	if err := db.QueryRow(query, args...).Scan(&count); err != nil {
		if logger != nil {
			logger.Printf("metrics query failed: %v", err)
		}
		return 0
	}
	if count < 0 {
		return 0
	}
	return float64(count)
}
