package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics коллектор метрик сервиса
// Все методы безопасно вызывать на nil-указателе: при выключенных метриках
// сервисы получают nil и ничего не регистрируется
type Metrics struct {
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	dbQueryDuration  *prometheus.HistogramVec
	dbOpenConns      prometheus.Gauge
	dbInUseConns     prometheus.Gauge
	dbIdleConns      prometheus.Gauge
	dbWaitCount      prometheus.Gauge
	txRetriesTotal   prometheus.Counter
	txRollbacksTotal prometheus.Counter

	bookingsCreatedTotal  prometheus.Counter
	slotConflictsTotal    *prometheus.CounterVec
	refCodeCollisions     prometheus.Counter
	refCodeExhaustedTotal prometheus.Counter
	eventsTotal           *prometheus.CounterVec
}

// New создает коллектор и регистрирует метрики в prometheus.DefaultRegisterer
func New(serviceName string) *Metrics {
	return NewWithRegisterer(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegisterer создает коллектор с указанным registerer (для тестов)
func NewWithRegisterer(serviceName string, reg prometheus.Registerer) *Metrics {
	labels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		httpRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: labels,
		}, []string{"method", "route", "status"}),
		httpRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency",
			ConstLabels: labels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),
		dbQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query latency",
			ConstLabels: labels,
			Buckets:     []float64{.001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation", "status"}),
		dbOpenConns: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "db_open_connections", Help: "Open connections", ConstLabels: labels,
		}),
		dbInUseConns: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "db_in_use_connections", Help: "Connections in use", ConstLabels: labels,
		}),
		dbIdleConns: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "db_idle_connections", Help: "Idle connections", ConstLabels: labels,
		}),
		dbWaitCount: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "db_wait_count", Help: "Total number of connections waited for", ConstLabels: labels,
		}),
		txRetriesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "db_tx_retries_total", Help: "Serializable transactions retried after a serialization failure", ConstLabels: labels,
		}),
		txRollbacksTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "db_tx_rollbacks_total", Help: "Rolled back transactions", ConstLabels: labels,
		}),
		bookingsCreatedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bookings_created_total", Help: "Committed bookings", ConstLabels: labels,
		}),
		slotConflictsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "booking_slot_conflicts_total", Help: "Write-time slot conflicts", ConstLabels: labels,
		}, []string{"operation"}),
		refCodeCollisions: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "booking_reference_code_collisions_total", Help: "Reference code candidates rejected as duplicates", ConstLabels: labels,
		}),
		refCodeExhaustedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "booking_reference_code_exhausted_total", Help: "Reference code allocations that ran out of attempts", ConstLabels: labels,
		}),
		eventsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "events_total", Help: "Lifecycle events by outcome", ConstLabels: labels,
		}, []string{"event", "result"}),
	}

	reg.MustRegister(
		m.httpRequestsTotal,
		m.httpRequestDuration,
		m.dbQueryDuration,
		m.dbOpenConns,
		m.dbInUseConns,
		m.dbIdleConns,
		m.dbWaitCount,
		m.txRetriesTotal,
		m.txRollbacksTotal,
		m.bookingsCreatedTotal,
		m.slotConflictsTotal,
		m.refCodeCollisions,
		m.refCodeExhaustedTotal,
		m.eventsTotal,
	)

	return m
}

// ObserveHTTPRequest фиксирует обработанный HTTP запрос
func (m *Metrics) ObserveHTTPRequest(method, route string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// ObserveDBQuery фиксирует длительность запроса к БД
func (m *Metrics) ObserveDBQuery(operation string, err error, duration time.Duration) {
	if m == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.dbQueryDuration.WithLabelValues(operation, status).Observe(duration.Seconds())
}

// SetDBPoolStats обновляет показатели пула соединений
func (m *Metrics) SetDBPoolStats(open, inUse, idle int, waitCount int64) {
	if m == nil {
		return
	}
	m.dbOpenConns.Set(float64(open))
	m.dbInUseConns.Set(float64(inUse))
	m.dbIdleConns.Set(float64(idle))
	m.dbWaitCount.Set(float64(waitCount))
}

func (m *Metrics) IncTxRetry() {
	if m == nil {
		return
	}
	m.txRetriesTotal.Inc()
}

func (m *Metrics) IncTxRollback() {
	if m == nil {
		return
	}
	m.txRollbacksTotal.Inc()
}

func (m *Metrics) IncBookingCreated() {
	if m == nil {
		return
	}
	m.bookingsCreatedTotal.Inc()
}

// IncSlotConflict operation: create | reschedule
func (m *Metrics) IncSlotConflict(operation string) {
	if m == nil {
		return
	}
	m.slotConflictsTotal.WithLabelValues(operation).Inc()
}

func (m *Metrics) IncReferenceCodeCollision() {
	if m == nil {
		return
	}
	m.refCodeCollisions.Inc()
}

func (m *Metrics) IncReferenceCodeExhausted() {
	if m == nil {
		return
	}
	m.refCodeExhaustedTotal.Inc()
}

// IncEvent result: published | failed | dropped
func (m *Metrics) IncEvent(event, result string) {
	if m == nil {
		return
	}
	m.eventsTotal.WithLabelValues(event, result).Inc()
}
