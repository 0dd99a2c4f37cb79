// Package metrics exposes prometheus collectors fed by the event bus and the
// HTTP router.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/BruksfildServices01/plant-decor/internal/events"
)

type Metrics struct {
	registry *prometheus.Registry

	storeEvents   *prometheus.CounterVec
	careRevenue   prometheus.Counter
	orderRevenue  prometheus.Counter
	httpDurations *prometheus.HistogramVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		storeEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "plant_decor",
			Name:      "store_events_total",
			Help:      "Store mutations by store and action.",
		}, []string{"store", "action"}),
		careRevenue: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "plant_decor",
			Name:      "care_completed_revenue_vnd_total",
			Help:      "Total price of completed care services, in VND.",
		}),
		orderRevenue: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "plant_decor",
			Name:      "order_delivered_revenue_vnd_total",
			Help:      "Total price of delivered orders, in VND.",
		}),
		httpDurations: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "plant_decor",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route and status.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}

	m.registry.MustRegister(
		m.storeEvents,
		m.careRevenue,
		m.orderRevenue,
		m.httpDurations,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Observe is an events.Bus subscriber.
func (m *Metrics) Observe(e events.Event) {
	m.storeEvents.WithLabelValues(e.Store, e.Action).Inc()

	total, _ := e.Metadata["total_price"].(int64)
	if total <= 0 {
		return
	}
	switch {
	case e.Store == events.StoreCareService && e.Action == "completed":
		m.careRevenue.Add(float64(total))
	case e.Store == events.StoreOrder && e.Action == "delivered":
		m.orderRevenue.Add(float64(total))
	}
}

func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.httpDurations.
			WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).
			Observe(time.Since(start).Seconds())
	}
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
