package obs

import (
	"fmt"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	domainOnce sync.Once

	// InvoiceComputedTotal counts invoice computations by outcome.
	InvoiceComputedTotal *prometheus.CounterVec
	// EquitySplitTotal counts equity split decisions by mode.
	EquitySplitTotal *prometheus.CounterVec
	// EquityAllocationTotal counts grant allocations recorded at approval.
	EquityAllocationTotal prometheus.Counter
	// ImportJobTotal counts import jobs reaching a terminal status.
	ImportJobTotal *prometheus.CounterVec
	// ExtractLatency records extraction service call latency in milliseconds.
	ExtractLatency *prometheus.HistogramVec
	// PayoutTotal counts payout executions by provider and result.
	PayoutTotal *prometheus.CounterVec
	// NotifyEmailTotal counts notification emails by topic and result.
	NotifyEmailTotal *prometheus.CounterVec
	// EventPublishTotal counts domain events published by topic.
	EventPublishTotal *prometheus.CounterVec
)

// MustRegisterDomainMetrics initialises and registers domain-specific Prometheus collectors.
func MustRegisterDomainMetrics(namespace string, reg prometheus.Registerer) {
	domainOnce.Do(func() {
		if reg == nil {
			reg = prometheus.DefaultRegisterer
		}
		InvoiceComputedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "invoice_computed_total",
			Help:      "Count of invoice computation outcomes.",
		}, []string{"operation", "result"})
		EquitySplitTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "equity_split_total",
			Help:      "Count of equity split decisions by mode.",
		}, []string{"mode"})
		EquityAllocationTotal = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "equity_allocation_total",
			Help:      "Number of equity allocations recorded against grants.",
		})
		ImportJobTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "import_job_total",
			Help:      "Count of import jobs by terminal status.",
		}, []string{"status"})
		ExtractLatency = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "extract_duration_ms",
			Help:      "Latency of extraction service calls in milliseconds.",
			Buckets:   []float64{50, 100, 250, 500, 1000, 2500, 5000, 10000, 30000},
		}, []string{"result"})
		PayoutTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "payout_total",
			Help:      "Count of payout executions by provider and result.",
		}, []string{"provider", "result"})
		NotifyEmailTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notify_email_total",
			Help:      "Count of notification emails by topic and result.",
		}, []string{"topic", "result"})
		EventPublishTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "event_publish_total",
			Help:      "Count of domain events published by topic.",
		}, []string{"topic"})

		mustRegisterCollector(reg, InvoiceComputedTotal, func(existing prometheus.Collector) {
			if v, ok := existing.(*prometheus.CounterVec); ok {
				InvoiceComputedTotal = v
			}
		})
		mustRegisterCollector(reg, EquitySplitTotal, func(existing prometheus.Collector) {
			if v, ok := existing.(*prometheus.CounterVec); ok {
				EquitySplitTotal = v
			}
		})
		mustRegisterCollector(reg, EquityAllocationTotal, func(existing prometheus.Collector) {
			if v, ok := existing.(prometheus.Counter); ok {
				EquityAllocationTotal = v
			}
		})
		mustRegisterCollector(reg, ImportJobTotal, func(existing prometheus.Collector) {
			if v, ok := existing.(*prometheus.CounterVec); ok {
				ImportJobTotal = v
			}
		})
		mustRegisterCollector(reg, ExtractLatency, func(existing prometheus.Collector) {
			if v, ok := existing.(*prometheus.HistogramVec); ok {
				ExtractLatency = v
			}
		})
		mustRegisterCollector(reg, PayoutTotal, func(existing prometheus.Collector) {
			if v, ok := existing.(*prometheus.CounterVec); ok {
				PayoutTotal = v
			}
		})
		mustRegisterCollector(reg, NotifyEmailTotal, func(existing prometheus.Collector) {
			if v, ok := existing.(*prometheus.CounterVec); ok {
				NotifyEmailTotal = v
			}
		})
		mustRegisterCollector(reg, EventPublishTotal, func(existing prometheus.Collector) {
			if v, ok := existing.(*prometheus.CounterVec); ok {
				EventPublishTotal = v
			}
		})
	})
}

func mustRegisterCollector(reg prometheus.Registerer, collector prometheus.Collector, reuse func(prometheus.Collector)) {
	if err := reg.Register(collector); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if reuse != nil {
				reuse(are.ExistingCollector)
			}
			return
		}
		panic(fmt.Errorf("register domain metric: %w", err))
	}
}
