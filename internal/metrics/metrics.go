// Package metrics exposes prometheus counters for the scanner and the trading loop.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "trendscout"

// Scan outcomes of a single symbol.
const (
	ScanProfitable   = "profitable"
	ScanUnprofitable = "unprofitable"
	ScanFailed       = "failed"
)

// Recorder holds the metric collectors. A nil *Recorder records nothing.
type Recorder struct {
	scanPasses     prometheus.Counter
	scanSymbols    *prometheus.CounterVec
	candidates     prometheus.Gauge
	evaluations    *prometheus.CounterVec
	orderLegs      *prometheus.CounterVec
	brackets       *prometheus.CounterVec
	criticalAlerts prometheus.Counter
}

// NewRecorder creates the collectors and registers them on registerer.
func NewRecorder(registerer prometheus.Registerer) (*Recorder, error) {
	recorder := &Recorder{
		scanPasses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "scan_passes_total",
			Help:      "Completed scanner passes.",
		}),
		scanSymbols: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "scan_symbols_total",
			Help:      "Symbols scanned by outcome.",
		}, []string{"outcome"}),
		candidates: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "candidates",
			Help:      "Size of the published candidate set.",
		}),
		evaluations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "evaluations_total",
			Help:      "Trading loop symbol evaluations by outcome.",
		}, []string{"outcome"}),
		orderLegs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "order_legs_total",
			Help:      "Bracket legs submitted by leg and status.",
		}, []string{"leg", "status"}),
		brackets: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "brackets_total",
			Help:      "Bracket attempts by final state.",
		}, []string{"state"}),
		criticalAlerts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "critical_alerts_total",
			Help:      "Positions left without full stop-loss and take-profit protection.",
		}),
	}

	collectors := []prometheus.Collector{
		recorder.scanPasses,
		recorder.scanSymbols,
		recorder.candidates,
		recorder.evaluations,
		recorder.orderLegs,
		recorder.brackets,
		recorder.criticalAlerts,
	}

	for _, collector := range collectors {
		if err := registerer.Register(collector); err != nil {
			return nil, err
		}
	}

	return recorder, nil
}

func (r *Recorder) ScanPass() {
	if r == nil {
		return
	}

	r.scanPasses.Inc()
}

func (r *Recorder) ScanSymbol(outcome string) {
	if r == nil {
		return
	}

	r.scanSymbols.WithLabelValues(outcome).Inc()
}

func (r *Recorder) Candidates(count int) {
	if r == nil {
		return
	}

	r.candidates.Set(float64(count))
}

func (r *Recorder) Evaluation(outcome string) {
	if r == nil {
		return
	}

	r.evaluations.WithLabelValues(outcome).Inc()
}

func (r *Recorder) OrderLeg(leg, status string) {
	if r == nil {
		return
	}

	r.orderLegs.WithLabelValues(leg, status).Inc()
}

func (r *Recorder) Bracket(state string) {
	if r == nil {
		return
	}

	r.brackets.WithLabelValues(state).Inc()
}

func (r *Recorder) CriticalAlert() {
	if r == nil {
		return
	}

	r.criticalAlerts.Inc()
}
