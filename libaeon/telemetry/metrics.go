// Package telemetry exports attractor-engine progress as Prometheus metrics.
package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/2x3systems/goaeon/goaeon"
)

const (
	namespace = "goaeon"
)

// Metrics is a goaeon.Monitor backed by Prometheus collectors.
type Metrics struct {
	processSteps     prometheus.Counter
	liveProcesses    prometheus.Gauge
	discardedStates  prometheus.Counter
	retiredVariables prometheus.Counter
	pivotSearches    prometheus.Counter
	attractorsFound  prometheus.Counter
}

var _ goaeon.Monitor = (*Metrics)(nil)

// NewMetrics registers the engine collectors with reg (prometheus.DefaultRegisterer if nil).
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Metrics{
		processSteps: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "itgr",
			Name:      "steps_total",
			Help:      "Scheduler ticks executed during reduction",
		}),
		liveProcesses: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "itgr",
			Name:      "live_processes",
			Help:      "Processes pending in the reduction scheduler",
		}),
		discardedStates: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "itgr",
			Name:      "discarded_states_total",
			Help:      "Approximate number of vertex-color pairs pruned from the universe",
		}),
		retiredVariables: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "itgr",
			Name:      "retired_variables_total",
			Help:      "Variables proven unable to transition within the universe",
		}),
		pivotSearches: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "search",
			Name:      "pivots_total",
			Help:      "Pivots processed by the bottom-SCC search",
		}),
		attractorsFound: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "search",
			Name:      "attractors_total",
			Help:      "Attractor sets recorded by the bottom-SCC search",
		}),
	}
}

func (m *Metrics) ProcessStepped(live int) {
	m.processSteps.Inc()
	m.liveProcesses.Set(float64(live))
}

func (m *Metrics) StatesDiscarded(approxCount float64) {
	if approxCount > 0 {
		m.discardedStates.Add(approxCount)
	}
}

func (m *Metrics) VariableRetired() {
	m.retiredVariables.Inc()
}

func (m *Metrics) PivotSearched() {
	m.pivotSearches.Inc()
}

func (m *Metrics) AttractorFound() {
	m.attractorsFound.Inc()
}
