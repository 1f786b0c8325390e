package output

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts messages per port and kind.
type Metrics struct {
	sent   *prometheus.CounterVec
	failed *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		sent: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "triadgrid",
			Subsystem: "output",
			Name:      "messages_sent_total",
			Help:      "MIDI messages delivered to an output port.",
		}, []string{"port", "kind"}),
		failed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "triadgrid",
			Subsystem: "output",
			Name:      "messages_failed_total",
			Help:      "MIDI messages an output port refused.",
		}, []string{"port", "kind"}),
	}
	for _, c := range []prometheus.Collector{m.sent, m.failed} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Instrument wraps a port so every Send is counted.
func (m *Metrics) Instrument(p Port) Port {
	return &instrumentedPort{Port: p, metrics: m}
}

// InstrumentAll wraps every port.
func (m *Metrics) InstrumentAll(ports []Port) []Port {
	out := make([]Port, len(ports))
	for i, p := range ports {
		out[i] = m.Instrument(p)
	}
	return out
}

type instrumentedPort struct {
	Port
	metrics *Metrics
}

func (p *instrumentedPort) Send(msg Message) error {
	if err := p.Port.Send(msg); err != nil {
		p.metrics.failed.WithLabelValues(p.Name(), msg.Kind()).Inc()
		return err
	}
	p.metrics.sent.WithLabelValues(p.Name(), msg.Kind()).Inc()
	return nil
}
