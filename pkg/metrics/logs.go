package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
)

// LogHook counts emitted log lines by level.
type LogHook struct {
	lines *prometheus.CounterVec
}

func NewLogHook(reg prometheus.Registerer) *LogHook {
	if reg == nil {
		return &LogHook{}
	}
	lines := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "log_lines_total",
		Help:      "Log lines written, by level.",
	}, []string{"level"})
	reg.MustRegister(lines)
	return &LogHook{lines: lines}
}

func (h *LogHook) Run(_ *zerolog.Event, level zerolog.Level, _ string) {
	if h == nil || h.lines == nil || level == zerolog.NoLevel {
		return
	}
	h.lines.WithLabelValues(level.String()).Inc()
}
