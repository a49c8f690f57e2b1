package observability

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/moorebrett0/moodcast/internal/mood"
)

// Sources a tip can be served through.
const (
	SourceHTTP      = "http"
	SourceDiscord   = "discord"
	SourceCLI       = "cli"
	SourceBrain     = "brain"
	SourceProactive = "proactive"
)

var tipsServed = prometheus.NewCounterVec(prometheus.CounterOpts{
	Namespace: "moodcast",
	Name:      "tips_served_total",
	Help:      "Mood tips served, by weather label and source.",
}, []string{"weather", "source"})

func init() {
	prometheus.MustRegister(tipsServed)
}

// RecordTip counts a served tip. Unrecognized labels are folded into "other"
// to keep label cardinality bounded.
func RecordTip(weather, source string) {
	if !mood.Known(weather) {
		weather = "other"
	}
	tipsServed.WithLabelValues(weather, source).Inc()
}
