package teams

import "github.com/prometheus/client_golang/prometheus"

func init() {
	prometheus.MustRegister(cascadeDeletions, invitationResponses)
}

var (
	cascadeDeletions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "planit",
			Name:      "cascade_deletions_total",
			Help:      "Total number of committed cascading deletions",
		},
		[]string{"entity"},
	)

	invitationResponses = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "planit",
			Name:      "invitation_responses_total",
			Help:      "Total number of invitation responses recorded",
		},
		[]string{"response"},
	)
)

// ObserveCascade counts one committed deletion of the given root entity.
func ObserveCascade(entity string) {
	cascadeDeletions.WithLabelValues(entity).Inc()
}
