package notify

import "github.com/prometheus/client_golang/prometheus"

func init() {
	prometheus.MustRegister(notificationsCreated, notificationsPurged)
}

var (
	notificationsCreated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "planit",
			Name:      "notifications_created_total",
			Help:      "Total number of notifications committed",
		},
		[]string{"type"},
	)

	notificationsPurged = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "planit",
		Name:      "notifications_purged_total",
		Help:      "Total number of read notifications removed by retention",
	})
)
