package metrics

import "github.com/prometheus/client_golang/prometheus"

var NotificationsAttemptedTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "notifications_attempted_total",
		Help: "Total number of notification deliveries attempted",
	},
	[]string{"channel", "status"},
)

var NotificationPassesTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "notification_passes_total",
		Help: "Total number of queue processing passes",
	},
	[]string{"channel"},
)

var CommissionRowsCreatedTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "commission_rows_created_total",
		Help: "Total number of commission rows written",
	},
	[]string{"type"},
)

// Register adds all collectors to the default registry.
func Register() {
	prometheus.MustRegister(
		NotificationsAttemptedTotal,
		NotificationPassesTotal,
		CommissionRowsCreatedTotal,
	)
}
