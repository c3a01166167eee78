package instance

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var operations = promauto.NewCounterVec( //nolint:gochecknoglobals
	prometheus.CounterOpts{
		Name: "pas_db_operations_total",
		Help: "Number of database operations, differentiated by entity, operation and result.",
	},
	[]string{"entity", "operation", "result"},
)

// Observe counts one database operation of entity.
func Observe(entity, operation string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}

	operations.WithLabelValues(entity, operation, result).Inc()
}
