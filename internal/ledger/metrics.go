// Package ledger implements the authoritative in-memory inventory. This file
// exposes Prometheus gauges tracking per-group stock levels and roster sizes,
// so depletion is visible on dashboards without polling the HTTP API.
package ledger

import "github.com/prometheus/client_golang/prometheus"

var (
	// unitsGauge tracks available units per blood group.
	unitsGauge = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "blood_inventory_units",
			Help: "Available blood units per blood group.",
		},
		[]string{"blood_group"},
	)

	// donorGauge tracks registered donors per blood group.
	donorGauge = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "blood_inventory_donors",
			Help: "Registered donors per blood group.",
		},
		[]string{"blood_group"},
	)
)

func init() {
	prometheus.MustRegister(unitsGauge, donorGauge)
}
