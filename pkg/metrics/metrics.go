package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// OrdersCreated counts orders created by customers.
	OrdersCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "smartupi_orders_created_total",
		Help: "Total number of orders created",
	})

	// AttemptsCreated counts UPI attempts by creation mode.
	AttemptsCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "smartupi_upi_attempts_total",
		Help: "Total number of UPI attempts created, by mode",
	}, []string{"mode"})

	// Settlements counts settlement outcomes, including duplicate fires
	// skipped because the attempt was already terminal.
	Settlements = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "smartupi_settlements_total",
		Help: "Total number of settlement runs, by outcome",
	}, []string{"outcome"})

	// Reconciliations counts merchant reconciliation calls.
	Reconciliations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "smartupi_reconciliations_total",
		Help: "Total number of merchant reconciliations, by result",
	}, []string{"result"})

	// OfflineQueueDepth tracks the current offline queue length.
	OfflineQueueDepth = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "smartupi_offline_queue_depth",
		Help: "Current number of attempts waiting in the offline queue",
	})
)

const (
	ModeOnline  = "online"
	ModeOffline = "offline"

	OutcomeSuccess = "success"
	OutcomeFailed  = "failed"
	OutcomeSkipped = "skipped"

	ResultOK       = "ok"
	ResultRejected = "rejected"
)
