package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Operation names used as metric labels and in logs
const (
	OperationDeposit           = "deposit"
	OperationExchange          = "exchange"
	OperationVerifyVoucher     = "verify_voucher"
	OperationUpdateProduct     = "update_product"
	OperationDeactivateProduct = "deactivate_product"
)

const outcomeSuccess = "success"

var (
	operationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "points_operations_total",
			Help: "Ledger operations by outcome. The outcome is success or an error code.",
		},
		[]string{"operation", "outcome"},
	)

	txRetriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "points_tx_retries_total",
			Help: "Transactions replayed after a transient failure or a voucher code conflict.",
		},
		[]string{"operation"},
	)
)

func recordOutcome(operation string, err error) {
	outcome := outcomeSuccess
	if err != nil {
		outcome = CodeOf(err)
	}
	operationsTotal.WithLabelValues(operation, outcome).Inc()
}
