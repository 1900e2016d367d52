package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	billsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "splitfool_bills_created_total",
		Help: "Number of bills finalized and stored.",
	})

	settlementsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "splitfool_settlements_created_total",
		Help: "Number of settlement cutoffs recorded.",
	})
)
