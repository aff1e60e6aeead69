package store

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	loads = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "geosketch",
		Subsystem: "store",
		Name:      "loads_total",
		Help:      "Document loads by outcome (ok, empty, corrupt, error)",
	}, []string{"result"})

	saves = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "geosketch",
		Subsystem: "store",
		Name:      "saves_total",
		Help:      "Document saves by outcome (ok, error)",
	}, []string{"result"})
)
