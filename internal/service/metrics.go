package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	searchesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "forum_searches_total",
		Help: "Total number of thread searches executed",
	})

	correctionsApplied = promauto.NewCounter(prometheus.CounterOpts{
		Name: "forum_search_corrections_total",
		Help: "Searches whose results came from a spelling-corrected rerun",
	})

	projectionFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "forum_projection_failures_total",
		Help: "Index projection failures (the originating mutation still succeeds)",
	})
)
