// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package metrics defines the Prometheus instrumentation for the job
// manager and the pipeline stages.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// JobsSubmitted counts research jobs accepted for background execution.
	JobsSubmitted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "draftwright_jobs_submitted_total",
			Help: "Total number of research jobs submitted",
		},
	)

	// JobsFinished counts jobs reaching a terminal status.
	JobsFinished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "draftwright_jobs_finished_total",
			Help: "Total number of research jobs reaching a terminal status",
		},
		[]string{"status"},
	)

	// JobDuration observes wall time from processing start to terminal status.
	JobDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "draftwright_job_duration_seconds",
			Help:    "Research job execution duration in seconds",
			Buckets: prometheus.ExponentialBuckets(1, 2, 10),
		},
	)

	// JobsSwept counts expired terminal jobs removed from the registry.
	JobsSwept = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "draftwright_jobs_swept_total",
			Help: "Total number of expired jobs removed from the registry",
		},
	)

	// StageDuration observes per-stage execution time.
	StageDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "draftwright_stage_duration_seconds",
			Help:    "Pipeline stage execution duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"stage"},
	)

	// StageFailures counts uncontained stage failures.
	StageFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "draftwright_stage_failures_total",
			Help: "Total number of pipeline stage failures that aborted a job",
		},
		[]string{"stage"},
	)

	// StageContained counts failures absorbed by a stage's local
	// containment (the pipeline continued with a placeholder value).
	StageContained = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "draftwright_stage_contained_failures_total",
			Help: "Total number of stage failures contained with placeholder output",
		},
		[]string{"stage"},
	)
)
