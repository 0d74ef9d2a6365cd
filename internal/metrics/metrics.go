// Package metrics exposes the service counters on the side metrics port.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SubmissionsReceived = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sbb_contact_submissions_received_total",
		Help: "Contact form submissions received, before any checks.",
	})

	SubmissionsAccepted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sbb_contact_submissions_accepted_total",
		Help: "Submissions that passed validation and reached the gateways.",
	})

	SubmissionsSpam = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sbb_contact_submissions_spam_total",
		Help: "Submissions suppressed by the honeypot.",
	})

	SubmissionsInvalid = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sbb_contact_submissions_invalid_total",
		Help: "Submissions rejected with field validation errors.",
	})

	NotifyFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sbb_notify_failures_total",
		Help: "Notification delivery failures by mode.",
	}, []string{"mode"})

	PersistFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sbb_persist_failures_total",
		Help: "Submission rows that failed to insert (logged, not surfaced).",
	})
)
