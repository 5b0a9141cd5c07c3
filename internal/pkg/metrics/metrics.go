// Package metrics registers the Prometheus collectors for the leave and
// attendance engines. Collectors are package level; services increment them
// directly and the router exposes them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	LeaveApplications = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "lazyhr",
		Subsystem: "leave",
		Name:      "applications_total",
		Help:      "Leave applications by outcome.",
	}, []string{"outcome"})

	LeaveDecisions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "lazyhr",
		Subsystem: "leave",
		Name:      "decisions_total",
		Help:      "Approve/reject/cancel decisions on leave requests.",
	}, []string{"decision"})

	ClockIns = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "lazyhr",
		Subsystem: "attendance",
		Name:      "clock_ins_total",
		Help:      "Attendance sessions opened.",
	})

	ClockOuts = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "lazyhr",
		Subsystem: "attendance",
		Name:      "clock_outs_total",
		Help:      "Attendance sessions closed.",
	})

	// Gauges below are refreshed periodically by the scheduler.

	PendingLeaveRequests = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "lazyhr",
		Subsystem: "leave",
		Name:      "pending_requests",
		Help:      "Leave requests currently awaiting a decision.",
	})

	ClockedInToday = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "lazyhr",
		Subsystem: "attendance",
		Name:      "clocked_in_today",
		Help:      "Attendance sessions opened today.",
	})
)
