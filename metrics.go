package main

import (
	"net/http"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
	"github.com/go-kit/kit/metrics"
	"github.com/go-kit/kit/metrics/discard"
	"github.com/go-kit/kit/metrics/prometheus"
	prom "github.com/prometheus/client_golang/prometheus"
)

type FieldsyncMetrics struct {
	Agent *AgentMetrics
}

type AgentMetrics struct {
	SectionsRecorded  metrics.Counter
	SnapshotsSent     metrics.Counter
	SnapshotsApplied  metrics.Counter
	SnapshotsRejected metrics.Counter
}

func NewFieldsyncMetrics(agentAddr string) *FieldsyncMetrics {

	m := &FieldsyncMetrics{}

	if agentAddr == "" {
		m.Agent = &AgentMetrics{
			SectionsRecorded:  discard.NewCounter(),
			SnapshotsSent:     discard.NewCounter(),
			SnapshotsApplied:  discard.NewCounter(),
			SnapshotsRejected: discard.NewCounter(),
		}
	} else {
		m.Agent = &AgentMetrics{
			SectionsRecorded: prometheus.NewCounterFrom(prom.CounterOpts{
				Namespace: "fieldsync",
				Subsystem: "agent",
				Name:      "sections_recorded_total",
				Help:      "Number of locally recorded completed sections",
			}, nil),
			SnapshotsSent: prometheus.NewCounterFrom(prom.CounterOpts{
				Namespace: "fieldsync",
				Subsystem: "agent",
				Name:      "snapshots_sent_total",
				Help:      "Number of snapshots delivered to peers",
			}, nil),
			SnapshotsApplied: prometheus.NewCounterFrom(prom.CounterOpts{
				Namespace: "fieldsync",
				Subsystem: "agent",
				Name:      "snapshots_applied_total",
				Help:      "Number of peer snapshots merged into the local set",
			}, nil),
			SnapshotsRejected: prometheus.NewCounterFrom(prom.CounterOpts{
				Namespace: "fieldsync",
				Subsystem: "agent",
				Name:      "snapshots_rejected_total",
				Help:      "Number of malformed peer snapshots discarded",
			}, nil),
		}
	}

	return m
}

func runPromHTTP(logger log.Logger, addr string) {

	if addr == "" {
		level.Debug(logger).Log("msg", "prometheus addr is empty, not exposing prometheus metrics")
		return
	}

	http.Handle("/metrics", prom.UninstrumentedHandler())

	level.Info(logger).Log("msg", "prometheus handler listening", "addr", addr)
	if err := http.ListenAndServe(addr, nil); err != nil {
		level.Warn(logger).Log("msg", "failed to serve prometheus metrics", "err", err)
	}
}
