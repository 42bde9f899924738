package stategen

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	coalescedJoinCount = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "stategen_coalesced_join_count",
			Help: "The number of times a query joined an already in-flight computation instead of starting its own.",
		},
	)
	replayBlockCount = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "stategen_replay_block_count",
			Help:    "Number of blocks replayed to answer a single query.",
			Buckets: []float64{0, 1, 2, 4, 8, 16, 32, 64, 128},
		},
	)
	replaySlotCount = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "stategen_replay_slot_count",
			Help:    "Number of empty slots advanced via processSlots to answer a single query.",
			Buckets: []float64{0, 1, 8, 32, 64, 128, 256, 512},
		},
	)
	cpuOffloadCount = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "stategen_cpu_offload_count",
			Help: "The number of processSlots calls offloaded to the CPU worker pool.",
		},
	)
	hotCacheInsertCount = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "stategen_hot_cache_insert_count",
			Help: "The number of states inserted into the hot state cache.",
		},
	)
	checkpointCacheInsertCount = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "stategen_checkpoint_cache_insert_count",
			Help: "The number of states inserted into the checkpoint state cache.",
		},
	)
	donationRejectedCount = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "stategen_donation_rejected_count",
			Help: "The number of donated states rejected by an internal consistency check.",
		},
	)
	finalizationPruneCount = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "stategen_finalization_prune_count",
			Help: "The number of times a finalization event triggered a cache prune.",
		},
	)
)
