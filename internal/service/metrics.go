package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// 基准测试指标，注册到全局 registry，由 /metrics 暴露
var (
	benchmarkRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "benchmark_runs_total",
			Help: "按状态统计的基准测试 Run 总数（success/warning/failed）",
		},
		[]string{"status"},
	)

	benchmarkResultsRecorded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "benchmark_results_recorded_total",
			Help: "写入的评审结果行总数",
		},
	)
)
