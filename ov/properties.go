package ov

// Well-known property keys for Core.SetProperty.
const (
	PropertyPerformanceHint    = "PERFORMANCE_HINT"
	PropertyNumStreams         = "NUM_STREAMS"
	PropertyInferencePrecision = "INFERENCE_PRECISION_HINT"
	PropertyCacheDir           = "CACHE_DIR"
	PropertyEnableProfiling    = "PERF_COUNT"
	PropertyDevicePriorities   = "MULTI_DEVICE_PRIORITIES"
)

// Performance hint values.
const (
	HintLatency              = "LATENCY"
	HintThroughput           = "THROUGHPUT"
	HintCumulativeThroughput = "CUMULATIVE_THROUGHPUT"
)
