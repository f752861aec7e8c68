package util

// MetricsBucketsMicroSeconds defines histogram buckets for microsecond-level latency measurements.
// Buckets range from 8μs to 16ms in exponential progression.
var MetricsBucketsMicroSeconds = []float64{
	8e-6, 16e-6, 32e-6, 64e-6, 128e-6, 256e-6, 512e-6, 1024e-6, 2048e-6, 4096e-6, 8192e-6, 16384e-6,
}

// MetricsBucketsCount defines histogram buckets for small element counts such as
// the number of UTXOs handed to a single match.
var MetricsBucketsCount = []float64{
	0, 1, 2, 4, 8, 16, 32, 64, 128, 256,
}
