package cfg

// MetricsSink receives the three histograms this package reports as its only
// externally visible side effect: cfgbuilder.readsPerBlock,
// cfgbuilder.writesPerBlock, cfgbuilder.blockArguments. A nil sink (the
// default) makes every call a no-op.
type MetricsSink interface {
	ObserveHistogram(name string, value int)
}

// NopMetricsSink discards every observation; it is the default used when Run
// is called without an explicit sink.
type NopMetricsSink struct{}

// ObserveHistogram implements MetricsSink.
func (NopMetricsSink) ObserveHistogram(string, int) {}

func histogramInc(sink MetricsSink, name string, value int) {
	if sink == nil {
		return
	}
	sink.ObserveHistogram(name, value)
}
