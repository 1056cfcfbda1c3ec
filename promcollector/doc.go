// Package promcollector exports search metrics to Prometheus.
//
//	reg := prometheus.NewRegistry()
//	mc := promcollector.New(reg, "odorsearch")
//	s, _ := odorsearch.New(channels, odorsearch.WithMetricsCollector(mc))
package promcollector
