/*
Package monitoring provides metrics collection.

# Overview

Prometheus collectors for tool calls and for the HTML sanitizer, registered
on a private registry together with the Go runtime and process collectors.

# Features

- Tool call counts by outcome and call latency
- Page targets seen by the last listing
- Sanitizer passes, bytes in/out, runs that hit the pass limit

# Usage

	metrics := monitoring.NewMetrics()

	timer := monitoring.NewTimer(metrics, "get_page_html")
	// ... perform call ...
	timer.Stop(monitoring.StatusOK)

	metrics.RecordSanitize(len(raw), len(out), report.Passes, report.Converged)

# Metrics Endpoint

	http.Handle("/metrics", metrics.Handler())
*/
package monitoring
