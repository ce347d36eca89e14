/*
Package observability provides tools for monitoring the morph engine.

It turns animation lifecycle events into structured log lines and
Prometheus metrics. Both are exposed as domain.LifecycleHooks so they can be
merged and handed to a runner.
*/
package observability
