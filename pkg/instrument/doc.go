// Package instrument decorates a listener.Registrar with metrics and tracing.
//
//	m := instrument.NewMetrics(instrument.WithNamespace("myapp"))
//	tr := instrument.NewTracing(instrument.WithTracerName("myapp"))
//	reg := tr.Wrap(m.Wrap(host))
//
//	h := events.OnClick(reg, btn, onClick)
//
// Metrics collected:
//   - listen_registrations_total: registrations by event and mode (persistent, once)
//   - listen_unregistrations_total: explicit teardowns
//   - listen_forgets_total: implicit teardowns
//   - listen_events_delivered_total: callback invocations by event
//   - listen_handles_attached: handles not yet torn down
package instrument
