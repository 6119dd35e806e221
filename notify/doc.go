// Package notify carries the notifications rest.Handler publishes
// ("checkpoint.auth.required", "system.alert") to the rest of the
// application.
//
// Three backends implement rest.Publisher:
//
//   - MemoryBus: in-process fan-out to subscribers, for single binaries and tests
//   - RedisPublisher: Redis PUBLISH on a prefixed channel per topic
//   - KafkaPublisher: one Kafka message per notification
//
// Component selects a backend from Config and manages its lifecycle:
//
//	bus := notify.NewComponent(cfg.Notify, log)
//	handler := rest.NewHandler(transport, rest.WithPublisher(bus))
package notify
