// Package ports holds the interfaces that connect the application core to
// its adapters. Service ports face inward: HTTP handlers call them and the
// application layer implements them. Repository and notifier ports face
// outward: the application layer calls them and the storage and webhook
// adapters implement them. Health interfaces let any component report
// readiness to the registry.
package ports
