// Package ports declares the driven-side interfaces of the dialog
// engine: session persistence and distributed locking. Adapters under
// pkg/adapters implement them; the core only depends on the contracts.
package ports
