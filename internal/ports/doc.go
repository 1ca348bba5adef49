// Package ports defines the interfaces that connect the controller in
// internal/app to infrastructure adapters.
//
// # Port Interfaces
//
//   - [BeaconSender]: Posts encoded payloads to a destination
//   - [ResourceLoader]: Reads bundled JSON resources by name
//   - [HTTPClient]: HTTP request abstraction for dependency injection
//   - [Logger]: Structured logging abstraction
//
// The application layer depends only on these interfaces. Adapters in
// internal/adapters implement them with net/http, fs.FS and zerolog.
package ports
