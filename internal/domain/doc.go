// Package domain contains the core types and rules of the beacon sender.
//
// It has no dependencies on infrastructure concerns (HTTP, file system,
// logging) and holds only the pure parts of a send attempt.
//
// # Entities
//
//   - Payload encoding: [EncodePayload], [PayloadA], [PayloadB]
//   - Destination parsing: [ParseDestination]
//   - [Result]: the transient outcome of one send attempt
//   - [SendState]: the advisory idle/sending flag
package domain
