// Package domain defines the core business types for the ad performance
// sync engine.
//
// Types in this package are pure value objects with no behavior, no storage
// dependencies, and no HTTP concerns. They are the shared language between
// clients, services, and handlers.
//
// Rules for this package:
//   - No imports from other internal/ packages
//   - No http.Request, no context.Context in struct fields
//   - JSON tags are allowed (they're metadata, not behavior)
//   - Pure helper methods are allowed (they're functions on the type)
//   - Constants and enums belong here
package domain
