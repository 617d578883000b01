// Package datasync coordinates pulling campaign performance from every
// configured ad platform account into the local store.
//
// A sync run walks the requested date range one day at a time per source.
// Per-day fetches are deliberate: each (source, day) is an independent unit
// of work, so an API outage covering part of the window costs exactly the
// days it covers. Day N failing never discards day N-1, and one platform
// being down never blocks the others. Batching several days into one call
// would be a fine optimization as long as it keeps that isolation.
package datasync
