// Package core holds the lead submission flow, independent of HTTP.
//
// A [Submission] arrives from a transport (the web package parses forms and
// JSON into one), is checked by [Validate], normalized into a
// [NewApplication] and inserted through a [Store]. After a successful insert
// the [FallbackLog] appends a one-line text record. [Service.Submit] ties
// these together and is the only entry point handlers call.
//
// # Outcomes
//
//   - Rejected: Validate returned [ValidationErrors]; nothing was written.
//   - Storage failure: the insert failed with a [*StorageError]; nothing was
//     written and nothing was mirrored. Clients only see [StorageFailureMessage].
//   - Accepted: the row exists. The fallback append is best effort and a
//     failure there is logged without changing the outcome.
//
// # Storage
//
// Rows are append-only. Ids are assigned by the database and increase with
// every insert; identical submissions produce separate rows. See [Open] for
// the supported backends.
package core
