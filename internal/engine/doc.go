// Package engine contains the compartmentalization core. It never imports app,
// writers, cli, hitfile or pipeline; keep it domain-only.
//
// Hits are grouped by sequence pair and relative strand, chained greedily into
// co-linear compartments, cut at oversized internal gaps and ranked by total
// aligned length. Everything here is synchronous and deterministic: the same
// hits and Config always produce the same compartments in the same order.
//
// External outputs must not depend on the internal shape here; use pkg/api
// for stable wire types (JSON/JSONL v1).
package engine
