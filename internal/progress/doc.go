package progress

// Package progress turns per-item byte-level engine events into the
// single overall percentage a poller sees. The formula weighs completed
// batch items and the in-flight item's byte fraction; values are
// monotone within an item and capped below 100 until the job completes.
