package model

// Package model defines domain data structures shared across the
// service: the job record, its status enum, and the snapshot shape
// serialized to pollers. Structures carry no locking; the registry is
// the concurrency boundary.
