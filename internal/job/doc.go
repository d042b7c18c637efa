package job

// Package job is the orchestration core: request validation, the
// launcher that allocates job records and spawns one worker per job,
// the batch loop that runs fetch+tag per item with partial-failure
// accounting, and the retention sweeper that evicts terminal records.
