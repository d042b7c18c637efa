package tagger

// Package tagger embeds title/artist/album and cover art into finished
// audio files via ID3v2. Tagging is best effort end to end: the
// orchestrator logs failures and never counts them against the item.
