package redis

import "fmt"

// Key construction helpers for simulation state.

// SnapshotKey returns the key holding the latest state snapshot (string)
// Pattern: envsim:snapshot:{session}
func SnapshotKey(session string) string {
	return fmt.Sprintf("envsim:snapshot:%s", session)
}

// SnapshotLatestKey returns the key pointing at the most recent session
// Pattern: envsim:snapshot:latest
func SnapshotLatestKey() string {
	return "envsim:snapshot:latest"
}

// HistoryKey returns the key for the rolling snapshot history (sorted set,
// scored by simulated day + time of day)
// Pattern: envsim:history:{session}
func HistoryKey(session string) string {
	return fmt.Sprintf("envsim:history:%s", session)
}
