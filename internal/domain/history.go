package domain

import "time"

// HistoryEntry is an immutable snapshot of a terminal CommandExecution.
type HistoryEntry struct {
	ID             string          `json:"id"`
	Command        string          `json:"command"`
	Shell          string          `json:"shell"`
	WorkDir        string          `json:"work_dir"`
	Status         ExecutionStatus `json:"status"`
	ExitCode       *int            `json:"exit_code,omitempty"`
	DurationMS     int64           `json:"duration_ms"`
	TimeoutSeconds int             `json:"timeout_seconds"`
	Attempt        int             `json:"attempt"`
	ParentID       string          `json:"parent_id,omitempty"`
	StartedAt      time.Time       `json:"started_at"`
}

// SnapshotExecution archives a terminal execution. Non-terminal executions
// have no defined duration and must not be snapshotted.
func SnapshotExecution(e *CommandExecution) HistoryEntry {
	return HistoryEntry{
		ID:             e.ID,
		Command:        e.Command,
		Shell:          e.Shell,
		WorkDir:        e.WorkDir,
		Status:         e.Status,
		ExitCode:       e.ExitCode,
		DurationMS:     e.Duration().Milliseconds(),
		TimeoutSeconds: e.TimeoutSeconds,
		Attempt:        e.Attempt,
		ParentID:       e.ParentID,
		StartedAt:      e.StartedAt,
	}
}

// HistoryStats summarizes archived executions for the stats command.
type HistoryStats struct {
	Total         int
	ByStatus      map[ExecutionStatus]int
	AvgDurationMS int64
	SlowCount     int
}

// ComputeHistoryStats derives aggregate statistics. Entries at or above
// slowThreshold count as slow.
func ComputeHistoryStats(entries []HistoryEntry, slowThreshold time.Duration) HistoryStats {
	stats := HistoryStats{ByStatus: make(map[ExecutionStatus]int)}
	var totalMS int64
	for _, entry := range entries {
		stats.Total++
		stats.ByStatus[entry.Status]++
		totalMS += entry.DurationMS
		if time.Duration(entry.DurationMS)*time.Millisecond >= slowThreshold {
			stats.SlowCount++
		}
	}
	if stats.Total > 0 {
		stats.AvgDurationMS = totalMS / int64(stats.Total)
	}
	return stats
}

// SuccessRate is the percentage of completed executions.
func (s HistoryStats) SuccessRate() float64 {
	if s.Total == 0 {
		return 0.0
	}
	return float64(s.ByStatus[StatusCompleted]) / float64(s.Total) * 100.0
}
