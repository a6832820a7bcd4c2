package domain

type ReliefStats struct {
	Total            int            `json:"total"`
	ByStatus         map[string]int `json:"by_status"`
	ByNeed           map[string]int `json:"by_need"`
	ActiveVolunteers int            `json:"active_volunteers"`
	SkippedRows      int            `json:"skipped_rows,omitempty"`
}

type StatsRequest struct {
	// Minutes narrows the window to requests created in the last N
	// minutes; 0 means all time.
	Minutes int `validate:"min=0,max=10080"`
}
