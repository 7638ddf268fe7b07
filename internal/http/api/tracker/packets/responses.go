package packets

// PrayerResponse mirrors one ledger row plus its derived display fields.
type PrayerResponse struct {
	Name              string `json:"name"`
	TotalQada         int    `json:"totalQada"`
	WeeklyTarget      int    `json:"weeklyTarget"`
	CompletedThisWeek int    `json:"completedThisWeek"`
	Progress          int    `json:"progress"`
	BehindTarget      bool   `json:"behindTarget"`
}

// TrackerResponse flattens the cycle start to RFC3339.
type TrackerResponse struct {
	Prayers       []PrayerResponse `json:"prayers"`
	WeekStartDate string           `json:"weekStartDate"`
	DaysLeft      int              `json:"daysLeft"`
	Session       string           `json:"session,omitempty"`
	SyncStatus    string           `json:"syncStatus"`
}
