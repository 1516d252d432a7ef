package transfer

type DayStats struct {
	Date    string `json:"date"`
	DayName string `json:"dayName"`
	Reels   int    `json:"reels"`
	Posts   int    `json:"posts"`
	Total   int    `json:"total"`
}

type WeeklyTotals struct {
	Reels int `json:"reels"`
	Posts int `json:"posts"`
}

type WeeklyStats struct {
	WeeklyTotals WeeklyTotals `json:"weeklyTotals"`
	WeeklyStats  []DayStats   `json:"weeklyStats"`
}
