package models

import "time"

// DailyStats is one analytics/{date} document: daily usage counters keyed
// by calendar date. Counters are bumped with atomic increments as usage
// happens and summed over a window by the analytics aggregation.
type DailyStats struct {
	Date        time.Time `json:"date" firestore:"date"`
	Messages    int64     `json:"messages" firestore:"messages"`
	Images      int64     `json:"images" firestore:"images"`
	ActiveUsers int64     `json:"activeUsers" firestore:"activeUsers"`
}

// AnalyticsTotals aggregates DailyStats over a date range.
type AnalyticsTotals struct {
	Messages int64 `json:"messages"`
	Images   int64 `json:"images"`
	Users    int64 `json:"users"`
}

// AnalyticsReport is the getAnalytics response payload.
type AnalyticsReport struct {
	DailyStats []DailyStats    `json:"dailyStats"`
	Totals     AnalyticsTotals `json:"totals"`
	DateRange  string          `json:"dateRange"`
}

// DailySignup is one point in the dashboard signup series.
type DailySignup struct {
	Date  time.Time `json:"date"`
	Count int       `json:"count"`
}

// DashboardStats is the admin dashboard summary.
type DashboardStats struct {
	TotalUsers     int           `json:"totalUsers"`
	ActiveUsers    int           `json:"activeUsers"`
	ProUsers       int           `json:"proUsers"`
	BusinessUsers  int           `json:"businessUsers"`
	MonthlyRevenue float64       `json:"monthlyRevenue"`
	DailySignups   []DailySignup `json:"dailySignups"`
}
