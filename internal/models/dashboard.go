package models

// DashboardStats summarizes a channel for its owner. All counters are
// zero-safe: a brand-new channel reports zeros, never nulls.
type DashboardStats struct {
	TotalSubscribers int64 `json:"totalSubscribers"`
	TotalVideos      int64 `json:"totalVideos"`
	TotalViews       int64 `json:"totalViews"`
	TotalLikes       int64 `json:"totalLikes"`
}
