package models

// ChannelStats are the dashboard aggregates for one channel. The four
// numbers come from independent queries and may be mutually skewed by
// writes that land mid-request.
type ChannelStats struct {
	TotalVideos      int   `json:"totalVideos"`
	TotalSubscribers int   `json:"totalSubscribers"`
	TotalViews       int64 `json:"totalViews"`
	TotalLikes       int   `json:"totalLikes"`
}

// ChannelData bundles stats with the first page of channel videos.
type ChannelData struct {
	Stats  ChannelStats `json:"stats"`
	Videos PagedList    `json:"videos"`
}
