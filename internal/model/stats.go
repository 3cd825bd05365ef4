package model

// ChannelTally is the per-channel known/watched count pair for the
// aggregate dashboard.
type ChannelTally struct {
	ChannelID string `json:"channelId"`
	Name      string `json:"name"`
	Known     int    `json:"known"`
	Watched   int    `json:"watched"`
}

// StatsResponse is the admin dashboard aggregate view.
type StatsResponse struct {
	TotalSubmissions int            `json:"totalSubmissions"`
	ByProfession     map[string]int `json:"byProfession"`
	ByWorkplace      map[string]int `json:"byWorkplace"`
	ChannelTallies   []ChannelTally `json:"channelTallies"`
	PendingChannels  int            `json:"pendingChannels"`
	ApprovedChannels int            `json:"approvedChannels"`
}
