package dto

// StatusResponse is the payload of the /status endpoint.
type StatusResponse struct {
	Service       string         `json:"service"`
	Version       string         `json:"version"`
	UptimeSeconds int64          `json:"uptime_seconds"`
	Counters      map[string]int `json:"counters"`
}
