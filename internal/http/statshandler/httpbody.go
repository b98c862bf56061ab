package statshandler

type HealthResponse struct {
	Status string `json:"status" example:"ok"`
} // @name HealthResponse

type StatsResponse struct {
	Rooms   int            `json:"rooms"   example:"3"`
	Members int            `json:"members" example:"7"`
	Counts  map[string]any `json:"counts"`
} // @name StatsResponse
