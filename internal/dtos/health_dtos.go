package dtos

type RootResponse struct {
	Name   string `json:"name"`
	Status string `json:"status"`
}

type HealthResponse struct {
	Status string `json:"status"`
	Store  string `json:"store"`
}
