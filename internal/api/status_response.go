package api

// swagger:model api.IndexResponse
type IndexResponse struct {
	Message   string            `json:"message" example:"MongoDB Connection Test API"`
	Status    string            `json:"status" example:"Server is running"`
	Endpoints map[string]string `json:"endpoints"`
}

// swagger:model api.DatabaseStatus
type DatabaseStatus struct {
	Status     string `json:"status" example:"connected"`
	Host       string `json:"host" example:"localhost:27017"`
	Name       string `json:"name" example:"users"`
	ReadyState int    `json:"readyState" example:"1"`
}

// swagger:model api.DatabaseStatusResponse
type DatabaseStatusResponse struct {
	Success  bool           `json:"success" example:"true"`
	Database DatabaseStatus `json:"database"`
}

// swagger:model api.PingResponse
type PingResponse struct {
	Message string `json:"message" example:"pong"`
}
