package dto

type PopoverRequest struct {
	NClicks *int `json:"n_clicks"`
	IsOpen  bool `json:"is_open"`
}

type PopoverResponse struct {
	IsOpen bool `json:"is_open"`
}
