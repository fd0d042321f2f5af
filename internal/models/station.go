package models

type Station struct {
	Name     string   `json:"name"`
	Vicinity string   `json:"vicinity"`
	PlaceID  string   `json:"place_id"`
	Location Location `json:"location"`
}
