package models

import "time"

// TrailPoint is one published position. Ticks restart at 0 for every
// session, so a trail is ordered by session start and then tick.
type TrailPoint struct {
	ServiceID     string    `json:"service_id" bson:"service_id"`
	SessionID     string    `json:"session_id" bson:"session_id"`
	SessionStart  time.Time `json:"session_started_at" bson:"session_started_at"`
	Tick          int       `json:"tick" bson:"tick"`
	Position      GeoPoint  `json:"position" bson:"position"`
	Geohash       string    `json:"geohash" bson:"geohash"`
	DistanceMiles float64   `json:"distance_miles" bson:"distance_miles"`
	ETAMinutes    int       `json:"eta_minutes" bson:"eta_minutes"`
	Status        Status    `json:"status" bson:"status"`
	RecordedAt    time.Time `json:"recorded_at" bson:"recorded_at"`
}
