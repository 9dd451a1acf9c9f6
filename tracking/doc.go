// Package tracking simulates a technician driving toward a customer.
//
// A Simulator owns at most one TrackingSession. Each tick moves the technician
// a fixed fraction of the remaining way, recomputes the haversine distance and
// the ETA at a constant average speed, and pushes the result to a
// RenderSurface and a UISink supplied by the caller. Ticking stops for good
// once the technician is within the arrival radius.
package tracking
