package geo

import (
	"errors"
	"math"

	"github.com/dhconnelly/rtreego"

	"technician-tracker/models"
)

// pointTolerance pads a single point into a rectangle rtreego can combine.
const pointTolerance = 0.0001

var ErrNoPoints = errors.New("bounds need at least one point")

// Box is a viewport bounding box given by its south-west and north-east corners.
type Box struct {
	SouthWest models.GeoPoint `json:"south_west"`
	NorthEast models.GeoPoint `json:"north_east"`
}

// Contains reports whether p falls inside the box.
func (b Box) Contains(p models.GeoPoint) bool {
	return p.Lat >= b.SouthWest.Lat && p.Lat <= b.NorthEast.Lat &&
		p.Lng >= b.SouthWest.Lng && p.Lng <= b.NorthEast.Lng
}

// Bounds returns the smallest box covering all points, padded by a few
// meters so a single point still yields a non-empty viewport.
func Bounds(points ...models.GeoPoint) (Box, error) {
	if len(points) == 0 {
		return Box{}, ErrNoPoints
	}
	lo := rtreego.Point{math.Inf(1), math.Inf(1)}
	hi := rtreego.Point{math.Inf(-1), math.Inf(-1)}
	for _, p := range points {
		r := toRect(p)
		for i := range lo {
			lo[i] = math.Min(lo[i], r.PointCoord(i))
			hi[i] = math.Max(hi[i], r.PointCoord(i)+r.LengthsCoord(i))
		}
	}
	rect, err := rtreego.NewRectFromPoints(lo, hi)
	if err != nil {
		return Box{}, err
	}
	return Box{
		SouthWest: models.GeoPoint{Lat: rect.PointCoord(0), Lng: rect.PointCoord(1)},
		NorthEast: models.GeoPoint{
			Lat: rect.PointCoord(0) + rect.LengthsCoord(0),
			Lng: rect.PointCoord(1) + rect.LengthsCoord(1),
		},
	}, nil
}

func toRect(p models.GeoPoint) rtreego.Rect {
	return rtreego.Point{p.Lat, p.Lng}.ToRect(pointTolerance)
}
