package geo

import (
	"github.com/mmcloughlin/geohash"

	"technician-tracker/models"
)

// CellPrecision is the geohash length attached to position updates (~150m cells).
const CellPrecision uint = 7

// Geohash encodes p into a geohash with the given precision.
func Geohash(p models.GeoPoint, precision uint) string {
	return geohash.EncodeWithPrecision(p.Lat, p.Lng, precision)
}
