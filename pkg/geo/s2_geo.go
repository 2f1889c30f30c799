package geo

import (
	"github.com/golang/geo/s2"
	"github.com/lintang-b-s/navigatorx-hgv/pkg/datastructure"
)

// DistanceS2 jarak great circle dalam meter
func DistanceS2(latOne, lonOne, latTwo, lonTwo float64) float64 {
	return s2.LatLngFromDegrees(latOne, lonOne).Distance(s2.LatLngFromDegrees(latTwo, lonTwo)).Radians() * earthRadiusM
}

func ProjectPointToLineCoord(nearestStPoint datastructure.Coordinate, secondNearestStPoint datastructure.Coordinate,
	snap datastructure.Coordinate) datastructure.Coordinate {
	nearestStS2 := s2.PointFromLatLng(s2.LatLngFromDegrees(nearestStPoint.Lat, nearestStPoint.Lon))
	secondNearestStS2 := s2.PointFromLatLng(s2.LatLngFromDegrees(secondNearestStPoint.Lat, secondNearestStPoint.Lon))
	snapS2 := s2.PointFromLatLng(s2.LatLngFromDegrees(snap.Lat, snap.Lon))
	projection := s2.Project(snapS2, nearestStS2, secondNearestStS2)
	projectLatLng := s2.LatLngFromPoint(projection)
	return datastructure.NewCoordinate(projectLatLng.Lat.Degrees(), projectLatLng.Lng.Degrees())
}

// PointLinePerpendicularDistance return in meter
func PointLinePerpendicularDistance(nearestStPoint datastructure.Coordinate, secondNearestStPoint datastructure.Coordinate,
	snap datastructure.Coordinate) float64 {
	projectionPoint := ProjectPointToLineCoord(nearestStPoint, secondNearestStPoint, snap)

	dist := CalculateHaversineDistance(snap.Lat, snap.Lon, projectionPoint.Lat, projectionPoint.Lon)

	return dist * 1000
}
