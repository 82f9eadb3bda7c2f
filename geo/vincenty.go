package geo

import (
	"math"

	"github.com/golang/geo/s2"
)

// WGS84 ellipsoid.
const (
	wgs84a = 6378137.0
	wgs84b = 6356752.314245
	wgs84f = 1 / 298.257223563
)

const earthRadius = 6371008.8 // mean radius, great-circle fallback only

// Vincenty computes the inverse geodesic distance between p1 and p2 on the
// WGS84 ellipsoid, in metres. Returns 0 for coincident points and NaN when
// the lambda iteration has not converged after 100 rounds (near-antipodal
// inputs).
func Vincenty(p1, p2 Pos) float64 {
	if p1.Lat == p2.Lat && p1.Lon == p2.Lon {
		return 0
	}

	L := (p2.Lon - p1.Lon) * math.Pi / 180
	u1 := math.Atan((1 - wgs84f) * math.Tan(p1.Lat*math.Pi/180))
	u2 := math.Atan((1 - wgs84f) * math.Tan(p2.Lat*math.Pi/180))
	sinU1, cosU1 := math.Sincos(u1)
	sinU2, cosU2 := math.Sincos(u2)

	lambda := L
	var sinSigma, cosSigma, sigma, sinAlpha, cosSqAlpha, cos2SigmaM float64
	for i := 0; i < 100; i++ {
		sinLambda, cosLambda := math.Sincos(lambda)
		sinSigma = math.Sqrt((cosU2*sinLambda)*(cosU2*sinLambda) +
			(cosU1*sinU2-sinU1*cosU2*cosLambda)*(cosU1*sinU2-sinU1*cosU2*cosLambda))
		if sinSigma == 0 {
			return 0 // coincident
		}
		cosSigma = sinU1*sinU2 + cosU1*cosU2*cosLambda
		sigma = math.Atan2(sinSigma, cosSigma)
		sinAlpha = cosU1 * cosU2 * sinLambda / sinSigma
		cosSqAlpha = 1 - sinAlpha*sinAlpha
		if cosSqAlpha == 0 {
			cos2SigmaM = 0 // equatorial line
		} else {
			cos2SigmaM = cosSigma - 2*sinU1*sinU2/cosSqAlpha
		}
		c := wgs84f / 16 * cosSqAlpha * (4 + wgs84f*(4-3*cosSqAlpha))
		lambdaPrev := lambda
		lambda = L + (1-c)*wgs84f*sinAlpha*
			(sigma+c*sinSigma*(cos2SigmaM+c*cosSigma*(-1+2*cos2SigmaM*cos2SigmaM)))
		if math.Abs(lambda-lambdaPrev) <= 1e-12 {
			uSq := cosSqAlpha * (wgs84a*wgs84a - wgs84b*wgs84b) / (wgs84b * wgs84b)
			bigA := 1 + uSq/16384*(4096+uSq*(-768+uSq*(320-175*uSq)))
			bigB := uSq / 1024 * (256 + uSq*(-128+uSq*(74-47*uSq)))
			deltaSigma := bigB * sinSigma * (cos2SigmaM + bigB/4*
				(cosSigma*(-1+2*cos2SigmaM*cos2SigmaM)-
					bigB/6*cos2SigmaM*(-3+4*sinSigma*sinSigma)*(-3+4*cos2SigmaM*cos2SigmaM)))
			return wgs84b * bigA * (sigma - deltaSigma)
		}
	}
	return math.NaN()
}

// Distance is Vincenty with a great-circle fallback for the rare
// near-antipodal pairs where the iteration diverges, so a generation never
// aborts on a single bad segment.
func Distance(p1, p2 Pos) float64 {
	d := Vincenty(p1, p2)
	if math.IsNaN(d) {
		ll1 := s2.LatLngFromDegrees(p1.Lat, p1.Lon)
		ll2 := s2.LatLngFromDegrees(p2.Lat, p2.Lon)
		return ll1.Distance(ll2).Radians() * earthRadius
	}
	return d
}
