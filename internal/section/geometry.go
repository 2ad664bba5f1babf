package section

import (
	"math"
)

// CalculateProperties computes geometric properties of the section
func (s *Section) CalculateProperties() *Properties {
	props := &Properties{}

	if len(s.Vertices) < 3 {
		return props
	}

	// Find bounding box
	props.MinX, props.MaxX = s.Vertices[0].X, s.Vertices[0].X
	props.MinY, props.MaxY = s.Vertices[0].Y, s.Vertices[0].Y

	for _, v := range s.Vertices {
		props.MinX = math.Min(props.MinX, v.X)
		props.MaxX = math.Max(props.MaxX, v.X)
		props.MinY = math.Min(props.MinY, v.Y)
		props.MaxY = math.Max(props.MaxY, v.Y)
	}

	props.Width = props.MaxX - props.MinX
	props.Height = props.MaxY - props.MinY

	// Calculate area and centroid using the shoelace formula
	props.Area, props.CentroidX, props.CentroidY = s.calculateAreaAndCentroid()

	props.Iz, props.Iy = s.calculateSecondMoments(props.Area, props.CentroidX, props.CentroidY)

	props.J = s.J
	if props.J == 0 {
		props.J = saintVenantJ(props.Area, props.Iy+props.Iz)
	}

	return props
}

// calculateAreaAndCentroid uses the shoelace formula
func (s *Section) calculateAreaAndCentroid() (area, cx, cy float64) {
	n := len(s.Vertices)
	if n < 3 {
		return 0, 0, 0
	}

	var signedArea float64
	var sumX, sumY float64

	for i := 0; i < n; i++ {
		j := (i + 1) % n
		cross := s.Vertices[i].X*s.Vertices[j].Y - s.Vertices[j].X*s.Vertices[i].Y
		signedArea += cross
		sumX += (s.Vertices[i].X + s.Vertices[j].X) * cross
		sumY += (s.Vertices[i].Y + s.Vertices[j].Y) * cross
	}

	signedArea /= 2
	area = math.Abs(signedArea)

	if area > 0 {
		cx = sumX / (6 * signedArea)
		cy = sumY / (6 * signedArea)
	}

	return area, cx, cy
}

// calculateSecondMoments returns ∫y² dA and ∫x² dA about the centroid
func (s *Section) calculateSecondMoments(area, cx, cy float64) (iz, iy float64) {
	n := len(s.Vertices)
	var sumY2, sumX2, signedArea float64

	for i := 0; i < n; i++ {
		j := (i + 1) % n
		xi, yi := s.Vertices[i].X, s.Vertices[i].Y
		xj, yj := s.Vertices[j].X, s.Vertices[j].Y
		cross := xi*yj - xj*yi
		signedArea += cross
		sumY2 += cross * (yi*yi + yi*yj + yj*yj)
		sumX2 += cross * (xi*xi + xi*xj + xj*xj)
	}

	// orientation-independent
	sign := 1.0
	if signedArea < 0 {
		sign = -1
	}
	iz = sign*sumY2/12 - area*cy*cy
	iy = sign*sumX2/12 - area*cx*cx
	return iz, iy
}

// saintVenantJ approximates the torsion constant of a solid section,
// J ≈ A⁴ / (4π² Ip), exact for a circle
func saintVenantJ(area, ip float64) float64 {
	if ip <= 0 {
		return 0
	}
	return math.Pow(area, 4) / (4 * math.Pi * math.Pi * ip)
}
