package geometry

// Primitives bundles the package functions behind a value so pipelines can
// accept them through an interface and tests can substitute their own.
type Primitives struct{}

// FindRegions calls the package-level FindRegions.
func (Primitives) FindRegions(m *Mask) []Polygon { return FindRegions(m) }

// Simplify calls the package-level Simplify.
func (Primitives) Simplify(p Polygon, epsilon float64) Polygon { return Simplify(p, epsilon) }

// ConvexHull calls the package-level ConvexHull.
func (Primitives) ConvexHull(p Polygon) Polygon { return ConvexHull(p) }

// Area calls the package-level Area.
func (Primitives) Area(p Polygon) float64 { return Area(p) }

// Bounds calls the package-level Bounds.
func (Primitives) Bounds(p Polygon) Box { return Bounds(p) }
