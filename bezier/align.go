package bezier

import "github.com/Genius6942/pathgen"

// The alignment helpers below operate on spline control sequences
// (3k+1 points, joints at indices 0, 3, 6, …). They move a single point per
// joint onto the line through two others, which makes the tangent continuous
// across the joint. This is a local fix, applied joint by joint, and does not
// minimize any global measure of the curve.
// Each helper returns a modified copy of its input.

// Project returns the orthogonal projection of p onto the line through a and
// b. If a and b coincide, there is no line and p is returned unchanged.
func Project(p, a, b pathgen.Vector2) pathgen.Vector2 {
	ab := b.Sub(a)
	l := ab.Dot(ab)
	if l == 0 {
		return p
	}
	return a.Add(ab.Scale(p.Sub(a).Dot(ab) / l))
}

// AlignJoints projects every interior joint (indices 3, 6, …) onto the line
// through its incoming and outgoing handle.
func AlignJoints(points []pathgen.Vector2) []pathgen.Vector2 {
	pts := append([]pathgen.Vector2(nil), points...)
	for i := 3; i < len(pts)-1; i += 3 {
		pts[i] = Project(pts[i], pts[i-1], pts[i+1])
	}
	return pts
}

// AlignOutgoing projects every outgoing handle after an interior joint
// (indices 4, 7, …) onto the line through the incoming handle and the joint.
func AlignOutgoing(points []pathgen.Vector2) []pathgen.Vector2 {
	pts := append([]pathgen.Vector2(nil), points...)
	for i := 4; i < len(pts); i += 3 {
		pts[i] = Project(pts[i], pts[i-2], pts[i-1])
	}
	return pts
}

// AlignIncoming projects every incoming handle before an interior joint
// (indices 2, 5, …) onto the line through the joint and the outgoing handle.
func AlignIncoming(points []pathgen.Vector2) []pathgen.Vector2 {
	pts := append([]pathgen.Vector2(nil), points...)
	for i := 2; i < len(pts)-2; i += 3 {
		pts[i] = Project(pts[i], pts[i+1], pts[i+2])
	}
	return pts
}
