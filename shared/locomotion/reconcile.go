package locomotion

// Reconcile moves the body a fixed fraction of the way toward the
// authoritative position, when one is present. Velocity and orientation are
// left alone and the correction is never cleared here. It reports whether a
// correction was applied.
func Reconcile(s *State, c Corrections, factor float64) bool {
	if c == nil {
		return false
	}
	target, ok := c.ServerTransform()
	if !ok {
		return false
	}
	pos := s.Body.Position()
	s.Body.SetPosition(pos.Add(target.Sub(pos).Mul(factor)))
	return true
}
