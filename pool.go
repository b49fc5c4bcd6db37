package tween

const (
	groupUpdate = iota
	groupFixed
)

// acquire returns a revived unit registered in the given update group. Freed
// slots are reused before the pool grows; growth doubles the capacity.
func (s *Scheduler) acquire(group int) *unit {
	var u *unit
	if n := len(s.free); n > 0 {
		u = s.units[s.free[n-1]]
		s.free = s.free[:n-1]
	} else {
		if len(s.units) >= s.capacity {
			newCap := max(s.capacity*2, 1)
			s.log.Warn().Int("capacity", s.capacity).Int("new_capacity", newCap).
				Msg("tween pool capacity exceeded; raise Config.Capacity or call SetCapacity to avoid growing at runtime")
			s.grow(newCap)
		}
		u = &unit{idx: int32(len(s.units))}
		s.units = append(s.units, u)
	}
	s.nextID++
	u.id = s.nextID
	u.alive = true
	s.aliveCount++
	if s.aliveCount > s.maxAlive {
		s.maxAlive = s.aliveCount
	}
	s.live[group] = append(s.live[group], u.idx)
	return u
}

// release zeroes u and returns its slot to the free list. Nothing survives
// into the next use, including callbacks and sequence links.
func (s *Scheduler) release(u *unit) {
	*u = unit{idx: u.idx}
	s.free = append(s.free, u.idx)
}

func (s *Scheduler) grow(capacity int) {
	s.capacity = capacity
	if cap(s.units) < capacity {
		units := make([]*unit, len(s.units), capacity)
		copy(units, s.units)
		s.units = units
	}
}

// SetCapacity pre-sizes the pool so that up to n tweens can be alive without
// allocating. It never shrinks below the units already allocated.
func (s *Scheduler) SetCapacity(n int) {
	if n < 0 {
		s.log.Error().Int("capacity", n).Msg("capacity must be >= 0")
		return
	}
	if n < len(s.units) {
		s.log.Warn().Int("capacity", n).Int("allocated", len(s.units)).
			Msg("capacity is below the number of allocated units; keeping the allocated ones")
		n = len(s.units)
	}
	s.grow(n)
}

// Capacity returns the current pool capacity.
func (s *Scheduler) Capacity() int { return s.capacity }

// MaxAlive returns the highest number of simultaneously alive units seen.
func (s *Scheduler) MaxAlive() int { return s.maxAlive }
