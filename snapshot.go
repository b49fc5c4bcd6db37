package tween

// Snapshot is a point-in-time view of a Scheduler for debugging tools.
type Snapshot struct {
	Alive     int        `json:"alive"`
	MaxAlive  int        `json:"max_alive"`
	Capacity  int        `json:"capacity"`
	TimeScale float64    `json:"time_scale"`
	Update    []UnitInfo `json:"update"`
	Fixed     []UnitInfo `json:"fixed"`
}

// UnitInfo describes one alive tween or sequence.
type UnitInfo struct {
	ID          uint64  `json:"id"`
	Description string  `json:"description"`
	Paused      bool    `json:"paused,omitempty"`
	Nested      bool    `json:"nested,omitempty"`
	Progress    float64 `json:"progress"`
	CyclesDone  int     `json:"cycles_done"`
	CyclesTotal int     `json:"cycles_total"`
}

// Snapshot lists every alive unit in both update groups. It allocates; call it
// from tools, not every frame.
func (s *Scheduler) Snapshot() Snapshot {
	snap := Snapshot{
		Alive:     s.aliveCount,
		MaxAlive:  s.maxAlive,
		Capacity:  s.capacity,
		TimeScale: s.timeScale,
	}
	snap.Update = s.unitInfos(groupUpdate)
	snap.Fixed = s.unitInfos(groupFixed)
	return snap
}

func (s *Scheduler) unitInfos(group int) []UnitInfo {
	var out []UnitInfo
	s.eachLive(group, -1, func(u *unit) {
		if !u.alive {
			return
		}
		h := u.handle(s)
		out = append(out, UnitInfo{
			ID:          u.id,
			Description: u.String(),
			Paused:      u.paused,
			Nested:      u.parent != nil,
			Progress:    h.ProgressTotal(),
			CyclesDone:  u.getCyclesDone(),
			CyclesTotal: u.settings.Cycles,
		})
	})
	return out
}
