package game

// PlayerSnapshot is a read-only view of one player.
type PlayerSnapshot struct {
	Label       string `json:"label"`
	Role        string `json:"role"`
	State       string `json:"state"`
	Position    Vec2   `json:"position"`
	Heading     Vec2   `json:"heading"`
	HomeRegion  int    `json:"home_region"`
	Controlling bool   `json:"controlling"`
}

// TeamSnapshot is a read-only view of one team.
type TeamSnapshot struct {
	Color      string           `json:"color"`
	State      string           `json:"state"`
	Goals      int              `json:"goals"`
	InControl  bool             `json:"in_control"`
	Receiving  string           `json:"receiving,omitempty"`
	Supporting string           `json:"supporting,omitempty"`
	Players    []PlayerSnapshot `json:"players"`
}

// BallSnapshot is a read-only view of the ball.
type BallSnapshot struct {
	Position Vec2 `json:"position"`
	Velocity Vec2 `json:"velocity"`
}

// MatchSnapshot captures everything a renderer or spectator needs for one frame.
type MatchSnapshot struct {
	ID                string         `json:"id"`
	Tick              int            `json:"tick"`
	Playing           bool           `json:"playing"`
	GoalkeeperHasBall bool           `json:"goalkeeper_has_ball"`
	Ball              BallSnapshot   `json:"ball"`
	Teams             []TeamSnapshot `json:"teams"`
}

// Snapshot copies the current match state.
func (m *Match) Snapshot() MatchSnapshot {
	s := MatchSnapshot{
		ID:                m.ID,
		Tick:              m.tick,
		Playing:           m.pitch.IsPlaying,
		GoalkeeperHasBall: m.pitch.GoalkeeperHasBall,
		Ball: BallSnapshot{
			Position: m.ball.Position(),
			Velocity: m.ball.Velocity(),
		},
	}
	for _, t := range m.Teams() {
		ts := TeamSnapshot{
			Color:     t.Color.String(),
			State:     t.StateName(),
			Goals:     t.Stats.Goals,
			InControl: t.InControl(),
		}
		if t.receivingPlayer != nil {
			ts.Receiving = t.receivingPlayer.Label
		}
		if t.supportingPlayer != nil {
			ts.Supporting = t.supportingPlayer.Label
		}
		for _, p := range t.players {
			ts.Players = append(ts.Players, PlayerSnapshot{
				Label:       p.Label,
				Role:        p.role.String(),
				State:       p.StateName(),
				Position:    p.Position(),
				Heading:     p.Heading(),
				HomeRegion:  p.homeRegion,
				Controlling: p.IsControllingPlayer(),
			})
		}
		s.Teams = append(s.Teams, ts)
	}
	return s
}
