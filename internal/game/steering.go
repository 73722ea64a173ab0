package game

// behaviour is a bit set of active steering behaviours.
type behaviour uint8

const (
	behSeek behaviour = 1 << iota
	behArrive
	behPursuit
	behInterpose
	behSeparation
)

const (
	steerGain         = 4.0 // 1/s: how hard velocity is pulled toward the desired one
	arriveSlowRadius  = 0.8 // start braking within this distance of the target
	separationRadius  = 0.9
	separationWeight  = 2.0
	pursuitLookAheadK = 1.0 // seconds of look-ahead per m/s of closing speed
)

// Steering turns a player's active behaviours into an acceleration.
type Steering struct {
	flags  behaviour
	Target Vec2
	// interposeDist is how far in front of Target the interposer stands.
	interposeDist float64
}

func (s *Steering) SeekOn() { s.flags |= behSeek }
func (s *Steering) SeekOff() { s.flags &^= behSeek }
func (s *Steering) ArriveOn() { s.flags |= behArrive }
func (s *Steering) ArriveOff() { s.flags &^= behArrive }
func (s *Steering) PursuitOn() { s.flags |= behPursuit }
func (s *Steering) PursuitOff() { s.flags &^= behPursuit }
func (s *Steering) SeparationOn() { s.flags |= behSeparation }

func (s *Steering) InterposeOn(dist float64) {
	s.flags |= behInterpose
	s.interposeDist = dist
}

func (s *Steering) InterposeOff() { s.flags &^= behInterpose }

// Active reports whether behaviour b is on.
func (s *Steering) Active(b behaviour) bool { return s.flags&b != 0 }

// calculate returns the acceleration for p this tick, capped at maxForce.
func (s *Steering) calculate(p *Player, maxForce float64) Vec2 {
	pos := p.Position()
	vel := p.Velocity()
	maxSpeed := p.MaxSpeed()
	var force Vec2

	if s.Active(behSeparation) {
		force = force.Add(separation(p, pos).Scale(separationWeight))
	}

	switch {
	case s.Active(behInterpose):
		ball := p.team.ball.Position()
		spot := s.Target.Add(ball.Sub(s.Target).Normalize().Scale(s.interposeDist))
		force = force.Add(arrive(pos, vel, spot, maxSpeed))
	case s.Active(behPursuit):
		force = force.Add(pursuit(p, pos, vel, maxSpeed))
	case s.Active(behArrive):
		force = force.Add(arrive(pos, vel, s.Target, maxSpeed))
	case s.Active(behSeek):
		force = force.Add(seek(pos, vel, s.Target, maxSpeed))
	default:
		// Nothing to move toward: brake.
		force = force.Add(vel.Scale(-steerGain))
	}
	return force.Truncate(maxForce)
}

func seek(pos, vel, target Vec2, maxSpeed float64) Vec2 {
	desired := target.Sub(pos).Normalize().Scale(maxSpeed)
	return desired.Sub(vel).Scale(steerGain)
}

func arrive(pos, vel, target Vec2, maxSpeed float64) Vec2 {
	toTarget := target.Sub(pos)
	dist := toTarget.Length()
	if dist < 1e-6 {
		return vel.Scale(-steerGain)
	}
	speed := maxSpeed
	if dist < arriveSlowRadius {
		speed = maxSpeed * dist / arriveSlowRadius
	}
	desired := toTarget.Scale(speed / dist)
	return desired.Sub(vel).Scale(steerGain)
}

func pursuit(p *Player, pos, vel Vec2, maxSpeed float64) Vec2 {
	ball := p.team.ball
	bpos := ball.Position()
	toBall := bpos.Sub(pos)
	lookAhead := 0.0
	if ball.Velocity().LengthSq() > 1e-6 {
		lookAhead = toBall.Length() / (maxSpeed + ball.Velocity().Length()) * pursuitLookAheadK
	}
	return arrive(pos, vel, ball.FuturePosition(lookAhead), maxSpeed)
}

func separation(p *Player, pos Vec2) Vec2 {
	var force Vec2
	for _, team := range []*Team{p.team, p.team.opposingTeam} {
		if team == nil {
			continue
		}
		for _, other := range team.players {
			if other == p {
				continue
			}
			away := pos.Sub(other.Position())
			dist := away.Length()
			if dist < 1e-6 || dist > separationRadius {
				continue
			}
			force = force.Add(away.Normalize().Scale((separationRadius - dist) / separationRadius))
		}
	}
	return force
}
