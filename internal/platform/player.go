package platform

const (
	gravity      = 0.5
	jumpStrength = -2.0
	moveSpeed    = 1.0
	maxVelocityX = 2.0
	maxVelocityY = 5.0
	friction     = 0.8
)

// Player is the platformer character. Position and velocity are continuous;
// rendering truncates to cells.
type Player struct {
	X, Y       float64
	VelX, VelY float64
	OnGround   bool
}

// NewPlayer creates a player at the given position.
func NewPlayer(x, y int) *Player {
	return &Player{X: float64(x), Y: float64(y)}
}

// MoveLeft accelerates the player left, capped at the max horizontal speed.
func (p *Player) MoveLeft() {
	p.VelX = max(p.VelX-moveSpeed, -maxVelocityX)
}

// MoveRight accelerates the player right.
func (p *Player) MoveRight() {
	p.VelX = min(p.VelX+moveSpeed, maxVelocityX)
}

// Jump launches the player upward, but only from the ground.
func (p *Player) Jump() {
	if p.OnGround {
		p.VelY = jumpStrength
		p.OnGround = false
	}
}

// Update applies one frame of physics: gravity, integration, platform
// collision, ground friction and level-edge clamping.
func (p *Player) Update(level *Level) {
	p.VelY = min(p.VelY+gravity, maxVelocityY)

	p.X += p.VelX
	p.Y += p.VelY

	p.collidePlatforms(level)

	if p.OnGround {
		p.VelX *= friction
		if p.VelX > -0.1 && p.VelX < 0.1 {
			p.VelX = 0
		}
	}

	if p.X < 0 {
		p.X = 0
		p.VelX = 0
	} else if p.X >= float64(level.Width) {
		p.X = float64(level.Width - 1)
		p.VelX = 0
	}
}

// collidePlatforms lands the player on platforms crossed this frame, or
// bounces off platforms hit from below.
func (p *Player) collidePlatforms(level *Level) {
	prevY := p.Y - p.VelY
	p.OnGround = false

	for _, plat := range level.Platforms {
		if p.X < float64(plat.X) || p.X >= float64(plat.X+plat.Width) {
			continue
		}
		platY := float64(plat.Y)
		if prevY <= platY && p.Y >= platY {
			p.Y = platY
			p.VelY = 0
			p.OnGround = true
			return
		}
		if prevY >= platY+1 && p.Y <= platY+1 {
			p.Y = platY + 1
			p.VelY = 0.5
		}
	}
}

// Cell returns the player's position truncated to a grid cell.
func (p *Player) Cell() Point {
	return Point{int(p.X), int(p.Y)}
}
