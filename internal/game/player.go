package game

// ConnID is the transport connection handle. It doubles as the player
// identity for the lifetime of the room.
type ConnID string

type Player struct {
	ID         ConnID
	Name       string
	Ready      bool
	FoundCount int
	Score      int
	Misclicks  int
	Finished   bool
}

func NewPlayer(id ConnID, name, defaultName string) *Player {
	if name == "" {
		name = defaultName
	}
	return &Player{ID: id, Name: name}
}

// resetStats clears the per-game counters but leaves the ready flag alone.
// Used at game start, where both flags are necessarily true already.
func (p *Player) resetStats() {
	p.FoundCount = 0
	p.Score = 0
	p.Misclicks = 0
	p.Finished = false
}
