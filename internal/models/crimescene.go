package models

// CrimeScene is the evidence bag of one location.
type CrimeScene struct {
	Location     string
	clues        *Ledger
	investigated bool
}

func NewCrimeScene(location string) *CrimeScene {
	return &CrimeScene{Location: location, clues: NewLedger()}
}

// Investigate latches the scene as investigated. It returns true only the first time.
func (c *CrimeScene) Investigate() bool {
	if c.investigated {
		return false
	}
	c.investigated = true
	return true
}

func (c *CrimeScene) Investigated() bool { return c.investigated }

func (c *CrimeScene) AddClue(clue string) bool { return c.clues.Add(clue) }

func (c *CrimeScene) Clues() []string { return c.clues.Items() }

func (c *CrimeScene) Count() int { return c.clues.Len() }

// Reached reports whether the scene holds at least threshold clues. A threshold of zero never triggers.
func (c *CrimeScene) Reached(threshold int) bool {
	return threshold > 0 && c.clues.Len() >= threshold
}
