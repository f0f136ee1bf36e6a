// Package elixir implements the per-player regenerating resource that gates
// unit deployment.
package elixir

// Default pool parameters for a standard match.
const (
	DefaultStart     = 5.0
	DefaultMax       = 10.0
	DefaultRegenRate = 1.0 // elixir per second
)

// Pool is one player's elixir reserve. It is mutated only by the tick
// pipeline and by action application, so it carries no locking of its own.
type Pool struct {
	Amount    float64
	Max       float64
	RegenRate float64
}

// NewPool creates a pool with the standard starting values.
func NewPool() Pool {
	return Pool{
		Amount:    DefaultStart,
		Max:       DefaultMax,
		RegenRate: DefaultRegenRate,
	}
}

// Regen adds linear regeneration for the elapsed time, capped at Max.
func (p *Pool) Regen(dt float64) {
	p.Add(p.RegenRate * dt)
}

// Add credits elixir, capped at Max.
func (p *Pool) Add(amount float64) {
	p.Amount += amount
	if p.Amount > p.Max {
		p.Amount = p.Max
	}
}

// Spend atomically checks and decrements the pool. It returns false and
// leaves the amount unchanged when the cost exceeds the current reserve;
// there is no partial spend.
func (p *Pool) Spend(cost float64) bool {
	if p.Amount < cost {
		return false
	}
	p.Amount -= cost
	return true
}
