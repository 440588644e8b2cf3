package panel

import "sync"

// Guard makes a render region latest-wins: when several calculations
// target the same region concurrently, only the most recently started one
// may write to it.
type Guard struct {
	mu     sync.Mutex
	latest uint64
}

// Claim starts a calculation into dst and returns a target that drops
// every write once a newer claim exists.
func (g *Guard) Claim(dst RenderTarget) RenderTarget {
	g.mu.Lock()
	g.latest++
	ticket := g.latest
	g.mu.Unlock()
	return &claimed{guard: g, ticket: ticket, dst: dst}
}

// do runs write while holding the guard, if ticket is still the latest.
func (g *Guard) do(ticket uint64, write func()) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.latest == ticket {
		write()
	}
}

type claimed struct {
	guard  *Guard
	ticket uint64
	dst    RenderTarget
}

func (c *claimed) Hide() {
	c.guard.do(c.ticket, c.dst.Hide)
}

func (c *claimed) ShowResult(v View) {
	c.guard.do(c.ticket, func() { c.dst.ShowResult(v) })
}

func (c *claimed) ShowError(e ErrorView) {
	c.guard.do(c.ticket, func() { c.dst.ShowError(e) })
}
