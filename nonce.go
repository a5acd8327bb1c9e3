package hyperliquid

import "sync"

// nonceGenerator hands out strictly increasing millisecond nonces for a
// single wallet. time.Now().UnixMilli() alone can repeat across two
// calls landing in the same millisecond; bumping the last value by one
// in that case keeps the sequence strictly increasing, as the protocol
// requires of the L1/user-signed nonce.
type nonceGenerator struct {
	mu   sync.Mutex
	last uint64
}

func (g *nonceGenerator) next(nowMillis uint64) uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()

	if nowMillis <= g.last {
		g.last++
	} else {
		g.last = nowMillis
	}
	return g.last
}
