package service

import (
	"time"
)

// sequenceGenerator hands out fixed codes in order and repeats the last one
type sequenceGenerator struct {
	codes []string
	calls int
}

func (g *sequenceGenerator) Generate(time.Time) string {
	code := g.codes[min(g.calls, len(g.codes)-1)]
	g.calls++
	return code
}

var fixedNow = time.Date(2026, time.January, 26, 10, 0, 0, 0, time.UTC)

func newTestExchangeService(codes ...string) *ExchangeService {
	s := NewExchangeService(nil, &sequenceGenerator{codes: codes})
	s.now = func() time.Time { return fixedNow }
	return s
}
