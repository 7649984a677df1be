package service

import (
	"fmt"
	"math/rand"
	"time"
)

const orderNumberPrefix = "DH"

// NumberGenerator produces human-facing order numbers of the form
// DH-{year}-{last 4 digits of unix millis}{4 random digits}. Numbers are
// collision resistant, not unique; the orders table enforces uniqueness.
type NumberGenerator struct {
	now  func() time.Time
	intn func(n int) int
}

func NewNumberGenerator() *NumberGenerator {
	return &NumberGenerator{
		now:  time.Now,
		intn: rand.Intn,
	}
}

func (g *NumberGenerator) Next() string {
	now := g.now()
	return fmt.Sprintf("%s-%d-%04d%04d", orderNumberPrefix, now.Year(), now.UnixMilli()%10000, g.intn(10000))
}
