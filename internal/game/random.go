package game

import (
	crand "crypto/rand"
	"encoding/binary"
	"math/rand/v2"
)

// Randomizer is the source of dice and shuffles. *rand.Rand satisfies it.
type Randomizer interface {
	IntN(n int) int
	Shuffle(n int, swap func(i, j int))
}

// NewRandomizer returns a PCG generator seeded from crypto/rand.
func NewRandomizer() Randomizer {
	var b [16]byte
	if _, err := crand.Read(b[:]); err != nil {
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return rand.New(rand.NewPCG(binary.LittleEndian.Uint64(b[:8]), binary.LittleEndian.Uint64(b[8:])))
}

func rollDice(r Randomizer) Dice {
	d1 := r.IntN(6) + 1
	d2 := r.IntN(6) + 1
	return Dice{D1: d1, D2: d2, Total: d1 + d2, Doubles: d1 == d2}
}

func shuffle[T any](r Randomizer, a []T) {
	r.Shuffle(len(a), func(i, j int) { a[i], a[j] = a[j], a[i] })
}
