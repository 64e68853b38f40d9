package world

import "math/rand"

// Palette - the twelve colors a participant can be assigned. Uniqueness is
// best effort: once all twelve are taken, new participants reuse a random
// one instead of failing.
var Palette = []string{
	"#e6194b",
	"#3cb44b",
	"#ffe119",
	"#4363d8",
	"#f58231",
	"#911eb4",
	"#46f0f0",
	"#f032e6",
	"#bcf60c",
	"#fabebe",
	"#008080",
	"#e6beff",
}

// AllocateColor - picks a uniformly random palette color not present in used.
// When the palette is exhausted it falls back to a random color from the full
// palette. Side-effect-free; deterministic under a seeded rnd.
func AllocateColor(rnd *rand.Rand, used map[string]struct{}) string {
	free := make([]string, 0, len(Palette))
	for _, color := range Palette {
		if _, taken := used[color]; !taken {
			free = append(free, color)
		}
	}

	if len(free) == 0 {
		return Palette[rnd.Intn(len(Palette))]
	}

	return free[rnd.Intn(len(free))]
}
