package generator

import (
	"github.com/rs/zerolog/log"

	"lotomania/internal/lotto"
	"lotomania/internal/stats"
)

// Constructor builds initial candidates from the frequency tiers.
type Constructor struct {
	profile  Profile
	hot      lotto.Set
	warm     lotto.Set
	cold     lotto.Set
	universe lotto.Set
}

func NewConstructor(fp *stats.FrequencyProfile, p Profile) *Constructor {
	return &Constructor{
		profile:  p,
		hot:      fp.HotSet(),
		warm:     fp.WarmSet(),
		cold:     fp.ColdSet(),
		universe: lotto.Set{}.Complement(),
	}
}

// Build seeds the candidate with fixed, draws the profile quota from Hot then
// Cold, fills from Warm and finally from the whole universe. The result always
// holds exactly lotto.GameSize numbers.
func (c *Constructor) Build(src Source, fixed lotto.Set) lotto.Set {
	var cand lotto.Set
	if fixed.Len() > lotto.GameSize {
		fixed.Each(func(n int) {
			if cand.Len() < lotto.GameSize {
				cand.Add(n)
			}
		})
		return cand
	}
	cand = fixed

	free := func() int { return lotto.GameSize - cand.Len() }

	drawInto(src, &cand, c.hot, min(c.profile.HotDraws, free()))
	drawInto(src, &cand, c.cold, min(c.profile.ColdDraws, free()))
	drawInto(src, &cand, c.warm, free())
	if short := free(); short > 0 {
		log.Debug().Int("short", short).Msg("Tier pools exhausted, filling from universe")
		drawInto(src, &cand, c.universe, short)
	}
	return cand
}
