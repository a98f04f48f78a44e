package domain

import "math"

// One of the twelve 30 degree sectors of the ecliptic, starting at Aries.
type Sign int

const (
	Aries Sign = iota
	Taurus
	Gemini
	Cancer
	Leo
	Virgo
	Libra
	Scorpio
	Sagittarius
	Capricorn
	Aquarius
	Pisces
)

var signNames = [12]string{
	"Aries",
	"Taurus",
	"Gemini",
	"Cancer",
	"Leo",
	"Virgo",
	"Libra",
	"Scorpio",
	"Sagittarius",
	"Capricorn",
	"Aquarius",
	"Pisces",
}

func (s Sign) String() string {
	if s < Aries || s > Pisces {
		return "Unknown"
	}
	return signNames[s]
}

// Signs returns the twelve signs in zodiac order.
func Signs() []Sign {
	out := make([]Sign, 0, len(signNames))
	for i := range signNames {
		out = append(out, Sign(i))
	}
	return out
}

// NormalizeDegrees folds any finite angle into [0, 360).
func NormalizeDegrees(deg float64) float64 {
	d := math.Mod(deg, 360)
	if d < 0 {
		d += 360
	}
	// -1e-17 + 360 rounds to 360.
	if d >= 360 {
		d = 0
	}
	return d
}

// SignOf maps an ecliptic longitude to its zodiac sign.
func SignOf(longitude float64) Sign {
	s, _, _ := SignComponents(longitude)
	return s
}

// SignComponents splits a longitude into sign, whole degree within the sign
// [0,29] and whole arc-minute within the degree [0,59]. Both parts are
// truncated, never rounded.
func SignComponents(longitude float64) (Sign, int, int) {
	lon := NormalizeDegrees(longitude)

	index := int(math.Floor(lon / 30))
	inSign := lon - float64(index)*30
	// keep sign and in-sign offset consistent when lon/30 rounds across a boundary
	if inSign < 0 {
		index--
		inSign += 30
	} else if inSign >= 30 {
		index++
		inSign -= 30
	}
	sign := Sign(((index % 12) + 12) % 12)

	degree := int(math.Floor(inSign))
	minute := int(math.Floor((inSign - float64(degree)) * 60))

	// Guard against float noise at the top of the range.
	if degree > 29 {
		degree = 29
	}
	if minute > 59 {
		minute = 59
	}

	return sign, degree, minute
}
