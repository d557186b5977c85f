package planet

import (
	"fmt"

	"planetgen/internal/rng"
)

var starNames = []string{
	"Altair", "Vega", "Sirius", "Arcturus", "Capella", "Rigel", "Procyon",
	"Betelgeuse", "Aldebaran", "Spica", "Antares", "Pollux", "Fomalhaut",
	"Deneb", "Regulus", "Adhara", "Castor", "Gacrux", "Bellatrix", "Elnath",
	"Miaplacidus", "Alnilam", "Alnair", "Alioth", "Dubhe", "Mirfak", "Wezen",
	"Sargas", "Kaus", "Avior", "Menkalinan", "Atria", "Alhena", "Peacock",
	"Alsephina", "Mirzam", "Polaris", "Alphard", "Hamal", "Algieba", "Diphda",
	"Mizar", "Nunki", "Menkent", "Mirach", "Alpheratz", "Rasalhague", "Kochab",
	"Saiph", "Zubenelgenubi", "Enif", "Schedar", "Markab", "Unukalhai", "Tau",
}

var planetSuffixes = []string{
	"I", "II", "III", "IV", "V", "VI", "VII", "VIII", "IX", "X",
	"Prime", "Alpha", "Beta", "Gamma", "Major", "Minor", "Core", "Outer",
}

// DefaultName gives a seed a stable catalog name. It uses its own source so
// it never disturbs the profile or texture sequence.
func DefaultName(seed int32) string {
	src := rng.New(seed)
	star := starNames[pick(src, len(starNames))]
	suffix := planetSuffixes[pick(src, len(planetSuffixes))]
	return fmt.Sprintf("%s %s", star, suffix)
}

func pick(src rng.Float64er, n int) int {
	return min(int(rng.Range(src, 0, float64(n))), n-1)
}
