package game

import "github.com/pefman/packet-pals/internal/engine"

var namePrefixes = []string{
	"Star", "Candy", "Turbo", "Spark", "Rainbow",
	"Mega", "Fizzy", "Funky", "Magic", "Cosmic",
	"Butter", "Jolly", "Mighty", "Sunny", "Lava",
}

var nameSuffixes = []string{
	"Dino", "Bat", "Cat", "Dog", "Fish",
	"Dragon", "Bee", "Fairy", "Ghost", "Bear",
	"Zard", "Robot", "Frog", "Pup", "Wizard",
}

// randomName builds a kid-friendly monster name from a prefix and a suffix.
func randomName(d *engine.Roller) string {
	return namePrefixes[d.Intn(len(namePrefixes))] + nameSuffixes[d.Intn(len(nameSuffixes))]
}

// wildLevel picks a level within 3 of the player's, never below 1.
func wildLevel(d *engine.Roller, playerLevel int) int {
	lo := playerLevel - 3
	if lo < 1 {
		lo = 1
	}
	return d.Between(lo, playerLevel+3)
}
