package util

import (
	"fmt"

	"shed-server/internal/rng"
)

var temperaments = []string{
	"Lucky", "Sly", "Bold", "Cunning", "Grumpy", "Sneaky", "Patient", "Reckless", "Jolly", "Stoic",
	"Nimble", "Crafty", "Sleepy", "Brash", "Quiet", "Wily", "Cheeky", "Steady", "Restless", "Smug",
}

var critters = []string{
	"Shark", "Badger", "Fox", "Raven", "Owl", "Otter", "Magpie", "Weasel", "Heron", "Lynx",
	"Mole", "Stoat", "Crow", "Hare", "Ferret", "Gecko", "Marten", "Toad", "Jackdaw", "Newt",
}

// RandomBotName returns a display name for a bot, like "Sly Magpie"
func RandomBotName(gen rng.Generator) string {
	return fmt.Sprintf("%s %s", temperaments[gen.Intn(len(temperaments))], critters[gen.Intn(len(critters))])
}
