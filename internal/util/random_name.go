package util

import (
	"fmt"
	"math/rand"
	"sync"
	"time"
)

var adjectives = []string{
	"Bright", "Lucky", "Bold", "Quiet", "Sly", "Patient", "Reckless", "Calm", "Steady", "Golden", "Crimson",
	"Midnight", "Autumn", "Spring", "Rainy", "Misty", "Silver", "Daring", "Humble", "Cunning", "Cheerful", "Wandering",
}

// the pictures on the hwatu cards
var pictures = []string{
	"Crane", "Pine", "Plum", "Warbler", "Cherry", "Curtain", "Wisteria", "Cuckoo", "Iris", "Bridge", "Peony",
	"Butterfly", "Clover", "Boar", "Moon", "Geese", "Chrysanthemum", "Sake Cup", "Maple", "Deer",
}

var (
	randomLock sync.Mutex
	random     = rand.New(rand.NewSource(time.Now().UnixNano())) // nolint:gosec
)

// GetRandomName returns a random name by combining an adjective with a card picture
func GetRandomName() string {
	randomLock.Lock()
	defer randomLock.Unlock()

	adjectivesIndex := random.Intn(len(adjectives))
	picturesIndex := random.Intn(len(pictures))

	return fmt.Sprintf("%s %s", adjectives[adjectivesIndex], pictures[picturesIndex])
}
