// Package helpgen produces the content behind the audience-vote and
// phone-a-friend lifelines. All functions are pure given their random source;
// callers decide which letters are still in play and what the correct one is.
package helpgen

import (
	"fmt"
	"math/rand"
	"strings"
)

// VotePool is the nominal number of audience members casting a vote.
const VotePool = 100

// friendNames are the people who might pick up the phone.
var friendNames = []string{
	"Maggie", "Victor", "Pauline", "Oscar", "Rita", "Henry",
}

// AudienceDistribution returns a vote count for every letter in eligible,
// summing exactly to VotePool. The correct letter draws its share from a
// higher band than the rest, so it usually (not always) gets a plurality.
func AudienceDistribution(rng *rand.Rand, eligible []string, correct string) map[string]int {
	votes := make(map[string]int, len(eligible))

	// Two-way questions give the correct answer a stronger pull than
	// four-way ones.
	var correctShare int
	if len(eligible) <= 2 {
		correctShare = 40 + rng.Intn(51) // 40..90
	} else {
		correctShare = 30 + rng.Intn(41) // 30..70
	}
	votes[correct] = correctShare

	remaining := VotePool - correctShare
	others := make([]string, 0, len(eligible)-1)
	for _, letter := range eligible {
		if letter != correct {
			others = append(others, letter)
		}
	}

	for i, letter := range others {
		if i == len(others)-1 {
			votes[letter] = remaining
			break
		}
		share := rng.Intn(remaining + 1)
		votes[letter] = share
		remaining -= share
	}

	return votes
}

// FriendCallHint returns a one-line hint naming a single letter from
// eligible. With probability accuracy the named letter is correct, otherwise
// it is a uniformly random other eligible letter.
func FriendCallHint(rng *rand.Rand, eligible []string, correct string, accuracy float64) string {
	named := correct
	if rng.Float64() >= accuracy {
		others := make([]string, 0, len(eligible)-1)
		for _, letter := range eligible {
			if letter != correct {
				others = append(others, letter)
			}
		}
		if len(others) > 0 {
			named = others[rng.Intn(len(others))]
		}
	}

	name := friendNames[rng.Intn(len(friendNames))]
	return fmt.Sprintf("%s thinks the answer is %s", name, strings.ToUpper(named))
}
