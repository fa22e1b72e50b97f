package helpgen

import (
	"math/rand"
	"strings"
	"testing"
)

func TestAudienceDistribution(t *testing.T) {
	tests := []struct {
		name     string
		eligible []string
		correct  string
	}{
		{"four letters", []string{"a", "b", "c", "d"}, "c"},
		{"two letters", []string{"b", "d"}, "b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for seed := int64(0); seed < 25; seed++ {
				rng := rand.New(rand.NewSource(seed))
				votes := AudienceDistribution(rng, tt.eligible, tt.correct)

				if len(votes) != len(tt.eligible) {
					t.Fatalf("seed %d: %d entries, want %d", seed, len(votes), len(tt.eligible))
				}
				total := 0
				for _, letter := range tt.eligible {
					count, ok := votes[letter]
					if !ok {
						t.Fatalf("seed %d: no votes for %q", seed, letter)
					}
					if count < 0 {
						t.Fatalf("seed %d: votes[%q] = %d", seed, letter, count)
					}
					total += count
				}
				if total != VotePool {
					t.Fatalf("seed %d: votes sum to %d, want %d", seed, total, VotePool)
				}
			}
		})
	}
}

func TestAudienceDistributionCorrectBand(t *testing.T) {
	// The draw bands guarantee a floor for the correct answer's share.
	for seed := int64(0); seed < 50; seed++ {
		rng := rand.New(rand.NewSource(seed))

		votes := AudienceDistribution(rng, []string{"a", "b", "c", "d"}, "a")
		if votes["a"] < 30 {
			t.Errorf("seed %d: four-way correct share = %d, want >= 30", seed, votes["a"])
		}

		votes = AudienceDistribution(rng, []string{"a", "b"}, "a")
		if votes["a"] < 40 {
			t.Errorf("seed %d: two-way correct share = %d, want >= 40", seed, votes["a"])
		}
	}
}

func TestFriendCallHint(t *testing.T) {
	eligible := []string{"a", "b", "c", "d"}

	t.Run("full accuracy", func(t *testing.T) {
		for seed := int64(0); seed < 25; seed++ {
			rng := rand.New(rand.NewSource(seed))
			hint := FriendCallHint(rng, eligible, "d", 1.0)
			if !strings.HasSuffix(hint, " D") {
				t.Errorf("seed %d: hint %q does not name D", seed, hint)
			}
		}
	})

	t.Run("zero accuracy", func(t *testing.T) {
		for seed := int64(0); seed < 25; seed++ {
			rng := rand.New(rand.NewSource(seed))
			hint := FriendCallHint(rng, eligible, "d", 0)
			if strings.HasSuffix(hint, " D") {
				t.Errorf("seed %d: hint %q names the correct letter", seed, hint)
			}
		}
	})

	t.Run("single survivor", func(t *testing.T) {
		rng := rand.New(rand.NewSource(1))
		hint := FriendCallHint(rng, []string{"c"}, "c", 0)
		if !strings.HasSuffix(hint, " C") {
			t.Errorf("hint %q should fall back to the only letter", hint)
		}
	})
}
