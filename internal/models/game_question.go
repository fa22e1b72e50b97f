package models

import (
	"errors"
	"math/rand"
	"strings"

	"quizladder/internal/helpgen"
)

// Letters are the four display letters, in order.
var Letters = []string{"a", "b", "c", "d"}

var (
	ErrHelpAlreadyApplied = errors.New("help already applied to this question")
)

// HelpState holds the artifacts produced by lifelines on one question. Each
// field is set at most once and never cleared. Persisted as JSON.
type HelpState struct {
	// FiftyFifty is the pair of letters left after the 50/50 lifeline. It
	// always contains the correct letter.
	FiftyFifty []string `json:"fifty_fifty,omitempty"`

	// AudienceVotes maps a letter to its simulated vote count. Only letters
	// that were still in play when the lifeline was used get an entry.
	AudienceVotes map[string]int `json:"audience_votes,omitempty"`

	// FriendHint is the phone-a-friend text, naming exactly one letter.
	FriendHint string `json:"friend_hint,omitempty"`
}

// GameQuestion binds one question into one game at one ladder level. The
// fields A..D map each display letter to an answer position 1..4; the mapping
// is a random bijection fixed at creation time, so the letter that maps to
// position 1 is the correct one.
type GameQuestion struct {
	ID         int64
	GameID     int64
	QuestionID int64
	Question   *Question

	A, B, C, D int

	Help HelpState
}

// NewGameQuestion creates a game question for q with a letter assignment
// drawn uniformly at random from rng.
func NewGameQuestion(q *Question, rng *rand.Rand) *GameQuestion {
	perm := rng.Perm(4)
	return &GameQuestion{
		QuestionID: q.ID,
		Question:   q,
		A:          perm[0] + 1,
		B:          perm[1] + 1,
		C:          perm[2] + 1,
		D:          perm[3] + 1,
	}
}

// Text returns the question text.
func (gq *GameQuestion) Text() string {
	return gq.Question.Text
}

// Level returns the question's difficulty level.
func (gq *GameQuestion) Level() int {
	return gq.Question.Level
}

// position returns the answer position assigned to a display letter.
func (gq *GameQuestion) position(letter string) int {
	switch letter {
	case "a":
		return gq.A
	case "b":
		return gq.B
	case "c":
		return gq.C
	case "d":
		return gq.D
	}
	return 0
}

// Variants maps every display letter to its answer text.
func (gq *GameQuestion) Variants() map[string]string {
	variants := make(map[string]string, len(Letters))
	for _, letter := range Letters {
		variants[letter] = gq.Question.Answer(gq.position(letter))
	}
	return variants
}

// CorrectLetter returns the letter whose assigned position is 1.
func (gq *GameQuestion) CorrectLetter() string {
	for _, letter := range Letters {
		if gq.position(letter) == 1 {
			return letter
		}
	}
	return ""
}

// CorrectAnswer returns the text of the correct answer.
func (gq *GameQuestion) CorrectAnswer() string {
	return gq.Variants()[gq.CorrectLetter()]
}

// IsAnswerCorrect reports whether the given letter is the correct one.
// Input is normalized, so "B" and " b " both match.
func (gq *GameQuestion) IsAnswerCorrect(letter string) bool {
	return strings.ToLower(strings.TrimSpace(letter)) == gq.CorrectLetter()
}

// eligibleLetters returns the letters still in play for help generation:
// the 50/50 survivors if that lifeline was already used, otherwise all four.
func (gq *GameQuestion) eligibleLetters() []string {
	if len(gq.Help.FiftyFifty) > 0 {
		return gq.Help.FiftyFifty
	}
	return Letters
}

// AddFiftyFifty narrows the question to the correct letter plus one random
// decoy. Fails if the lifeline was already applied to this question.
func (gq *GameQuestion) AddFiftyFifty(rng *rand.Rand) error {
	if len(gq.Help.FiftyFifty) > 0 {
		return ErrHelpAlreadyApplied
	}

	correct := gq.CorrectLetter()
	others := make([]string, 0, 3)
	for _, letter := range Letters {
		if letter != correct {
			others = append(others, letter)
		}
	}

	gq.Help.FiftyFifty = []string{correct, others[rng.Intn(len(others))]}
	return nil
}

// AddAudienceHelp generates a simulated audience vote over the letters still
// in play. Fails if already applied.
func (gq *GameQuestion) AddAudienceHelp(rng *rand.Rand) error {
	if gq.Help.AudienceVotes != nil {
		return ErrHelpAlreadyApplied
	}

	gq.Help.AudienceVotes = helpgen.AudienceDistribution(rng, gq.eligibleLetters(), gq.CorrectLetter())
	return nil
}

// AddFriendCall generates a phone-a-friend hint naming one of the letters
// still in play; with probability accuracy the named letter is the correct
// one. Fails if already applied.
func (gq *GameQuestion) AddFriendCall(rng *rand.Rand, accuracy float64) error {
	if gq.Help.FriendHint != "" {
		return ErrHelpAlreadyApplied
	}

	gq.Help.FriendHint = helpgen.FriendCallHint(rng, gq.eligibleLetters(), gq.CorrectLetter(), accuracy)
	return nil
}
