package models

import (
	"errors"
	"math/rand"
	"time"
)

// Expected errors from game operations.
var (
	ErrGameFinished      = errors.New("game is already finished")
	ErrNoCurrentQuestion = errors.New("game has no current question")
	ErrHelpAlreadyUsed   = errors.New("help already used in this game")
	ErrUnknownHelpKind   = errors.New("unknown help kind")
)

// Status is the derived state of a game. It is never stored; see Game.Status.
type Status string

const (
	StatusInProgress Status = "in_progress"
	StatusWon        Status = "won"
	StatusFail       Status = "fail"
	StatusTimeout    Status = "timeout"
	StatusMoney      Status = "money"
)

// HelpKind identifies one of the three lifelines.
type HelpKind string

const (
	HelpFiftyFifty HelpKind = "fifty_fifty"
	HelpAudience   HelpKind = "audience_help"
	HelpFriendCall HelpKind = "friend_call"
)

// Rules holds the ladder configuration a game is played under.
type Rules struct {
	// Prizes is the monotonically increasing prize per level; Prizes[0] is
	// the reward for answering the easiest question.
	Prizes []int

	// Checkpoints are counts of answered questions whose prize is guaranteed
	// once reached (e.g. 5, 10, 15 on the classic ladder).
	Checkpoints []int

	// TimeLimit is how long a game may run before a wrong or late answer
	// counts as a timeout.
	TimeLimit time.Duration

	// FriendAccuracy is the probability the phone-a-friend hint names the
	// correct letter.
	FriendAccuracy float64
}

// MaxLevel returns the highest playable level index.
func (r Rules) MaxLevel() int {
	return len(r.Prizes) - 1
}

// TopPrize returns the jackpot.
func (r Rules) TopPrize() int {
	if len(r.Prizes) == 0 {
		return 0
	}
	return r.Prizes[len(r.Prizes)-1]
}

// CheckpointPrize returns the guaranteed payout for a game that failed at
// the given level: the prize of the highest checkpoint already reached, or 0.
func (r Rules) CheckpointPrize(level int) int {
	best := 0
	for _, checkpoint := range r.Checkpoints {
		if checkpoint <= level && checkpoint > 0 && checkpoint <= len(r.Prizes) {
			if prize := r.Prizes[checkpoint-1]; prize > best {
				best = prize
			}
		}
	}
	return best
}

// LevelPrize returns the payout for cashing out at the given level: the full
// prize of the last answered question, or 0 if none was answered yet.
func (r Rules) LevelPrize(level int) int {
	if level <= 0 || len(r.Prizes) == 0 {
		return 0
	}
	if level > len(r.Prizes) {
		level = len(r.Prizes)
	}
	return r.Prizes[level-1]
}

// Game is one play-through of the ladder. All mutation goes through
// AnswerCurrentQuestion, UseHelp and TakeMoney; callers must not interleave
// concurrent calls on the same instance.
type Game struct {
	ID     int64
	UserID int64

	CurrentLevel int
	IsFailed     bool
	Prize        int

	FiftyFiftyUsed   bool
	AudienceHelpUsed bool
	FriendCallUsed   bool

	CreatedAt  time.Time
	FinishedAt *time.Time

	Questions []*GameQuestion
	Rules     Rules
}

// NewGame builds an unfinished game at level 0 over the given questions,
// which must be ordered by level.
func NewGame(userID int64, questions []*GameQuestion, rules Rules, now time.Time) *Game {
	return &Game{
		UserID:    userID,
		CreatedAt: now,
		Questions: questions,
		Rules:     rules,
	}
}

// Finished reports whether the game has reached a terminal state.
func (g *Game) Finished() bool {
	return g.FinishedAt != nil
}

// TimedOut reports whether the game's play time has run out.
func (g *Game) TimedOut(now time.Time) bool {
	return now.Sub(g.CreatedAt) > g.Rules.TimeLimit
}

// PreviousLevel returns the level of the last answered question (-1 for a
// fresh game).
func (g *Game) PreviousLevel() int {
	return g.CurrentLevel - 1
}

// Status derives the game state from its stored fields. The precedence
// matters: a failed game past its deadline is a timeout, not a plain fail,
// and only an unfailed finished game below the top level is a cash-out.
func (g *Game) Status(now time.Time) Status {
	if g.FinishedAt == nil {
		return StatusInProgress
	}
	if g.IsFailed && g.TimedOut(now) {
		return StatusTimeout
	}
	if g.IsFailed {
		return StatusFail
	}
	if g.CurrentLevel > g.Rules.MaxLevel() {
		return StatusWon
	}
	return StatusMoney
}

// CurrentQuestion returns the question at the current level.
func (g *Game) CurrentQuestion() (*GameQuestion, error) {
	if g.Finished() {
		return nil, ErrGameFinished
	}
	if g.CurrentLevel < 0 || g.CurrentLevel >= len(g.Questions) {
		return nil, ErrNoCurrentQuestion
	}
	return g.Questions[g.CurrentLevel], nil
}

// AnswerCurrentQuestion applies an answer and returns whether the game is
// still in progress. A game past its time limit fails regardless of the
// letter. A wrong answer pays out the last checkpoint passed; answering the
// top question correctly pays the jackpot.
func (g *Game) AnswerCurrentQuestion(letter string, now time.Time) (bool, error) {
	if g.Finished() {
		return false, ErrGameFinished
	}

	if g.TimedOut(now) {
		g.fail(now)
		return false, nil
	}

	question, err := g.CurrentQuestion()
	if err != nil {
		return false, err
	}

	if !question.IsAnswerCorrect(letter) {
		g.fail(now)
		return false, nil
	}

	g.CurrentLevel++
	if g.CurrentLevel > g.Rules.MaxLevel() {
		g.Prize = g.Rules.TopPrize()
		g.finish(now)
		return false, nil
	}
	return true, nil
}

// TakeMoney ends the game voluntarily, banking the prize of the last
// answered question (0 when nothing was answered yet).
func (g *Game) TakeMoney(now time.Time) error {
	if g.Finished() {
		return ErrGameFinished
	}
	g.Prize = g.Rules.LevelPrize(g.CurrentLevel)
	g.finish(now)
	return nil
}

// UseHelp consumes a lifeline on the current question. Each kind may be used
// once per game; the per-question state in HelpState is the second line of
// defense.
func (g *Game) UseHelp(kind HelpKind, rng *rand.Rand, now time.Time) error {
	if g.Finished() {
		return ErrGameFinished
	}

	question, err := g.CurrentQuestion()
	if err != nil {
		return err
	}

	switch kind {
	case HelpFiftyFifty:
		if g.FiftyFiftyUsed {
			return ErrHelpAlreadyUsed
		}
		if err := question.AddFiftyFifty(rng); err != nil {
			return err
		}
		g.FiftyFiftyUsed = true
	case HelpAudience:
		if g.AudienceHelpUsed {
			return ErrHelpAlreadyUsed
		}
		if err := question.AddAudienceHelp(rng); err != nil {
			return err
		}
		g.AudienceHelpUsed = true
	case HelpFriendCall:
		if g.FriendCallUsed {
			return ErrHelpAlreadyUsed
		}
		if err := question.AddFriendCall(rng, g.Rules.FriendAccuracy); err != nil {
			return err
		}
		g.FriendCallUsed = true
	default:
		return ErrUnknownHelpKind
	}
	return nil
}

// fail marks the game failed and pays out the last checkpoint passed.
func (g *Game) fail(now time.Time) {
	g.IsFailed = true
	g.Prize = g.Rules.CheckpointPrize(g.CurrentLevel)
	g.finish(now)
}

func (g *Game) finish(now time.Time) {
	finished := now
	g.FinishedAt = &finished
}
