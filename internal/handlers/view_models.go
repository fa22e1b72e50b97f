package handlers

import (
	"time"

	"quizladder/internal/models"
)

// GameView is the JSON shape of a game as seen by its owner
type GameView struct {
	ID           int64         `json:"id"`
	Status       string        `json:"status"`
	CurrentLevel int           `json:"current_level"`
	Prize        int           `json:"prize"`
	HelpUsed     HelpUsedView  `json:"help_used"`
	Question     *QuestionView `json:"question,omitempty"`
	FinishedAt   *time.Time    `json:"finished_at,omitempty"`
}

// HelpUsedView reports which lifelines the game has spent
type HelpUsedView struct {
	FiftyFifty   bool `json:"fifty_fifty"`
	AudienceHelp bool `json:"audience_help"`
	FriendCall   bool `json:"friend_call"`
}

// QuestionView is the current question with any help artifacts. The correct
// letter is never included.
type QuestionView struct {
	Level         int               `json:"level"`
	Text          string            `json:"text"`
	Variants      map[string]string `json:"variants"`
	FiftyFifty    []string          `json:"fifty_fifty,omitempty"`
	AudienceVotes map[string]int    `json:"audience_votes,omitempty"`
	FriendHint    string            `json:"friend_hint,omitempty"`
}

// UserView is the JSON shape of the authenticated player
type UserView struct {
	ID      int64  `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Balance int    `json:"balance"`
}

func newGameView(game *models.Game, now time.Time) GameView {
	view := GameView{
		ID:           game.ID,
		Status:       string(game.Status(now)),
		CurrentLevel: game.CurrentLevel,
		Prize:        game.Prize,
		HelpUsed: HelpUsedView{
			FiftyFifty:   game.FiftyFiftyUsed,
			AudienceHelp: game.AudienceHelpUsed,
			FriendCall:   game.FriendCallUsed,
		},
		FinishedAt: game.FinishedAt,
	}

	if question, err := game.CurrentQuestion(); err == nil {
		view.Question = &QuestionView{
			Level:         question.Level(),
			Text:          question.Text(),
			Variants:      question.Variants(),
			FiftyFifty:    question.Help.FiftyFifty,
			AudienceVotes: question.Help.AudienceVotes,
			FriendHint:    question.Help.FriendHint,
		}
	}

	return view
}

func newUserView(user *models.User) UserView {
	return UserView{
		ID:      user.ID,
		Email:   user.Email,
		Name:    user.Name,
		Balance: user.Balance,
	}
}
