package service

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"quizladder/internal/models"
)

var (
	ErrGameInProgress     = errors.New("player already has a game in progress")
	ErrGameNotFound       = errors.New("game not found")
	ErrNotGameOwner       = errors.New("game belongs to another player")
	ErrNotEnoughQuestions = errors.New("question bank cannot fill the ladder")
)

// QuestionBank supplies candidate questions per difficulty level
type QuestionBank interface {
	GetByLevel(level int) ([]models.Question, error)
}

// GameStore persists games; every mutating method is one atomic unit
type GameStore interface {
	Create(game *models.Game) error
	ByID(gameID int64) (*models.Game, error)
	UnfinishedByUser(userID int64) (*models.Game, error)
	Save(game *models.Game) error
	SaveWithPrize(game *models.Game) error
	SaveHelp(game *models.Game, gq *models.GameQuestion) error
}

// UserStore looks up players for prize notifications
type UserStore interface {
	GetUserByID(id int64) (*models.User, error)
}

// PrizeNotifier sends the player a message when a game pays out
type PrizeNotifier interface {
	SendPrizeNotification(ctx context.Context, email, name string, prize int, status models.Status) error
}

// GameService orchestrates game play: it loads the player's game, applies one
// state transition and persists the result. Serialization of concurrent
// requests for the same game is the storage layer's problem; the service
// itself never holds game state between calls.
type GameService struct {
	games     GameStore
	questions QuestionBank
	users     UserStore
	rules     models.Rules
	clock     func() time.Time
	notifier  PrizeNotifier

	// rngMu guards rng: *rand.Rand is not safe for concurrent use and
	// requests from different players may draw from it at the same time.
	rngMu sync.Mutex
	rng   *rand.Rand
}

// NewGameService creates a new game service. clock and rng may be nil, in
// which case wall time and a time-seeded source are used; tests pass
// deterministic ones.
func NewGameService(games GameStore, questions QuestionBank, users UserStore, rules models.Rules, clock func() time.Time, rng *rand.Rand) *GameService {
	if clock == nil {
		clock = time.Now
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &GameService{
		games:     games,
		questions: questions,
		users:     users,
		rules:     rules,
		clock:     clock,
		rng:       rng,
	}
}

// SetNotifier installs an optional prize notifier
func (s *GameService) SetNotifier(n PrizeNotifier) {
	s.notifier = n
}

// Rules returns the ladder configuration games are created with
func (s *GameService) Rules() models.Rules {
	return s.rules
}

// Now returns the service clock's current time. Callers that render a game's
// status must use this rather than wall time so they agree with the
// transitions the service applied.
func (s *GameService) Now() time.Time {
	return s.clock()
}

// CreateGameForPlayer builds a new game for the player: one question drawn
// uniformly at random per ladder level, each with its own random letter
// assignment. Fails with ErrGameInProgress if the player already has an
// unfinished game and with ErrNotEnoughQuestions if some level has no
// candidates. The game and its questions are persisted as one unit.
func (s *GameService) CreateGameForPlayer(userID int64) (*models.Game, error) {
	existing, err := s.games.UnfinishedByUser(userID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrGameInProgress
	}

	questions := make([]*models.GameQuestion, 0, s.rules.MaxLevel()+1)
	for level := 0; level <= s.rules.MaxLevel(); level++ {
		candidates, err := s.questions.GetByLevel(level)
		if err != nil {
			return nil, err
		}
		if len(candidates) == 0 {
			return nil, ErrNotEnoughQuestions
		}
		questions = append(questions, s.drawQuestion(candidates))
	}

	game := models.NewGame(userID, questions, s.rules, s.clock())
	if err := s.games.Create(game); err != nil {
		return nil, err
	}

	log.Info().Int64("user_id", userID).Int64("game_id", game.ID).Msg("game created")
	return game, nil
}

// UnfinishedGame returns the player's in-progress game, or nil
func (s *GameService) UnfinishedGame(userID int64) (*models.Game, error) {
	game, err := s.games.UnfinishedByUser(userID)
	if err != nil {
		return nil, err
	}
	if game != nil {
		game.Rules = s.rules
	}
	return game, nil
}

// GetGame loads a game owned by the player
func (s *GameService) GetGame(userID, gameID int64) (*models.Game, error) {
	return s.loadOwned(userID, gameID)
}

// Answer applies the player's answer to the game's current question and
// persists the outcome. Returns the updated game and whether it is still in
// progress. A terminal outcome credits the prize to the player's balance in
// the same transaction.
func (s *GameService) Answer(userID, gameID int64, letter string) (*models.Game, bool, error) {
	game, err := s.loadOwned(userID, gameID)
	if err != nil {
		return nil, false, err
	}

	inProgress, err := game.AnswerCurrentQuestion(letter, s.clock())
	if err != nil {
		return nil, false, err
	}

	if game.Finished() {
		if err := s.games.SaveWithPrize(game); err != nil {
			return nil, false, err
		}
		s.notifyFinished(game)
	} else {
		if err := s.games.Save(game); err != nil {
			return nil, false, err
		}
	}

	return game, inProgress, nil
}

// TakeMoney cashes the game out at the current level, crediting the banked
// prize to the player's balance
func (s *GameService) TakeMoney(userID, gameID int64) (*models.Game, error) {
	game, err := s.loadOwned(userID, gameID)
	if err != nil {
		return nil, err
	}

	if err := game.TakeMoney(s.clock()); err != nil {
		return nil, err
	}

	if err := s.games.SaveWithPrize(game); err != nil {
		return nil, err
	}
	s.notifyFinished(game)

	return game, nil
}

// UseHelp consumes one of the three lifelines on the game's current question.
// The game's used-flag and the question's help artifacts are stored together.
func (s *GameService) UseHelp(userID, gameID int64, kind models.HelpKind) (*models.Game, error) {
	game, err := s.loadOwned(userID, gameID)
	if err != nil {
		return nil, err
	}

	s.rngMu.Lock()
	err = game.UseHelp(kind, s.rng, s.clock())
	s.rngMu.Unlock()
	if err != nil {
		return nil, err
	}

	question, err := game.CurrentQuestion()
	if err != nil {
		return nil, err
	}
	if err := s.games.SaveHelp(game, question); err != nil {
		return nil, err
	}

	return game, nil
}

// drawQuestion picks one candidate at random and assigns its answer letters
func (s *GameService) drawQuestion(candidates []models.Question) *models.GameQuestion {
	s.rngMu.Lock()
	defer s.rngMu.Unlock()
	picked := candidates[s.rng.Intn(len(candidates))]
	return models.NewGameQuestion(&picked, s.rng)
}

func (s *GameService) loadOwned(userID, gameID int64) (*models.Game, error) {
	game, err := s.games.ByID(gameID)
	if err != nil {
		return nil, err
	}
	if game == nil {
		return nil, ErrGameNotFound
	}
	if game.UserID != userID {
		return nil, ErrNotGameOwner
	}
	game.Rules = s.rules
	return game, nil
}

func (s *GameService) notifyFinished(game *models.Game) {
	if s.notifier == nil || game.Prize <= 0 {
		return
	}

	user, err := s.users.GetUserByID(game.UserID)
	if err != nil || user == nil || user.Email == "" {
		log.Warn().Err(err).Int64("user_id", game.UserID).Msg("skipping prize notification")
		return
	}

	status := game.Status(s.clock())
	if err := s.notifier.SendPrizeNotification(context.Background(), user.Email, user.Name, game.Prize, status); err != nil {
		log.Warn().Err(err).Int64("game_id", game.ID).Msg("failed to send prize notification")
	}
}
