package repository

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"quizladder/internal/database"
	"quizladder/internal/models"
)

// GameRepository handles game and game-question database operations
type GameRepository struct {
	db *database.DB
}

// NewGameRepository creates a new game repository
func NewGameRepository(db *database.DB) *GameRepository {
	return &GameRepository{db: db}
}

// Create persists a game and all of its questions as one transaction
func (r *GameRepository) Create(game *models.Game) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	gameID, err := tx.ExecReturningID(`
		INSERT INTO games (user_id, current_level, is_failed, prize,
			fifty_fifty_used, audience_help_used, friend_call_used, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, game.UserID, game.CurrentLevel, game.IsFailed, game.Prize,
		game.FiftyFiftyUsed, game.AudienceHelpUsed, game.FriendCallUsed, game.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert game: %w", err)
	}
	game.ID = gameID

	for _, gq := range game.Questions {
		help, err := json.Marshal(gq.Help)
		if err != nil {
			return fmt.Errorf("failed to marshal help state: %w", err)
		}
		gq.GameID = gameID
		id, err := tx.ExecReturningID(`
			INSERT INTO game_questions (game_id, question_id, a, b, c, d, help)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, gameID, gq.QuestionID, gq.A, gq.B, gq.C, gq.D, string(help))
		if err != nil {
			return fmt.Errorf("failed to insert game question: %w", err)
		}
		gq.ID = id
	}

	return tx.Commit()
}

// ByID retrieves a game with its questions, ordered by level
func (r *GameRepository) ByID(gameID int64) (*models.Game, error) {
	query := `
		SELECT id, user_id, current_level, is_failed, prize,
			fifty_fifty_used, audience_help_used, friend_call_used,
			created_at, finished_at
		FROM games
		WHERE id = ?
	`
	game, err := r.scanGame(r.db.QueryRow(query, gameID))
	if err != nil {
		return nil, err
	}
	if game == nil {
		return nil, nil
	}

	if err := r.loadQuestions(game); err != nil {
		return nil, err
	}
	return game, nil
}

// UnfinishedByUser retrieves the user's in-progress game, or nil
func (r *GameRepository) UnfinishedByUser(userID int64) (*models.Game, error) {
	query := `
		SELECT id, user_id, current_level, is_failed, prize,
			fifty_fifty_used, audience_help_used, friend_call_used,
			created_at, finished_at
		FROM games
		WHERE user_id = ? AND finished_at IS NULL
		ORDER BY created_at DESC
		LIMIT 1
	`
	game, err := r.scanGame(r.db.QueryRow(query, userID))
	if err != nil || game == nil {
		return game, err
	}

	if err := r.loadQuestions(game); err != nil {
		return nil, err
	}
	return game, nil
}

// Save updates the mutable game fields
func (r *GameRepository) Save(game *models.Game) error {
	return r.save(r.db, game)
}

// SaveWithPrize updates the game and credits its prize to the player's
// balance in one transaction
func (r *GameRepository) SaveWithPrize(game *models.Game) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := r.save(tx, game); err != nil {
		return err
	}

	if game.Prize > 0 {
		_, err = tx.Exec(`
			UPDATE users SET balance = balance + ?, updated_at = CURRENT_TIMESTAMP
			WHERE id = ?
		`, game.Prize, game.UserID)
		if err != nil {
			return fmt.Errorf("failed to credit prize: %w", err)
		}
	}

	return tx.Commit()
}

// SaveHelp updates the game's help flags and the question's help artifacts in
// one transaction, so a lifeline is never half-recorded
func (r *GameRepository) SaveHelp(game *models.Game, gq *models.GameQuestion) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := r.save(tx, game); err != nil {
		return err
	}

	help, err := json.Marshal(gq.Help)
	if err != nil {
		return fmt.Errorf("failed to marshal help state: %w", err)
	}
	if _, err := tx.Exec("UPDATE game_questions SET help = ? WHERE id = ?", string(help), gq.ID); err != nil {
		return fmt.Errorf("failed to update help state: %w", err)
	}

	return tx.Commit()
}

func (r *GameRepository) save(dbtx database.DBTX, game *models.Game) error {
	var finishedAt interface{}
	if game.FinishedAt != nil {
		finishedAt = *game.FinishedAt
	}

	_, err := dbtx.Exec(`
		UPDATE games
		SET current_level = ?, is_failed = ?, prize = ?,
			fifty_fifty_used = ?, audience_help_used = ?, friend_call_used = ?,
			finished_at = ?
		WHERE id = ?
	`, game.CurrentLevel, game.IsFailed, game.Prize,
		game.FiftyFiftyUsed, game.AudienceHelpUsed, game.FriendCallUsed,
		finishedAt, game.ID)
	if err != nil {
		return fmt.Errorf("failed to update game: %w", err)
	}
	return nil
}

func (r *GameRepository) scanGame(row *sql.Row) (*models.Game, error) {
	game := &models.Game{}
	var finishedAt sql.NullTime

	err := row.Scan(
		&game.ID,
		&game.UserID,
		&game.CurrentLevel,
		&game.IsFailed,
		&game.Prize,
		&game.FiftyFiftyUsed,
		&game.AudienceHelpUsed,
		&game.FriendCallUsed,
		&game.CreatedAt,
		&finishedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan game: %w", err)
	}

	if finishedAt.Valid {
		game.FinishedAt = &finishedAt.Time
	}
	return game, nil
}

func (r *GameRepository) loadQuestions(game *models.Game) error {
	query := `
		SELECT gq.id, gq.game_id, gq.question_id, gq.a, gq.b, gq.c, gq.d, gq.help,
			q.id, q.level, q.text, q.answer1, q.answer2, q.answer3, q.answer4
		FROM game_questions gq
		JOIN questions q ON q.id = gq.question_id
		WHERE gq.game_id = ?
		ORDER BY q.level
	`

	rows, err := r.db.Query(query, game.ID)
	if err != nil {
		return fmt.Errorf("failed to query game questions: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		gq := &models.GameQuestion{Question: &models.Question{}}
		var help string
		err := rows.Scan(
			&gq.ID, &gq.GameID, &gq.QuestionID, &gq.A, &gq.B, &gq.C, &gq.D, &help,
			&gq.Question.ID, &gq.Question.Level, &gq.Question.Text,
			&gq.Question.Answer1, &gq.Question.Answer2, &gq.Question.Answer3, &gq.Question.Answer4,
		)
		if err != nil {
			return fmt.Errorf("failed to scan game question: %w", err)
		}
		if help != "" {
			if err := json.Unmarshal([]byte(help), &gq.Help); err != nil {
				return fmt.Errorf("failed to unmarshal help state: %w", err)
			}
		}
		game.Questions = append(game.Questions, gq)
	}

	return rows.Err()
}
