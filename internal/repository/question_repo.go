package repository

import (
	"fmt"

	"quizladder/internal/database"
	"quizladder/internal/models"
)

// QuestionRepository handles question bank database operations
type QuestionRepository struct {
	db *database.DB
}

// NewQuestionRepository creates a new question repository
func NewQuestionRepository(db *database.DB) *QuestionRepository {
	return &QuestionRepository{db: db}
}

// GetByLevel retrieves all bank questions at a difficulty level
func (r *QuestionRepository) GetByLevel(level int) ([]models.Question, error) {
	query := `
		SELECT id, level, text, answer1, answer2, answer3, answer4
		FROM questions
		WHERE level = ?
	`

	rows, err := r.db.Query(query, level)
	if err != nil {
		return nil, fmt.Errorf("failed to query questions for level %d: %w", level, err)
	}
	defer rows.Close()

	var questions []models.Question
	for rows.Next() {
		var q models.Question
		if err := rows.Scan(&q.ID, &q.Level, &q.Text, &q.Answer1, &q.Answer2, &q.Answer3, &q.Answer4); err != nil {
			return nil, fmt.Errorf("failed to scan question: %w", err)
		}
		questions = append(questions, q)
	}

	return questions, rows.Err()
}

// Create inserts a new question into the bank
func (r *QuestionRepository) Create(q *models.Question) error {
	query := `
		INSERT INTO questions (level, text, answer1, answer2, answer3, answer4)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	id, err := r.db.ExecReturningID(query, q.Level, q.Text, q.Answer1, q.Answer2, q.Answer3, q.Answer4)
	if err != nil {
		return fmt.Errorf("failed to create question: %w", err)
	}
	q.ID = id
	return nil
}

// Count returns the total number of questions in the bank
func (r *QuestionRepository) Count() (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM questions").Scan(&count)
	return count, err
}
