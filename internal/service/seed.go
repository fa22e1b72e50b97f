package service

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"quizladder/internal/models"
	"quizladder/internal/repository"
)

// defaultQuestions is a starter bank with one question per ladder level.
// Answer1 is always the correct one; games hide that behind the per-game
// letter shuffle.
var defaultQuestions = []models.Question{
	{Level: 0, Text: "How many days are there in a week?",
		Answer1: "Seven", Answer2: "Five", Answer3: "Six", Answer4: "Eight"},
	{Level: 1, Text: "Which animal is known as man's best friend?",
		Answer1: "Dog", Answer2: "Cat", Answer3: "Horse", Answer4: "Parrot"},
	{Level: 2, Text: "What color do you get by mixing blue and yellow?",
		Answer1: "Green", Answer2: "Purple", Answer3: "Orange", Answer4: "Brown"},
	{Level: 3, Text: "Which planet is closest to the sun?",
		Answer1: "Mercury", Answer2: "Venus", Answer3: "Mars", Answer4: "Jupiter"},
	{Level: 4, Text: "What is the capital of France?",
		Answer1: "Paris", Answer2: "Lyon", Answer3: "Marseille", Answer4: "Brussels"},
	{Level: 5, Text: "How many strings does a standard violin have?",
		Answer1: "Four", Answer2: "Five", Answer3: "Six", Answer4: "Seven"},
	{Level: 6, Text: "Which element has the chemical symbol O?",
		Answer1: "Oxygen", Answer2: "Osmium", Answer3: "Gold", Answer4: "Silver"},
	{Level: 7, Text: "Who painted the Mona Lisa?",
		Answer1: "Leonardo da Vinci", Answer2: "Michelangelo", Answer3: "Raphael", Answer4: "Donatello"},
	{Level: 8, Text: "In which year did the Berlin Wall fall?",
		Answer1: "1989", Answer2: "1987", Answer3: "1991", Answer4: "1993"},
	{Level: 9, Text: "What is the longest river in the world?",
		Answer1: "The Nile", Answer2: "The Amazon", Answer3: "The Yangtze", Answer4: "The Mississippi"},
	{Level: 10, Text: "Which composer wrote the opera 'The Magic Flute'?",
		Answer1: "Mozart", Answer2: "Beethoven", Answer3: "Bach", Answer4: "Haydn"},
	{Level: 11, Text: "What is the smallest prime number greater than 100?",
		Answer1: "101", Answer2: "103", Answer3: "107", Answer4: "109"},
	{Level: 12, Text: "Which country has the most time zones, including overseas territories?",
		Answer1: "France", Answer2: "Russia", Answer3: "United States", Answer4: "China"},
	{Level: 13, Text: "What is the only metal that is liquid at room temperature?",
		Answer1: "Mercury", Answer2: "Gallium", Answer3: "Cesium", Answer4: "Bromine"},
	{Level: 14, Text: "Which scientist introduced the three laws of planetary motion?",
		Answer1: "Johannes Kepler", Answer2: "Isaac Newton", Answer3: "Galileo Galilei", Answer4: "Tycho Brahe"},
}

// SeedDefaultQuestions fills an empty question bank with the starter set so a
// fresh install can play a full ladder immediately. A non-empty bank is left
// alone.
func SeedDefaultQuestions(repo *repository.QuestionRepository) error {
	count, err := repo.Count()
	if err != nil {
		return fmt.Errorf("failed to count questions: %w", err)
	}
	if count > 0 {
		return nil
	}

	for i := range defaultQuestions {
		q := defaultQuestions[i]
		if err := repo.Create(&q); err != nil {
			return err
		}
	}

	log.Info().Int("questions", len(defaultQuestions)).Msg("seeded default question bank")
	return nil
}
