package models

// Question is one row of the question bank: text, a difficulty level and four
// candidate answers. The answer stored at position 1 is always the correct
// one; games hide that by shuffling which display letter points at which
// position (see GameQuestion).
type Question struct {
	ID      int64
	Level   int
	Text    string
	Answer1 string
	Answer2 string
	Answer3 string
	Answer4 string
}

// Answer returns the answer text at the given 1-based position.
func (q *Question) Answer(position int) string {
	switch position {
	case 1:
		return q.Answer1
	case 2:
		return q.Answer2
	case 3:
		return q.Answer3
	case 4:
		return q.Answer4
	}
	return ""
}
