package research

import "errors"

var (
	// ErrNoQuestions indicates a scorer was requested for an empty
	// question set. Callers skip scoring instead.
	ErrNoQuestions = errors.New("research: no questions provided")

	// ErrQuestionNotEmbedded indicates a question is missing its embedding.
	ErrQuestionNotEmbedded = errors.New("research: question has no embedding")
)
