package util

import "errors"

var (
	ErrUserNotFound         = errors.New("user not found")
	ErrEmailRegistered      = errors.New("email already registered")
	ErrQuizNotFound         = errors.New("quiz not found or access denied")
	ErrQuestionsNotFound    = errors.New("no matching questions found")
	ErrQuizAlreadyGraded    = errors.New("quiz already submitted")
	ErrIncompleteSubmission = errors.New("submission incomplete")
	ErrNoQuestionsMapped    = errors.New("could not find corresponding practice questions for any of the submitted mistakes")
	ErrUnverifiedQuestions  = errors.New("could not verify all submitted questions")
	ErrFileParsingNotReady  = errors.New("file upload received, but parsing is not yet implemented")
)
