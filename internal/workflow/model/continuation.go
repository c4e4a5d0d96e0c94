package model

type ContinuationGenerateInput struct {
	ExistingStory string
	Direction     string
	WordCount     int

	ModelOverrides
}
