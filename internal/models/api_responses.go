package models

// SimilarityCheckResponse contains the result of a similarity dry run.
type SimilarityCheckResponse struct {
	Question   string  `json:"question"`
	Match      string  `json:"match,omitempty"`
	Score      float64 `json:"score"`
	Threshold  float64 `json:"threshold"`
	TooSimilar bool    `json:"too_similar"`
}

// OptionsResponse lists the values accepted for location and category.
type OptionsResponse struct {
	Locations  []string `json:"locations"`
	Categories []string `json:"categories"`
}

// QuizQuestion is a fact with the answer withheld.
type QuizQuestion struct {
	Question string `json:"question"`
	Category string `json:"category"`
}

// GuessResult reports whether a municipality guess was correct.
type GuessResult struct {
	Guess    string `json:"guess"`
	Correct  bool   `json:"correct"`
	Location string `json:"location"`
	Answer   string `json:"answer"`
}
