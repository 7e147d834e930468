package domain

import "time"

// Movie is a single catalogue candidate. Rating is kept as delivered by the source
// and parsed only when a question is generated.
type Movie struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Rating   string `json:"imDbRating"`
	ImageURL string `json:"image"`
}

// Catalogue is the bounded set of movies a factory draws questions from.
type Catalogue struct {
	Items []Movie `json:"items"`
}

// QuizQuestion is produced per request and owned by the engine until answered.
type QuizQuestion struct {
	Image         []byte
	Text          string
	CorrectAnswer bool
}

// Picture is a validated, display-ready image payload.
type Picture struct {
	Data   []byte `json:"data"`
	Format string `json:"format"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// QuizStep is what a presenter renders for one question.
type QuizStep struct {
	Picture  Picture `json:"picture"`
	Question string  `json:"question"`
	Number   string  `json:"number"` // "{index+1}/{total}"
}

// GameResult is the outcome of one finished session.
type GameResult struct {
	Correct int       `json:"correct"`
	Total   int       `json:"total"`
	Date    time.Time `json:"date"`
}

// IsBetterThan reports whether r should replace other as the best game.
// Only a strictly greater correct count wins; ties keep the earlier record.
func (r GameResult) IsBetterThan(other GameResult) bool {
	return r.Correct > other.Correct
}

// Stats is the cross-session aggregate.
type Stats struct {
	GamesCount   int        `json:"gamesCount"`
	BestGame     GameResult `json:"bestGame"`
	TotalCorrect int        `json:"totalCorrect"`
	TotalAmount  int        `json:"totalAmount"`
}

// Accuracy is the running percentage of correct answers, 0 when nothing was answered.
func (s Stats) Accuracy() float64 {
	if s.TotalAmount <= 0 {
		return 0
	}
	return 100 * float64(s.TotalCorrect) / float64(s.TotalAmount)
}
