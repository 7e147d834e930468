package app

import (
	"errors"
	"fmt"
	"strings"

	"movie-quiz/internal/domain"
)

// Comparator is the direction of a generated rating question.
type Comparator int

const (
	Greater Comparator = iota
	Less
)

// Apply reports whether rating stands in this relation to threshold.
func (c Comparator) Apply(rating, threshold float64) bool {
	if c == Less {
		return rating < threshold
	}
	return rating > threshold
}

func (c Comparator) String() string {
	if c == Less {
		return "less"
	}
	return "greater"
}

// Locale holds the user-facing strings.
type Locale struct {
	Tag string

	QuestionGreater string // %.2f threshold
	QuestionLess    string

	ResultTitle  string
	ResultAction string
	ResultLine   string // correct, total
	GamesLine    string // games played
	BestLine     string // correct, total, date
	AccuracyLine string // accuracy
	DateLayout   string

	ErrTransport     string // cause
	ErrBadStatus     string
	ErrNoData        string
	ErrDecode        string // cause
	ErrImage         string
	ErrMissingRating string
	ErrStatistics    string
	ErrUnknown       string
}

var English = Locale{
	Tag:              "en",
	QuestionGreater:  "Is the rating of this movie greater than %.2f?",
	QuestionLess:     "Is the rating of this movie less than %.2f?",
	ResultTitle:      "This round is over!",
	ResultAction:     "Play again",
	ResultLine:       "Result: %d/%d",
	GamesLine:        "Games played: %d",
	BestLine:         "Best: %d/%d (%s)",
	AccuracyLine:     "Average accuracy: %.2f%%",
	DateLayout:       "02.01.06 15:04",
	ErrTransport:     "Network error: %v",
	ErrBadStatus:     "The server returned an invalid response status.",
	ErrNoData:        "No data from the server.",
	ErrDecode:        "Failed to decode data: %v",
	ErrImage:         "Failed to load the image.",
	ErrMissingRating: "The movie rating is unavailable.",
	ErrStatistics:    "Failed to save statistics.",
	ErrUnknown:       "Unknown error.",
}

var Russian = Locale{
	Tag:              "ru",
	QuestionGreater:  "Рейтинг этого фильма больше чем %.2f?",
	QuestionLess:     "Рейтинг этого фильма меньше чем %.2f?",
	ResultTitle:      "Этот раунд окончен!",
	ResultAction:     "Сыграть ещё раз",
	ResultLine:       "Ваш результат: %d/%d",
	GamesLine:        "Количество сыгранных квизов: %d",
	BestLine:         "Рекорд: %d/%d (%s)",
	AccuracyLine:     "Средняя точность: %.2f%%",
	DateLayout:       "02.01.06 15:04",
	ErrTransport:     "Сетевая ошибка: %v",
	ErrBadStatus:     "Сервер вернул неверный статус ответа.",
	ErrNoData:        "Нет данных от сервера.",
	ErrDecode:        "Ошибка при декодировании данных: %v",
	ErrImage:         "Не удалось загрузить изображение.",
	ErrMissingRating: "Рейтинг фильма недоступен.",
	ErrStatistics:    "Не удалось сохранить статистику.",
	ErrUnknown:       "Неизвестная ошибка.",
}

// LocaleFor returns the locale for a tag such as "ru" or "en-US", English otherwise.
func LocaleFor(tag string) Locale {
	tag = strings.ToLower(strings.TrimSpace(tag))
	if tag == "ru" || strings.HasPrefix(tag, "ru-") || strings.HasPrefix(tag, "ru_") {
		return Russian
	}
	return English
}

func (l Locale) QuestionText(c Comparator, threshold float64) string {
	if c == Less {
		return fmt.Sprintf(l.QuestionLess, threshold)
	}
	return fmt.Sprintf(l.QuestionGreater, threshold)
}

// ResultsMessage composes the end-of-round summary.
func (l Locale) ResultsMessage(correct, total int, stats domain.Stats) string {
	best := stats.BestGame
	return strings.Join([]string{
		fmt.Sprintf(l.ResultLine, correct, total),
		fmt.Sprintf(l.GamesLine, stats.GamesCount),
		fmt.Sprintf(l.BestLine, best.Correct, best.Total, best.Date.Local().Format(l.DateLayout)),
		fmt.Sprintf(l.AccuracyLine, stats.Accuracy()),
	}, "\n")
}

// ErrorMessage maps any failure reaching the engine boundary to a user-facing line.
func (l Locale) ErrorMessage(err error) string {
	var dataErr *domain.DataError
	switch {
	case err == nil:
		return l.ErrUnknown
	case errors.Is(err, domain.ErrImageCorrupted):
		return l.ErrImage
	case errors.Is(err, domain.ErrMissingRating):
		return l.ErrMissingRating
	case errors.As(err, &dataErr):
		switch dataErr.Kind {
		case domain.DataErrorBadStatus:
			return l.ErrBadStatus
		case domain.DataErrorNoData:
			return l.ErrNoData
		case domain.DataErrorDecode:
			return fmt.Sprintf(l.ErrDecode, causeOf(dataErr))
		default:
			return fmt.Sprintf(l.ErrTransport, causeOf(dataErr))
		}
	case errors.Is(err, ErrStatistics):
		return l.ErrStatistics
	}
	return l.ErrUnknown
}

func causeOf(e *domain.DataError) string {
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Message != "" {
		return e.Message
	}
	return string(e.Kind)
}
