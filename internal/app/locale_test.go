package app_test

import (
	"fmt"
	"io"
	"testing"
	"time"

	"movie-quiz/internal/app"
	"movie-quiz/internal/domain"
)

func TestResultsMessage(t *testing.T) {
	date := time.Date(2026, 10, 19, 18, 30, 0, 0, time.Local)
	stats := domain.Stats{
		GamesCount:   3,
		BestGame:     domain.GameResult{Correct: 9, Total: 10, Date: date},
		TotalCorrect: 21,
		TotalAmount:  30,
	}
	got := app.English.ResultsMessage(7, 10, stats)
	want := "Result: 7/10\nGames played: 3\nBest: 9/10 (19.10.26 18:30)\nAverage accuracy: 70.00%"
	if got != want {
		t.Fatalf("got %q\nwant %q", got, want)
	}
}

func TestErrorMessageMapping(t *testing.T) {
	l := app.English
	cases := []struct {
		err  error
		want string
	}{
		{domain.NewDataError(domain.DataErrorTransport, io.EOF), "Network error: EOF"},
		{&domain.DataError{Kind: domain.DataErrorBadStatus, StatusCode: 404}, l.ErrBadStatus},
		{&domain.DataError{Kind: domain.DataErrorNoData, Message: "Invalid API Key"}, l.ErrNoData},
		{&domain.DataError{Kind: domain.DataErrorDecode, Message: "unexpected token"}, "Failed to decode data: unexpected token"},
		{fmt.Errorf("%w: poster", domain.ErrImageCorrupted), l.ErrImage},
		{domain.ErrMissingRating, l.ErrMissingRating},
		{fmt.Errorf("%w: write", app.ErrStatistics), l.ErrStatistics},
		{io.ErrClosedPipe, l.ErrUnknown},
	}
	for _, tc := range cases {
		if got := l.ErrorMessage(tc.err); got != tc.want {
			t.Fatalf("ErrorMessage(%v) = %q, want %q", tc.err, got, tc.want)
		}
	}
}

func TestLocaleFor(t *testing.T) {
	for tag, want := range map[string]string{"ru": "ru", "ru-RU": "ru", "en": "en", "": "en", "de": "en"} {
		if got := app.LocaleFor(tag).Tag; got != want {
			t.Fatalf("LocaleFor(%q) = %s, want %s", tag, got, want)
		}
	}
}

func TestComparatorApply(t *testing.T) {
	if !app.Greater.Apply(8, 7.5) || app.Greater.Apply(7, 7.5) {
		t.Fatalf("greater comparator broken")
	}
	if !app.Less.Apply(7, 7.5) || app.Less.Apply(7.5, 7.5) {
		t.Fatalf("less comparator broken")
	}
}
