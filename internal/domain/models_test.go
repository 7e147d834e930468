package domain

import (
	"errors"
	"io"
	"math"
	"testing"
)

func TestStatsAccuracy(t *testing.T) {
	if got := (Stats{}).Accuracy(); got != 0 {
		t.Fatalf("expected 0 accuracy with no answers, got %v", got)
	}
	s := Stats{TotalCorrect: 10, TotalAmount: 20}
	if got := s.Accuracy(); math.Abs(got-50) > 1e-9 {
		t.Fatalf("expected 50, got %v", got)
	}
}

func TestGameResultIsBetterThanStrict(t *testing.T) {
	best := GameResult{Correct: 7, Total: 10}
	if (GameResult{Correct: 7, Total: 8}).IsBetterThan(best) {
		t.Fatalf("equal correct count must not replace best")
	}
	if !(GameResult{Correct: 8, Total: 10}).IsBetterThan(best) {
		t.Fatalf("greater correct count must replace best")
	}
}

func TestDataErrorUnwrap(t *testing.T) {
	err := NewDataError(DataErrorTransport, io.ErrUnexpectedEOF)
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Fatalf("expected wrapped cause")
	}
	var de *DataError
	if !errors.As(err, &de) || de.Kind != DataErrorTransport {
		t.Fatalf("expected transport DataError, got %v", err)
	}
	status := &DataError{Kind: DataErrorBadStatus, StatusCode: 503}
	if status.Error() != "badStatus: HTTP 503" {
		t.Fatalf("unexpected message %q", status.Error())
	}
}
