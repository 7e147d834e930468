package imgx

import (
	"bytes"
	"context"
	"errors"
	"testing"
)

func TestPlaceholderLoaderRendersDecodablePoster(t *testing.T) {
	data, err := PlaceholderLoader{}.LoadImage(context.Background(), PlaceholderScheme+"tt0111161")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	pic, err := Decoder{}.Decode(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if pic.Format != "png" || pic.Width != 60 || pic.Height != 90 {
		t.Fatalf("unexpected picture %s %dx%d", pic.Format, pic.Width, pic.Height)
	}

	again, _ := PlaceholderLoader{}.LoadImage(context.Background(), PlaceholderScheme+"tt0111161")
	if !bytes.Equal(data, again) {
		t.Fatalf("expected the same seed to render the same poster")
	}
}

func TestPlaceholderLoaderDelegatesOtherRefs(t *testing.T) {
	next := &recordingLoader{err: errors.New("offline")}
	_, err := PlaceholderLoader{Next: next}.LoadImage(context.Background(), "https://example.com/p.jpg")
	if !errors.Is(err, next.err) {
		t.Fatalf("expected delegated error, got %v", err)
	}
	if next.ref != "https://example.com/p.jpg" {
		t.Fatalf("unexpected ref %q", next.ref)
	}
}

type recordingLoader struct {
	ref string
	err error
}

func (r *recordingLoader) LoadImage(_ context.Context, ref string) ([]byte, error) {
	r.ref = ref
	return nil, r.err
}
