package xlit

import (
	"testing"

	"github.com/heartmarshall/gujarati-xlit/internal/domain"
)

func TestPreprocess_RomanWord(t *testing.T) {
	t.Parallel()

	got := Preprocess("Namaste", domain.ScriptRoman)
	want := "__gu__ n a m a s t e"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestPreprocess_GujaratiWord(t *testing.T) {
	t.Parallel()

	// Zero-width joiner must be normalized away before tokenization.
	got := Preprocess("ન‍મ", domain.ScriptGujarati)
	want := "__gu__ ન મ"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestPreprocess_SingleRune(t *testing.T) {
	t.Parallel()

	got := Preprocess("a", domain.ScriptRoman)
	if got != "__gu__ a" {
		t.Fatalf("expected %q, got %q", "__gu__ a", got)
	}
}
