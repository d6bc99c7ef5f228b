package scanparse

import "testing"

func TestDecodePattern_ItalicTitleWins(t *testing.T) {
	p := DecodePattern("*Title* body text.")
	if p == nil {
		t.Fatal("expected a decoded pattern")
	}
	// The italic form wins over the sentence split.
	if p.Title != "Title" {
		t.Errorf("expected title %q, got %q", "Title", p.Title)
	}
	if p.Body != "body text." {
		t.Errorf("expected body %q, got %q", "body text.", p.Body)
	}
}

func TestDecodePattern_BoldTitle(t *testing.T) {
	p := DecodePattern("**Convergence** Multiple regions circling one story.")
	if p == nil {
		t.Fatal("expected a decoded pattern")
	}
	if p.Title != "Convergence" {
		t.Errorf("unexpected title: %q", p.Title)
	}
	if p.Body != "Multiple regions circling one story." {
		t.Errorf("unexpected body: %q", p.Body)
	}
}

func TestDecodePattern_FirstSentenceSplit(t *testing.T) {
	p := DecodePattern("Quiet consolidation. Markets digest last week's shocks without drama.")
	if p == nil {
		t.Fatal("expected a decoded pattern")
	}
	if p.Title != "Quiet consolidation." {
		t.Errorf("unexpected title: %q", p.Title)
	}
	if p.Body != "Markets digest last week's shocks without drama." {
		t.Errorf("unexpected body: %q", p.Body)
	}
}

func TestDecodePattern_WholeTextFallback(t *testing.T) {
	p := DecodePattern("no sentence boundary here")
	if p == nil {
		t.Fatal("expected a decoded pattern")
	}
	if p.Title != "" {
		t.Errorf("expected empty title, got %q", p.Title)
	}
	if p.Body != "no sentence boundary here" {
		t.Errorf("unexpected body: %q", p.Body)
	}
}

func TestDecodePattern_Empty(t *testing.T) {
	if DecodePattern("") != nil {
		t.Error("expected nil for empty input")
	}
	if DecodePattern("   \n ") != nil {
		t.Error("expected nil for whitespace input")
	}
}

func TestDecodePattern_Deterministic(t *testing.T) {
	raw := "*Echo chambers* The same story, three tellings."
	a := DecodePattern(raw)
	b := DecodePattern(raw)
	if a == nil || b == nil || *a != *b {
		t.Errorf("decoder is not deterministic: %+v vs %+v", a, b)
	}
}
