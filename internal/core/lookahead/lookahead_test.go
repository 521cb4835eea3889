package lookahead

import (
	"slices"
	"testing"
)

func TestPeekDoesNotConsume(t *testing.T) {
	l := New(slices.Values([]int{1, 2, 3}))
	defer l.Close()

	for i := 0; i < 3; i++ {
		got, ok := l.Peek()
		if !ok || got != 1 {
			t.Fatalf("Peek() = %d, %v, want 1, true", got, ok)
		}
	}
}

func TestAdvanceReturnsConsumedItem(t *testing.T) {
	l := New(slices.Values([]string{"a", "b"}))
	defer l.Close()

	got, ok := l.Advance()
	if !ok || got != "a" {
		t.Fatalf("Advance() = %q, %v, want a, true", got, ok)
	}
	if next, _ := l.Peek(); next != "b" {
		t.Fatalf("Peek() after advance = %q, want b", next)
	}
	if got, ok := l.Advance(); !ok || got != "b" {
		t.Fatalf("Advance() = %q, %v, want b, true", got, ok)
	}
	if _, ok := l.Peek(); ok {
		t.Fatal("expected exhausted lookahead")
	}
	if _, ok := l.Advance(); ok {
		t.Fatal("expected Advance on exhausted lookahead to report false")
	}
}

func TestEmptySequence(t *testing.T) {
	l := New(slices.Values([]int(nil)))
	defer l.Close()

	if _, ok := l.Peek(); ok {
		t.Fatal("expected empty lookahead")
	}
}

func TestConstructionPrimesFirstItem(t *testing.T) {
	pulled := 0
	seq := func(yield func(int) bool) {
		for i := 0; i < 5; i++ {
			pulled++
			if !yield(i) {
				return
			}
		}
	}

	l := New(seq)
	if pulled != 1 {
		t.Fatalf("expected one item pulled on construction, got %d", pulled)
	}
	l.Close()
	if _, ok := l.Peek(); ok {
		t.Fatal("expected closed lookahead to be empty")
	}
}
