package utils

import (
	"testing"
	"unicode/utf8"
)

func TestTruncate(t *testing.T) {
	if Truncate("hello", 3) != "hel" {
		t.Error("expected cut to 3 runes")
	}
	if Truncate("hello", 10) != "hello" {
		t.Error("short strings should be unchanged")
	}
	if Truncate("hello", 0) != "hello" {
		t.Error("maxLen 0 should disable truncation")
	}
}

func TestTruncate_runeBoundaries(t *testing.T) {
	if got := Truncate("500 µg", 5); got != "500 µ" {
		t.Errorf("got %q", got)
	}
	if got := Truncate("dose — 10 ml", 6); got != "dose —" {
		t.Errorf("got %q", got)
	}
	if got := Truncate("aµµµµµ", 4); !utf8.ValidString(got) || got != "aµµµ" {
		t.Errorf("truncation must not split a rune, got %q", got)
	}
}

func TestHashString_deterministic(t *testing.T) {
	if HashString("paracetamol") != HashString("paracetamol") {
		t.Error("same input should hash identically")
	}
	if HashString("a") == HashString("b") {
		t.Error("different inputs should not collide trivially")
	}
	if HashString("some long negative overflow text that wraps around") < 0 {
		t.Error("hash should be non-negative")
	}
}

func TestRound4(t *testing.T) {
	if Round4(0.12344999) != 0.1234 {
		t.Errorf("got %v", Round4(0.12344999))
	}
	if Round4(0.99995) != 1.0 {
		t.Errorf("got %v", Round4(0.99995))
	}
}

func TestClamp01(t *testing.T) {
	if Clamp01(-0.5) != 0 {
		t.Error("negative should clamp to 0")
	}
	if Clamp01(1.5) != 1 {
		t.Error(">1 should clamp to 1")
	}
	if Clamp01(0.42) != 0.42 {
		t.Error("in-range value should pass through")
	}
}
