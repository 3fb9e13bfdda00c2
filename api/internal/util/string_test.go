package util

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestTruncate(t *testing.T) {
	cases := []struct {
		in   string
		max  int
		want string
	}{
		{"short", 10, "short"},
		{"exactly10!", 10, "exactly10!"},
		{"eleven char", 10, "eleven cha..."},
		{"ಕನ್ನಡದಲ್ಲಿ", 3, "ಕನ್..."},
		{"anything", 0, "anything"},
	}
	for _, c := range cases {
		if got := Truncate(c.in, c.max); got != c.want {
			t.Errorf("Truncate(%q, %d) = %q, want %q", c.in, c.max, got, c.want)
		}
	}
}

func TestChunk(t *testing.T) {
	if got := Chunk("   ", 10); got != nil {
		t.Fatalf("blank input: %v", got)
	}
	if got := Chunk("one piece", 100); len(got) != 1 || got[0] != "one piece" {
		t.Fatalf("single: %v", got)
	}

	text := strings.Repeat("word ", 50) + "\n\n" + strings.Repeat("next ", 50)
	chunks := Chunk(text, 120)
	if len(chunks) < 3 {
		t.Fatalf("expected several chunks, got %d", len(chunks))
	}
	for i, c := range chunks {
		if n := utf8.RuneCountInString(c); n > 120 || n == 0 {
			t.Errorf("chunk %d has %d runes", i, n)
		}
		if strings.HasPrefix(c, " ") || strings.HasSuffix(c, " ") {
			t.Errorf("chunk %d not trimmed: %q", i, c)
		}
	}
	if strings.Join(strings.Fields(strings.Join(chunks, " ")), " ") != strings.Join(strings.Fields(text), " ") {
		t.Errorf("chunks lost words")
	}

	noSpaces := strings.Repeat("x", 25)
	got := Chunk(noSpaces, 10)
	if len(got) != 3 || got[2] != "xxxxx" {
		t.Errorf("hard split: %v", got)
	}
}

func TestShortHash(t *testing.T) {
	a, b := ShortHash("token-a"), ShortHash("token-b")
	if len(a) != 16 || a == b {
		t.Fatalf("hashes %q %q", a, b)
	}
	if ShortHash("token-a") != a {
		t.Fatalf("hash not stable")
	}
}
