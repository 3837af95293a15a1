package chunker

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestSplitShortText(t *testing.T) {
	s := NewSplitter(1000, 200)

	tests := []struct {
		name string
		text string
		want int
	}{
		{name: "empty", text: "", want: 0},
		{name: "below chunk size", text: "The sky is blue today. I enjoy long walks.", want: 1},
		{name: "exactly chunk size", text: strings.Repeat("a", 1000), want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.Split(tt.text)
			if len(got) != tt.want {
				t.Errorf("Split() returned %d chunks, want %d", len(got), tt.want)
			}
			if tt.want == 1 && got[0] != tt.text {
				t.Errorf("single chunk should be the whole text")
			}
		})
	}
}

func TestSplitSizesAndOverlap(t *testing.T) {
	s := NewSplitter(100, 20)
	sentence := "The quick brown fox jumps over the lazy dog. "
	text := strings.Repeat(sentence, 50)

	chunks := s.Split(text)
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}

	// Every non-final chunk stays within the target size.
	for i, ch := range chunks[:len(chunks)-1] {
		if len(ch) > 100 {
			t.Errorf("chunk %d has length %d, want <= 100", i, len(ch))
		}
	}

	// Each chunk starts exactly overlap characters before the end of the
	// previous chunk's source span.
	pos := 0
	for i := 1; i < len(chunks); i++ {
		end := pos + len(chunks[i-1])
		wantStart := end - 20
		if !strings.HasPrefix(text[wantStart:], chunks[i]) {
			t.Fatalf("chunk %d does not start %d characters before the previous chunk's end", i, 20)
		}
		pos = wantStart
	}

	// Concatenation with overlap removed reconstructs the source.
	var b strings.Builder
	b.WriteString(chunks[0])
	for i := 1; i < len(chunks); i++ {
		b.WriteString(chunks[i][20:])
	}
	if b.String() != text {
		t.Errorf("chunks do not cover the full source text")
	}
}

func TestSplitPrefersSentenceBoundaries(t *testing.T) {
	s := NewSplitter(100, 20)
	sentence := "The quick brown fox jumps over the lazy dog. "
	text := strings.Repeat(sentence, 50)

	chunks := s.Split(text)
	for i, ch := range chunks[:len(chunks)-1] {
		trimmed := strings.TrimRight(ch, " ")
		if !strings.HasSuffix(trimmed, ".") {
			t.Errorf("chunk %d does not end at a sentence boundary: %q", i, ch)
		}
	}
}

func TestSplitPrefersParagraphBoundaries(t *testing.T) {
	s := NewSplitter(100, 20)
	para := strings.Repeat("word ", 16) // 80 chars
	text := strings.TrimSpace(strings.Repeat(para+"\n\n", 10))

	chunks := s.Split(text)
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}
	if !strings.HasSuffix(chunks[0], "\n\n") {
		t.Errorf("first chunk does not end at a paragraph break: %q", chunks[0])
	}
}

func TestSplitHardCutWithoutBoundaries(t *testing.T) {
	s := NewSplitter(100, 20)
	text := strings.Repeat("x", 250)

	chunks := s.Split(text)
	for i, ch := range chunks[:len(chunks)-1] {
		if len(ch) != 100 {
			t.Errorf("chunk %d has length %d, want hard cut at 100", i, len(ch))
		}
	}
}

func TestSplitMultiByteText(t *testing.T) {
	s := NewSplitter(100, 20)
	text := strings.Repeat("日", 250)

	chunks := s.Split(text)
	if len(chunks) != 3 {
		t.Fatalf("expected 3 chunks, got %d", len(chunks))
	}
	for i, ch := range chunks {
		if !utf8.ValidString(ch) {
			t.Errorf("chunk %d is not valid UTF-8: %q", i, ch)
		}
		if n := utf8.RuneCountInString(ch); n > 100 {
			t.Errorf("chunk %d has %d characters, want <= 100", i, n)
		}
	}

	// Concatenation with the rune overlap removed reconstructs the source.
	var b strings.Builder
	b.WriteString(chunks[0])
	for i := 1; i < len(chunks); i++ {
		b.WriteString(string([]rune(chunks[i])[20:]))
	}
	if b.String() != text {
		t.Errorf("chunks do not cover the full source text")
	}
}

func TestSplitDeterministic(t *testing.T) {
	s := NewSplitter(100, 20)
	text := strings.Repeat("Some words about something interesting. ", 30)

	first := s.Split(text)
	second := s.Split(text)
	if len(first) != len(second) {
		t.Fatalf("repeated Split() returned different chunk counts")
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("chunk %d differs between identical Split() calls", i)
		}
	}
}

func TestNewSplitterDefaults(t *testing.T) {
	s := NewSplitter(0, -1)
	if s.chunkSize != DefaultChunkSize || s.overlap != DefaultOverlap {
		t.Errorf("NewSplitter(0, -1) = {%d %d}, want defaults {%d %d}",
			s.chunkSize, s.overlap, DefaultChunkSize, DefaultOverlap)
	}

	s = NewSplitter(10, 50)
	if s.overlap >= s.chunkSize {
		t.Errorf("overlap %d not clamped below chunk size %d", s.overlap, s.chunkSize)
	}
}
