package driver

import (
	"context"
	"testing"
	"time"
)

func TestSplitChunks_FiveSlotMessage(t *testing.T) {
	text := "Hello, *Ayesha*,\n\nIntro line.\n\nOrder line.\n\nRequest line.\n\nClosing."

	chunks := splitChunks(text)

	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d", len(chunks))
	}
	if chunks[0] != "Hello, *Ayesha*,\nIntro line." {
		t.Errorf("unexpected first chunk %q", chunks[0])
	}
	if chunks[1] != "Order line.\nRequest line.\nClosing." {
		t.Errorf("unexpected second chunk %q", chunks[1])
	}
}

func TestSplitChunks_ShortMessage(t *testing.T) {
	chunks := splitChunks("Hello.\n\nBye.")
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if chunks[0] != "Hello.\nBye." {
		t.Errorf("unexpected chunk %q", chunks[0])
	}
}

func TestPacing_DelayWithinBounds(t *testing.T) {
	p := Pacing{Min: 10 * time.Millisecond, Max: 30 * time.Millisecond}

	for i := 0; i < 100; i++ {
		d := p.delay()
		if d < p.Min || d > p.Max {
			t.Fatalf("delay %v outside [%v, %v]", d, p.Min, p.Max)
		}
	}
}

func TestPacing_ZeroIsNoop(t *testing.T) {
	p := Pacing{}

	start := time.Now()
	p.pause(context.Background())
	if elapsed := time.Since(start); elapsed > 5*time.Millisecond {
		t.Errorf("zero pacing paused for %v", elapsed)
	}
}

func TestPacing_PauseReturnsOnCancel(t *testing.T) {
	p := Pacing{Min: time.Minute, Max: time.Minute}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	p.pause(ctx)
	if elapsed := time.Since(start); elapsed > 100*time.Millisecond {
		t.Errorf("pause ignored cancelled context, took %v", elapsed)
	}
}
