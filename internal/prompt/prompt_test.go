package prompt

import "testing"

func TestForSlide(t *testing.T) {
	got := ForSlide("Rewrite this: {original}. Keep it short.", "Hello world")
	want := "Rewrite this: Hello world. Keep it short."
	if got != want {
		t.Errorf("ForSlide() = %q, want %q", got, want)
	}
}

func TestForSlideWithoutPlaceholder(t *testing.T) {
	got := ForSlide("No placeholder here", "ignored")
	if got != "No placeholder here" {
		t.Errorf("ForSlide() = %q, want template unchanged", got)
	}
}

func TestJoinSlides(t *testing.T) {
	got := JoinSlides([]string{"Hook text", "Body A", "Body B"})
	want := "Slide 1: Hook text\nSlide 2: Body A\nSlide 3: Body B"
	if got != want {
		t.Errorf("JoinSlides() = %q, want %q", got, want)
	}
}

func TestForCaption(t *testing.T) {
	got := ForCaption("Summarize:\n{slides_text}\nDone.", []string{"A", "B"})
	want := "Summarize:\nSlide 1: A\nSlide 2: B\nDone."
	if got != want {
		t.Errorf("ForCaption() = %q, want %q", got, want)
	}
}
