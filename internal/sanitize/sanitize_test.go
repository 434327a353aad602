package sanitize

import (
	"errors"
	"strings"
	"testing"
)

func TestCleanStripsTags(t *testing.T) {
	cases := map[string]string{
		"<b>hej</b>":                 "hej",
		"hej <script>alert</script>": "hej alert",
		"ingen tags her":             "ingen tags her",
		"<div>":                      "",
	}

	for input, want := range cases {
		if got := Clean(input); got != want {
			t.Fatalf("Clean(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestCleanStripsControlCharacters(t *testing.T) {
	got := Clean("he\x00j\x1f me\x7fd dig")
	if got != "hej med dig" {
		t.Fatalf("unexpected cleaned text: %q", got)
	}
	if strings.ContainsAny(got, "\x00\x1f\x7f") {
		t.Fatal("control characters survived cleaning")
	}
}

func TestCleanTrimsWhitespace(t *testing.T) {
	if got := Clean("  hej  "); got != "hej" {
		t.Fatalf("expected trimmed text, got %q", got)
	}
}

func TestValidateMessageAccepts(t *testing.T) {
	text, sender, err := ValidateMessage(" hej ", "<i>Maria</i>", 500, 80)
	if err != nil {
		t.Fatalf("ValidateMessage err: %v", err)
	}
	if text != "hej" || sender != "Maria" {
		t.Fatalf("unexpected pair: %q / %q", text, sender)
	}
}

func TestValidateMessageEmptyText(t *testing.T) {
	_, _, err := ValidateMessage("<br>", "Maria", 500, 80)

	var fieldErr *FieldError
	if !errors.As(err, &fieldErr) {
		t.Fatalf("expected FieldError, got %v", err)
	}
	if fieldErr.Field != "text" || !errors.Is(err, ErrEmpty) {
		t.Fatalf("unexpected field error: %+v", fieldErr)
	}
}

func TestValidateMessageTextTooLong(t *testing.T) {
	_, _, err := ValidateMessage(strings.Repeat("æ", 501), "Maria", 500, 80)

	var fieldErr *FieldError
	if !errors.As(err, &fieldErr) {
		t.Fatalf("expected FieldError, got %v", err)
	}
	if !errors.Is(err, ErrTooLong) || fieldErr.Limit != 500 {
		t.Fatalf("unexpected field error: %+v", fieldErr)
	}
}

func TestValidateMessageRuneLimit(t *testing.T) {
	// 500 multi-byte runes are within a 500 rune limit.
	if _, _, err := ValidateMessage(strings.Repeat("æ", 500), "Maria", 500, 80); err != nil {
		t.Fatalf("expected 500 runes to pass, got %v", err)
	}
}

func TestValidateMessageSender(t *testing.T) {
	if _, _, err := ValidateMessage("hej", "   ", 500, 80); !errors.Is(err, ErrEmpty) {
		t.Fatalf("expected empty sender error, got %v", err)
	}
	if _, _, err := ValidateMessage("hej", strings.Repeat("a", 81), 500, 80); !errors.Is(err, ErrTooLong) {
		t.Fatalf("expected sender too long error, got %v", err)
	}
}
