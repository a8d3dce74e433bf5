package format

import "testing"

func TestEscapeMarkdownV1(t *testing.T) {
	got, err := EscapeMarkdown("a_b*c[d`e", MarkdownV1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := `a\_b\*c\[d` + "\\`" + `e`
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestEscapeMarkdownV2(t *testing.T) {
	got, err := EscapeMarkdown("dot. dash-", MarkdownV2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != `dot\. dash\-` {
		t.Fatalf("got %q", got)
	}
}

func TestEscapeMarkdownUnsupportedVersion(t *testing.T) {
	if _, err := EscapeMarkdown("x", 3); err == nil {
		t.Fatal("expected error for unsupported version")
	}
}
