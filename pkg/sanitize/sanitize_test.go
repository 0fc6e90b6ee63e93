package sanitize

import (
	"strings"
	"testing"
)

func TestPlainText(t *testing.T) {
	cases := map[string]string{
		"":                                 "",
		"  Hello  ":                        "Hello",
		"<b>bold</b> text":                 "bold text",
		"line\none\ttabbed":                "line one tabbed",
		"<script>alert(1)</script>visible": "visible",
		"Tom & Jerry":                      "Tom & Jerry",
		"100%25 sure":                      "100 sure",
		"caf\xe9":                          "",
		"a < b":                            "a < b",
		"x<y":                              "x<y",
		"1 < 2 and 3 > 2":                  "1 < 2 and 3 > 2",
		`say "hi" it's`:                    `say "hi" it's`,
		"&lt;b&gt;bold&lt;/b&gt;":          "bold",
	}
	for in, want := range cases {
		if got := PlainText(in); got != want {
			t.Fatalf("PlainText(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestPlainTextIsStableAcrossSaves(t *testing.T) {
	inputs := []string{
		"&lt;b&gt;bold&lt;/b&gt;",
		"&amp;lt;i&amp;gt;nested",
		"x<y",
		"a <b>c</b> d < e",
		"Tom &amp; Jerry",
		"&amp;copy 2024",
		"50%41 off",
		`"quoted" & 'single'`,
	}
	for _, in := range inputs {
		once := PlainText(in)
		if twice := PlainText(once); twice != once {
			t.Fatalf("PlainText(%q) = %q, but cleaning it again gave %q", in, once, twice)
		}
	}
}

func TestRichTextKeepsSafeMarkup(t *testing.T) {
	p := New()
	got := p.RichText("Hello <strong>world</strong><script>alert(1)</script>")
	if got != "<p>Hello <strong>world</strong></p>" {
		t.Fatalf("unexpected rich text: %q", got)
	}

	got = p.RichText(`<a href="javascript:alert(1)" onclick="x()">link</a>`)
	if strings.Contains(got, "javascript") || strings.Contains(got, "onclick") {
		t.Fatalf("expected unsafe attributes to be removed, got %q", got)
	}
}

func TestRichTextFiltersRunInOrder(t *testing.T) {
	var calls []string
	first := func(s string) string { calls = append(calls, "first"); return s + "-1" }
	second := func(s string) string { calls = append(calls, "second"); return s + "-2" }

	p := New(WithFilters(first, nil, second))
	if got := p.RichText("x"); got != "x-1-2" {
		t.Fatalf("expected filters to compose, got %q", got)
	}
	if strings.Join(calls, ",") != "first,second" {
		t.Fatalf("unexpected filter order: %v", calls)
	}
	if len(p.Filters()) != 2 {
		t.Fatalf("expected nil filters to be dropped, got %d", len(p.Filters()))
	}
}

func TestAutop(t *testing.T) {
	cases := map[string]string{
		"":                               "",
		"one":                            "<p>one</p>",
		"one\ntwo":                       "<p>one<br />\ntwo</p>",
		"one\n\ntwo":                     "<p>one</p>\n<p>two</p>",
		"one\r\n\r\n<ul><li>x</li></ul>": "<p>one</p>\n<ul><li>x</li></ul>",
	}
	for in, want := range cases {
		if got := Autop(in); got != want {
			t.Fatalf("Autop(%q) = %q, want %q", in, got, want)
		}
	}
}
