package sanitize

import (
	"regexp"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-metabox/pkg/field"
)

// Filter transforms rich text before it is sanitised.
type Filter func(string) string

// Pipeline is the default field.Sanitizer. Plain text is stripped of markup and
// normalised to a single line. Rich text runs through the configured filters
// and is then cleaned with a user-generated-content policy.
type Pipeline struct {
	filters []Filter
}

var _ field.Sanitizer = (*Pipeline)(nil)

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithFilters appends rich text filters. They run in order, before the policy.
func WithFilters(filters ...Filter) Option {
	return func(p *Pipeline) {
		for _, f := range filters {
			if f != nil {
				p.filters = append(p.filters, f)
			}
		}
	}
}

// New builds a pipeline. Without options rich text gets Autop applied.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{}
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}
	if p.filters == nil {
		p.filters = []Filter{Autop}
	}
	return p
}

// Filters returns a copy of the configured rich text filters.
func (p *Pipeline) Filters() []Filter {
	out := make([]Filter, len(p.filters))
	copy(out, p.filters)
	return out
}

var (
	whitespaceRun = regexp.MustCompile(`[\r\n\t ]+`)
	percentOctet  = regexp.MustCompile(`%[a-fA-F0-9]{2}`)
)

// PlainText strips every tag, collapses whitespace runs to a single space,
// drops percent-encoded octets and trims the result. Invalid UTF-8 yields "".
// The result is unescaped text; escaping is the markup layer's job.
func (p *Pipeline) PlainText(raw string) string {
	return PlainText(raw)
}

// RichText applies the filter chain and keeps only safe markup.
func (p *Pipeline) RichText(raw string) string {
	out := raw
	for _, filter := range p.filters {
		out = filter(out)
	}
	return strings.TrimSpace(richPolicy().Sanitize(out))
}

// PlainText is the package-level form of Pipeline.PlainText. It is
// idempotent: cleaning an already clean value returns it unchanged, so saving
// an untouched form never alters stored text.
func PlainText(raw string) string {
	if raw == "" || !utf8.ValidString(raw) {
		return ""
	}
	out := plainTextPass(raw)
	for i := 0; i < maxPlainTextPasses; i++ {
		next := plainTextPass(out)
		if next == out {
			break
		}
		out = next
	}
	return out
}

// maxPlainTextPasses bounds how many nested entity levels are unwound.
const maxPlainTextPasses = 16

// textEntities are the escapes the strict policy emits for plain text.
var textEntities = strings.NewReplacer(
	"&amp;", "&",
	"&lt;", "<",
	"&gt;", ">",
	"&quot;", `"`,
	"&#34;", `"`,
	"&#39;", "'",
)

func plainTextPass(raw string) string {
	cleaned := strictPolicy().Sanitize(escapeStrayLessThan(raw))
	cleaned = whitespaceRun.ReplaceAllString(cleaned, " ")
	for {
		next := percentOctet.ReplaceAllString(cleaned, "")
		if next == cleaned {
			break
		}
		cleaned = next
	}
	return textEntities.Replace(strings.TrimSpace(cleaned))
}

// escapeStrayLessThan escapes every "<" that does not open a tag, meaning it
// reaches another "<" or the end of input before a ">".
func escapeStrayLessThan(s string) string {
	if !strings.Contains(s, "<") {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] != '<' {
			b.WriteByte(s[i])
			continue
		}
		rest := s[i+1:]
		closeAt := strings.IndexByte(rest, '>')
		openAt := strings.IndexByte(rest, '<')
		if closeAt < 0 || (openAt >= 0 && openAt < closeAt) {
			b.WriteString("&lt;")
			continue
		}
		b.WriteByte('<')
	}
	return b.String()
}

var (
	strictOnce sync.Once
	strict     *bluemonday.Policy

	richOnce sync.Once
	rich     *bluemonday.Policy
)

func strictPolicy() *bluemonday.Policy {
	strictOnce.Do(func() {
		strict = bluemonday.StrictPolicy()
	})
	return strict
}

func richPolicy() *bluemonday.Policy {
	richOnce.Do(func() {
		policy := bluemonday.UGCPolicy()
		policy.AllowAttrs("class").OnElements("p", "span", "img", "figure", "figcaption")
		policy.AllowElements("figure", "figcaption")
		policy.AllowAttrs("width", "height").Matching(bluemonday.Number).OnElements("img")
		rich = policy
	})
	return rich
}
