package rewrite

import (
	"testing"

	"github.com/jpl-au/sitefix/internal/pathfix"
)

func newRewriter() Rewriter {
	return New(pathfix.New("Cyb3Raya-Blog"))
}

func TestTransform_Attributes(t *testing.T) {
	r := newRewriter()

	tests := []struct {
		name      string
		input     string
		want      string
		wantCount int
	}{
		{
			"href double quoted",
			`<a href="/HTML/blog.html">x</a>`,
			`<a href="/Cyb3Raya-Blog/HTML/blog.html">x</a>`,
			1,
		},
		{
			"src single quoted",
			`<script src='/JS/app.js'></script>`,
			`<script src='/Cyb3Raya-Blog/JS/app.js'></script>`,
			1,
		},
		{
			"action",
			`<form action="/submit">`,
			`<form action="/Cyb3Raya-Blog/submit">`,
			1,
		},
		{
			"spaces around equals",
			`<a href = "/page">x</a>`,
			`<a href = "/Cyb3Raya-Blog/page">x</a>`,
			1,
		},
		{
			"uppercase attribute name",
			`<A HREF="/page">x</A>`,
			`<A HREF="/Cyb3Raya-Blog/page">x</A>`,
			1,
		},
		{
			"legacy prefix replaced",
			`<link href="/Cyb3Raya/CSS/style.css">`,
			`<link href="/Cyb3Raya-Blog/CSS/style.css">`,
			1,
		},
		{
			"double prefix collapsed",
			`<img src="/Cyb3Raya-Blog/Cyb3Raya/IMG/logo.png">`,
			`<img src="/Cyb3Raya-Blog/IMG/logo.png">`,
			1,
		},
		{
			"already correct untouched",
			`<a href="/Cyb3Raya-Blog/x">x</a>`,
			`<a href="/Cyb3Raya-Blog/x">x</a>`,
			0,
		},
		{
			"external url untouched",
			`<a href="https://example.com/page">x</a>`,
			`<a href="https://example.com/page">x</a>`,
			0,
		},
		{
			"fragment untouched",
			`<a href="#top">x</a>`,
			`<a href="#top">x</a>`,
			0,
		},
		{
			"relative path untouched",
			`<a href="sub/page.html">x</a>`,
			`<a href="sub/page.html">x</a>`,
			0,
		},
		{
			"empty value untouched",
			`<a href="">x</a>`,
			`<a href="">x</a>`,
			0,
		},
		{
			"multiple attributes in one line",
			`<a href="/a"><img src="/b"></a>`,
			`<a href="/Cyb3Raya-Blog/a"><img src="/Cyb3Raya-Blog/b"></a>`,
			2,
		},
		{
			"path outside attribute untouched",
			`<p>see /CSS/style.css for details</p>`,
			`<p>see /CSS/style.css for details</p>`,
			0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, count := r.Transform(tt.input)
			if got != tt.want {
				t.Errorf("Transform() = %q, want %q", got, tt.want)
			}
			if count != tt.wantCount {
				t.Errorf("count = %d, want %d", count, tt.wantCount)
			}
		})
	}
}

func TestTransform_CSS(t *testing.T) {
	r := newRewriter()

	tests := []struct {
		name      string
		input     string
		want      string
		wantCount int
	}{
		{
			"bare url",
			`background: url(/CSS/bg.png);`,
			`background: url(/Cyb3Raya-Blog/CSS/bg.png);`,
			1,
		},
		{
			"double quoted url",
			`background: url("/IMG/hero.jpg");`,
			`background: url("/Cyb3Raya-Blog/IMG/hero.jpg");`,
			1,
		},
		{
			"single quoted url",
			`background: url('/IMG/hero.jpg');`,
			`background: url('/Cyb3Raya-Blog/IMG/hero.jpg');`,
			1,
		},
		{
			"data uri untouched",
			`background: url(data:image/png;base64,AAAA);`,
			`background: url(data:image/png;base64,AAAA);`,
			0,
		},
		{
			"absolute url untouched",
			`background: url(https://cdn.example.com/x.png);`,
			`background: url(https://cdn.example.com/x.png);`,
			0,
		},
		{
			"relative url untouched",
			`background: url(../img/x.png);`,
			`background: url(../img/x.png);`,
			0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, count := r.Transform(tt.input)
			if got != tt.want {
				t.Errorf("Transform() = %q, want %q", got, tt.want)
			}
			if count != tt.wantCount {
				t.Errorf("count = %d, want %d", count, tt.wantCount)
			}
		})
	}
}

func TestTransform_MixedDocument(t *testing.T) {
	r := newRewriter()

	input := `<html><head>
<link rel="stylesheet" href="/Cyb3Raya/CSS/style.css">
<style>body { background: url(/IMG/bg.png); }</style>
</head><body>
<a href="mailto:hi@example.com">mail</a>
<a href="/HTML/blog.html">blog</a>
</body></html>`

	want := `<html><head>
<link rel="stylesheet" href="/Cyb3Raya-Blog/CSS/style.css">
<style>body { background: url(/Cyb3Raya-Blog/IMG/bg.png); }</style>
</head><body>
<a href="mailto:hi@example.com">mail</a>
<a href="/Cyb3Raya-Blog/HTML/blog.html">blog</a>
</body></html>`

	got, count := r.Transform(input)
	if got != want {
		t.Errorf("Transform() = %q, want %q", got, want)
	}
	if count != 3 {
		t.Errorf("count = %d, want 3", count)
	}
}

func TestTransform_Idempotent(t *testing.T) {
	r := newRewriter()

	input := `<a href="/x"><img src="/Cyb3Raya/y"></a> url(/z)`
	once, n1 := r.Transform(input)
	twice, n2 := r.Transform(once)

	if once != twice {
		t.Errorf("Transform not idempotent: %q -> %q", once, twice)
	}
	if n1 != 3 || n2 != 0 {
		t.Errorf("counts = %d, %d; want 3, 0", n1, n2)
	}
}
