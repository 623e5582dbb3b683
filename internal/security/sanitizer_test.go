package security

import (
	"strings"
	"testing"
)

func TestSanitizeHTML_AllowsSafeTags(t *testing.T) {
	s := NewSanitizer()

	input := `<h2>見出し</h2><p>本文 <strong>強調</strong> <em>斜体</em></p><pre><code>x := 1</code></pre>`
	got := s.SanitizeHTML(input)

	for _, want := range []string{"<h2>", "<p>", "<strong>", "<em>", "<pre>", "<code>"} {
		if !strings.Contains(got, want) {
			t.Errorf("expected output to contain %q, got: %s", want, got)
		}
	}
}

func TestSanitizeHTML_RemovesScriptAndEventHandlers(t *testing.T) {
	s := NewSanitizer()

	tests := []struct {
		name   string
		input  string
		banned string
	}{
		{"scriptタグ", `<p>a</p><script>alert(1)</script>`, "<script"},
		{"iframeタグ", `<iframe src="https://evil.example"></iframe>`, "<iframe"},
		{"styleタグ", `<style>body{display:none}</style>`, "<style"},
		{"onclickイベント属性", `<p onclick="alert(1)">a</p>`, "onclick"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.SanitizeHTML(tt.input)
			if strings.Contains(got, tt.banned) {
				t.Errorf("expected %q to be removed, got: %s", tt.banned, got)
			}
		})
	}
}

func TestSanitizeHTML_ImgHTTPSOnly(t *testing.T) {
	s := NewSanitizer()

	httpsImg := s.SanitizeHTML(`<img src="https://example.com/a.png" alt="a">`)
	if !strings.Contains(httpsImg, "https://example.com/a.png") {
		t.Errorf("https image should be kept, got: %s", httpsImg)
	}

	jsImg := s.SanitizeHTML(`<img src="javascript:alert(1)">`)
	if strings.Contains(jsImg, "javascript") {
		t.Errorf("javascript scheme should be removed, got: %s", jsImg)
	}
}

func TestSanitizeHTML_LinksGetNoopener(t *testing.T) {
	s := NewSanitizer()

	got := s.SanitizeHTML(`<a href="https://example.com">link</a>`)
	if !strings.Contains(got, `target="_blank"`) {
		t.Errorf("expected target=_blank on external link, got: %s", got)
	}
	if !strings.Contains(got, "noopener") {
		t.Errorf("expected rel noopener on external link, got: %s", got)
	}
}

// 同一入力に対して常に同一出力を返すこと（冪等性）を検証する。
func TestSanitizeHTML_Idempotent(t *testing.T) {
	s := NewSanitizer()

	input := `<p>本文 <a href="https://example.com">link</a></p><script>x</script>`
	once := s.SanitizeHTML(input)
	twice := s.SanitizeHTML(once)
	if once != twice {
		t.Errorf("sanitize is not idempotent:\nonce:  %s\ntwice: %s", once, twice)
	}
}

func TestSanitizeText_StripsAllTags(t *testing.T) {
	s := NewSanitizer()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"プレーンテキスト", "こんにちは", "こんにちは"},
		{"タグ除去", `<b>太字</b>コメント`, "太字コメント"},
		{"scriptタグ除去", `<script>alert(1)</script>安全な部分`, "安全な部分"},
		{"前後の空白除去", "  text  ", "text"},
		{"空文字列", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.SanitizeText(tt.input)
			if got != tt.want {
				t.Errorf("SanitizeText(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
