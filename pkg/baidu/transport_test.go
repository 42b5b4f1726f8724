package baidu

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestAbbreviate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		n    int
		want string
	}{
		{name: "short", in: "hello", n: 10, want: "hello"},
		{name: "ascii", in: "hello world", n: 8, want: "hello..."},
		{name: "tiny_limit", in: "hello", n: 2, want: "he"},
		// "百度翻译" 每个字符3字节，第5字节位于"度"中间
		{name: "cjk_mid_rune", in: "百度翻译", n: 8, want: "百..."},
		{name: "cjk_boundary", in: "百度翻译", n: 9, want: "百度..."},
		{name: "cjk_tiny_limit", in: "百度", n: 2, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := abbreviate(tt.in, tt.n)
			if got != tt.want {
				t.Errorf("abbreviate(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
			}
			if len(got) > tt.n && got != tt.in {
				t.Errorf("len = %d, exceeds %d", len(got), tt.n)
			}
			if !utf8.ValidString(got) {
				t.Errorf("abbreviate(%q, %d) = %q, invalid UTF-8", tt.in, tt.n, got)
			}
		})
	}
}

func TestStatusError_BodyStaysValidUTF8(t *testing.T) {
	body := strings.Repeat("错", 300)
	err := &StatusError{StatusCode: 502, Status: "502 Bad Gateway", Body: []byte(body)}

	msg := err.Error()
	if !utf8.ValidString(msg) {
		t.Errorf("Error() is not valid UTF-8: %q", msg)
	}
	if !strings.HasSuffix(msg, "...") {
		t.Errorf("Error() = %q, want truncated body", msg[len(msg)-10:])
	}
}
