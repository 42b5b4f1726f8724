package sign

import (
	"crypto/md5"
	"encoding/hex"
	"testing"
)

func referenceMD5(s string) string {
	sum := md5.Sum([]byte(s))
	return hex.EncodeToString(sum[:])
}

func TestDigest_KnownValues(t *testing.T) {
	tests := []struct {
		name     string
		segments []string
		want     string
	}{
		{name: "empty", segments: nil, want: "d41d8cd98f00b204e9800998ecf8427e"},
		{name: "single", segments: []string{"abc"}, want: "900150983cd24fb0d6963f7d28e17f72"},
		{name: "split_segments", segments: []string{"a", "b", "c"}, want: "900150983cd24fb0d6963f7d28e17f72"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Digest(tt.segments...); got != tt.want {
				t.Errorf("Digest() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestText_Fixture(t *testing.T) {
	got := Text("123", "hello", 1000, "abc")
	want := "8b56404b7ad5cf921e62812960804f32"
	if got != want {
		t.Errorf("Text() = %v, want %v", got, want)
	}
	if ref := referenceMD5("123" + "hello" + "1000" + "abc"); got != ref {
		t.Errorf("Text() = %v, reference md5 = %v", got, ref)
	}
}

func TestText_Deterministic(t *testing.T) {
	first := Text("20230001", "你好，世界", 1700000000, "secret")
	for i := 0; i < 5; i++ {
		if got := Text("20230001", "你好，世界", 1700000000, "secret"); got != first {
			t.Fatalf("Text() not deterministic: %v != %v", got, first)
		}
	}
}

func TestText_SingleInputChange(t *testing.T) {
	base := Text("123", "hello", 1000, "abc")

	tests := []struct {
		name   string
		appID  string
		query  string
		salt   int64
		secret string
	}{
		{name: "query", appID: "123", query: "hellp", salt: 1000, secret: "abc"},
		{name: "salt", appID: "123", query: "hello", salt: 1001, secret: "abc"},
		{name: "secret", appID: "123", query: "hello", salt: 1000, secret: "abd"},
		{name: "app_id", appID: "124", query: "hello", salt: 1000, secret: "abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Text(tt.appID, tt.query, tt.salt, tt.secret)
			if got == base {
				t.Errorf("Text() unchanged after modifying %s", tt.name)
			}
			want := referenceMD5(tt.appID + tt.query + formatSalt(tt.salt) + tt.secret)
			if got != want {
				t.Errorf("Text() = %v, reference md5 = %v", got, want)
			}
		})
	}
}

func TestImage(t *testing.T) {
	got := Image("123", []byte("abc"), 1000, "APICUID", "mac", "abc")
	if want := "bd294a86260e0b011987590fa75bce07"; got != want {
		t.Errorf("Image() = %v, want %v", got, want)
	}

	a := []byte{0x00, 0x01, 0x02, 0x03}
	b := []byte{0x00, 0x01, 0x02, 0x04}
	if FileMD5(a) == FileMD5(b) {
		t.Fatal("FileMD5() equal for different buffers")
	}
	if Image("123", a, 1000, "APICUID", "mac", "abc") == Image("123", b, 1000, "APICUID", "mac", "abc") {
		t.Error("Image() equal for different image bytes of the same length")
	}
}

func TestDomain(t *testing.T) {
	got := Domain("123", "hello", 1000, "finance", "abc")
	if want := "160e95e284b69e8712e21571ff9696e4"; got != want {
		t.Errorf("Domain() = %v, want %v", got, want)
	}
	if got == Domain("123", "hello", 1000, "medicine", "abc") {
		t.Error("Domain() ignores the domain name")
	}
}

func TestCanonicalQuery(t *testing.T) {
	a := map[string]string{}
	a["to"] = "zh"
	a["appid"] = "123"
	a["from"] = "en"

	b := map[string]string{}
	b["appid"] = "123"
	b["from"] = "en"
	b["to"] = "zh"

	want := "appid=123&from=en&to=zh&"
	if got := CanonicalQuery(a); got != want {
		t.Errorf("CanonicalQuery(a) = %q, want %q", got, want)
	}
	if CanonicalQuery(a) != CanonicalQuery(b) {
		t.Error("CanonicalQuery() depends on insertion order")
	}
	if Document(CanonicalQuery(a), FileMD5([]byte("x")), "k") != Document(CanonicalQuery(b), FileMD5([]byte("x")), "k") {
		t.Error("Document() depends on insertion order")
	}
}

func TestCanonicalQuery_ByteOrderAndSignExcluded(t *testing.T) {
	fields := map[string]string{
		"type":       "docx",
		"outPutType": "pdf",
		"timestamp":  "1000",
		"sign":       "ignored",
		"Zeta":       "1",
		"q":          "a b&c",
	}
	want := "Zeta=1&outPutType=pdf&q=a b&c&timestamp=1000&type=docx&"
	if got := CanonicalQuery(fields); got != want {
		t.Errorf("CanonicalQuery() = %q, want %q", got, want)
	}
	if CanonicalQuery(map[string]string{}) != "" {
		t.Error("CanonicalQuery() of empty set should be empty")
	}
}

func TestDocument(t *testing.T) {
	fields := map[string]string{
		"appid":     "123",
		"from":      "en",
		"to":        "zh",
		"timestamp": "1000",
		"type":      "txt",
	}
	query := CanonicalQuery(fields)
	if query != "appid=123&from=en&timestamp=1000&to=zh&type=txt&" {
		t.Fatalf("CanonicalQuery() = %q", query)
	}
	got := Document(query, FileMD5([]byte("abc")), "abc")
	if want := "7bd5883bb6c7b19ee1e1ce6abd9f45d1"; got != want {
		t.Errorf("Document() = %v, want %v", got, want)
	}
}
