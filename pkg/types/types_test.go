package types

import (
	"encoding/json"
	"testing"

	yaml "gopkg.in/yaml.v2"
)

func TestLang_StringAndParse(t *testing.T) {
	langs := AllLangs()
	if len(langs) != 29 {
		t.Fatalf("AllLangs() len = %d, want 29", len(langs))
	}

	seen := make(map[string]bool)
	for _, l := range langs {
		code := l.String()
		if code == "" {
			t.Errorf("Lang(%d).String() is empty", l)
		}
		if seen[code] {
			t.Errorf("duplicate code %q", code)
		}
		seen[code] = true

		parsed, err := ParseLang(code)
		if err != nil {
			t.Errorf("ParseLang(%q) error = %v", code, err)
		}
		if parsed != l {
			t.Errorf("ParseLang(%q) = %v, want %v", code, parsed, l)
		}
	}

	if _, err := ParseLang("klingon"); err == nil {
		t.Error("ParseLang() should reject unknown code")
	}
	if Lang(99).String() != "auto" || Lang(99).IsValid() {
		t.Error("out of range Lang should render as auto and be invalid")
	}
}

func TestLang_DefaultIsAuto(t *testing.T) {
	cfg := NewClientConfig("id", "secret")
	if cfg.From != LangAuto || cfg.To != LangAuto {
		t.Errorf("default langs = %v/%v, want auto/auto", cfg.From, cfg.To)
	}
	if cfg.OpenDict || cfg.OpenTTS || cfg.OpenAction {
		t.Error("feature flags should default to false")
	}
}

func TestLang_YAML(t *testing.T) {
	var tc TranslateConfig
	if err := yaml.Unmarshal([]byte("from: en\nto: jp\n"), &tc); err != nil {
		t.Fatalf("yaml.Unmarshal() error = %v", err)
	}
	if tc.From != LangEn || tc.To != LangJp {
		t.Errorf("got %v/%v, want en/jp", tc.From, tc.To)
	}

	if err := yaml.Unmarshal([]byte("from: xx\n"), &tc); err == nil {
		t.Error("yaml.Unmarshal() should reject unknown lang")
	}

	out, err := yaml.Marshal(TranslateConfig{From: LangCht, To: LangVie})
	if err != nil {
		t.Fatalf("yaml.Marshal() error = %v", err)
	}
	var back TranslateConfig
	if err := yaml.Unmarshal(out, &back); err != nil {
		t.Fatalf("yaml.Unmarshal() error = %v", err)
	}
	if back.From != LangCht || back.To != LangVie {
		t.Errorf("round trip = %v/%v", back.From, back.To)
	}
}

func TestDomain_StringAndParse(t *testing.T) {
	for _, d := range AllDomains() {
		parsed, err := ParseDomain(d.String())
		if err != nil || parsed != d {
			t.Errorf("ParseDomain(%q) = %v, %v", d.String(), parsed, err)
		}
	}
	if _, err := ParseDomain("law"); err == nil {
		t.Error("ParseDomain() should reject unknown domain")
	}
}

func TestPaste(t *testing.T) {
	tests := []struct {
		in      string
		want    Paste
		wantErr bool
	}{
		{in: "", want: PasteOmit},
		{in: "0", want: PasteOff},
		{in: "1", want: PasteFull},
		{in: "2", want: PasteBlock},
		{in: "3", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParsePaste(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParsePaste(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && (got != tt.want || got.String() != tt.in) {
			t.Errorf("ParsePaste(%q) = %v (%q)", tt.in, got, got.String())
		}
	}
}

func TestErrorCode_Unmarshal(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantKind  ErrorCodeKind
		wantText  string
		wantError bool
	}{
		{name: "absent", body: `{}`, wantKind: ErrorCodeAbsent},
		{name: "null", body: `{"error_code":null}`, wantKind: ErrorCodeAbsent},
		{name: "int_success", body: `{"error_code":0}`, wantKind: ErrorCodeInt, wantText: "0"},
		{name: "string_success", body: `{"error_code":"0"}`, wantKind: ErrorCodeString, wantText: "0"},
		{name: "vendor_success", body: `{"error_code":"52000"}`, wantKind: ErrorCodeString, wantText: "52000"},
		{name: "string_failure", body: `{"error_code":"54001"}`, wantKind: ErrorCodeString, wantText: "54001", wantError: true},
		{name: "int_failure", body: `{"error_code":52003}`, wantKind: ErrorCodeInt, wantText: "52003", wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var r DocCountResult
			if err := json.Unmarshal([]byte(tt.body), &r); err != nil {
				t.Fatalf("json.Unmarshal() error = %v", err)
			}
			if r.ErrorCode.Kind != tt.wantKind {
				t.Errorf("Kind = %v, want %v", r.ErrorCode.Kind, tt.wantKind)
			}
			if r.ErrorCode.String() != tt.wantText {
				t.Errorf("String() = %q, want %q", r.ErrorCode.String(), tt.wantText)
			}
			if r.ErrorCode.IsError() != tt.wantError {
				t.Errorf("IsError() = %v, want %v", r.ErrorCode.IsError(), tt.wantError)
			}
		})
	}
}

func TestErrorCode_RejectsObjects(t *testing.T) {
	var r TextResult
	if err := json.Unmarshal([]byte(`{"error_code":{"a":1}}`), &r); err == nil {
		t.Error("json.Unmarshal() should reject object error_code")
	}
	if err := json.Unmarshal([]byte(`{"error_code":1.5}`), &r); err == nil {
		t.Error("json.Unmarshal() should reject fractional error_code")
	}
}

func TestErrorCode_Marshal(t *testing.T) {
	tests := []struct {
		code ErrorCode
		want string
	}{
		{code: ErrorCode{}, want: `null`},
		{code: IntCode(0), want: `0`},
		{code: StringCode("54001"), want: `"54001"`},
	}
	for _, tt := range tests {
		out, err := json.Marshal(tt.code)
		if err != nil {
			t.Fatalf("json.Marshal() error = %v", err)
		}
		if string(out) != tt.want {
			t.Errorf("json.Marshal() = %s, want %s", out, tt.want)
		}
	}
}

func TestTextResult_Text(t *testing.T) {
	body := `{"from":"en","to":"zh","trans_result":[{"src":"a","dst":"甲"},{"src":"b","dst":"乙"}]}`
	var r TextResult
	if err := json.Unmarshal([]byte(body), &r); err != nil {
		t.Fatalf("json.Unmarshal() error = %v", err)
	}
	if r.Text() != "甲乙" {
		t.Errorf("Text() = %q, want 甲乙", r.Text())
	}
	if code, _ := r.Status(); code.IsError() {
		t.Error("success body reported as error")
	}
}

func TestImageResult_Decode(t *testing.T) {
	body := `{"error_code":"0","error_msg":"success","data":{"from":"en","to":"zh","sumSrc":"hi","sumDst":"你好","pasteImg":"",
		"content":[{"src":"hi","dst":"你好","rect":"1 2 3 4","lineCount":1,"pasteImg":"","points":[{"x":1,"y":2}]}]}}`
	var r ImageResult
	if err := json.Unmarshal([]byte(body), &r); err != nil {
		t.Fatalf("json.Unmarshal() error = %v", err)
	}
	if r.Data == nil || len(r.Data.Content) != 1 || r.Data.Content[0].Points[0].Y != 2 {
		t.Fatalf("unexpected data: %+v", r.Data)
	}
	if r.Data.SumDst != "你好" || r.Data.Content[0].LineCount != 1 {
		t.Errorf("unexpected data: %+v", r.Data)
	}
}

func TestConfig_ClientConfig(t *testing.T) {
	c := Config{
		Account:   AccountConfig{AppID: "id", SecretKey: "sk"},
		Translate: TranslateConfig{From: LangEn, To: LangZh, OpenTTS: true},
	}
	cc := c.ClientConfig()
	if cc.AppID != "id" || cc.SecretKey != "sk" || cc.From != LangEn || cc.To != LangZh || !cc.OpenTTS {
		t.Errorf("ClientConfig() = %+v", cc)
	}
}
