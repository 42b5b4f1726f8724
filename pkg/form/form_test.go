package form

import (
	"testing"

	"github.com/iBreaker/baidu-trans/pkg/sign"
	"github.com/iBreaker/baidu-trans/pkg/types"
)

func newConfig() *types.ClientConfig {
	cfg := types.NewClientConfig("123", "abc")
	return &cfg
}

func TestText_BaseFields(t *testing.T) {
	cfg := newConfig()
	cfg.SetFrom(types.LangEn)
	cfg.SetTo(types.LangZh)

	params := Text(cfg, "hello", 1000)

	want := map[string]string{
		"q":     "hello",
		"from":  "en",
		"to":    "zh",
		"appid": "123",
		"salt":  "1000",
		"sign":  "8b56404b7ad5cf921e62812960804f32",
	}
	if len(params) != len(want) {
		t.Errorf("Text() has %d fields, want %d: %v", len(params), len(want), params)
	}
	for k, v := range want {
		if params[k] != v {
			t.Errorf("Text()[%q] = %q, want %q", k, params[k], v)
		}
	}
}

func TestText_DictTTSCoupling(t *testing.T) {
	tests := []struct {
		name     string
		openDict bool
		openTTS  bool
		wantBoth bool
	}{
		{name: "none", wantBoth: false},
		{name: "dict_only", openDict: true, wantBoth: true},
		{name: "tts_only", openTTS: true, wantBoth: true},
		{name: "both", openDict: true, openTTS: true, wantBoth: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := newConfig()
			cfg.OpenDict = tt.openDict
			cfg.OpenTTS = tt.openTTS

			params := Text(cfg, "hello", 1000)
			tts, hasTTS := params["tts"]
			dict, hasDict := params["dict"]

			if hasTTS != tt.wantBoth || hasDict != tt.wantBoth {
				t.Fatalf("tts present = %v, dict present = %v, want both %v", hasTTS, hasDict, tt.wantBoth)
			}
			if tt.wantBoth && (tts != "1" || dict != "1") {
				t.Errorf("tts = %q, dict = %q, want 1/1", tts, dict)
			}
		})
	}
}

func TestText_Action(t *testing.T) {
	cfg := newConfig()
	cfg.OpenAction = true
	if got := Text(cfg, "hello", 1000)["action"]; got != "1" {
		t.Errorf("action = %q, want 1", got)
	}

	cfg.OpenAction = false
	if _, ok := Text(cfg, "hello", 1000)["action"]; ok {
		t.Error("action key should be absent when OpenAction is false")
	}
}

func TestText_SignUnaffectedByFlags(t *testing.T) {
	cfg := newConfig()
	plain := Text(cfg, "hello", 1000)["sign"]

	cfg.OpenDict, cfg.OpenTTS, cfg.OpenAction = true, true, true
	if got := Text(cfg, "hello", 1000)["sign"]; got != plain {
		t.Errorf("sign changed with feature flags: %v != %v", got, plain)
	}
}

func TestDomain(t *testing.T) {
	cfg := newConfig()
	cfg.SetFrom(types.LangZh)
	cfg.SetTo(types.LangEn)

	params := Domain(cfg, "hello", types.DomainFinance, 1000)

	if params["domain"] != "finance" {
		t.Errorf("domain = %q, want finance", params["domain"])
	}
	if params["sign"] != "160e95e284b69e8712e21571ff9696e4" {
		t.Errorf("sign = %q", params["sign"])
	}
	for _, k := range []string{"q", "from", "to", "appid", "salt"} {
		if _, ok := params[k]; !ok {
			t.Errorf("missing field %q", k)
		}
	}
	if _, ok := params["tts"]; ok {
		t.Error("domain form must not carry tts")
	}
}

func TestImage_Defaults(t *testing.T) {
	cfg := newConfig()
	data := []byte("abc")

	mp := Image(cfg, "a.png", data, ImageOptions{}, 1000)

	if mp.File.Field != ImageField || mp.File.Name != "a.png" || string(mp.File.Data) != "abc" {
		t.Errorf("unexpected file part: %+v", mp.File)
	}
	want := map[string]string{
		"from":    "auto",
		"to":      "auto",
		"appid":   "123",
		"salt":    "1000",
		"cuid":    "APICUID",
		"mac":     "mac",
		"version": "3",
		"sign":    "bd294a86260e0b011987590fa75bce07",
	}
	for k, v := range want {
		if mp.Fields[k] != v {
			t.Errorf("Fields[%q] = %q, want %q", k, mp.Fields[k], v)
		}
	}
	if _, ok := mp.Fields["paste"]; ok {
		t.Error("paste should be absent by default")
	}
}

func TestImage_Overrides(t *testing.T) {
	cfg := newConfig()
	opts := ImageOptions{CUID: "cuid-x", MAC: "mac-x", Version: "4", Paste: types.PasteBlock}

	mp := Image(cfg, "a.png", []byte("abc"), opts, 1000)

	if mp.Fields["paste"] != "2" {
		t.Errorf("paste = %q, want 2", mp.Fields["paste"])
	}
	if mp.Fields["version"] != "4" {
		t.Errorf("version = %q, want 4", mp.Fields["version"])
	}
	want := sign.Image("123", []byte("abc"), 1000, "cuid-x", "mac-x", "abc")
	if mp.Fields["sign"] != want {
		t.Errorf("sign = %q, want %q", mp.Fields["sign"], want)
	}
}

func TestDocCount(t *testing.T) {
	cfg := newConfig()
	cfg.SetFrom(types.LangEn)
	cfg.SetTo(types.LangZh)

	mp := DocCount(cfg, "a.txt", []byte("abc"), "txt", 1000)

	if mp.File.Field != DocField {
		t.Errorf("file field = %q, want %q", mp.File.Field, DocField)
	}
	if mp.Fields["timestamp"] != "1000" || mp.Fields["type"] != "txt" {
		t.Errorf("unexpected fields: %v", mp.Fields)
	}
	if _, ok := mp.Fields["outPutType"]; ok {
		t.Error("doc count form must not carry outPutType")
	}
	if _, ok := mp.Fields["salt"]; ok {
		t.Error("doc forms use timestamp instead of salt")
	}
	if mp.Fields["sign"] != "7bd5883bb6c7b19ee1e1ce6abd9f45d1" {
		t.Errorf("sign = %q", mp.Fields["sign"])
	}
}

func TestDoc(t *testing.T) {
	cfg := newConfig()
	cfg.SetFrom(types.LangEn)
	cfg.SetTo(types.LangZh)

	mp := Doc(cfg, "a.docx", []byte("abc"), "docx", "pdf", 1000)

	if mp.Fields["outPutType"] != "pdf" {
		t.Errorf("outPutType = %q, want pdf", mp.Fields["outPutType"])
	}
	if mp.Fields["sign"] != "786d4e1fdc763a78dbdb6cb8c6d77a3e" {
		t.Errorf("sign = %q", mp.Fields["sign"])
	}
}
