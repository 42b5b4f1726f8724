// Package form 构建各接口的签名表单
//
// 构建过程是纯计算：不做I/O，也不会失败。salt由调用方传入。
package form

import (
	"strconv"

	"github.com/iBreaker/baidu-trans/pkg/sign"
	"github.com/iBreaker/baidu-trans/pkg/types"
)

// 图片翻译的协议固定值
const (
	DefaultCUID    = "APICUID"
	DefaultMAC     = "mac"
	DefaultVersion = "3"
)

// 文件字段名
const (
	ImageField = "image"
	DocField   = "file"
)

// Params URL编码表单字段
type Params map[string]string

// FilePart 文件表单项
type FilePart struct {
	Field string
	Name  string
	Data  []byte
}

// Multipart multipart表单
type Multipart struct {
	Fields map[string]string
	File   FilePart
}

// ImageOptions 图片翻译可选参数，空值使用协议固定值
type ImageOptions struct {
	CUID    string
	MAC     string
	Version string
	Paste   types.Paste
}

func (o ImageOptions) withDefaults() ImageOptions {
	if o.CUID == "" {
		o.CUID = DefaultCUID
	}
	if o.MAC == "" {
		o.MAC = DefaultMAC
	}
	if o.Version == "" {
		o.Version = DefaultVersion
	}
	return o
}

// Text 构建通用翻译表单
func Text(cfg *types.ClientConfig, q string, salt int64) Params {
	params := Params{
		"q":     q,
		"from":  cfg.From.String(),
		"to":    cfg.To.String(),
		"appid": cfg.AppID,
		"salt":  strconv.FormatInt(salt, 10),
	}
	params[sign.FieldSign] = sign.Text(cfg.AppID, q, salt, cfg.SecretKey)

	// 词典和TTS任一开通时两个字段一起发送
	if cfg.OpenDict || cfg.OpenTTS {
		params["tts"] = "1"
		params["dict"] = "1"
	}

	if cfg.OpenAction {
		params["action"] = "1"
	}

	return params
}

// Domain 构建垂直领域翻译表单
func Domain(cfg *types.ClientConfig, q string, domain types.Domain, salt int64) Params {
	params := Params{
		"q":      q,
		"from":   cfg.From.String(),
		"to":     cfg.To.String(),
		"appid":  cfg.AppID,
		"salt":   strconv.FormatInt(salt, 10),
		"domain": domain.String(),
	}
	params[sign.FieldSign] = sign.Domain(cfg.AppID, q, salt, domain.String(), cfg.SecretKey)
	return params
}

// Image 构建图片翻译表单
func Image(cfg *types.ClientConfig, name string, data []byte, opts ImageOptions, salt int64) *Multipart {
	opts = opts.withDefaults()

	fields := map[string]string{
		"from":    cfg.From.String(),
		"to":      cfg.To.String(),
		"appid":   cfg.AppID,
		"salt":    strconv.FormatInt(salt, 10),
		"cuid":    opts.CUID,
		"mac":     opts.MAC,
		"version": opts.Version,
	}
	fields[sign.FieldSign] = sign.Image(cfg.AppID, data, salt, opts.CUID, opts.MAC, cfg.SecretKey)

	if paste := opts.Paste.String(); paste != "" {
		fields["paste"] = paste
	}

	return &Multipart{
		Fields: fields,
		File:   FilePart{Field: ImageField, Name: name, Data: data},
	}
}

// DocCount 构建文档翻译统计校验表单
// - ext: 文件扩展名，如docx
func DocCount(cfg *types.ClientConfig, name string, data []byte, ext string, salt int64) *Multipart {
	return document(cfg, name, data, docFields(cfg, ext, salt))
}

// Doc 构建文档翻译表单
// - ext: 文件扩展名
// - outType: 输出文件类型
func Doc(cfg *types.ClientConfig, name string, data []byte, ext, outType string, salt int64) *Multipart {
	fields := docFields(cfg, ext, salt)
	fields["outPutType"] = outType
	return document(cfg, name, data, fields)
}

func docFields(cfg *types.ClientConfig, ext string, salt int64) map[string]string {
	return map[string]string{
		"appid":     cfg.AppID,
		"from":      cfg.From.String(),
		"to":        cfg.To.String(),
		"timestamp": strconv.FormatInt(salt, 10),
		"type":      ext,
	}
}

func document(cfg *types.ClientConfig, name string, data []byte, fields map[string]string) *Multipart {
	query := sign.CanonicalQuery(fields)
	fields[sign.FieldSign] = sign.Document(query, sign.FileMD5(data), cfg.SecretKey)

	return &Multipart{
		Fields: fields,
		File:   FilePart{Field: DocField, Name: name, Data: data},
	}
}
