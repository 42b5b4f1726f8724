package types

import "strings"

// TranslateResult 单段翻译结果
type TranslateResult struct {
	Src string `json:"src"` // 源文本
	Dst string `json:"dst"` // 翻译后的文本
}

// TextResult 通用翻译返回结构
type TextResult struct {
	From        string            `json:"from,omitempty"`
	To          string            `json:"to,omitempty"`
	TransResult []TranslateResult `json:"trans_result,omitempty"`
	ErrorCode   ErrorCode         `json:"error_code"`
	ErrorMsg    string            `json:"error_msg,omitempty"`
	SrcTTS      string            `json:"src_tts,omitempty"` // 原文tts链接，mp3格式
	DstTTS      string            `json:"dst_tts,omitempty"` // 译文tts链接，mp3格式
	Dict        string            `json:"dict,omitempty"`    // 中英词典资源
}

// Status 返回错误码和错误消息
func (r *TextResult) Status() (ErrorCode, string) {
	return r.ErrorCode, r.ErrorMsg
}

// Text 拼接所有译文
func (r *TextResult) Text() string {
	return joinDst(r.TransResult)
}

// DomainResult 垂直领域翻译返回结构
type DomainResult struct {
	From        string            `json:"from,omitempty"`
	To          string            `json:"to,omitempty"`
	TransResult []TranslateResult `json:"trans_result,omitempty"`
	ErrorCode   ErrorCode         `json:"error_code"`
	ErrorMsg    string            `json:"error_msg,omitempty"`
}

// Status 返回错误码和错误消息
func (r *DomainResult) Status() (ErrorCode, string) {
	return r.ErrorCode, r.ErrorMsg
}

// Text 拼接所有译文
func (r *DomainResult) Text() string {
	return joinDst(r.TransResult)
}

func joinDst(results []TranslateResult) string {
	var b strings.Builder
	for _, t := range results {
		b.WriteString(t.Dst)
	}
	return b.String()
}

// ImageResult 图片翻译返回结构
type ImageResult struct {
	ErrorCode ErrorCode  `json:"error_code"`
	ErrorMsg  string     `json:"error_msg"`
	Data      *ImageData `json:"data,omitempty"`
}

// Status 返回错误码和错误消息
func (r *ImageResult) Status() (ErrorCode, string) {
	return r.ErrorCode, r.ErrorMsg
}

// ImageData 图片翻译结果
type ImageData struct {
	From     string         `json:"from"`
	To       string         `json:"to"`
	Content  []ImageContent `json:"content"`
	SumSrc   string         `json:"sumSrc"`   // 未分段翻译原文
	SumDst   string         `json:"sumDst"`   // 未分段翻译译文
	PasteImg string         `json:"pasteImg"` // 整屏贴合图片，paste=1有效，base64
}

// ImageContent 分段翻译内容
type ImageContent struct {
	Src       string  `json:"src"`
	Dst       string  `json:"dst"`
	Rect      string  `json:"rect"`      // left top width height
	LineCount int64   `json:"lineCount"` // 该分段由原文多少行合并
	Points    []Point `json:"points"`    // 译文矩形四角坐标
	PasteImg  string  `json:"pasteImg"`  // 分块贴合图片，paste=2有效，base64
}

// Point 坐标
type Point struct {
	X int64 `json:"x"`
	Y int64 `json:"y"`
}

// DocCountResult 文档翻译统计校验返回结构
type DocCountResult struct {
	ErrorCode ErrorCode     `json:"error_code"`
	ErrorMsg  string        `json:"error_msg"`
	Data      *DocCountData `json:"data,omitempty"`
}

// Status 返回错误码和错误消息
func (r *DocCountResult) Status() (ErrorCode, string) {
	return r.ErrorCode, r.ErrorMsg
}

// DocCountData 统计结果
type DocCountData struct {
	CharCount int64  `json:"charCount"` // 总字符数
	FileID    string `json:"fileId"`
	Amount    int64  `json:"amount"` // 消费金额，单位：分
}

// DocResult 文档翻译返回结构
type DocResult struct {
	ErrorCode ErrorCode `json:"error_code"`
	ErrorMsg  string    `json:"error_msg"`
	Data      *DocData  `json:"data,omitempty"`
}

// Status 返回错误码和错误消息
func (r *DocResult) Status() (ErrorCode, string) {
	return r.ErrorCode, r.ErrorMsg
}

// DocData 文档翻译结果
type DocData struct {
	FileID string `json:"fileId"`
}
