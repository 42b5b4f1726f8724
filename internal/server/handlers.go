package server

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/iBreaker/baidu-trans/pkg/baidu"
	"github.com/iBreaker/baidu-trans/pkg/form"
	"github.com/iBreaker/baidu-trans/pkg/logger"
	"github.com/iBreaker/baidu-trans/pkg/types"
)

// TranslateHandler 翻译接口处理器
type TranslateHandler struct {
	client *baidu.Client
}

// NewTranslateHandler 创建翻译接口处理器
func NewTranslateHandler(client *baidu.Client) *TranslateHandler {
	return &TranslateHandler{client: client}
}

type translateRequest struct {
	Q    string `json:"q" binding:"required"`
	From string `json:"from"`
	To   string `json:"to"`
}

type domainRequest struct {
	Q      string `json:"q" binding:"required"`
	Domain string `json:"domain" binding:"required"`
	From   string `json:"from"`
	To     string `json:"to"`
}

// HandleTranslate 通用文本翻译
func (h *TranslateHandler) HandleTranslate(c *gin.Context) {
	var req translateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	client, ok := h.clientFor(c, req.From, req.To)
	if !ok {
		return
	}

	result, err := client.Translate(c.Request.Context(), req.Q)
	h.writeResult(c, result, err)
}

// HandleDomain 垂直领域翻译
func (h *TranslateHandler) HandleDomain(c *gin.Context) {
	var req domainRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	domain, err := types.ParseDomain(req.Domain)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid_domain", err.Error())
		return
	}

	client, ok := h.clientFor(c, req.From, req.To)
	if !ok {
		return
	}

	result, err := client.DomainTranslate(c.Request.Context(), req.Q, domain)
	h.writeResult(c, result, err)
}

// HandleImage 图片翻译，multipart字段image
func (h *TranslateHandler) HandleImage(c *gin.Context) {
	name, data, ok := readUpload(c, form.ImageField)
	if !ok {
		return
	}

	paste, err := types.ParsePaste(c.PostForm("paste"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid_paste", err.Error())
		return
	}

	client, ok := h.clientFor(c, c.PostForm("from"), c.PostForm("to"))
	if !ok {
		return
	}

	result, err := client.ImageTranslateWithOptions(c.Request.Context(), name, data, form.ImageOptions{Paste: paste})
	h.writeResult(c, result, err)
}

// HandleDocCount 文档统计校验，multipart字段file
func (h *TranslateHandler) HandleDocCount(c *gin.Context) {
	name, data, ok := readUpload(c, form.DocField)
	if !ok {
		return
	}

	client, ok := h.clientFor(c, c.PostForm("from"), c.PostForm("to"))
	if !ok {
		return
	}

	result, err := client.DocCount(c.Request.Context(), name, data, docType(c, name))
	h.writeResult(c, result, err)
}

// HandleDocTranslate 文档翻译，multipart字段file
func (h *TranslateHandler) HandleDocTranslate(c *gin.Context) {
	name, data, ok := readUpload(c, form.DocField)
	if !ok {
		return
	}

	client, ok := h.clientFor(c, c.PostForm("from"), c.PostForm("to"))
	if !ok {
		return
	}

	result, err := client.DocTranslate(c.Request.Context(), name, data, docType(c, name), c.PostForm("output_type"))
	h.writeResult(c, result, err)
}

// clientFor 按请求语种返回客户端副本，未指定的语种沿用默认配置
func (h *TranslateHandler) clientFor(c *gin.Context, from, to string) (*baidu.Client, bool) {
	defaults := h.client.Config()

	fromLang, err := langOrDefault(from, defaults.From)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid_language", err.Error())
		return nil, false
	}
	toLang, err := langOrDefault(to, defaults.To)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid_language", err.Error())
		return nil, false
	}

	return h.client.WithLang(fromLang, toLang), true
}

func langOrDefault(code string, fallback types.Lang) (types.Lang, error) {
	if code == "" {
		return fallback, nil
	}
	return types.ParseLang(code)
}

// writeResult 按错误类型写入响应
func (h *TranslateHandler) writeResult(c *gin.Context, result interface{}, err error) {
	if err == nil {
		c.JSON(http.StatusOK, result)
		return
	}

	var (
		ve *baidu.VendorError
		te *baidu.TransportError
		de *baidu.DeserializationError
	)
	switch {
	case errors.As(err, &ve):
		c.AbortWithStatusJSON(http.StatusBadGateway, errorResponse{
			Error: errorBody{
				Type:    "vendor_error",
				Code:    ve.Code.String(),
				Message: ve.Message,
			},
			Timestamp: time.Now().Unix(),
		})
	case errors.As(err, &te):
		logger.Error("上游请求失败: %v", err)
		abortWithError(c, http.StatusBadGateway, "transport_error", err.Error())
	case errors.As(err, &de):
		logger.Error("上游响应无法解析: %v", err)
		abortWithError(c, http.StatusBadGateway, "decode_error", err.Error())
	default:
		logger.Error("翻译请求失败: %v", err)
		abortWithError(c, http.StatusInternalServerError, "internal_error", err.Error())
	}
}

// readUpload 读取multipart上传文件
func readUpload(c *gin.Context, field string) (string, []byte, bool) {
	header, err := c.FormFile(field)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "missing_file", fmt.Sprintf("multipart字段 %s 缺失: %v", field, err))
		return "", nil, false
	}

	data, err := readFileHeader(header)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid_file", err.Error())
		return "", nil, false
	}
	return header.Filename, data, true
}

func readFileHeader(header *multipart.FileHeader) ([]byte, error) {
	file, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("打开上传文件失败: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("读取上传文件失败: %w", err)
	}
	return data, nil
}

// docType 文档类型，未指定时取文件扩展名
func docType(c *gin.Context, name string) string {
	if t := c.PostForm("type"); t != "" {
		return strings.ToLower(t)
	}
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
}
