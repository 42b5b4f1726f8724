// Package sign 实现百度翻译接口的MD5签名
//
// 所有签名都按给定顺序把各段直接拼接后做MD5，输出小写十六进制，段之间没有分隔符。
package sign

import (
	"crypto/md5"
	"encoding/hex"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/iancoleman/orderedmap"
)

// FieldSign 签名字段名，不参与规范化查询串
const FieldSign = "sign"

// Digest 依次累加各段后计算MD5
func Digest(segments ...string) string {
	h := md5.New()
	for _, s := range segments {
		_, _ = io.WriteString(h, s)
	}
	return hex.EncodeToString(h.Sum(nil))
}

// FileMD5 计算原始字节的MD5
func FileMD5(data []byte) string {
	sum := md5.Sum(data)
	return hex.EncodeToString(sum[:])
}

// Text 通用翻译签名: MD5(appid + q + salt + 密钥)
func Text(appID, query string, salt int64, secretKey string) string {
	return Digest(appID, query, formatSalt(salt), secretKey)
}

// Image 图片翻译签名: MD5(appid + MD5(image) + salt + cuid + mac + 密钥)
func Image(appID string, image []byte, salt int64, cuid, mac, secretKey string) string {
	return Digest(appID, FileMD5(image), formatSalt(salt), cuid, mac, secretKey)
}

// Domain 垂直领域翻译签名: MD5(appid + q + salt + domain + 密钥)
func Domain(appID, query string, salt int64, domain, secretKey string) string {
	return Digest(appID, query, formatSalt(salt), domain, secretKey)
}

// Document 文档翻译签名: MD5(规范化查询串 + 文件MD5 + 密钥)
func Document(canonicalQuery, fileMD5, secretKey string) string {
	return Digest(canonicalQuery, fileMD5, secretKey)
}

// CanonicalQuery 按key字节序排序后拼成 key=value& 串（保留末尾&，不做URL编码）
func CanonicalQuery(fields map[string]string) string {
	o := orderedmap.New()
	for k, v := range fields {
		if k == FieldSign {
			continue
		}
		o.Set(k, v)
	}
	o.SortKeys(sort.Strings)

	var b strings.Builder
	for _, k := range o.Keys() {
		v, _ := o.Get(k)
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(v.(string))
		b.WriteByte('&')
	}
	return b.String()
}

func formatSalt(salt int64) string {
	return strconv.FormatInt(salt, 10)
}
