package kintone

import (
	"fmt"
	"io"
	"net/http"

	"github.com/tidwall/gjson"
)

// APIError kintone REST API 返回的错误
//
// kintone 的错误响应体形如 {"code":"GAIA_RE01","id":"...","message":"..."}。
// 响应体不是 JSON 时 Code 为空，Message 为截断后的原始内容。
type APIError struct {
	Status  int    // HTTP 状态码
	Code    string // kintone 错误代码
	ID      string // 请求 ID，用于向 kintone 支持报告
	Message string
}

func (e *APIError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("kintone: HTTP %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("kintone: HTTP %d %s: %s (id=%s)", e.Status, e.Code, e.Message, e.ID)
}

// maxErrorBody 错误响应体最多读取的字节数
const maxErrorBody = 64 << 10

// decodeAPIError 从非 2xx 响应构造 *APIError
func decodeAPIError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	apiErr := &APIError{Status: resp.StatusCode}
	if gjson.ValidBytes(body) {
		parsed := gjson.ParseBytes(body)
		apiErr.Code = parsed.Get("code").String()
		apiErr.ID = parsed.Get("id").String()
		apiErr.Message = parsed.Get("message").String()
	}
	if apiErr.Message == "" {
		msg := string(body)
		if len(msg) > 200 {
			msg = msg[:200] + "..."
		}
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		apiErr.Message = msg
	}
	return apiErr
}
