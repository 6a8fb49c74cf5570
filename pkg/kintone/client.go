// Package kintone 是 kintone REST API 的最小客户端
//
// 只覆盖游戏需要的四个操作：读取记录、更新记录、下载附件、上传附件。
package kintone

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/decker502/fukuwarai/pkg/config"
	"github.com/tidwall/gjson"
)

// 请求头
const (
	headerAPIToken      = "X-Cybozu-API-Token"
	headerAuthorization = "X-Cybozu-Authorization"
)

// DefaultTimeout 单个请求的默认超时
const DefaultTimeout = 30 * time.Second

// MaxDownloadSize 单个附件下载的上限
const MaxDownloadSize = 64 << 20

// Client kintone REST 客户端
// 对并发使用是安全的
type Client struct {
	baseURL    string
	appID      string
	apiToken   string
	basicAuth  string
	httpClient *http.Client
}

// NewClient 根据配置创建客户端
// 配置了 API 令牌时使用令牌认证，否则使用用户名/密码认证
func NewClient(cfg config.KintoneConfig) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		appID:      cfg.AppID,
		apiToken:   cfg.APIToken,
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}
	if c.apiToken == "" && cfg.Username != "" {
		c.basicAuth = base64.StdEncoding.EncodeToString([]byte(cfg.Username + ":" + cfg.Password))
	}
	return c
}

// WithHTTPClient 替换底层 HTTP 客户端（测试或自定义传输时使用）
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.httpClient = hc
	return c
}

// AppID 返回客户端绑定的应用 ID
func (c *Client) AppID() string {
	return c.appID
}

// GetRecord 读取一条记录
func (c *Client) GetRecord(ctx context.Context, recordID string) (*Record, error) {
	q := url.Values{}
	q.Set("app", c.appID)
	q.Set("id", recordID)

	resp, err := c.do(ctx, http.MethodGet, "/k/v1/record.json?"+q.Encode(), "", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get record %s: %w", recordID, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read record %s: %w", recordID, err)
	}

	rec, err := ParseRecord(body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse record %s: %w", recordID, err)
	}
	log.Printf("[Kintone] Loaded record %s (revision %s)", rec.ID(), rec.Revision())
	return rec, nil
}

// UpdateRecord 以一次请求更新记录，返回新的修订号
// kintone 对单条记录的更新是全有或全无的
func (c *Client) UpdateRecord(ctx context.Context, update *RecordUpdate) (string, error) {
	body, err := update.Body()
	if err != nil {
		return "", fmt.Errorf("failed to build update body: %w", err)
	}

	resp, err := c.do(ctx, http.MethodPut, "/k/v1/record.json", "application/json", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to update record: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read update response: %w", err)
	}
	revision := gjson.GetBytes(data, "revision").String()
	log.Printf("[Kintone] Updated record (revision %s)", revision)
	return revision, nil
}

// do 发送请求并检查状态码
// 非 2xx 响应被转换为 *APIError，调用方只需处理成功的响应体
func (c *Client) do(ctx context.Context, method, path, contentType string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	c.authorize(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		return nil, decodeAPIError(resp)
	}
	return resp, nil
}

func (c *Client) authorize(req *http.Request) {
	switch {
	case c.apiToken != "":
		req.Header.Set(headerAPIToken, c.apiToken)
	case c.basicAuth != "":
		req.Header.Set(headerAuthorization, c.basicAuth)
	}
}
