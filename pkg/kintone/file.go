package kintone

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"

	"github.com/tidwall/gjson"
)

// DownloadFile 按 fileKey 下载附件内容
func (c *Client) DownloadFile(ctx context.Context, fileKey string) ([]byte, error) {
	q := url.Values{}
	q.Set("fileKey", fileKey)

	resp, err := c.do(ctx, http.MethodGet, "/k/v1/file.json?"+q.Encode(), "", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to download file %s: %w", fileKey, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxDownloadSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", fileKey, err)
	}
	if len(data) > MaxDownloadSize {
		return nil, fmt.Errorf("file %s exceeds %d bytes", fileKey, MaxDownloadSize)
	}
	return data, nil
}

// UploadFile 上传文件，返回新的 fileKey
//
// 上传得到的 fileKey 只有在写入某条记录的附件字段后才会被保留，
// 未使用的文件会被 kintone 定期清理。
func (c *Client) UploadFile(ctx context.Context, name, contentType string, data []byte) (string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, escapeQuotes(name)))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	h.Set("Content-Type", contentType)

	part, err := w.CreatePart(h)
	if err != nil {
		return "", fmt.Errorf("failed to create multipart body: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return "", fmt.Errorf("failed to write multipart body: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("failed to close multipart body: %w", err)
	}

	resp, err := c.do(ctx, http.MethodPost, "/k/v1/file.json", w.FormDataContentType(), &buf)
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", name, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read upload response: %w", err)
	}
	fileKey := gjson.GetBytes(body, "fileKey").String()
	if fileKey == "" {
		return "", fmt.Errorf("upload of %s returned no fileKey", name)
	}
	log.Printf("[Kintone] Uploaded %s (%d bytes)", name, len(data))
	return fileKey, nil
}

var quoteEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}
