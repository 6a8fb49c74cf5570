package kintone

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// Attachment 附件字段中的一个文件引用
// FileKey 是下载用的临时键，只在记录读取后的短时间内有效
type Attachment struct {
	FileKey     string `json:"fileKey"`
	Name        string `json:"name"`
	ContentType string `json:"contentType"`
	Size        int64  `json:"size"`
}

// Record 一条 kintone 记录
//
// 记录 JSON 的每个字段都是 {"type": ..., "value": ...}，值的形状随字段类型变化。
// Record 不做整体反序列化，而是通过类型化的访问器按需读取，
// 字段缺失或类型不符时返回零值。
type Record struct {
	raw    string
	fields map[string]gjson.Result
}

// ParseRecord 解析 GET /k/v1/record.json 的响应体
// 同时接受 {"record": {...}} 和裸记录对象两种形式
func ParseRecord(data []byte) (*Record, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("kintone: invalid record JSON")
	}

	root := gjson.ParseBytes(data)
	if rec := root.Get("record"); rec.IsObject() {
		root = rec
	}
	if !root.IsObject() {
		return nil, fmt.Errorf("kintone: record is not an object")
	}

	return &Record{raw: root.Raw, fields: root.Map()}, nil
}

// Raw 返回记录对象的原始 JSON
func (r *Record) Raw() string {
	return r.raw
}

// Has 记录是否包含指定字段
func (r *Record) Has(code string) bool {
	_, ok := r.fields[code]
	return ok
}

// Type 返回字段类型（如 "FILE"、"NUMBER"），字段不存在时返回空字符串
func (r *Record) Type(code string) string {
	return r.fields[code].Get("type").String()
}

// ID 记录编号（$id）
func (r *Record) ID() string {
	return r.Text("$id")
}

// Revision 记录修订号（$revision），用于乐观锁
func (r *Record) Revision() string {
	return r.Text("$revision")
}

// Text 以字符串读取字段值
// 数值字段在 kintone 中也以字符串表示，因此同样适用
func (r *Record) Text(code string) string {
	v := r.fields[code].Get("value")
	if v.IsArray() || v.IsObject() {
		return ""
	}
	return v.String()
}

// Number 读取数值字段
// 值为空、非数字或字段不存在时 ok 为 false
func (r *Record) Number(code string) (float64, bool) {
	s := strings.TrimSpace(r.Text(code))
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// Files 读取附件字段，保持记录中的顺序
// 缺少 fileKey 的条目被跳过
func (r *Record) Files(code string) []Attachment {
	v := r.fields[code].Get("value")
	if !v.IsArray() {
		return nil
	}

	var files []Attachment
	v.ForEach(func(_, f gjson.Result) bool {
		key := f.Get("fileKey").String()
		if key == "" {
			return true
		}
		files = append(files, Attachment{
			FileKey:     key,
			Name:        f.Get("name").String(),
			ContentType: f.Get("contentType").String(),
			Size:        f.Get("size").Int(),
		})
		return true
	})
	return files
}

// File 读取单附件字段的第一个文件，没有文件时返回 nil
func (r *Record) File(code string) *Attachment {
	files := r.Files(code)
	if len(files) == 0 {
		return nil
	}
	return &files[0]
}
