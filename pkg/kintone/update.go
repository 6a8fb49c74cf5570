package kintone

import (
	"strconv"
	"strings"

	"github.com/tidwall/sjson"
)

// RecordUpdate PUT /k/v1/record.json 的请求体
//
// 只包含显式设置的字段，未设置的字段在 kintone 端保持不变。
// 构造过程中的第一个错误会被保留，由 Body 返回。
type RecordUpdate struct {
	body []byte
	err  error
}

// NewRecordUpdate 创建指定应用和记录的更新
func NewRecordUpdate(appID, recordID string) *RecordUpdate {
	u := &RecordUpdate{body: []byte(`{}`)}
	u.set("app", appID)
	u.set("id", recordID)
	return u
}

// Revision 设置期望的修订号，记录已被他人修改时 kintone 会拒绝更新
func (u *RecordUpdate) Revision(rev string) *RecordUpdate {
	if rev != "" {
		u.set("revision", rev)
	}
	return u
}

// SetText 设置文本类字段
func (u *RecordUpdate) SetText(code, value string) *RecordUpdate {
	u.set(fieldPath(code), value)
	return u
}

// SetNumber 设置数值字段（kintone 以字符串传递数值）
func (u *RecordUpdate) SetNumber(code string, value int) *RecordUpdate {
	u.set(fieldPath(code), strconv.Itoa(value))
	return u
}

// SetFiles 用上传得到的 fileKey 替换附件字段的全部内容
func (u *RecordUpdate) SetFiles(code string, fileKeys ...string) *RecordUpdate {
	files := make([]map[string]string, 0, len(fileKeys))
	for _, k := range fileKeys {
		files = append(files, map[string]string{"fileKey": k})
	}
	u.set(fieldPath(code), files)
	return u
}

// Body 返回 JSON 请求体
func (u *RecordUpdate) Body() ([]byte, error) {
	if u.err != nil {
		return nil, u.err
	}
	return u.body, nil
}

func (u *RecordUpdate) set(path string, value interface{}) {
	if u.err != nil {
		return
	}
	u.body, u.err = sjson.SetBytes(u.body, path, value)
}

var pathEscaper = strings.NewReplacer(`\`, `\\`, `.`, `\.`, `*`, `\*`, `?`, `\?`, `|`, `\|`, `#`, `\#`, `@`, `\@`, `:`, `\:`)

// fieldPath 返回字段值在请求体中的 sjson 路径
func fieldPath(code string) string {
	return "record." + pathEscaper.Replace(code) + ".value"
}
