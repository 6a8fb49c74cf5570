package kintone

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func TestParseRecordBareObject(t *testing.T) {
	rec, err := ParseRecord([]byte(`{"$id":{"type":"__ID__","value":"3"}}`))
	require.NoError(t, err)
	assert.Equal(t, "3", rec.ID())
	assert.True(t, rec.Has("$id"))
	assert.False(t, rec.Has("img_base"))
}

func TestParseRecordInvalid(t *testing.T) {
	for _, raw := range []string{"", "{", `"text"`, `[1,2]`} {
		_, err := ParseRecord([]byte(raw))
		assert.Error(t, err, "input %q", raw)
	}
}

// TestRecordTypeMismatch 字段类型不符时访问器返回零值
func TestRecordTypeMismatch(t *testing.T) {
	rec, err := ParseRecord([]byte(`{"record":{
		"files": {"type":"FILE","value":[{"fileKey":"k","name":"a.png"}]},
		"text": {"type":"SINGLE_LINE_TEXT","value":"hello"},
		"num": {"type":"NUMBER","value":"abc"}
	}}`))
	require.NoError(t, err)

	assert.Empty(t, rec.Text("files"))
	assert.Nil(t, rec.Files("text"))
	_, ok := rec.Number("num")
	assert.False(t, ok)
}

func TestRecordUpdateEscapesFieldCodes(t *testing.T) {
	body, err := NewRecordUpdate("1", "2").SetText("a.b", "v").Body()
	require.NoError(t, err)

	rec := gjson.GetBytes(body, "record").Map()
	require.Contains(t, rec, "a.b")
	assert.Equal(t, "v", rec["a.b"].Get("value").String())
}

func TestRecordUpdateRevision(t *testing.T) {
	body, err := NewRecordUpdate("1", "2").Revision("9").Body()
	require.NoError(t, err)
	assert.Equal(t, "9", gjson.GetBytes(body, "revision").String())

	body, err = NewRecordUpdate("1", "2").Revision("").Body()
	require.NoError(t, err)
	assert.False(t, gjson.GetBytes(body, "revision").Exists())
}
