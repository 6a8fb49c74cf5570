package kintone

import (
	"context"
	"encoding/base64"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/decker502/fukuwarai/pkg/config"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

const sampleRecord = `{
  "record": {
    "$id": {"type": "__ID__", "value": "42"},
    "$revision": {"type": "__REVISION__", "value": "7"},
    "game_status": {"type": "DROP_DOWN", "value": "プレイ中"},
    "difficulty_weight": {"type": "NUMBER", "value": "2.5"},
    "target_coordinates": {"type": "MULTI_LINE_TEXT", "value": "[{\"name\":\"eye\",\"x\":100,\"y\":100}]"},
    "img_base": {"type": "FILE", "value": [
      {"contentType": "image/png", "fileKey": "fk-base", "name": "face.png", "size": "1024"}
    ]},
    "img_parts": {"type": "FILE", "value": [
      {"contentType": "image/png", "fileKey": "fk-eye", "name": "eye.png", "size": "10"},
      {"contentType": "image/png", "fileKey": "", "name": "broken.png", "size": "0"},
      {"contentType": "image/png", "fileKey": "fk-nose", "name": "nose.png", "size": "12"}
    ]},
    "bgm_file": {"type": "FILE", "value": []}
  }
}`

// fakeKintone 用 chi 搭建的假 kintone 服务器
type fakeKintone struct {
	t          *testing.T
	lastUpdate []byte
	uploads    map[string][]byte
	files      map[string][]byte
	failUpdate bool
}

func newFakeKintone(t *testing.T) (*fakeKintone, *httptest.Server) {
	f := &fakeKintone{
		t:       t,
		uploads: map[string][]byte{},
		files:   map[string][]byte{"fk-base": []byte("PNGDATA")},
	}

	r := chi.NewRouter()
	r.Route("/k/v1", func(r chi.Router) {
		r.Get("/record.json", f.getRecord)
		r.Put("/record.json", f.putRecord)
		r.Get("/file.json", f.getFile)
		r.Post("/file.json", f.postFile)
	})

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return f, srv
}

func (f *fakeKintone) getRecord(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("app") != "5" || r.URL.Query().Get("id") != "42" {
		w.WriteHeader(http.StatusNotFound)
		io.WriteString(w, `{"code":"GAIA_RE01","id":"req-1","message":"指定したレコードが見つかりません。"}`)
		return
	}
	io.WriteString(w, sampleRecord)
}

func (f *fakeKintone) putRecord(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	f.lastUpdate = body
	if f.failUpdate {
		w.WriteHeader(http.StatusBadRequest)
		io.WriteString(w, `{"code":"CB_VA01","id":"req-2","message":"入力内容が正しくありません。"}`)
		return
	}
	io.WriteString(w, `{"revision":"8"}`)
}

func (f *fakeKintone) getFile(w http.ResponseWriter, r *http.Request) {
	data, ok := f.files[r.URL.Query().Get("fileKey")]
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		io.WriteString(w, "not found")
		return
	}
	w.Write(data)
}

func (f *fakeKintone) postFile(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("file")
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	defer file.Close()
	data, _ := io.ReadAll(file)
	f.uploads[header.Filename] = data
	io.WriteString(w, `{"fileKey":"fk-uploaded"}`)
}

func newTestClient(srv *httptest.Server) *Client {
	return NewClient(config.KintoneConfig{
		BaseURL:  srv.URL + "/",
		AppID:    "5",
		APIToken: "token-abc",
	}).WithHTTPClient(srv.Client())
}

func TestGetRecord(t *testing.T) {
	_, srv := newFakeKintone(t)
	c := newTestClient(srv)

	rec, err := c.GetRecord(context.Background(), "42")
	require.NoError(t, err)

	assert.Equal(t, "42", rec.ID())
	assert.Equal(t, "7", rec.Revision())
	assert.Equal(t, "プレイ中", rec.Text("game_status"))
	assert.Equal(t, "FILE", rec.Type("img_parts"))

	w, ok := rec.Number("difficulty_weight")
	assert.True(t, ok)
	assert.Equal(t, 2.5, w)

	parts := rec.Files("img_parts")
	require.Len(t, parts, 2, "条目缺少 fileKey 时应被跳过")
	assert.Equal(t, "eye.png", parts[0].Name)
	assert.Equal(t, "nose.png", parts[1].Name)
	assert.Equal(t, int64(12), parts[1].Size)

	base := rec.File("img_base")
	require.NotNil(t, base)
	assert.Equal(t, "fk-base", base.FileKey)

	assert.Nil(t, rec.File("bgm_file"))
	assert.Empty(t, rec.Text("missing"))
	_, ok = rec.Number("missing")
	assert.False(t, ok)
}

func TestGetRecordNotFound(t *testing.T) {
	_, srv := newFakeKintone(t)
	c := newTestClient(srv)

	_, err := c.GetRecord(context.Background(), "999")
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Equal(t, "GAIA_RE01", apiErr.Code)
	assert.Equal(t, "req-1", apiErr.ID)
}

func TestAuthHeaders(t *testing.T) {
	tests := []struct {
		name      string
		cfg       config.KintoneConfig
		wantToken string
		wantBasic string
	}{
		{
			name:      "api token",
			cfg:       config.KintoneConfig{APIToken: "tok"},
			wantToken: "tok",
		},
		{
			name:      "password",
			cfg:       config.KintoneConfig{Username: "alice", Password: "secret"},
			wantBasic: base64.StdEncoding.EncodeToString([]byte("alice:secret")),
		},
		{
			name:      "token wins over password",
			cfg:       config.KintoneConfig{APIToken: "tok", Username: "alice", Password: "secret"},
			wantToken: "tok",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotToken, gotBasic string
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotToken = r.Header.Get(headerAPIToken)
				gotBasic = r.Header.Get(headerAuthorization)
				w.Write([]byte("ok"))
			}))
			defer srv.Close()

			tt.cfg.BaseURL = srv.URL
			c := NewClient(tt.cfg).WithHTTPClient(srv.Client())
			_, err := c.DownloadFile(context.Background(), "x")
			require.NoError(t, err)

			assert.Equal(t, tt.wantToken, gotToken)
			assert.Equal(t, tt.wantBasic, gotBasic)
		})
	}
}

func TestDownloadFile(t *testing.T) {
	_, srv := newFakeKintone(t)
	c := newTestClient(srv)

	data, err := c.DownloadFile(context.Background(), "fk-base")
	require.NoError(t, err)
	assert.Equal(t, []byte("PNGDATA"), data)

	_, err = c.DownloadFile(context.Background(), "fk-missing")
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "not found", apiErr.Message)
}

func TestUploadFile(t *testing.T) {
	fake, srv := newFakeKintone(t)
	c := newTestClient(srv)

	key, err := c.UploadFile(context.Background(), "result-42.png", "image/png", []byte{1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, "fk-uploaded", key)
	assert.Equal(t, []byte{1, 2, 3}, fake.uploads["result-42.png"])
}

func TestUpdateRecord(t *testing.T) {
	fake, srv := newFakeKintone(t)
	c := newTestClient(srv)

	update := NewRecordUpdate(c.AppID(), "42").
		SetFiles("result_image", "fk-uploaded").
		SetText("play_log_json", "[]").
		SetNumber("score_auto", 95)

	rev, err := c.UpdateRecord(context.Background(), update)
	require.NoError(t, err)
	assert.Equal(t, "8", rev)

	body := gjson.ParseBytes(fake.lastUpdate)
	assert.Equal(t, "5", body.Get("app").String())
	assert.Equal(t, "42", body.Get("id").String())
	assert.Equal(t, "fk-uploaded", body.Get("record.result_image.value.0.fileKey").String())
	assert.Equal(t, "[]", body.Get("record.play_log_json.value").String())
	assert.Equal(t, "95", body.Get("record.score_auto.value").String())
	assert.Len(t, body.Get("record").Map(), 3, "只写回三个字段")
}

func TestUpdateRecordFailure(t *testing.T) {
	fake, srv := newFakeKintone(t)
	fake.failUpdate = true
	c := newTestClient(srv)

	_, err := c.UpdateRecord(context.Background(), NewRecordUpdate("5", "42").SetNumber("score_auto", 1))
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "CB_VA01", apiErr.Code)
	assert.Contains(t, err.Error(), "入力内容が正しくありません")
}
