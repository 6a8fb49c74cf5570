package session

import (
	"bytes"
	"context"
	"errors"
	"image/png"
	"testing"

	"github.com/decker502/fukuwarai/pkg/config"
	"github.com/decker502/fukuwarai/pkg/kintone"
	"github.com/decker502/fukuwarai/pkg/scoring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func testSpec() PlaySpec {
	return PlaySpec{
		RecordID: "42",
		Targets:  []scoring.Target{{Name: "eye", X: 100, Y: 100}},
		Weight:   1,
	}
}

func testScene() *fakeScene {
	return &fakeScene{placements: []scoring.Placement{{Name: "eye", X: 103, Y: 104}}}
}

func updateBody(t *testing.T, u *kintone.RecordUpdate) gjson.Result {
	t.Helper()
	body, err := u.Body()
	require.NoError(t, err)
	return gjson.ParseBytes(body)
}

func TestCaptureStopsMusicAndScores(t *testing.T) {
	music, player := newTestMusic()
	music.Play()
	sc := testScene()
	c := NewCompletion(&MockRecordStore{}, "5", config.DefaultAppConfig().Fields, testSpec(), sc, music)

	capture := c.Capture()

	assert.True(t, music.Stopped())
	assert.False(t, player.IsPlaying())
	assert.Equal(t, 95, capture.Score)
	assert.Equal(t, []float64{2}, sc.snapshots)
	assert.Equal(t, 20, capture.Snapshot.Bounds().Dx())

	// 捕获后修改画布不影响已捕获的数据
	sc.placements[0].X = 500
	assert.Equal(t, 103.0, capture.Placements[0].X)
}

func TestPersistSuccess(t *testing.T) {
	fields := config.DefaultAppConfig().Fields
	store := &MockRecordStore{}

	store.On("UploadFile", mock.Anything, "result-42.png", "image/png", mock.MatchedBy(func(data []byte) bool {
		img, err := png.Decode(bytes.NewReader(data))
		return err == nil && img.Bounds().Dx() == 20 && img.Bounds().Dy() == 16
	})).Return("fk-1", nil).Once()

	store.On("UpdateRecord", mock.Anything, mock.AnythingOfType("*kintone.RecordUpdate")).Return("7", nil).Once()

	c := NewCompletion(store, "5", fields, testSpec(), testScene(), nil)
	result, err := c.Persist(context.Background(), c.Capture())
	require.NoError(t, err)

	assert.Equal(t, "fk-1", result.FileKey)
	assert.Equal(t, 95, result.Score)
	assert.Equal(t, "7", result.Revision)
	store.AssertExpectations(t)

	update := store.Calls[1].Arguments.Get(1).(*kintone.RecordUpdate)
	body := updateBody(t, update)
	assert.Equal(t, "5", body.Get("app").String())
	assert.Equal(t, "42", body.Get("id").String())
	assert.Equal(t, "fk-1", body.Get("record.result_image.value.0.fileKey").String())
	assert.Equal(t, "95", body.Get("record.score_auto.value").String())
	assert.Len(t, body.Get("record").Map(), 3, "exactly three fields are written")

	playLog := body.Get("record.play_log_json.value").String()
	assert.Equal(t, result.PlayLog, playLog)
	assert.JSONEq(t, `[{"name":"eye","x":103,"y":104}]`, playLog)
	assert.Contains(t, playLog, "\n  {", "play log is indented")
}

func TestPersistUploadFailure(t *testing.T) {
	store := &MockRecordStore{}
	uploadErr := errors.New("network down")
	store.On("UploadFile", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return("", uploadErr)

	c := NewCompletion(store, "5", config.DefaultAppConfig().Fields, testSpec(), testScene(), nil)
	result, err := c.Persist(context.Background(), c.Capture())

	assert.Nil(t, result)
	var perr *PersistenceError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, StepUpload, perr.Step)
	assert.ErrorIs(t, err, uploadErr)
	store.AssertNotCalled(t, "UpdateRecord", mock.Anything, mock.Anything)
}

func TestPersistUpdateFailure(t *testing.T) {
	store := &MockRecordStore{}
	apiErr := &kintone.APIError{Status: 400, Code: "CB_VA01", Message: "入力内容が正しくありません。"}
	store.On("UploadFile", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return("fk-1", nil)
	store.On("UpdateRecord", mock.Anything, mock.Anything).Return("", apiErr)

	c := NewCompletion(store, "5", config.DefaultAppConfig().Fields, testSpec(), testScene(), nil)
	_, err := c.Persist(context.Background(), c.Capture())

	var perr *PersistenceError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, StepUpdate, perr.Step)

	var target *kintone.APIError
	require.ErrorAs(t, err, &target)
	assert.Equal(t, "CB_VA01", target.Code)
}
