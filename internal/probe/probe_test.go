package probe

import (
	"context"
	"errors"
	"os"
	"testing"

	infraKafka "vidverse/internal/infra/kafka"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStorage struct {
	err    error
	called string
}

func (f *fakeStorage) Download(_ context.Context, objectName, destPath string) error {
	f.called = objectName
	if f.err != nil {
		return f.err
	}
	return os.WriteFile(destPath, []byte("fake"), 0o644)
}

type fakePublisher struct {
	got []*infraKafka.VideoProbed
}

func (f *fakePublisher) PublishVideoProbed(_ context.Context, evt *infraKafka.VideoProbed) error {
	f.got = append(f.got, evt)
	return nil
}

func TestFormatDuration(t *testing.T) {
	d, err := FormatDuration(`{"streams":[],"format":{"filename":"a.mp4","duration":"12.480000"}}`)
	require.NoError(t, err)
	assert.Equal(t, "12.480000", d)

	_, err = FormatDuration(`{"format":{}}`)
	assert.Error(t, err)

	_, err = FormatDuration(`{"format":{"duration":"N/A"}}`)
	assert.Error(t, err)

	_, err = FormatDuration(`not json`)
	assert.Error(t, err)
}

func TestWorkerHandle_Success(t *testing.T) {
	storage := &fakeStorage{}
	pub := &fakePublisher{}
	w := NewWorker(storage, pub, t.TempDir()).WithProbe(func(string) (string, error) {
		return `{"format":{"duration":"3.5"}}`, nil
	})

	err := w.Handle(context.Background(), &infraKafka.VideoUploaded{VideoID: 7, Bucket: "b", ObjectName: "videos/x.mp4"})
	require.NoError(t, err)

	require.Len(t, pub.got, 1)
	assert.Equal(t, int64(7), pub.got[0].VideoID)
	assert.Equal(t, "3.5", pub.got[0].Duration)
	assert.Empty(t, pub.got[0].Error)
	assert.Equal(t, "videos/x.mp4", storage.called)
}

func TestWorkerHandle_FailureIsReported(t *testing.T) {
	pub := &fakePublisher{}
	w := NewWorker(&fakeStorage{err: errors.New("no such key")}, pub, t.TempDir())

	err := w.Handle(context.Background(), &infraKafka.VideoUploaded{VideoID: 9, ObjectName: "videos/y.mp4"})
	require.NoError(t, err)

	require.Len(t, pub.got, 1)
	assert.Equal(t, int64(9), pub.got[0].VideoID)
	assert.Empty(t, pub.got[0].Duration)
	assert.Contains(t, pub.got[0].Error, "no such key")
}
