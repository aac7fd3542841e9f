package probe

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"time"

	infraKafka "vidverse/internal/infra/kafka"
	"vidverse/pkg/logger"

	"github.com/pkg/errors"
	ffmpeg "github.com/u2takey/ffmpeg-go"
	"go.uber.org/zap"
)

// Downloader 从对象存储拉取原始文件
type Downloader interface {
	Download(ctx context.Context, objectName, destPath string) error
}

// ResultPublisher 发送探测结果
type ResultPublisher interface {
	PublishVideoProbed(ctx context.Context, evt *infraKafka.VideoProbed) error
}

// ProbeFunc 对本地文件执行 ffprobe，返回 JSON 输出
type ProbeFunc func(fileName string) (string, error)

// Worker 时长探测 worker
type Worker struct {
	storage   Downloader
	publisher ResultPublisher
	probe     ProbeFunc
	workDir   string
}

func NewWorker(storage Downloader, publisher ResultPublisher, workDir string) *Worker {
	return &Worker{
		storage:   storage,
		publisher: publisher,
		probe:     func(fileName string) (string, error) { return ffmpeg.Probe(fileName) },
		workDir:   workDir,
	}
}

// WithProbe 替换探测实现
func (w *Worker) WithProbe(fn ProbeFunc) *Worker {
	w.probe = fn
	return w
}

// Handle 下载对象、探测时长并回报结果。探测失败也会回报，错误写在 Error 字段里
func (w *Worker) Handle(ctx context.Context, task *infraKafka.VideoUploaded) error {
	logger.Info("Probe task started",
		zap.Int64("video_id", task.VideoID),
		zap.String("object", task.ObjectName),
	)

	duration, err := w.run(ctx, task)
	result := &infraKafka.VideoProbed{VideoID: task.VideoID, Duration: duration}
	if err != nil {
		logger.Error("Probe task failed", zap.Int64("video_id", task.VideoID), zap.Error(err))
		result.Error = err.Error()
	}

	sendCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := w.publisher.PublishVideoProbed(sendCtx, result); err != nil {
		return errors.Wrap(err, "publish probe result")
	}
	return nil
}

func (w *Worker) run(ctx context.Context, task *infraKafka.VideoUploaded) (string, error) {
	taskDir := filepath.Join(w.workDir, strconv.FormatInt(task.VideoID, 10))
	if err := os.MkdirAll(taskDir, os.ModePerm); err != nil {
		return "", errors.WithMessage(err, "create work dir")
	}
	defer os.RemoveAll(taskDir)

	src := filepath.Join(taskDir, "source"+filepath.Ext(task.ObjectName))

	dlCtx, cancel := context.WithTimeout(ctx, 10*time.Minute)
	defer cancel()
	if err := w.storage.Download(dlCtx, task.ObjectName, src); err != nil {
		return "", errors.WithMessage(err, "download from minio")
	}

	out, err := w.probe(src)
	if err != nil {
		return "", errors.WithMessage(err, "ffprobe")
	}
	return FormatDuration(out)
}

// FormatDuration 从 ffprobe 的 JSON 输出里取 format.duration
func FormatDuration(probeJSON string) (string, error) {
	var data struct {
		Format struct {
			Duration string `json:"duration"`
		} `json:"format"`
	}
	if err := json.Unmarshal([]byte(probeJSON), &data); err != nil {
		return "", errors.Wrap(err, "decode ffprobe output")
	}
	if data.Format.Duration == "" {
		return "", errors.New("ffprobe output has no duration")
	}
	if _, err := strconv.ParseFloat(data.Format.Duration, 64); err != nil {
		return "", errors.Wrapf(err, "invalid duration %q", data.Format.Duration)
	}
	return data.Format.Duration, nil
}
