package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/shouni/go-utils/urlpath"

	"github.com/shouni/go-slides2html/pkg/asset"
	"github.com/shouni/go-slides2html/pkg/domain"
)

// OutputWriter はデータをローカルまたは外部ストレージに保存するためのインターフェースです。
type OutputWriter interface {
	Write(ctx context.Context, path string, data []byte) error
}

// LocalWriter はローカルファイルシステムへ一時ファイル経由で書き込みます。
type LocalWriter struct{}

// NewLocalWriter は LocalWriter を生成します。
func NewLocalWriter() *LocalWriter {
	return &LocalWriter{}
}

// Write は親ディレクトリを作成したうえで data を path にアトミックに書き込みます。
func (w *LocalWriter) Write(ctx context.Context, path string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return &domain.FilesystemError{Op: "mkdir", Path: filepath.Dir(path), Err: err}
	}
	return WriteFileAtomic(path, func(out io.Writer) error {
		_, err := io.Copy(out, bytes.NewReader(data))
		return err
	})
}

// WriteFileAtomic は同じディレクトリの一時ファイルへ書き込み、Sync 後に path へリネームします。
// 途中で失敗した場合、path には何も残りません。
func WriteFileAtomic(path string, write func(io.Writer) error) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*"+asset.PartialSuffix)
	if err != nil {
		return &domain.FilesystemError{Op: "create", Path: path, Err: err}
	}
	tmpPath := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			tmp.Close()
			os.Remove(tmpPath)
		}
	}()

	if err := write(tmp); err != nil {
		return &domain.FilesystemError{Op: "write", Path: path, Err: err}
	}
	if err := tmp.Sync(); err != nil {
		return &domain.FilesystemError{Op: "sync", Path: path, Err: err}
	}
	if err := tmp.Close(); err != nil {
		return &domain.FilesystemError{Op: "close", Path: path, Err: err}
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		return &domain.FilesystemError{Op: "chmod", Path: path, Err: err}
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return &domain.FilesystemError{Op: "rename", Path: path, Err: err}
	}
	committed = true
	return nil
}

// RoutingWriter はパスのスキームに応じて書き込み先を切り替えます。
// gs:// で始まるパスは GCS へ、それ以外はローカルへ書き込みます。
type RoutingWriter struct {
	local OutputWriter
	gcs   OutputWriter
}

// NewRoutingWriter は RoutingWriter を生成します。gcs が nil の場合 gs:// への書き込みはエラーになります。
func NewRoutingWriter(local, gcs OutputWriter) *RoutingWriter {
	return &RoutingWriter{local: local, gcs: gcs}
}

func (w *RoutingWriter) Write(ctx context.Context, path string, data []byte) error {
	if urlpath.IsGCSURI(path) {
		if w.gcs == nil {
			return fmt.Errorf("GCS クライアントが設定されていません: %s", path)
		}
		return w.gcs.Write(ctx, path, data)
	}
	return w.local.Write(ctx, path, data)
}
