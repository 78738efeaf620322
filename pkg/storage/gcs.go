package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime"
	"path"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/shouni/go-utils/urlpath"
	"google.golang.org/api/option"
)

// GCSWriter は Google Cloud Storage のオブジェクトとしてデータを書き込みます。
type GCSWriter struct {
	client *storage.Client
}

// NewGCSWriter は認証オプションを受け取り、GCS クライアントを初期化します。
func NewGCSWriter(ctx context.Context, opts ...option.ClientOption) (*GCSWriter, error) {
	opts = append(opts, option.WithScopes(storage.ScopeReadWrite))
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("GCS クライアントの初期化に失敗しました: %w", err)
	}
	return &GCSWriter{client: client}, nil
}

// Write は gs://bucket/object 形式の uri にデータを書き込みます。
func (w *GCSWriter) Write(ctx context.Context, uri string, data []byte) error {
	bucket, object, err := ParseGCSURI(uri)
	if err != nil {
		return err
	}

	ow := w.client.Bucket(bucket).Object(object).NewWriter(ctx)
	ow.ContentType = contentTypeFor(object)
	if _, err := io.Copy(ow, bytes.NewReader(data)); err != nil {
		_ = ow.Close()
		return fmt.Errorf("GCS への書き込みに失敗しました (%s): %w", uri, err)
	}
	if err := ow.Close(); err != nil {
		return fmt.Errorf("GCS ライターのクローズに失敗しました (%s): %w", uri, err)
	}
	return nil
}

// Close はクライアントを解放します。
func (w *GCSWriter) Close() error {
	return w.client.Close()
}

// ParseGCSURI は gs://bucket/object をバケット名とオブジェクト名に分解します。
func ParseGCSURI(uri string) (bucket, object string, err error) {
	if !urlpath.IsGCSURI(uri) {
		return "", "", fmt.Errorf("GCS URI ではありません: %s", uri)
	}
	rest := uri[len(urlpath.SchemeGCS):]
	bucket, object, _ = strings.Cut(rest, "/")
	object = strings.TrimPrefix(path.Clean("/"+object), "/")
	if bucket == "" || object == "" || object == "." {
		return "", "", fmt.Errorf("バケット名またはオブジェクト名が空です: %s", uri)
	}
	return bucket, object, nil
}

func contentTypeFor(name string) string {
	switch ext := strings.ToLower(path.Ext(name)); ext {
	case ".png":
		return "image/png"
	case ".html":
		return "text/html; charset=utf-8"
	case ".meta":
		return "text/plain; charset=utf-8"
	default:
		if ct := mime.TypeByExtension(ext); ct != "" {
			return ct
		}
		return "application/octet-stream"
	}
}
