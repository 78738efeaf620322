package domain

import (
	"fmt"
	"strings"
)

// ConfigurationError は入力値や設定の不備を表します。ネットワーク処理の前に検出されます。
type ConfigurationError struct {
	Field  string
	Reason string
	Err    error
}

func (e *ConfigurationError) Error() string {
	var msg strings.Builder
	fmt.Fprintf(&msg, "設定エラー (%s): %s", e.Field, e.Reason)
	if e.Err != nil {
		fmt.Fprint(&msg, ": ", e.Err)
	}
	return msg.String()
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// ProviderError はプロバイダ (スライドの一覧取得・サムネイル解決) の失敗を表します。
type ProviderError struct {
	PresentationID PresentationID
	Op             string
	Err            error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("プロバイダ呼び出し %s に失敗しました (id=%s): %v", e.Op, e.PresentationID, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// TransferError は1枚のスライド画像の取得失敗を表します。他の作業単位には影響しません。
type TransferError struct {
	FileName string
	URL      string
	Err      error
}

func (e *TransferError) Error() string {
	return fmt.Sprintf("%s の取得に失敗しました: %v", e.FileName, e.Err)
}

func (e *TransferError) Unwrap() error {
	return e.Err
}

// FilesystemError はディレクトリ作成やファイル書き込みの失敗を表します。
type FilesystemError struct {
	Op   string
	Path string
	Err  error
}

func (e *FilesystemError) Error() string {
	return fmt.Sprintf("ファイル操作 %s に失敗しました (%s): %v", e.Op, e.Path, e.Err)
}

func (e *FilesystemError) Unwrap() error {
	return e.Err
}

// MetadataMissingError はインデックスファイルに対象プレゼンテーションの項目がないことを表します。
type MetadataMissingError struct {
	PresentationID PresentationID
	IndexPath      string
}

func (e *MetadataMissingError) Error() string {
	return fmt.Sprintf("%s にプレゼンテーション %s のメタデータがありません", e.IndexPath, e.PresentationID)
}
