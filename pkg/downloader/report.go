package downloader

import (
	"github.com/shouni/go-slides2html/pkg/domain"
)

type status int

const (
	statusDownloaded status = iota
	statusSkipped
	statusFailed
)

type outcome struct {
	status status
	err    *domain.TransferError
}

// Report は1回のダウンロードの結果です。各一覧はプロバイダの順序に並びます。
type Report struct {
	PresentationID domain.PresentationID
	Title          string
	Total          int

	// Downloaded は今回新たに保存した画像のファイル名です。
	Downloaded []string
	// Skipped は取得済み、または 200 以外の応答で本体を保存しなかったファイル名です。
	Skipped []string
	// Failed は転送に失敗した作業単位です。ファイルはディスクに存在しません。
	Failed []*domain.TransferError
}

// Complete はすべての作業単位が失敗なく終わったかを返します。
func (r Report) Complete() bool {
	return len(r.Failed) == 0
}

func newReport(entries []domain.DownloadEntry, outcomes []outcome) Report {
	r := Report{Total: len(entries)}
	for i, o := range outcomes {
		switch o.status {
		case statusDownloaded:
			r.Downloaded = append(r.Downloaded, entries[i].FileName)
		case statusSkipped:
			r.Skipped = append(r.Skipped, entries[i].FileName)
		case statusFailed:
			r.Failed = append(r.Failed, o.err)
		}
	}
	return r
}
