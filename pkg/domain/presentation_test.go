package domain

import (
	"errors"
	"os"
	"testing"
)

func TestParseThumbnailSize(t *testing.T) {
	tests := []struct {
		in      string
		want    ThumbnailSize
		wantErr bool
	}{
		{in: "MEDIUM", want: ThumbnailMedium},
		{in: "large", want: ThumbnailLarge},
		{in: " Medium ", want: ThumbnailMedium},
		{in: "SMALL", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseThumbnailSize(tt.in)
			if tt.wantErr {
				var cfgErr *ConfigurationError
				if !errors.As(err, &cfgErr) {
					t.Fatalf("ConfigurationError を期待しましたが %v でした", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("予期しないエラー: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPresentation_Validate(t *testing.T) {
	tests := []struct {
		name    string
		p       Presentation
		wantErr bool
	}{
		{
			name: "正常系",
			p: Presentation{ID: "abc", Slides: []SlideDescriptor{
				{Index: 0, SlideID: "p1"},
				{Index: 1, SlideID: "p2"},
			}},
		},
		{
			name: "スライドなしも許容",
			p:    Presentation{ID: "abc"},
		},
		{
			name:    "ID なし",
			p:       Presentation{},
			wantErr: true,
		},
		{
			name: "インデックスの欠番",
			p: Presentation{ID: "abc", Slides: []SlideDescriptor{
				{Index: 0, SlideID: "p1"},
				{Index: 2, SlideID: "p2"},
			}},
			wantErr: true,
		},
		{
			name: "スライド ID の重複",
			p: Presentation{ID: "abc", Slides: []SlideDescriptor{
				{Index: 0, SlideID: "p1"},
				{Index: 1, SlideID: "p1"},
			}},
			wantErr: true,
		},
		{
			name: "空のスライド ID",
			p: Presentation{ID: "abc", Slides: []SlideDescriptor{
				{Index: 0, SlideID: ""},
			}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.p.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestDownloadEntry_NoteText(t *testing.T) {
	e := DownloadEntry{NoteLines: []string{"参考:", "https://a.example/x"}}
	if got, want := e.NoteText(), "参考:\nhttps://a.example/x"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if got := (DownloadEntry{}).NoteText(); got != "" {
		t.Errorf("ノートなしの場合は空文字を期待しましたが %q でした", got)
	}
}

func TestErrorsUnwrap(t *testing.T) {
	var err error = &TransferError{
		FileName: "0_p1.png",
		Err:      &FilesystemError{Op: "write", Path: "/tmp/x", Err: os.ErrPermission},
	}

	var fsErr *FilesystemError
	if !errors.As(err, &fsErr) {
		t.Fatal("TransferError から FilesystemError を取り出せませんでした")
	}
	if !errors.Is(err, os.ErrPermission) {
		t.Error("os.ErrPermission まで辿れることを期待しました")
	}
}
