package parser

import "regexp"

var (
	// PresentationIDRegex は共有 URL の "/presentation/d/<id>" 部分から ID をキャプチャします。
	PresentationIDRegex = regexp.MustCompile(`/presentation/d/([A-Za-z0-9_-]+)`)

	// SlideIDRegex は "#slide=id.<slideId>" 形式のフラグメントからスライド ID をキャプチャします。
	SlideIDRegex = regexp.MustCompile(`#slide=id\.(.+)$`)

	// RawIDRegex は URL ではなく ID が直接渡された場合の形式です。
	RawIDRegex = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
)
