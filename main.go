package main

import (
	"github.com/shouni/go-slides2html/cmd"
)

// main は slides2html コマンドのエントリーポイントなのだ。
// フラグの解析とサブコマンドの実行は cmd パッケージが担当するのだ。
func main() {
	cmd.Execute()
}
