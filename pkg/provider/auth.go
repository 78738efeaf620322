package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/slides/v1"

	"github.com/shouni/go-slides2html/pkg/domain"
)

// Scopes はスライドとサムネイルの読み取りに必要な OAuth スコープです。
var Scopes = []string{
	slides.PresentationsReadonlyScope,
	slides.DriveReadonlyScope,
}

// Credentials は認証情報の取得方法を表します。
type Credentials struct {
	// File はサービスアカウント鍵、または OAuth クライアントシークレットの JSON ファイルです。
	File string
	// ServiceAccount が true の場合、File をサービスアカウント鍵として扱います。
	ServiceAccount bool
	// TokenFile は対話認証で得たトークンの保存先です。ServiceAccount の場合は使いません。
	TokenFile string
}

// Validate はネットワークにアクセスする前に認証情報の指定を検証します。
func (c Credentials) Validate() error {
	if c.File == "" {
		return &domain.ConfigurationError{Field: "credfile", Reason: "認証情報ファイルは必須です"}
	}
	if _, err := os.Stat(c.File); err != nil {
		return &domain.ConfigurationError{Field: "credfile", Reason: fmt.Sprintf("認証情報ファイルを読めません: %s", c.File), Err: err}
	}
	if !c.ServiceAccount && c.TokenFile == "" {
		return &domain.ConfigurationError{Field: "token-file", Reason: "対話認証ではトークンファイルのパスが必須です"}
	}
	return nil
}

// Authorizer は対話認証で利用者から認可コードを受け取るための入出力です。
type Authorizer struct {
	In  io.Reader
	Out io.Writer
}

// ClientOptions は認証情報から API クライアント用のオプションを組み立てます。
// 対話認証でトークンファイルがない場合は、認可 URL を表示してコードの入力を待ちます。
func ClientOptions(ctx context.Context, cred Credentials, auth Authorizer) ([]option.ClientOption, error) {
	if err := cred.Validate(); err != nil {
		return nil, err
	}

	if cred.ServiceAccount {
		return []option.ClientOption{
			option.WithCredentialsFile(cred.File),
			option.WithScopes(Scopes...),
		}, nil
	}

	secret, err := os.ReadFile(cred.File)
	if err != nil {
		return nil, &domain.ConfigurationError{Field: "credfile", Reason: "クライアントシークレットの読み込みに失敗しました", Err: err}
	}
	conf, err := google.ConfigFromJSON(secret, Scopes...)
	if err != nil {
		return nil, &domain.ConfigurationError{Field: "credfile", Reason: "クライアントシークレットの解析に失敗しました", Err: err}
	}

	tok, err := loadToken(cred.TokenFile)
	if errors.Is(err, fs.ErrNotExist) {
		tok, err = exchangeToken(ctx, conf, auth)
		if err != nil {
			return nil, err
		}
		if err := saveToken(cred.TokenFile, tok); err != nil {
			return nil, err
		}
		slog.InfoContext(ctx, "トークンを保存しました", "path", cred.TokenFile)
	} else if err != nil {
		return nil, &domain.ConfigurationError{Field: "token-file", Reason: "トークンファイルの読み込みに失敗しました", Err: err}
	}

	return []option.ClientOption{option.WithTokenSource(conf.TokenSource(ctx, tok))}, nil
}

func exchangeToken(ctx context.Context, conf *oauth2.Config, auth Authorizer) (*oauth2.Token, error) {
	if auth.In == nil || auth.Out == nil {
		return nil, &domain.ConfigurationError{Field: "token-file", Reason: "トークンがなく、対話認証も利用できません"}
	}

	authURL := conf.AuthCodeURL("state-token", oauth2.AccessTypeOffline)
	fmt.Fprintf(auth.Out, "次の URL をブラウザで開き、表示された認可コードを入力してください:\n%s\n> ", authURL)

	var code string
	if _, err := fmt.Fscan(auth.In, &code); err != nil {
		return nil, fmt.Errorf("認可コードの読み取りに失敗しました: %w", err)
	}
	tok, err := conf.Exchange(ctx, strings.TrimSpace(code))
	if err != nil {
		return nil, fmt.Errorf("トークンの取得に失敗しました: %w", err)
	}
	return tok, nil
}

func loadToken(path string) (*oauth2.Token, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	tok := &oauth2.Token{}
	if err := json.NewDecoder(f).Decode(tok); err != nil {
		return nil, err
	}
	return tok, nil
}

func saveToken(path string, tok *oauth2.Token) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return &domain.FilesystemError{Op: "mkdir", Path: filepath.Dir(path), Err: err}
	}
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return &domain.FilesystemError{Op: "create", Path: path, Err: err}
	}
	defer f.Close()
	if err := json.NewEncoder(f).Encode(tok); err != nil {
		return &domain.FilesystemError{Op: "write", Path: path, Err: err}
	}
	return nil
}
