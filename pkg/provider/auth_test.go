package provider

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"golang.org/x/oauth2"

	"github.com/shouni/go-slides2html/pkg/domain"
)

const clientSecretJSON = `{"installed":{"client_id":"id.apps.example","client_secret":"secret","auth_uri":"https://accounts.example/auth","token_uri":"https://oauth2.example/token","redirect_uris":["http://localhost"]}}`

func TestCredentials_Validate(t *testing.T) {
	dir := t.TempDir()
	cred := filepath.Join(dir, "credentials.json")
	if err := os.WriteFile(cred, []byte(clientSecretJSON), 0o600); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		c       Credentials
		wantErr bool
	}{
		{name: "対話認証", c: Credentials{File: cred, TokenFile: filepath.Join(dir, "token.json")}},
		{name: "サービスアカウント", c: Credentials{File: cred, ServiceAccount: true}},
		{name: "ファイル未指定", c: Credentials{}, wantErr: true},
		{name: "ファイルが存在しない", c: Credentials{File: filepath.Join(dir, "missing.json"), ServiceAccount: true}, wantErr: true},
		{name: "トークンファイル未指定", c: Credentials{File: cred}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.c.Validate()
			if !tt.wantErr {
				if err != nil {
					t.Fatalf("予期しないエラー: %v", err)
				}
				return
			}
			var cfgErr *domain.ConfigurationError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("ConfigurationError を期待しましたが %v でした", err)
			}
		})
	}
}

func TestClientOptions_UsesCachedToken(t *testing.T) {
	dir := t.TempDir()
	cred := filepath.Join(dir, "credentials.json")
	tokenFile := filepath.Join(dir, "token.json")
	if err := os.WriteFile(cred, []byte(clientSecretJSON), 0o600); err != nil {
		t.Fatal(err)
	}
	tok := &oauth2.Token{AccessToken: "access", RefreshToken: "refresh", Expiry: time.Now().Add(time.Hour)}
	if err := saveToken(tokenFile, tok); err != nil {
		t.Fatalf("saveToken failed: %v", err)
	}

	// 入出力を渡さないので、トークンが読めなければ失敗する
	opts, err := ClientOptions(context.Background(), Credentials{File: cred, TokenFile: tokenFile}, Authorizer{})
	if err != nil {
		t.Fatalf("ClientOptions failed: %v", err)
	}
	if len(opts) != 1 {
		t.Errorf("オプション数: got %d, want 1", len(opts))
	}
}

func TestClientOptions_NoTokenWithoutTerminal(t *testing.T) {
	dir := t.TempDir()
	cred := filepath.Join(dir, "credentials.json")
	if err := os.WriteFile(cred, []byte(clientSecretJSON), 0o600); err != nil {
		t.Fatal(err)
	}

	_, err := ClientOptions(context.Background(), Credentials{File: cred, TokenFile: filepath.Join(dir, "token.json")}, Authorizer{})
	var cfgErr *domain.ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("ConfigurationError を期待しましたが %v でした", err)
	}
}

func TestClientOptions_ServiceAccount(t *testing.T) {
	cred := filepath.Join(t.TempDir(), "sa.json")
	if err := os.WriteFile(cred, []byte(`{"type":"service_account"}`), 0o600); err != nil {
		t.Fatal(err)
	}

	opts, err := ClientOptions(context.Background(), Credentials{File: cred, ServiceAccount: true}, Authorizer{})
	if err != nil {
		t.Fatalf("ClientOptions failed: %v", err)
	}
	if len(opts) != 2 {
		t.Errorf("オプション数: got %d, want 2", len(opts))
	}
}

func TestTokenRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "token.json")
	want := &oauth2.Token{AccessToken: "a", TokenType: "Bearer", RefreshToken: "r"}
	if err := saveToken(path, want); err != nil {
		t.Fatal(err)
	}
	got, err := loadToken(path)
	if err != nil {
		t.Fatal(err)
	}
	if got.AccessToken != want.AccessToken || got.RefreshToken != want.RefreshToken {
		t.Errorf("got %+v, want %+v", got, want)
	}
}
