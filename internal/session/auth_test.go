package session

import (
	"context"
	"testing"

	"github.com/silverkeep/realmd/internal/config"
	"github.com/silverkeep/realmd/internal/persist"
)

// memPort is a minimal in-memory persist.Port stub for auth tests.
type memPort struct {
	persist.Port
	accounts map[string]*persist.Account
}

func newMemPort() *memPort { return &memPort{accounts: map[string]*persist.Account{}} }

func (m *memPort) LoadAccount(ctx context.Context, name string) (*persist.Account, error) {
	return m.accounts[name], nil
}

func (m *memPort) InsertAccount(ctx context.Context, name, hash, ip, host string) (*persist.Account, error) {
	a := &persist.Account{Name: name, PasswordHash: hash, IP: ip, Host: host}
	m.accounts[name] = a
	return a, nil
}

func (m *memPort) UpdateLastActive(ctx context.Context, name, ip string) error { return nil }

func TestAuthenticateAutoCreatesAccount(t *testing.T) {
	port := newMemPort()
	cfg := config.AccountsConfig{AutomaticAccountCreation: true, AccountCreationSalt: "salt"}

	acct, err := Authenticate(context.Background(), port, cfg, "newuser", "pw", "1.2.3.4")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if acct.Name != "newuser" {
		t.Fatalf("expected account created for newuser, got %+v", acct)
	}
}

func TestAuthenticateRejectsMissingAccountWithoutAutoCreate(t *testing.T) {
	port := newMemPort()
	cfg := config.AccountsConfig{AutomaticAccountCreation: false, AccountCreationSalt: "salt"}

	_, err := Authenticate(context.Background(), port, cfg, "ghost", "pw", "1.2.3.4")
	if err != ErrBadCredentials {
		t.Fatalf("expected ErrBadCredentials, got %v", err)
	}
}

func TestAuthenticateRejectsBannedAccount(t *testing.T) {
	port := newMemPort()
	cfg := config.AccountsConfig{AccountCreationSalt: "salt"}
	port.accounts["banned"] = &persist.Account{Name: "banned", Banned: true}

	_, err := Authenticate(context.Background(), port, cfg, "banned", "pw", "1.2.3.4")
	if err != ErrBanned {
		t.Fatalf("expected ErrBanned, got %v", err)
	}
}

func TestAuthenticateRejectsWrongPassword(t *testing.T) {
	port := newMemPort()
	cfg := config.AccountsConfig{AccountCreationSalt: "salt"}
	port.accounts["tester"] = &persist.Account{Name: "tester", PasswordHash: HashPassword("tester", "salt", "correct")}

	_, err := Authenticate(context.Background(), port, cfg, "tester", "wrong", "1.2.3.4")
	if err != ErrBadCredentials {
		t.Fatalf("expected ErrBadCredentials, got %v", err)
	}
}

func TestAuthenticateAcceptsCorrectPassword(t *testing.T) {
	port := newMemPort()
	cfg := config.AccountsConfig{AccountCreationSalt: "salt"}
	port.accounts["tester"] = &persist.Account{Name: "tester", PasswordHash: HashPassword("tester", "salt", "correct")}

	acct, err := Authenticate(context.Background(), port, cfg, "tester", "correct", "1.2.3.4")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if acct.Name != "tester" {
		t.Fatalf("expected tester account, got %+v", acct)
	}
}
