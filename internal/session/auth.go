package session

import (
	"context"
	"errors"

	"github.com/silverkeep/realmd/internal/config"
	"github.com/silverkeep/realmd/internal/persist"
)

// ErrBadCredentials is returned when the stored hash does not match.
var ErrBadCredentials = errors.New("session: bad credentials")

// ErrBanned is returned for a banned account.
var ErrBanned = errors.New("session: account banned")

// Authenticate implements the VersionChecked -> Authenticated transition
// (spec §4.2): verify hash_password(name, salt, pw) against the stored
// hash, auto-creating the account when
// config.automatic_account_creation is set and no account exists yet.
func Authenticate(ctx context.Context, port persist.Port, cfg config.AccountsConfig, accountName, password, ip string) (*persist.Account, error) {
	acct, err := port.LoadAccount(ctx, accountName)
	if err != nil {
		return nil, err
	}

	if acct == nil {
		if !cfg.AutomaticAccountCreation {
			return nil, ErrBadCredentials
		}
		hash := HashPassword(accountName, cfg.AccountCreationSalt, password)
		return port.InsertAccount(ctx, accountName, hash, ip, "")
	}

	if acct.Banned {
		return nil, ErrBanned
	}

	hash := HashPassword(accountName, cfg.AccountCreationSalt, password)
	if hash != acct.PasswordHash {
		return nil, ErrBadCredentials
	}

	if err := port.UpdateLastActive(ctx, accountName, ip); err != nil {
		return nil, err
	}
	return acct, nil
}
