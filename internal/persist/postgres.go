package persist

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"
)

// Postgres is the pgx-backed Port implementation.
type Postgres struct {
	db *DB
}

func NewPostgres(db *DB) *Postgres {
	return &Postgres{db: db}
}

var _ Port = (*Postgres)(nil)

func (p *Postgres) LoadAccount(ctx context.Context, name string) (*Account, error) {
	row := &Account{}
	err := p.db.Pool.QueryRow(ctx,
		`SELECT name, password_hash, access_level, character_slot,
		        COALESCE(ip,''), COALESCE(host,''), banned, created_at, last_active
		 FROM accounts WHERE name = $1`, name,
	).Scan(
		&row.Name, &row.PasswordHash, &row.AccessLevel, &row.CharacterSlot,
		&row.IP, &row.Host, &row.Banned, &row.CreatedAt, &row.LastActive,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return row, nil
}

func (p *Postgres) InsertAccount(ctx context.Context, name, passwordHash, ip, host string) (*Account, error) {
	now := time.Now()
	row := &Account{
		Name: name, PasswordHash: passwordHash, IP: ip, Host: host,
		CharacterSlot: 6, CreatedAt: now, LastActive: &now,
	}
	_, err := p.db.Pool.Exec(ctx,
		`INSERT INTO accounts (name, password_hash, ip, host, character_slot, last_active)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		row.Name, row.PasswordHash, row.IP, row.Host, row.CharacterSlot, row.LastActive,
	)
	if err != nil {
		return nil, err
	}
	return row, nil
}

func (p *Postgres) UpdateLastActive(ctx context.Context, name, ip string) error {
	_, err := p.db.Pool.Exec(ctx,
		`UPDATE accounts SET last_active = NOW(), ip = $2 WHERE name = $1`, name, ip)
	return err
}

func (p *Postgres) UpdatePassword(ctx context.Context, name, passwordHash string) error {
	_, err := p.db.Pool.Exec(ctx,
		`UPDATE accounts SET password_hash = $2 WHERE name = $1`, name, passwordHash)
	return err
}

func (p *Postgres) CharactersFor(ctx context.Context, accountName string) ([]CharacterSummary, error) {
	rows, err := p.db.Pool.Query(ctx,
		`SELECT object_id, name, pledge_name, class, gender, level, alignment,
		        cur_hp, max_hp, cur_mp, max_mp, ac, str, dex, con, wis, cha, intel
		 FROM characters WHERE account_name = $1 AND deleted_at IS NULL
		 ORDER BY object_id`, accountName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []CharacterSummary
	for rows.Next() {
		var c CharacterSummary
		if err := rows.Scan(&c.ObjectID, &c.Name, &c.Pledge, &c.Class, &c.Gender,
			&c.Level, &c.Alignment, &c.CurHP, &c.MaxHP, &c.CurMP, &c.MaxMP, &c.AC,
			&c.Str, &c.Dex, &c.Con, &c.Wis, &c.Cha, &c.Intel); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (p *Postgres) LoadFullCharacter(ctx context.Context, name string) (*FullCharacter, error) {
	fc := &FullCharacter{}
	err := p.db.Pool.QueryRow(ctx,
		`SELECT object_id, account_name, name, pledge_name, class, gender, level, xp,
		        alignment, cur_hp, max_hp, cur_mp, max_mp, ac, str, dex, con, wis, cha, intel,
		        map, x, y, pledge_id
		 FROM characters WHERE name = $1 AND deleted_at IS NULL`, name,
	).Scan(
		&fc.ObjectID, &fc.AccountName, &fc.Name, &fc.Pledge, &fc.Class, &fc.Gender,
		&fc.Level, &fc.XP, &fc.Alignment, &fc.CurHP, &fc.MaxHP, &fc.CurMP, &fc.MaxMP, &fc.AC,
		&fc.Str, &fc.Dex, &fc.Con, &fc.Wis, &fc.Cha, &fc.Intel,
		&fc.Map, &fc.X, &fc.Y, &fc.PledgeID,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return fc, nil
}

func (p *Postgres) InsertCharacterNew(ctx context.Context, c *FullCharacter) error {
	_, err := p.db.Pool.Exec(ctx,
		`INSERT INTO characters (object_id, account_name, name, class, gender, level, xp,
		        alignment, str, dex, con, wis, cha, intel, cur_hp, max_hp, cur_mp, max_mp, ac,
		        map, x, y)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22)`,
		c.ObjectID, c.AccountName, c.Name, c.Class, c.Gender, c.Level, c.XP,
		c.Alignment, c.Str, c.Dex, c.Con, c.Wis, c.Cha, c.Intel,
		c.CurHP, c.MaxHP, c.CurMP, c.MaxMP, c.AC, c.Map, c.X, c.Y,
	)
	return err
}

func (p *Postgres) DeleteCharacter(ctx context.Context, name string) error {
	_, err := p.db.Pool.Exec(ctx,
		`UPDATE characters SET deleted_at = NOW() WHERE name = $1`, name)
	return err
}

func (p *Postgres) LoadItemsFor(ctx context.Context, ownerObjectID uint32) ([]ItemRow, error) {
	rows, err := p.db.Pool.Query(ctx,
		`SELECT object_id, owner_object_id, def_id, count, equipped, identified,
		        enchant_level, durability, blessed, elemental_enchant
		 FROM items WHERE owner_object_id = $1`, ownerObjectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ItemRow
	for rows.Next() {
		var it ItemRow
		if err := rows.Scan(&it.ObjectID, &it.OwnerObjectID, &it.DefID, &it.Count,
			&it.Equipped, &it.Identified, &it.EnchantLevel, &it.Durability,
			&it.Blessed, &it.ElementalEnchant); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

func (p *Postgres) AllocateNewObjectID(ctx context.Context) (uint32, error) {
	var id int64
	err := p.db.Pool.QueryRow(ctx, `SELECT nextval('object_id_seq')`).Scan(&id)
	if err != nil {
		return 0, err
	}
	return uint32(id), nil
}

func (p *Postgres) FriendsFor(ctx context.Context, accountName string) ([]string, error) {
	rows, err := p.db.Pool.Query(ctx,
		`SELECT friend_name FROM friends WHERE account_name = $1`, accountName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		out = append(out, name)
	}
	return out, rows.Err()
}

func (p *Postgres) AddFriend(ctx context.Context, accountName, friendName string) error {
	_, err := p.db.Pool.Exec(ctx,
		`INSERT INTO friends (account_name, friend_name) VALUES ($1, $2)
		 ON CONFLICT DO NOTHING`, accountName, friendName)
	return err
}

func (p *Postgres) RemoveFriend(ctx context.Context, accountName, friendName string) error {
	_, err := p.db.Pool.Exec(ctx,
		`DELETE FROM friends WHERE account_name = $1 AND friend_name = $2`,
		accountName, friendName)
	return err
}

func (p *Postgres) BookmarksFor(ctx context.Context, accountName string) ([]Bookmark, error) {
	rows, err := p.db.Pool.Query(ctx,
		`SELECT name, map, x, y FROM bookmarks WHERE account_name = $1 ORDER BY name`, accountName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Bookmark
	for rows.Next() {
		var b Bookmark
		if err := rows.Scan(&b.Name, &b.Map, &b.X, &b.Y); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (p *Postgres) AddBookmark(ctx context.Context, accountName string, b Bookmark) error {
	_, err := p.db.Pool.Exec(ctx,
		`INSERT INTO bookmarks (account_name, name, map, x, y) VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (account_name, name) DO UPDATE SET map = $3, x = $4, y = $5`,
		accountName, b.Name, b.Map, b.X, b.Y)
	return err
}

// SetRecoveryToken stores a bcrypt hash of a one-time account-recovery
// token. internal/game's ChangePassword handler calls this to rotate the
// token to a fresh random value once it has been consumed, so it cannot be
// replayed; nothing in this repository mints the initial token (spec.md's own
// hash_password stays pinned to SHA256 and is never touched here).
func (p *Postgres) SetRecoveryToken(ctx context.Context, accountName, token string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(token), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	_, err = p.db.Pool.Exec(ctx,
		`UPDATE accounts SET recovery_token_hash = $2 WHERE name = $1`,
		accountName, string(hash))
	return err
}

func (p *Postgres) ValidateRecoveryToken(ctx context.Context, accountName, token string) (bool, error) {
	var hash *string
	err := p.db.Pool.QueryRow(ctx,
		`SELECT recovery_token_hash FROM accounts WHERE name = $1`, accountName,
	).Scan(&hash)
	if errors.Is(err, pgx.ErrNoRows) || hash == nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return bcrypt.CompareHashAndPassword([]byte(*hash), []byte(token)) == nil, nil
}
