// Package persist defines the persistence port — the interface every
// database-touching operation in the server goes through (spec §6) —
// and a Postgres-backed implementation built on pgx, grounded on the
// teacher's internal/persist package.
package persist

import (
	"context"
	"time"
)

// Account is the load/insert shape for spec §3's Account entity.
type Account struct {
	Name          string
	PasswordHash  string
	AccessLevel   int16
	CharacterSlot int16
	IP, Host      string
	Banned        bool
	CreatedAt     time.Time
	LastActive    *time.Time
}

// CharacterSummary is the row shape listed at character-select (spec §6's
// CharacterSummary wire type, minus the wire encoding).
type CharacterSummary struct {
	ObjectID                      uint32
	Name, Pledge                  string
	Class, Gender                 uint8
	Level                         uint8
	Alignment                     int16
	CurHP, MaxHP, CurMP, MaxMP    uint16
	AC                            int8
	Str, Dex, Con, Wis, Cha, Intel uint8
}

// FullCharacter is the complete row loaded once character-select
// completes and the object enters the world.
type FullCharacter struct {
	CharacterSummary
	AccountName string
	XP          uint32
	Map, X, Y   uint16
	PledgeID    uint32
}

// Bookmark is one saved recall location on an account (SUPPLEMENTED
// FEATURES: "Bookmarks"), recalled at character-select.
type Bookmark struct {
	Name      string
	Map, X, Y uint16
}

// ItemRow is one persisted item instance.
type ItemRow struct {
	ObjectID         uint32
	OwnerObjectID    uint32
	DefID            uint32
	Count            uint32
	Equipped         bool
	Identified       bool
	EnchantLevel     int8
	Durability       uint8
	Blessed          bool
	ElementalEnchant uint8
}

// Port is the persistence boundary. Every concrete call a session, the
// router, or the monster AI layer makes against storage goes through
// this interface, so the rest of the server never imports pgx directly.
type Port interface {
	LoadAccount(ctx context.Context, name string) (*Account, error)
	InsertAccount(ctx context.Context, name, passwordHash, ip, host string) (*Account, error)
	UpdateLastActive(ctx context.Context, name, ip string) error
	UpdatePassword(ctx context.Context, name, passwordHash string) error

	CharactersFor(ctx context.Context, accountName string) ([]CharacterSummary, error)
	LoadFullCharacter(ctx context.Context, name string) (*FullCharacter, error)
	InsertCharacterNew(ctx context.Context, c *FullCharacter) error
	DeleteCharacter(ctx context.Context, name string) error

	LoadItemsFor(ctx context.Context, ownerObjectID uint32) ([]ItemRow, error)

	AllocateNewObjectID(ctx context.Context) (uint32, error)

	FriendsFor(ctx context.Context, accountName string) ([]string, error)
	AddFriend(ctx context.Context, accountName, friendName string) error
	RemoveFriend(ctx context.Context, accountName, friendName string) error

	BookmarksFor(ctx context.Context, accountName string) ([]Bookmark, error)
	AddBookmark(ctx context.Context, accountName string, b Bookmark) error

	SetRecoveryToken(ctx context.Context, accountName, token string) error
	ValidateRecoveryToken(ctx context.Context, accountName, token string) (bool, error)
}
