package game

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/silverkeep/realmd/internal/config"
	"github.com/silverkeep/realmd/internal/persist"
	"github.com/silverkeep/realmd/internal/session"
	"github.com/silverkeep/realmd/internal/wire"
	"github.com/silverkeep/realmd/internal/world"
)

// connHandler drives one Session through the state machine in spec §4.2,
// consuming decoded ClientPacket values from the session's InQueue and
// writing ServerPacket replies to its OutQueue. It is the glue between
// the connection-local Session and the single World router actor.
type connHandler struct {
	sess     *session.Session
	router   *world.Router
	port     persist.Port
	cfg      *config.AccountsConfig
	itemDefs map[uint32]*world.ItemDefinition
	log      *zap.Logger

	player   *world.Player
	charList []persist.CharacterSummary
}

func newConnHandler(sess *session.Session, router *world.Router, port persist.Port, cfg *config.AccountsConfig, itemDefs map[uint32]*world.ItemDefinition, log *zap.Logger) *connHandler {
	return &connHandler{sess: sess, router: router, port: port, cfg: cfg, itemDefs: itemDefs, log: log.With(zap.Uint64("session", sess.ID))}
}

func (h *connHandler) run(ctx context.Context) {
	defer h.teardown()

	for {
		select {
		case <-ctx.Done():
			return
		case pkt := <-h.sess.InQueue:
			if err := h.handle(ctx, pkt); err != nil {
				h.log.Debug("session ended", zap.Error(err))
				return
			}
		}
	}
}

func (h *connHandler) teardown() {
	if h.player != nil {
		h.router.Send(world.UnregisterClient{ID: h.player.ID()})
	}
	h.sess.Close()
}

func (h *connHandler) handle(ctx context.Context, pkt wire.ClientPacket) error {
	switch p := pkt.(type) {
	case wire.Version:
		return h.onVersion(p)
	case wire.Login:
		return h.onLogin(ctx, p)
	case wire.CharacterSelect:
		return h.onCharacterSelect(ctx, p)
	case wire.NewCharacter:
		return h.onNewCharacter(ctx, p)
	case wire.DeleteCharacter:
		return h.onDeleteCharacter(ctx, p)
	case wire.GameInitDone:
		return h.onGameInitDone(ctx)
	case wire.MoveFrom, wire.ChangeDirection, wire.Chat, wire.UseItem:
		if h.player == nil {
			return nil
		}
		h.router.Send(world.ClientPacketMsg{ID: h.player.ID(), Packet: pkt})
	case wire.Who:
		return h.onWho(p)
	case wire.Bookmark:
		return h.onBookmark(ctx, p)
	case wire.FriendAdd:
		return h.onFriendAdd(ctx, p)
	case wire.FriendRemove:
		return h.onFriendRemove(ctx, p)
	case wire.ChangePassword:
		return h.onChangePassword(ctx, p)
	case wire.Ping, wire.KeepAlive:
		// no reply required
	case wire.Restart:
		return errSessionEnded
	}
	return nil
}

var errSessionEnded = errors.New("game: client requested restart")

func (h *connHandler) onVersion(p wire.Version) error {
	h.sess.SetState(session.StateVersionChecked)
	h.sess.Send(wire.ServerVersion{ID: 1, V1: uint32(p.Version)})
	h.sess.Send(wire.News{Text: "welcome"})
	return nil
}

func (h *connHandler) onLogin(ctx context.Context, p wire.Login) error {
	acct, err := session.Authenticate(ctx, h.port, *h.cfg, p.Account, p.Password, "")
	if err != nil {
		h.sess.Send(wire.LoginResult{Code: 1})
		return nil
	}
	h.sess.AccountName = acct.Name
	h.sess.SetState(session.StateAuthenticated)
	h.sess.Send(wire.LoginResult{Code: 0})

	list, err := h.port.CharactersFor(ctx, acct.Name)
	if err != nil {
		return err
	}
	h.charList = list
	h.sess.Send(wire.NumberCharacters{Count: uint8(len(list)), MaxSlots: uint8(acct.CharacterSlot)})
	for _, c := range list {
		h.sess.Send(wire.LoginCharacterDetails{CharacterSummary: wire.CharacterSummary{
			Name: c.Name, Pledge: c.Pledge, Class: c.Class, Gender: c.Gender,
			Alignment: c.Alignment, HP: c.CurHP, MP: c.CurMP, AC: c.AC, Level: c.Level,
			Str: c.Str, Dex: c.Dex, Con: c.Con, Wis: c.Wis, Cha: c.Cha, Intel: c.Intel,
		}})
	}
	h.sess.SetState(session.StateCharSelect)
	return nil
}

func (h *connHandler) onCharacterSelect(ctx context.Context, p wire.CharacterSelect) error {
	fc, err := h.port.LoadFullCharacter(ctx, p.Name)
	if err != nil || fc == nil {
		return nil
	}
	if fc.AccountName != h.sess.AccountName {
		return nil
	}
	h.sess.CharName = fc.Name
	h.sess.Send(wire.FullCharacterDetails{
		ID: fc.ObjectID, Level: fc.Level, XP: fc.XP,
		Str: fc.Str, Dex: fc.Dex, Con: fc.Con, Wis: fc.Wis, Cha: fc.Cha, Intel: fc.Intel,
		CurHP: fc.CurHP, MaxHP: fc.MaxHP, CurMP: fc.CurMP, MaxMP: fc.MaxMP, AC: fc.AC,
		Alignment: fc.Alignment,
	})
	h.sess.Send(wire.MapID{Map: fc.Map})

	player := world.NewPlayer(world.ObjectID(fc.ObjectID), world.Location{X: fc.X, Y: fc.Y, Map: fc.Map}, fc.Name, h.sess2OutCap())
	player.AccountName = fc.AccountName
	player.Class = world.Class(fc.Class)
	player.Gender = fc.Gender
	player.Level = fc.Level
	player.Alignment = fc.Alignment
	player.AC = fc.AC
	player.PledgeName = fc.Pledge
	player.PledgeID = fc.PledgeID
	player.XP = fc.XP
	player.Stats = world.Stats{Str: fc.Str, Dex: fc.Dex, Con: fc.Con, Wis: fc.Wis, Cha: fc.Cha, Intel: fc.Intel}
	player.SetHP(int32(fc.CurHP), int32(fc.MaxHP))
	h.player = player

	h.loadInventory(ctx, player, fc.ObjectID)
	h.loadBookmarks(ctx)

	h.sess.SetState(session.StateInGame)
	return nil
}

// loadInventory populates the Player's inventory and equipped weapon from
// the persistence port and sends InventoryVec, per spec §4.2's
// "character-details, inventory, then StartGame" enter-world order.
func (h *connHandler) loadInventory(ctx context.Context, player *world.Player, ownerObjectID uint32) {
	rows, err := h.port.LoadItemsFor(ctx, ownerObjectID)
	if err != nil {
		h.log.Warn("load items failed", zap.Error(err))
		return
	}

	instances := make([]*world.ItemInstance, 0, len(rows))
	entries := make([]wire.InventoryEntry, 0, len(rows))
	var weapon *world.ItemDefinition

	for _, row := range rows {
		instances = append(instances, &world.ItemInstance{
			ObjectID: world.ObjectID(row.ObjectID), DefID: row.DefID, Count: row.Count,
			Equipped: row.Equipped, Identified: row.Identified, EnchantLevel: row.EnchantLevel,
			Durability: row.Durability, Blessed: row.Blessed,
			ElementalEnchant: world.ElementalEnchant(row.ElementalEnchant),
		})

		def := h.itemDefs[row.DefID]
		name := ""
		if def != nil {
			name = def.Name
			if row.Equipped && def.Kind == world.ItemKindWeapon {
				weapon = def
			}
		}
		entries = append(entries, wire.InventoryEntry{
			ObjectID: row.ObjectID, DefID: row.DefID, Count: row.Count,
			Equipped: boolToU8(row.Equipped), Identified: boolToU8(row.Identified),
			EnchantLevel: row.EnchantLevel, Name: name,
		})
	}

	player.SetItems(instances)
	if weapon != nil {
		player.SetWeapon(weapon)
	}
	h.sess.Send(wire.InventoryVec{Items: entries})
}

// loadBookmarks recalls the account's saved locations at character-select.
func (h *connHandler) loadBookmarks(ctx context.Context) {
	marks, err := h.port.BookmarksFor(ctx, h.sess.AccountName)
	if err != nil {
		h.log.Warn("load bookmarks failed", zap.Error(err))
		return
	}
	entries := make([]wire.BookmarkEntry, 0, len(marks))
	for _, b := range marks {
		entries = append(entries, wire.BookmarkEntry{Name: b.Name, Map: b.Map, X: b.X, Y: b.Y})
	}
	h.sess.Send(wire.BookmarkList{Bookmarks: entries})
}

func boolToU8(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}

func (h *connHandler) sess2OutCap() int {
	return cap(h.sess.OutQueue)
}

func (h *connHandler) onNewCharacter(ctx context.Context, p wire.NewCharacter) error {
	id, err := h.port.AllocateNewObjectID(ctx)
	if err != nil {
		h.sess.Send(wire.CharacterCreationStatus{Code: 1})
		return nil
	}
	fc := &persist.FullCharacter{
		CharacterSummary: persist.CharacterSummary{
			ObjectID: id, Name: p.Name, Class: p.Class, Gender: p.Gender,
			Level: 1, CurHP: 100, MaxHP: 100, CurMP: 20, MaxMP: 20,
			Str: p.Str, Dex: p.Dex, Con: p.Con, Wis: p.Wis, Cha: p.Cha, Intel: p.Intel,
		},
		AccountName: h.sess.AccountName,
		Map:         4, X: 32768, Y: 32768,
	}
	if err := h.port.InsertCharacterNew(ctx, fc); err != nil {
		h.sess.Send(wire.CharacterCreationStatus{Code: 1})
		return nil
	}
	h.sess.Send(wire.CharacterCreationStatus{Code: 0})
	return nil
}

func (h *connHandler) onDeleteCharacter(ctx context.Context, p wire.DeleteCharacter) error {
	if err := h.port.DeleteCharacter(ctx, p.Name); err != nil {
		h.sess.Send(wire.DeleteCharacterWait())
		return nil
	}
	h.sess.Send(wire.DeleteCharacterOk())
	return nil
}

// onWho answers the "/who" SUPPLEMENTED FEATURE from the router's online
// registry, not a single map scan.
func (h *connHandler) onWho(p wire.Who) error {
	resp := h.router.Request(world.WhoQuery{Filter: p.Filter})
	result, ok := resp.(world.WhoResult)
	if !ok {
		return nil
	}
	text := "no characters online"
	if len(result.Names) > 0 {
		text = "online: " + strings.Join(result.Names, ", ")
	}
	h.sess.Send(wire.SystemBroadcast{Text: text})
	return nil
}

// onBookmark saves the player's current location under the requested name.
func (h *connHandler) onBookmark(ctx context.Context, p wire.Bookmark) error {
	if h.player == nil || h.sess.AccountName == "" {
		return nil
	}
	loc := h.player.Location()
	b := persist.Bookmark{Name: p.Name, Map: loc.Map, X: loc.X, Y: loc.Y}
	if err := h.port.AddBookmark(ctx, h.sess.AccountName, b); err != nil {
		h.sess.Send(wire.SystemBroadcast{Text: "bookmark failed"})
		return nil
	}
	h.sess.Send(wire.SystemBroadcast{Text: "bookmark saved: " + p.Name})
	return nil
}

// onFriendAdd adds p.Name to the account's friend list and, if that
// character is online, notifies them directly through the router's
// FindSender lookup.
func (h *connHandler) onFriendAdd(ctx context.Context, p wire.FriendAdd) error {
	if h.sess.AccountName == "" {
		return nil
	}
	if err := h.port.AddFriend(ctx, h.sess.AccountName, p.Name); err != nil {
		h.sess.Send(wire.SystemBroadcast{Text: "friend add failed"})
		return nil
	}
	h.sess.Send(wire.SystemBroadcast{Text: p.Name + " added to friend list"})

	resp := h.router.Request(world.FindSender{Name: p.Name})
	if found, ok := resp.(world.FoundSender); ok && found.Found {
		select {
		case found.Ch <- wire.SystemBroadcast{Text: h.sess.CharName + " added you as a friend"}:
		default:
		}
	}
	return nil
}

func (h *connHandler) onFriendRemove(ctx context.Context, p wire.FriendRemove) error {
	if h.sess.AccountName == "" {
		return nil
	}
	if err := h.port.RemoveFriend(ctx, h.sess.AccountName, p.Name); err != nil {
		h.sess.Send(wire.SystemBroadcast{Text: "friend remove failed"})
		return nil
	}
	h.sess.Send(wire.SystemBroadcast{Text: p.Name + " removed from friend list"})
	return nil
}

// onChangePassword re-derives hash_password against the stored hash; if
// that fails it falls back to a recovery token minted out of band
// (persist.ValidateRecoveryToken), rotating the token on success so it
// cannot be replayed.
func (h *connHandler) onChangePassword(ctx context.Context, p wire.ChangePassword) error {
	if h.sess.AccountName == "" || h.sess.AccountName != p.Account {
		h.sess.Send(wire.SystemBroadcast{Text: "not authenticated"})
		return nil
	}
	acct, err := h.port.LoadAccount(ctx, p.Account)
	if err != nil || acct == nil {
		h.sess.Send(wire.SystemBroadcast{Text: "account not found"})
		return nil
	}

	oldHash := session.HashPassword(p.Account, h.cfg.AccountCreationSalt, p.OldPass)
	if oldHash != acct.PasswordHash {
		valid, err := h.port.ValidateRecoveryToken(ctx, p.Account, p.OldPass)
		if err != nil || !valid {
			h.sess.Send(wire.SystemBroadcast{Text: "old password incorrect"})
			return nil
		}
		if err := h.port.SetRecoveryToken(ctx, p.Account, randomToken()); err != nil {
			h.sess.Send(wire.SystemBroadcast{Text: "password change failed"})
			return nil
		}
	}

	newHash := session.HashPassword(p.Account, h.cfg.AccountCreationSalt, p.NewPass)
	if err := h.port.UpdatePassword(ctx, p.Account, newHash); err != nil {
		h.sess.Send(wire.SystemBroadcast{Text: "password change failed"})
		return nil
	}
	h.sess.Send(wire.SystemBroadcast{Text: "password changed"})
	return nil
}

// randomToken generates the replacement value stored after a recovery
// token is consumed, so the original value can never be validated again.
func randomToken() string {
	var b [16]byte
	rand.Read(b[:])
	return hex.EncodeToString(b[:])
}

func (h *connHandler) onGameInitDone(ctx context.Context) error {
	if h.player == nil {
		return nil
	}
	resp := h.router.Request(world.RegisterSender{Player: h.player})
	assigned, ok := resp.(world.AssignedID)
	if !ok {
		return nil
	}
	h.sess.Send(wire.StartGame{ObjectID: uint32(assigned.ID)})

	go h.pumpOutbound(ctx)
	return nil
}

// pumpOutbound forwards everything the router queues on the player's
// channel to the session's own OutQueue, so the writer goroutine is the
// only thing that ever touches the socket.
func (h *connHandler) pumpOutbound(ctx context.Context) {
	ch := h.player.SendChannel()
	for {
		select {
		case <-ctx.Done():
			return
		case pkt, ok := <-ch:
			if !ok {
				return
			}
			h.sess.Send(pkt)
		}
	}
}
