package world

import (
	"context"
	"math/rand"
	"strings"

	"go.uber.org/zap"

	"github.com/silverkeep/realmd/internal/combat"
	"github.com/silverkeep/realmd/internal/scripting"
	"github.com/silverkeep/realmd/internal/wire"
)

// Router is the single-writer World actor (spec §4.3). All mutation of
// map state, object registration, and interest-management diffing happens
// inside Run, on one goroutine — every other task only ever sends a
// WorldMessage and, for requests that need one, waits on a reply channel.
// Grounded on original_source's setup_game_server accept loop and
// ClientMessage/ServerMessage dispatch (server/src/server.rs), adapted
// from tokio::select! to a single Go channel-receive loop.
type Router struct {
	log    *zap.Logger
	ids    *IDAllocator
	maps   map[uint16]*Map
	inbox  chan routed
	script *scripting.Engine
}

type routed struct {
	msg   WorldMessage
	reply chan<- WorldResponse
}

func NewRouter(log *zap.Logger, ids *IDAllocator, maps map[uint16]*Map) *Router {
	return &Router{
		log:   log,
		ids:   ids,
		maps:  maps,
		inbox: make(chan routed, 4096),
	}
}

// WithScripting attaches an optional Lua tuning engine; ResolveAttack
// consults it for a roll bonus adjustment before combat.Resolve runs.
func (r *Router) WithScripting(e *scripting.Engine) *Router {
	r.script = e
	return r
}

// Send enqueues msg with no reply expected.
func (r *Router) Send(msg WorldMessage) {
	r.inbox <- routed{msg: msg}
}

// Request enqueues msg and blocks for its reply. Callers must not call
// this from within Run's own goroutine.
func (r *Router) Request(msg WorldMessage) WorldResponse {
	reply := make(chan WorldResponse, 1)
	r.inbox <- routed{msg: msg, reply: reply}
	return <-reply
}

// Run drains the inbox until ctx is cancelled or a ServerShutdown message
// arrives, whichever comes first (spec §5 cancellation model).
func (r *Router) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			r.log.Info("world router stopping: context cancelled")
			return
		case rm := <-r.inbox:
			if r.dispatch(rm) {
				for drained := false; !drained; {
					select {
					case rest := <-r.inbox:
						r.dispatch(rest)
					default:
						drained = true
					}
				}
				r.log.Info("world router stopping: shutdown message")
				return
			}
		}
	}
}

func (r *Router) dispatch(rm routed) (shutdown bool) {
	switch msg := rm.msg.(type) {
	case RegisterSender:
		r.handleRegisterSender(msg, rm.reply)
	case UnregisterClient:
		r.handleUnregisterClient(msg)
	case RegisterMonster:
		r.handleRegisterMonster(msg, rm.reply)
	case UnregisterMonster:
		r.handleUnregisterMonster(msg)
	case ClientPacketMsg:
		r.handleClientPacket(msg)
	case MoveRequest:
		r.handleMoveRequest(msg)
	case WhoQuery:
		r.handleWho(msg, rm.reply)
	case FindSender:
		r.handleFindSender(msg, rm.reply)
	case WeatherTick:
		r.handleWeatherTick()
	case ServerShutdown:
		r.broadcastDisconnect()
		return true
	default:
		r.log.Warn("world router: unhandled message type")
	}
	return false
}

func (r *Router) mapFor(id uint16) *Map {
	m, ok := r.maps[id]
	if !ok {
		m = NewMap(MapDefinition{ID: id})
		r.maps[id] = m
	}
	return m
}

func (r *Router) handleRegisterSender(msg RegisterSender, reply chan<- WorldResponse) {
	p := msg.Player
	if p.ID() == 0 {
		p.id = r.ids.Next()
	}
	m := r.mapFor(p.Location().Map)
	m.Put(p)
	r.sendInitialView(m, p)
	if reply != nil {
		reply <- AssignedID{ID: p.ID()}
	}
}

func (r *Router) handleRegisterMonster(msg RegisterMonster, reply chan<- WorldResponse) {
	mo := msg.Monster
	if mo.ID() == 0 {
		mo.id = r.ids.Next()
	}
	m := r.mapFor(mo.Location().Map)
	m.Put(mo)
	if reply != nil {
		reply <- AssignedID{ID: mo.ID()}
	}
}

func (r *Router) handleUnregisterClient(msg UnregisterClient) {
	r.removeFromAllMaps(msg.ID)
}

func (r *Router) handleUnregisterMonster(msg UnregisterMonster) {
	r.removeFromAllMaps(msg.ID)
}

func (r *Router) removeFromAllMaps(id ObjectID) {
	for _, m := range r.maps {
		if _, ok := m.Get(id); ok {
			r.broadcastRemove(m, id)
			m.Remove(id)
			return
		}
	}
}

// sendInitialView puts the newcomer's full observed set into its own
// known set and pushes a PutObject for each, priming interest management
// before any movement happens.
func (r *Router) sendInitialView(m *Map, obj Object) {
	ch, ok := obj.Sender()
	if !ok {
		return
	}
	known := NewObjectList()
	for _, other := range m.Nearby(obj.Location()) {
		if other.ID() == obj.ID() {
			continue
		}
		known[other.ID()] = other
		enqueue(ch, other.PutOnMapPacket())
		if otherCh, ok := other.Sender(); ok {
			enqueue(otherCh, obj.PutOnMapPacket())
		}
		if op, ok := other.(*Player); ok && op.KnownSet != nil {
			op.KnownSet[obj.ID()] = obj
		}
	}
	if p, ok := obj.(*Player); ok {
		p.KnownSet = known
	}
	if mo, ok := obj.(*Monster); ok {
		mo.KnownSet = known
	}
}

func (r *Router) handleClientPacket(msg ClientPacketMsg) {
	m := r.ownerMap(msg.ID)
	if m == nil {
		return
	}
	obj, ok := m.Get(msg.ID)
	if !ok {
		return
	}

	switch pkt := msg.Packet.(type) {
	case wire.MoveFrom:
		// MoveFrom carries the client's reported origin plus a heading, not
		// a destination (original_source world/monster.rs moving()); the
		// server advances the object one tile from its own authoritative
		// location rather than trusting pkt.X/Y.
		r.handleMove(m, obj, obj.Location().Step(pkt.Heading))
	case wire.ChangeDirection:
		loc := obj.Location()
		loc.Direction = pkt.Heading
		obj.SetLocation(loc)
	case wire.Chat:
		r.handleChat(m, obj, pkt)
	}
}

func (r *Router) handleMoveRequest(msg MoveRequest) {
	m := r.ownerMap(msg.ID)
	if m == nil {
		return
	}
	obj, ok := m.Get(msg.ID)
	if !ok {
		return
	}
	r.handleMove(m, obj, msg.To)
}

func (r *Router) ownerMap(id ObjectID) *Map {
	for _, m := range r.maps {
		if _, ok := m.Get(id); ok {
			return m
		}
	}
	return nil
}

// handleMove relocates obj and runs interest-management diffing: the
// Euclidean-narrow-phase observed set is recomputed and diffed against
// the previous known set, producing PutObject/RemoveObject/MoveObject
// traffic (spec §4.4).
func (r *Router) handleMove(m *Map, obj Object, newLoc Location) {
	m.Move(obj, newLoc)

	mover, ok := obj.Sender()
	if !ok {
		// Objects without a channel (Npc, GroundItem) still need their
		// observers notified of the move, but never observe anything
		// themselves.
		r.broadcastMoveTo(m, obj)
		return
	}

	next := NewObjectList()
	for _, other := range m.Nearby(obj.Location()) {
		if other.ID() == obj.ID() {
			continue
		}
		next[other.ID()] = other
	}

	prev := knownSetOf(obj)
	added, removed := prev.Diff(next)

	for _, a := range added {
		enqueue(mover, a.PutOnMapPacket())
		if aCh, ok := a.Sender(); ok {
			enqueue(aCh, obj.PutOnMapPacket())
		}
	}
	for _, id := range removed {
		enqueue(mover, wire.RemoveObject{ID: uint32(id)})
	}
	setKnownSet(obj, next)

	// Every object in the new observed set, including ones that just
	// entered view, gets the move packet.
	for id := range next {
		if other, ok := m.Get(id); ok {
			if otherCh, ok := other.Sender(); ok {
				enqueue(otherCh, obj.MovePacket())
			}
		}
	}
}

func (r *Router) broadcastMoveTo(m *Map, obj Object) {
	for _, other := range m.Nearby(obj.Location()) {
		if other.ID() == obj.ID() {
			continue
		}
		if ch, ok := other.Sender(); ok {
			enqueue(ch, obj.MovePacket())
		}
	}
}

func (r *Router) broadcastRemove(m *Map, id ObjectID) {
	for _, other := range m.All() {
		if other.ID() == id {
			continue
		}
		if ch, ok := other.Sender(); ok {
			enqueue(ch, wire.RemoveObject{ID: uint32(id)})
		}
	}
}

func (r *Router) handleChat(m *Map, sender Object, pkt wire.Chat) {
	name, _ := sender.PlayerName()
	switch pkt.Kind {
	case wire.ChatYell:
		for _, other := range m.Nearby(sender.Location()) {
			if ch, ok := other.Sender(); ok {
				enqueue(ch, wire.ChatBroadcast{SourceID: uint32(sender.ID()), Text: name + ": " + pkt.Text})
			}
		}
	default:
		for _, other := range m.Nearby(sender.Location()) {
			if ch, ok := other.Sender(); ok {
				enqueue(ch, wire.ChatBroadcast{SourceID: uint32(sender.ID()), Text: pkt.Text})
			}
		}
	}
}

// handleWho answers the "/who" SUPPLEMENTED FEATURE by scanning every map's
// registry for Players whose name contains Filter, case-insensitive.
func (r *Router) handleWho(msg WhoQuery, reply chan<- WorldResponse) {
	filter := strings.ToLower(msg.Filter)
	var names []string
	for _, m := range r.maps {
		for _, obj := range m.All() {
			name, ok := obj.PlayerName()
			if !ok {
				continue
			}
			if filter == "" || strings.Contains(strings.ToLower(name), filter) {
				names = append(names, name)
			}
		}
	}
	if reply != nil {
		reply <- WhoResult{Names: names}
	}
}

// handleFindSender looks up an online player's outbound channel by exact
// name, used by the friend-list feature to notify a friend who is online.
func (r *Router) handleFindSender(msg FindSender, reply chan<- WorldResponse) {
	for _, m := range r.maps {
		for _, obj := range m.All() {
			name, ok := obj.PlayerName()
			if !ok || name != msg.Name {
				continue
			}
			if ch, ok := obj.Sender(); ok {
				if reply != nil {
					reply <- FoundSender{Ch: ch, Found: true}
				}
				return
			}
		}
	}
	if reply != nil {
		reply <- FoundSender{Found: false}
	}
}

// handleWeatherTick rolls one weather value and broadcasts it to every
// connected session across every map, grounded on original_source's
// ServerPacket::Weather periodic broadcast (packet.rs).
func (r *Router) handleWeatherTick() {
	value := uint8(rand.Intn(3))
	for _, m := range r.maps {
		for _, obj := range m.All() {
			if ch, ok := obj.Sender(); ok {
				enqueue(ch, wire.Weather{Value: value})
			}
		}
	}
}

func (r *Router) broadcastDisconnect() {
	for _, m := range r.maps {
		for _, obj := range m.All() {
			if ch, ok := obj.Sender(); ok {
				enqueue(ch, wire.Disconnect{})
			}
		}
	}
}

// ResolveAttack is called by the router (or by a monster AI task, via its
// own Router handle) to settle one attack between two objects already
// resolved to Object values, delegating the pure math to combat.Resolve.
// If a scripting.Engine is attached, its adjust_combat_roll hook gets a
// chance to bias the roll before the fixed formula runs.
func (r *Router) ResolveAttack(attacker, defender Object) combat.Result {
	a := combat.AttackerSnapshot{
		Kind:               toKind(attacker.AttackType()),
		BaseAttackRate:     attacker.BaseAttackRate(),
		StrHitBonus:        attacker.StrHitBonus(),
		DexHitBonus:        attacker.DexHitBonus(),
		HitRateBonus:       attacker.HitRateBonus(),
		RangedHitRateBonus: attacker.RangedHitRateBonus(),
		WeightPercentage:   attacker.WeightPercentage(),
	}
	if w, ok := attacker.Weapon(); ok {
		a.HasWeapon = true
		a.WeaponHitBonus = int(w.HitBonus)
		a.WeaponDmgSmall = w.DmgSmall
		a.WeaponDmgMax = w.DmgMax
	}
	d := combat.DefenderSnapshot{
		Kind:       toKind(defender.AttackType()),
		ArmorClass: defender.ArmorClass(),
	}
	if r.script != nil {
		o := r.script.AdjustCombatRoll(scripting.CombatTuning{
			AttackerKind:   int(a.Kind),
			DefenderKind:   int(d.Kind),
			BaseAttackRate: a.BaseAttackRate,
			ArmorClass:     int(d.ArmorClass),
		})
		if !o.Skip {
			a.ExtraBonus = o.BonusAdjustment
		}
	}
	return combat.Resolve(a, d)
}

func toKind(t AttackType) combat.AttackKind {
	switch t {
	case AttackPlayer:
		return combat.AttackPlayer
	case AttackNpc:
		return combat.AttackNpc
	case AttackMonster:
		return combat.AttackMonster
	default:
		return combat.AttackOther
	}
}

func knownSetOf(obj Object) ObjectList {
	switch o := obj.(type) {
	case *Player:
		return o.KnownSet
	case *Monster:
		return o.KnownSet
	default:
		return NewObjectList()
	}
}

func setKnownSet(obj Object, next ObjectList) {
	switch o := obj.(type) {
	case *Player:
		o.KnownSet = next
	case *Monster:
		o.KnownSet = next
	}
}

// enqueue is non-blocking per spec §5's backpressure rule: a full
// per-object channel means its consumer is dead, and the packet is
// dropped rather than stalling the router.
func enqueue(ch chan<- wire.ServerPacket, pkt wire.ServerPacket) {
	select {
	case ch <- pkt:
	default:
	}
}
