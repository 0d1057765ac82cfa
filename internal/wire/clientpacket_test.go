package wire

import (
	"reflect"
	"testing"
)

func TestClientPacketRoundTrip(t *testing.T) {
	cases := []ClientPacket{
		Version{Version: 300, Extra: 1, Kind: 3, Timestamp: 555},
		Login{Account: "tester", Password: "hunter2", A: 1, B: 2, C: 3, D: 4, E: 5, F: 6, G: 7},
		CharacterSelect{Name: "Moridin"},
		NewCharacter{Name: "Nyx", Class: 2, Gender: 1, Str: 18, Dex: 16, Con: 14, Wis: 10, Cha: 8, Intel: 12},
		DeleteCharacter{Name: "Oldname"},
		MoveFrom{X: 1000, Y: 2000, Heading: 3},
		ChangeDirection{Heading: 5},
		Chat{Kind: ChatNormal, Channel: 0, Text: "hello there"},
		Chat{Kind: ChatYell, Channel: 0, Text: "incoming!"},
		Chat{Kind: ChatPledge, Channel: ChatChannelPledge, Text: "guild message"},
		UseItem{ID: 99, Remainder: []byte{1, 2, 3}},
		Ping{Value: 7},
		Who{Filter: "Nyx"},
		Bookmark{Name: "home"},
		FriendAdd{Name: "Buddy"},
		FriendRemove{Name: "ExBuddy"},
		ChangePassword{Account: "tester", OldPass: "a", NewPass: "b"},
		Restart{},
		NewsDone{},
		KeepAlive{},
		Save{},
		GameInitDone{},
		WindowActivate{Value: 1},
	}

	for _, want := range cases {
		raw := BuildClient(want)
		got := DecodeClient(raw)
		if !reflect.DeepEqual(got, want) {
			t.Errorf("round trip mismatch:\n got:  %#v\n want: %#v", got, want)
		}
	}
}

func TestDecodeUnknownOpcodeIsNotFatal(t *testing.T) {
	raw := []byte{0xEE, 1, 2, 3}
	got := DecodeClient(raw)
	unk, ok := got.(Unknown)
	if !ok {
		t.Fatalf("expected Unknown, got %#v", got)
	}
	if unk.Opcode != 0xEE {
		t.Fatalf("Opcode = %#x, want 0xEE", unk.Opcode)
	}
}
