package view

import (
	"context"
	"errors"
	"testing"

	"github.com/pefman/packet-pals/internal/models"
)

func TestScanAndList_FifteenMonsters(t *testing.T) {
	be := newFakeBackend()
	be.monsters = makeMonsters(15)
	vm := New(be)
	ctx := context.Background()

	s := vm.ScanAndList(ctx)
	if be.calls["scan"] != 1 || be.calls["monsters"] != 1 {
		t.Fatalf("Expected one scan and one list call, got %v", be.calls)
	}
	if len(s.Monsters) != 10 {
		t.Fatalf("Expected 10 rows on page 1, got %d", len(s.Monsters))
	}
	if s.Monsters[0].Name != "M1" || s.Monsters[9].Name != "M10" {
		t.Errorf("Unexpected page 1 rows: %s..%s", s.Monsters[0].Name, s.Monsters[9].Name)
	}
	if s.Page == nil || s.Page.Text != "Page 1 of 2 (monsters 1..10)" {
		t.Fatalf("Unexpected page info %+v", s.Page)
	}

	s = vm.NextPage()
	if len(s.Monsters) != 5 {
		t.Fatalf("Expected 5 rows on page 2, got %d", len(s.Monsters))
	}
	if s.Monsters[0].Index != 10 || s.Monsters[0].Name != "M11" || s.Monsters[4].Name != "M15" {
		t.Errorf("Unexpected page 2 rows: %+v", s.Monsters)
	}
	if s.Page.Text != "Page 2 of 2 (monsters 11..15)" {
		t.Errorf("Unexpected indicator %q", s.Page.Text)
	}

	s = vm.NextPage()
	if vm.Page().Page != 1 || s.Page.Text != "Page 2 of 2 (monsters 11..15)" {
		t.Error("NextPage on the last page must be a no-op")
	}
	if be.calls["monsters"] != 1 {
		t.Error("Paging must not refetch the list")
	}
}

func TestScanAndList_ResetsCursor(t *testing.T) {
	be := newFakeBackend()
	be.monsters = makeMonsters(25)
	vm := New(be)
	ctx := context.Background()

	vm.ScanAndList(ctx)
	vm.NextPage()
	vm.NextPage()
	if vm.Page().Page != 2 {
		t.Fatalf("Expected page 2, got %d", vm.Page().Page)
	}
	be.monsters = makeMonsters(12)
	s := vm.ScanAndList(ctx)
	if vm.Page().Page != 0 {
		t.Errorf("Expected cursor reset to 0, got %d", vm.Page().Page)
	}
	if s.Page == nil || s.Page.TotalPages != 2 {
		t.Errorf("Expected 2 pages after the new scan, got %+v", s.Page)
	}
}

func TestScanAndList_EmptyAndSinglePage(t *testing.T) {
	be := newFakeBackend()
	vm := New(be)
	ctx := context.Background()

	s := vm.ScanAndList(ctx)
	if s.Status != "No monsters found." {
		t.Errorf("Expected empty sentinel, got %q", s.Status)
	}
	if s.Page != nil || len(s.Monsters) != 0 {
		t.Error("Expected no rows and hidden pagination for an empty list")
	}

	be.monsters = makeMonsters(10)
	s = vm.ScanAndList(ctx)
	if len(s.Monsters) != 10 {
		t.Errorf("Expected 10 rows, got %d", len(s.Monsters))
	}
	if s.Page != nil {
		t.Error("Pagination must be hidden for a single page")
	}
	if s.Monsters[3].Label != "[3] M4 (Lv 4)" {
		t.Errorf("Unexpected row label %q", s.Monsters[3].Label)
	}
}

func TestScanAndList_Failure(t *testing.T) {
	be := newFakeBackend()
	be.scanErr = transportErr()
	vm := New(be)

	s := vm.ScanAndList(context.Background())
	if s.Status != "Error scanning: connection refused" {
		t.Errorf("Unexpected status %q", s.Status)
	}
	if be.calls["monsters"] != 0 {
		t.Error("List must not be fetched after a failed scan")
	}
}

func TestSwapSlots_RejectsInvalidInputWithoutRequest(t *testing.T) {
	be := newFakeBackend()
	be.party = []models.PartySlot{{Name: "A"}, {Name: "B"}}
	vm := New(be)
	ctx := context.Background()
	vm.ViewParty(ctx)

	for _, in := range []string{"", "abc", "-1", "2", "9", "1.5"} {
		s := vm.SwapSlots(ctx, 0, strPtr(in))
		if !hasNotice(s, NoticeError, "Invalid slot") {
			t.Errorf("input %q: expected Invalid slot notice, got %+v", in, s.Notices)
		}
	}
	if be.calls["swap"] != 0 {
		t.Errorf("Expected no swap requests, got %d", be.calls["swap"])
	}
}

func TestSwapSlots_DismissedPrompt(t *testing.T) {
	be := newFakeBackend()
	be.party = []models.PartySlot{{Name: "A"}, {Name: "B"}}
	vm := New(be)
	vm.ViewParty(context.Background())

	s := vm.SwapSlots(context.Background(), 0, nil)
	if be.calls["swap"] != 0 || len(s.Notices) != 0 {
		t.Error("A dismissed prompt must do nothing")
	}
}

func TestSwapSlots_SelfSwapSingleSlot(t *testing.T) {
	be := newFakeBackend()
	be.party = []models.PartySlot{{Name: "StarterPal", Level: 1, HP: 30, Defense: 5}}
	vm := New(be)
	ctx := context.Background()
	vm.ViewParty(ctx)

	s := vm.SwapSlots(ctx, 0, strPtr("0"))
	if be.calls["swap"] != 1 {
		t.Fatalf("Expected swap request, got %d", be.calls["swap"])
	}
	if be.swaps[0] != [2]int{0, 0} {
		t.Errorf("Unexpected swap args %v", be.swaps[0])
	}
	if !hasNotice(s, NoticeInfo, "Swapped slots 0 and 0") {
		t.Errorf("Expected server message notice, got %+v", s.Notices)
	}
}

func TestSwapSlots_RefetchesAfterSuccess(t *testing.T) {
	be := newFakeBackend()
	be.party = []models.PartySlot{{Name: "A"}, {Name: "B"}, {Name: "C"}}
	vm := New(be)
	ctx := context.Background()
	vm.ViewParty(ctx)
	before := be.calls["myParty"]

	s := vm.SwapSlots(ctx, 0, strPtr(" 2 "))
	if be.calls["myParty"] != before+1 {
		t.Fatalf("Expected a refetch after the swap")
	}
	if len(s.Party) != 3 || s.Party[0].Name != "C" || s.Party[2].Name != "A" {
		t.Errorf("Unexpected party after swap: %+v", s.Party)
	}
}

func TestSwapSlots_ServerError(t *testing.T) {
	be := newFakeBackend()
	be.party = []models.PartySlot{{Name: "A"}, {Name: "B"}}
	vm := New(be)
	ctx := context.Background()
	vm.ViewParty(ctx)
	be.mutateErr = statusErr("Invalid slot indices")
	before := be.calls["myParty"]

	s := vm.SwapSlots(ctx, 0, strPtr("1"))
	if !hasNotice(s, NoticeError, "Error swapping: Invalid slot indices") {
		t.Errorf("Expected server error notice, got %+v", s.Notices)
	}
	if be.calls["myParty"] != before {
		t.Error("No refetch expected after a failed swap")
	}
}

func TestRemoveSlot_RefetchesAfterSuccess(t *testing.T) {
	be := newFakeBackend()
	be.party = []models.PartySlot{
		{Name: "A", Level: 1, HP: 30, Defense: 5},
		{Name: "B", Level: 2, HP: 35, Defense: 6},
	}
	vm := New(be)
	ctx := context.Background()
	vm.ViewParty(ctx)

	s := vm.RemoveSlot(ctx, 0)
	if be.calls["myParty"] != 2 {
		t.Errorf("Expected two party fetches, got %d", be.calls["myParty"])
	}
	if len(s.Party) != 1 || s.Party[0].Label != "Slot 0: B (Lv 2, HP 35, Def 6)" {
		t.Errorf("Unexpected party rows %+v", s.Party)
	}
	if s.Party[0].SwapPrompt != "Swap slot 0 with slot? [0..0]" {
		t.Errorf("Unexpected swap prompt %q", s.Party[0].SwapPrompt)
	}
	if !hasNotice(s, NoticeInfo, "Removed monster at slot 0") {
		t.Errorf("Expected server message notice, got %+v", s.Notices)
	}
}

func TestRemoveSlot_ServerError(t *testing.T) {
	be := newFakeBackend()
	be.party = []models.PartySlot{{Name: "A"}}
	vm := New(be)
	ctx := context.Background()
	vm.ViewParty(ctx)
	be.mutateErr = statusErr("You cannot remove your final monster!")

	s := vm.RemoveSlot(ctx, 0)
	if !hasNotice(s, NoticeError, "Error removing monster: You cannot remove your final monster!") {
		t.Errorf("Unexpected notices %+v", s.Notices)
	}
	if len(vm.Party()) != 1 {
		t.Error("Party must be unchanged after a failed removal")
	}
}

func TestViewParty_FailureEmptiesRoster(t *testing.T) {
	be := newFakeBackend()
	be.party = []models.PartySlot{{Name: "A"}}
	vm := New(be)
	ctx := context.Background()
	vm.ViewParty(ctx)

	be.partyErr = statusErr("storage offline")
	s := vm.ViewParty(ctx)
	if len(vm.Party()) != 0 {
		t.Error("Expected empty roster after a failed fetch")
	}
	if s.Status != "Your party is empty!" {
		t.Errorf("Unexpected status %q", s.Status)
	}
	if !hasNotice(s, NoticeError, "Error: storage offline") {
		t.Errorf("Expected error notice, got %+v", s.Notices)
	}
}

func TestParseSwapTarget(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want int
		ok   bool
	}{
		{"0", 1, 0, true},
		{"2", 3, 2, true},
		{" 1", 3, 1, true},
		{"3", 3, 0, false},
		{"-1", 3, 0, false},
		{"x", 3, 0, false},
		{"", 3, 0, false},
		{"0", 0, 0, false},
	}
	for _, tt := range tests {
		got, err := ParseSwapTarget(tt.in, tt.n)
		if tt.ok && (err != nil || got != tt.want) {
			t.Errorf("ParseSwapTarget(%q, %d) = %d, %v; want %d", tt.in, tt.n, got, err, tt.want)
		}
		if !tt.ok && !errors.Is(err, ErrInvalidSlot) {
			t.Errorf("ParseSwapTarget(%q, %d) expected ErrInvalidSlot, got %v", tt.in, tt.n, err)
		}
	}
}

func TestClearWigle(t *testing.T) {
	be := newFakeBackend()
	vm := New(be)
	ctx := context.Background()

	s := vm.ClearWigle(ctx)
	if !hasNotice(s, NoticeSuccess, "Wigle data cleared!") {
		t.Errorf("Unexpected notices %+v", s.Notices)
	}

	be.clearErr = statusErr("No wigle data file found")
	s = vm.ClearWigle(ctx)
	if !hasNotice(s, NoticeError, "Error clearing wigle data: No wigle data file found") {
		t.Errorf("Unexpected notices %+v", s.Notices)
	}

	s = vm.Screen()
	if len(s.Notices) != 0 {
		t.Error("Notices must not outlive the operation that produced them")
	}
}

func TestDownloadWigle_Navigates(t *testing.T) {
	vm := New(newFakeBackend())
	s := vm.DownloadWigle()
	if s.Navigate != WigleDownloadPath {
		t.Errorf("Expected navigation to %s, got %q", WigleDownloadPath, s.Navigate)
	}
	if vm.Screen().Navigate != "" {
		t.Error("Navigation target must be transient")
	}
}

func TestReset_DropsSnapshots(t *testing.T) {
	be := newFakeBackend()
	be.monsters = makeMonsters(12)
	be.party = []models.PartySlot{{Name: "A"}}
	vm := New(be)
	ctx := context.Background()
	vm.ScanAndList(ctx)
	vm.ViewParty(ctx)

	s := vm.Reset()
	if len(vm.Party()) != 0 || vm.Page().Total != 0 {
		t.Error("Expected caches cleared")
	}
	if s.Status != "" || s.Monsters != nil || s.Party != nil {
		t.Errorf("Expected blank screen, got %+v", s)
	}
}

func TestTransientState_ClearedAfterRender(t *testing.T) {
	be := newFakeBackend()
	be.clearErr = statusErr("No wigle data file found")
	vm := New(be)
	ctx := context.Background()

	if s := vm.ClearWigle(ctx); len(s.Notices) != 1 {
		t.Fatalf("Expected one notice, got %+v", s.Notices)
	}
	if s := vm.DownloadWigle(); len(s.Notices) != 0 || s.Navigate != WigleDownloadPath {
		t.Errorf("Expected only the navigation target, got %+v", s)
	}
	if s := vm.Screen(); len(s.Notices) != 0 || s.Navigate != "" {
		t.Errorf("Transient state leaked into a later render: %+v", s)
	}
}
