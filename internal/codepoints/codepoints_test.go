package codepoints

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"github.com/specialistvlad/glyphforge/internal/icon"
)

func assetsOf(ids ...string) icon.AssetsMap {
	m := make(icon.AssetsMap, len(ids))
	for _, id := range ids {
		m[id] = &icon.Asset{ID: id}
	}
	return m
}

func TestResolve_AssignsSequentiallyInIDOrder(t *testing.T) {
	got := Resolve(assetsOf("star", "home", "arrow"), nil)

	want := Table{"arrow": Start, "home": Start + 1, "star": Start + 2}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Resolve() mismatch (-want +got):\n%s", diff)
	}
}

func TestResolve_KeepsUserValuesAndSkipsCollisions(t *testing.T) {
	partial := Table{"home": Start, "custom": 0xe000}

	got := Resolve(assetsOf("arrow", "home", "star"), partial)

	want := Table{
		"custom": 0xe000,
		"home":   Start,
		"arrow":  Start + 1,
		"star":   Start + 2,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Resolve() mismatch (-want +got):\n%s", diff)
	}
}

func TestResolve_DoesNotMutatePartial(t *testing.T) {
	partial := Table{"home": 0xf200}
	_ = Resolve(assetsOf("home", "star"), partial)
	assert.Equal(t, Table{"home": 0xf200}, partial)
}

func TestResolve_UniqueAndStable(t *testing.T) {
	assets := assetsOf("a", "b", "c", "d", "e")
	partial := Table{"c": Start + 1, "e": Start + 3}

	first := Resolve(assets, partial)
	second := Resolve(assets, partial)
	assert.Equal(t, first, second)

	seen := make(map[int]string)
	for id, cp := range first {
		if other, dup := seen[cp]; dup {
			t.Fatalf("codepoint %x assigned to both %s and %s", cp, other, id)
		}
		seen[cp] = id
	}
	assert.Len(t, first, 5)
}

func TestTable_Hex(t *testing.T) {
	table := Table{"home": 0xf101, "zero": 0}
	assert.Equal(t, "f101", table.Hex("home"))
	assert.Equal(t, "0", table.Hex("zero"))
}

func TestValid(t *testing.T) {
	testCases := []struct {
		cp   int
		want bool
	}{
		{0, false},
		{0x1f, false},
		{0x9, true},
		{0x20, true},
		{Start, true},
		{0xd7ff, true},
		{0xd800, false},
		{0xdfff, false},
		{0xe000, true},
		{0xfffe, false},
		{0xffff, false},
		{0x10000, true},
		{Max, true},
		{Max + 1, false},
		{-1, false},
	}
	for _, tc := range testCases {
		assert.Equal(t, tc.want, Valid(tc.cp), "codepoint %#x", tc.cp)
	}
}

func TestResolve_SkipsUnencodableCodepoints(t *testing.T) {
	// Enough icons to run past U+FFFD.
	n := 0xfffd - Start + 2
	ids := make([]string, n)
	for i := range ids {
		ids[i] = fmt.Sprintf("icon-%05d", i)
	}

	got := Resolve(assetsOf(ids...), nil)

	assert.Equal(t, 0xfffd, got[ids[n-2]])
	assert.Equal(t, 0x10000, got[ids[n-1]])
}
