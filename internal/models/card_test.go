package models

import (
	"testing"
)

func TestDomainListIntersects(t *testing.T) {
	tests := []struct {
		name string
		a    DomainList
		b    DomainList
		want bool
	}{
		{"shared single domain", DomainList{DomainFury}, DomainList{DomainFury}, true},
		{"one shared of several", DomainList{DomainFury, DomainOrder}, DomainList{DomainOrder, DomainChaos}, true},
		{"disjoint", DomainList{DomainFury}, DomainList{DomainCalm}, false},
		{"empty left", nil, DomainList{DomainFury}, false},
		{"empty right", DomainList{DomainFury}, nil, false},
		{"both empty", nil, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Intersects(tt.b); got != tt.want {
				t.Errorf("Intersects(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
			// Intersection is symmetric
			if got := tt.b.Intersects(tt.a); got != tt.want {
				t.Errorf("Intersects(%v, %v) = %v, want %v", tt.b, tt.a, got, tt.want)
			}
		})
	}
}

func TestDomainListContains(t *testing.T) {
	list := DomainList{DomainMind, DomainBody}
	if !list.Contains(DomainMind) {
		t.Error("expected MIND to be contained")
	}
	if list.Contains(DomainChaos) {
		t.Error("did not expect CHAOS to be contained")
	}
	if (DomainList{}).Contains(DomainFury) {
		t.Error("empty list contains nothing")
	}
}

func TestDomainListString(t *testing.T) {
	tests := []struct {
		list DomainList
		want string
	}{
		{DomainList{DomainFury}, "FURY"},
		{DomainList{DomainFury, DomainOrder}, "FURY, ORDER"},
		{nil, ""},
	}
	for _, tt := range tests {
		if got := tt.list.String(); got != tt.want {
			t.Errorf("String(%v) = %q, want %q", tt.list, got, tt.want)
		}
	}
}

func TestKnownZone(t *testing.T) {
	for _, zone := range []Zone{ZoneMain, ZoneRune, ZoneBattlefield} {
		if !KnownZone(zone) {
			t.Errorf("KnownZone(%s) = false, want true", zone)
		}
	}
	for _, zone := range []Zone{"", "SIDEBOARD", "main"} {
		if KnownZone(zone) {
			t.Errorf("KnownZone(%s) = true, want false", zone)
		}
	}
}
