package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmailLocalPart(t *testing.T) {
	tests := []struct {
		email string
		want string
	}{
		{"alice@example.com", "alice"},
		{"a@b@c", "a"},
		{"no-at-sign", "no-at-sign"},
		{"@example.com", ""},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, EmailLocalPart(tt.email))
	}
}

func TestAsEmail(t *testing.T) {
	account := &VeldAccount{Email: "alice@example.com"}

	tests := []struct {
		name string
		v any
		want string
		ok bool
	}{
		{"plain string", "alice@example.com", "alice@example.com", true},
		{"padded string", "  alice@example.com \n", "alice@example.com", true},
		{"empty string", "", "", false},
		{"blank string", "   ", "", false},
		{"nil", nil, "", false},
		{"account", account, "alice@example.com", true},
		{"nil account", (*VeldAccount)(nil), "", false},
		{"email identity", EmailIdentity("bob@example.com"), "bob@example.com", true},
		{"unsupported type", 42, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := AsEmail(tt.v)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAsEmailList(t *testing.T) {
	alice := &VeldAccount{Email: "alice@example.com"}
	bob := &VeldAccount{Email: "bob@example.com"}

	tests := []struct {
		name string
		v any
		want []string
	}{
		{"nil", nil, []string{}},
		{"string list", []string{"a@b.c", "", "d@e.f"}, []string{"a@b.c", "d@e.f"}},
		{"account list", []*VeldAccount{alice, nil, bob}, []string{"alice@example.com", "bob@example.com"}},
		{"identity list", []EmailIdentity{"a@b.c", "  "}, []string{"a@b.c"}},
		{"mixed list", []any{"a@b.c", alice, 42, nil}, []string{"a@b.c", "alice@example.com"}},
		{"single value", "a@b.c", []string{"a@b.c"}},
		{"single unresolvable", 42, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AsEmailList(tt.v))
		})
	}
}

func TestValidNickname(t *testing.T) {
	for _, ok := range []string{"alice", "alice-2", "a.b_c", "X9"} {
		assert.True(t, ValidNickname(ok), "nickname %q should be valid", ok)
	}
	for _, bad := range []string{"", "a b", "a/b", "a@b", "héllo", "a<b>"} {
		assert.False(t, ValidNickname(bad), "nickname %q should be invalid", bad)
	}
}
