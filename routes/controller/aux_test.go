package controller

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/veldwork/veld/pkg/veld/model"
)

func TestParseEmailListField(t *testing.T) {
	tests := []struct {
		name string
		in string
		want []string
	}{
		{"empty", "", []string{}},
		{"blank", "   ", []string{}},
		{"single", "a@x.com", []string{"a@x.com"}},
		{"list with spaces", " a@x.com , b@x.com ", []string{"a@x.com", "b@x.com"}},
		{"entries without at dropped", "a@x.com, typo, b@x.com", []string{"a@x.com", "b@x.com"}},
		{"duplicates dropped", "a@x.com,a@x.com,b@x.com", []string{"a@x.com", "b@x.com"}},
		{"empty entries dropped", "a@x.com,,b@x.com", []string{"a@x.com", "b@x.com"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseEmailListField(tt.in))
		})
	}
}

func TestReviewParticipants(t *testing.T) {
	review := &model.VeldReview{
		Owner: "owner@x.com",
		ReviewerList: []string{"rev1@x.com", "rev2@x.com", "owner@x.com"},
		CCList: []string{"cc@x.com", "rev1@x.com"},
	}
	assert.Equal(t,
		[]string{"owner@x.com", "rev1@x.com", "rev2@x.com", "cc@x.com"},
		reviewParticipants(review, ""),
	)
	// the actor is left out.
	assert.Equal(t,
		[]string{"owner@x.com", "rev2@x.com", "cc@x.com"},
		reviewParticipants(review, "rev1@x.com"),
	)
	assert.Equal(t,
		[]string{"rev1@x.com", "rev2@x.com", "cc@x.com"},
		reviewParticipants(review, "owner@x.com"),
	)
}

func TestDeriveNickname(t *testing.T) {
	tests := []struct {
		email string
		want string
	}{
		{"alice@example.com", "alice"},
		{"alice.b-c_d@example.com", "alice.b-c_d"},
		{"alice+tag@example.com", "alice-tag"},
		{"weird name@example.com", "weird-name"},
		{"@example.com", "user"},
		{"no-at-sign", "no-at-sign"},
	}
	for _, tt := range tests {
		got := deriveNickname(tt.email)
		assert.Equal(t, tt.want, got)
		assert.True(t, model.ValidNickname(got), "derived nickname %q should be valid", got)
	}
}

func TestParseViewSettingField(t *testing.T) {
	assert.Nil(t, parseViewSettingField(""))
	assert.Nil(t, parseViewSettingField("  "))
	assert.Nil(t, parseViewSettingField("abc"))
	assert.Nil(t, parseViewSettingField("0"))
	assert.Nil(t, parseViewSettingField("-3"))
	v := parseViewSettingField(" 10 ")
	assert.NotNil(t, v)
	assert.Equal(t, 10, *v)
}

func TestSettingErrorMsg(t *testing.T) {
	m := settingErrorMsg("error", "Wrong current password.")
	assert.Equal(t, "error", m.Type)
	assert.Equal(t, "Wrong current password.", m.Message)
}
