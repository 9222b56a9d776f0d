package model

type VeldAccountStatus int

const (
	NORMAL_ACCOUNT VeldAccountStatus = 1
	ADMIN VeldAccountStatus = 4
	BANNED VeldAccountStatus = 7
)

func ValidNickname(s string) bool {
	if len(s) <= 0 { return false }
	for _, k := range s {
		if !(('0' <= k && k <= '9') || ('A' <= k && k <= 'Z') || ('a' <= k && k <= 'z') || k == '_' || k == '-' || k == '.') { return false }
	}
	return true
}

type VeldAccount struct {
	// account email. the primary identifier throughout the system.
	Email string `json:"email"`
	// the name shown in place of the email. filled with the local
	// part of the email at registration until the account picks one.
	Nickname string `json:"nickname"`
	// whether the nickname was explicitly chosen by the account (as
	// opposed to the derived default). only chosen nicknames are
	// rendered as profile links.
	NicknameSelected bool `json:"nicknameSelected"`
	// password hash.
	PasswordHash string `json:"passwordHash"`
	RegisterTime int64 `json:"regTime"`
	Status VeldAccountStatus `json:"status"`
	// the preferred number of context lines when viewing patches.
	// nil means the whole file.
	DefaultContext *int `json:"defaultContext"`
	// the preferred column width when viewing patches. nil means the
	// site default.
	DefaultColumnWidth *int `json:"defaultColumnWidth"`
}
