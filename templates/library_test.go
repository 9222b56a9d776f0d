package templates

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/veldwork/veld/pkg/veld"
	"github.com/veldwork/veld/pkg/veld/cache"
	"github.com/veldwork/veld/pkg/veld/db"
	"github.com/veldwork/veld/pkg/veld/model"
)

// fakeDatabase serves accounts from a map and counts queries. the
// embedded interface stands in for the methods the library never
// touches.
type fakeDatabase struct {
	db.VeldDatabaseInterface
	accounts map[string]*model.VeldAccount
	accountQueries int
	nicknameQueries int
}

func (f *fakeDatabase) GetAccountByEmail(email string) (*model.VeldAccount, error) {
	f.accountQueries += 1
	a, ok := f.accounts[email]
	if !ok { return nil, db.ErrEntityNotFound }
	return a, nil
}

func (f *fakeDatabase) GetNicknameByEmail(email string) (string, error) {
	f.nicknameQueries += 1
	a, ok := f.accounts[email]
	if !ok { return model.EmailLocalPart(email), nil }
	return a.Nickname, nil
}

type fakeCache struct {
	values map[string]string
	gets int
	getMultis int
	adds int
	deletes int
}

func (f *fakeCache) IsCacheStoreUsable() (bool, error) { return true, nil }

func (f *fakeCache) Dispose() error { return nil }

func (f *fakeCache) Get(key string) (string, error) {
	f.gets += 1
	v, ok := f.values[key]
	if !ok { return "", cache.ErrCacheMiss }
	return v, nil
}

func (f *fakeCache) GetMulti(keys []string, keyPrefix string) (map[string]string, error) {
	f.getMultis += 1
	res := make(map[string]string, len(keys))
	for _, k := range keys {
		v, ok := f.values[keyPrefix+k]
		if !ok { continue }
		res[k] = v
	}
	return res, nil
}

func (f *fakeCache) Add(key string, value string, ttl time.Duration) error {
	f.adds += 1
	if _, ok := f.values[key]; ok { return nil }
	f.values[key] = value
	return nil
}

func (f *fakeCache) Delete(key string) error {
	f.deletes += 1
	delete(f.values, key)
	return nil
}

func newTestLibrary(accounts ...*model.VeldAccount) (*UserLibrary, *fakeDatabase, *fakeCache) {
	fdb := &fakeDatabase{accounts: make(map[string]*model.VeldAccount, 0)}
	for _, a := range accounts { fdb.accounts[a.Email] = a }
	fc := &fakeCache{values: make(map[string]string, 0)}
	return NewUserLibrary(&veld.VeldConfig{}, fdb, fc), fdb, fc
}

func chosenAccount(email string, nickname string) *model.VeldAccount {
	return &model.VeldAccount{
		Email: email,
		Nickname: nickname,
		NicknameSelected: true,
		Status: model.NORMAL_ACCOUNT,
	}
}

func derivedAccount(email string, nickname string) *model.VeldAccount {
	return &model.VeldAccount{
		Email: email,
		Nickname: nickname,
		NicknameSelected: false,
		Status: model.NORMAL_ACCOUNT,
	}
}

func intp(v int) *int { return &v }

func TestShowUserChosenNicknameLinks(t *testing.T) {
	lib, fdb, fc := newTestLibrary(chosenAccount("alice@example.com", "alice"))
	got, err := lib.ShowUser(nil, "alice@example.com")
	assert.NoError(t, err)
	assert.Equal(t, `<a href="/u/alice">alice</a>`, string(got))
	assert.Equal(t, 1, fdb.accountQueries)
	assert.Equal(t, 1, fc.adds)
	assert.Equal(t, `<a href="/u/alice">alice</a>`, fc.values[ShowUserCacheKeyPrefix+"alice@example.com"])
}

func TestShowUserDerivedNicknameStaysPlain(t *testing.T) {
	lib, _, _ := newTestLibrary(derivedAccount("bob@example.com", "bob"))
	got, err := lib.ShowUser(nil, "bob@example.com")
	assert.NoError(t, err)
	assert.Equal(t, "bob", string(got))
}

func TestShowUserUnknownAccountFallsBackToLocalPart(t *testing.T) {
	lib, fdb, _ := newTestLibrary()
	got, err := lib.ShowUser(nil, "carol@example.com")
	assert.NoError(t, err)
	assert.Equal(t, "carol", string(got))
	assert.Equal(t, 1, fdb.accountQueries)
}

func TestShowUserEscapesLocalPart(t *testing.T) {
	lib, _, _ := newTestLibrary()
	got, err := lib.ShowUser(nil, "x<y>&z@example.com")
	assert.NoError(t, err)
	assert.Equal(t, "x&lt;y&gt;&amp;z", string(got))
}

func TestShowUserWithoutAtSignRendersWhole(t *testing.T) {
	lib, _, _ := newTestLibrary()
	got, err := lib.ShowUser(nil, "not-an-email")
	assert.NoError(t, err)
	assert.Equal(t, "not-an-email", string(got))
}

func TestShowUserMeSubstitution(t *testing.T) {
	me := chosenAccount("alice@example.com", "alice")
	lib, fdb, fc := newTestLibrary(me)
	scope := &RequestScope{User: me}

	got, err := lib.ShowUser(scope, "alice@example.com")
	assert.NoError(t, err)
	assert.Equal(t, "me", string(got))
	// the substitution short-circuits before any lookup.
	assert.Equal(t, 0, fdb.accountQueries)
	assert.Equal(t, 0, fc.gets)

	got, err = lib.ShowUser(scope, "alice@example.com", "true")
	assert.NoError(t, err)
	assert.Equal(t, `<a href="/u/alice">alice</a>`, string(got))

	got, err = lib.ShowUser(scope, "bob@example.com")
	assert.NoError(t, err)
	assert.Equal(t, "bob", string(got))
}

func TestShowUserBlankFlagKeepsMeSubstitution(t *testing.T) {
	me := chosenAccount("alice@example.com", "alice")
	lib, _, _ := newTestLibrary(me)
	scope := &RequestScope{User: me}
	got, err := lib.ShowUser(scope, "alice@example.com", "   ")
	assert.NoError(t, err)
	assert.Equal(t, "me", string(got))
}

func TestShowUserSecondCallHitsCache(t *testing.T) {
	lib, fdb, fc := newTestLibrary(chosenAccount("alice@example.com", "alice"))
	first, err := lib.ShowUser(nil, "alice@example.com")
	assert.NoError(t, err)
	second, err := lib.ShowUser(nil, "alice@example.com")
	assert.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, fdb.accountQueries)
	assert.Equal(t, 2, fc.gets)
	assert.Equal(t, 1, fc.adds)
}

func TestShowUserUnresolvableValues(t *testing.T) {
	lib, fdb, fc := newTestLibrary()
	for _, v := range []any{nil, "", "   ", 42, (*model.VeldAccount)(nil)} {
		got, err := lib.ShowUser(nil, v)
		assert.NoError(t, err)
		assert.Equal(t, "", string(got))
	}
	assert.Equal(t, 0, fdb.accountQueries)
	assert.Equal(t, 0, fc.gets)
}

func TestUserFuncsRejectExtraArguments(t *testing.T) {
	lib, _, _ := newTestLibrary()
	_, err := lib.ShowUser(nil, "a@b.c", "x", "y")
	assert.Error(t, err)
	_, err = lib.ShowUsers(nil, []string{"a@b.c"}, "x", "y")
	assert.Error(t, err)
	_, err = lib.Nickname(nil, "a@b.c", "x", "y")
	assert.Error(t, err)
	_, err = lib.Nicknames(nil, []string{"a@b.c"}, "x", "y")
	assert.Error(t, err)
}

func TestShowUsersJoinsWithComma(t *testing.T) {
	lib, _, _ := newTestLibrary(
		chosenAccount("alice@example.com", "alice"),
		derivedAccount("bob@example.com", "bob"),
	)
	got, err := lib.ShowUsers(nil, []string{"alice@example.com", "bob@example.com"})
	assert.NoError(t, err)
	assert.Equal(t, `<a href="/u/alice">alice</a>, bob`, string(got))
}

func TestShowUsersBatchesCacheReads(t *testing.T) {
	lib, fdb, fc := newTestLibrary(
		chosenAccount("alice@example.com", "alice"),
		derivedAccount("bob@example.com", "bob"),
	)
	_, err := lib.ShowUsers(nil, []string{"alice@example.com", "bob@example.com", "alice@example.com"})
	assert.NoError(t, err)
	// one multi-read for the whole list, no individual reads, and the
	// repeated entry reuses the fragment computed for the first one.
	assert.Equal(t, 1, fc.getMultis)
	assert.Equal(t, 0, fc.gets)
	assert.Equal(t, 2, fdb.accountQueries)
	assert.Equal(t, 2, fc.adds)
}

func TestShowUsersWarmCacheSkipsDatabase(t *testing.T) {
	lib, fdb, fc := newTestLibrary()
	fc.values[ShowUserCacheKeyPrefix+"alice@example.com"] = "cached-alice"
	got, err := lib.ShowUsers(nil, []string{"alice@example.com"})
	assert.NoError(t, err)
	assert.Equal(t, "cached-alice", string(got))
	assert.Equal(t, 0, fdb.accountQueries)
	assert.Equal(t, 0, fc.adds)
}

func TestShowUsersEmptyListMakesNoCacheCalls(t *testing.T) {
	lib, _, fc := newTestLibrary()
	got, err := lib.ShowUsers(nil, []string{})
	assert.NoError(t, err)
	assert.Equal(t, "", string(got))
	got, err = lib.ShowUsers(nil, nil)
	assert.NoError(t, err)
	assert.Equal(t, "", string(got))
	assert.Equal(t, 0, fc.getMultis)
	assert.Equal(t, 0, fc.gets)
}

func TestShowUsersMeInList(t *testing.T) {
	me := chosenAccount("alice@example.com", "alice")
	lib, _, _ := newTestLibrary(me, derivedAccount("bob@example.com", "bob"))
	scope := &RequestScope{User: me}
	got, err := lib.ShowUsers(scope, []string{"alice@example.com", "bob@example.com"})
	assert.NoError(t, err)
	assert.Equal(t, "me, bob", string(got))
}

func TestShowUsersAcceptsAccountList(t *testing.T) {
	alice := chosenAccount("alice@example.com", "alice")
	bob := derivedAccount("bob@example.com", "bob")
	lib, _, _ := newTestLibrary(alice, bob)
	got, err := lib.ShowUsers(nil, []*model.VeldAccount{alice, bob})
	assert.NoError(t, err)
	assert.Equal(t, `<a href="/u/alice">alice</a>, bob`, string(got))
}

func TestShowUsersSurvivesFailingCache(t *testing.T) {
	fdb := &fakeDatabase{accounts: map[string]*model.VeldAccount{
		"alice@example.com": chosenAccount("alice@example.com", "alice"),
	}}
	fc := &failingCache{fakeCache{values: make(map[string]string, 0)}}
	lib := NewUserLibrary(&veld.VeldConfig{}, fdb, fc)
	got, err := lib.ShowUsers(nil, []string{"alice@example.com"})
	assert.NoError(t, err)
	assert.Equal(t, `<a href="/u/alice">alice</a>`, string(got))
	assert.Equal(t, 1, fdb.accountQueries)
}

// a store whose batch read always fails; the funcs should degrade to
// treating everything as a miss.
type failingCache struct {
	fakeCache
}

func (f *failingCache) GetMulti(keys []string, keyPrefix string) (map[string]string, error) {
	return map[string]string{}, cache.NewVeldCacheError(cache.CACHE_NOT_SUPPORTED, "store down")
}

func TestNicknameResolvesThroughAccount(t *testing.T) {
	lib, _, _ := newTestLibrary(chosenAccount("alice@example.com", "wonderland"))
	scope := &RequestScope{}
	got, err := lib.Nickname(scope, "alice@example.com")
	assert.NoError(t, err)
	assert.Equal(t, "wonderland", got)

	got, err = lib.Nickname(scope, "carol@example.com")
	assert.NoError(t, err)
	assert.Equal(t, "carol", got)
}

func TestNicknameMemoizesPerScope(t *testing.T) {
	lib, fdb, _ := newTestLibrary(chosenAccount("alice@example.com", "alice"))
	scope := &RequestScope{}
	for i := 0; i < 3; i++ {
		got, err := lib.Nickname(scope, "alice@example.com")
		assert.NoError(t, err)
		assert.Equal(t, "alice", got)
	}
	assert.Equal(t, 1, fdb.nicknameQueries)

	// a fresh scope starts with an empty memo.
	_, err := lib.Nickname(&RequestScope{}, "alice@example.com")
	assert.NoError(t, err)
	assert.Equal(t, 2, fdb.nicknameQueries)
}

func TestNicknameWithoutScopeQueriesEveryTime(t *testing.T) {
	lib, fdb, _ := newTestLibrary(chosenAccount("alice@example.com", "alice"))
	_, err := lib.Nickname(nil, "alice@example.com")
	assert.NoError(t, err)
	_, err = lib.Nickname(nil, "alice@example.com")
	assert.NoError(t, err)
	assert.Equal(t, 2, fdb.nicknameQueries)
}

func TestNicknameMeSubstitution(t *testing.T) {
	me := chosenAccount("alice@example.com", "wonderland")
	lib, fdb, _ := newTestLibrary(me)
	scope := &RequestScope{User: me}

	got, err := lib.Nickname(scope, "alice@example.com")
	assert.NoError(t, err)
	assert.Equal(t, "me", got)
	assert.Equal(t, 0, fdb.nicknameQueries)

	got, err = lib.Nickname(scope, "alice@example.com", "true")
	assert.NoError(t, err)
	assert.Equal(t, "wonderland", got)
}

func TestNicknameUnresolvableRendersEmpty(t *testing.T) {
	lib, _, _ := newTestLibrary()
	got, err := lib.Nickname(nil, nil)
	assert.NoError(t, err)
	assert.Equal(t, "", got)
}

func TestNicknamesJoinsAndDeduplicatesQueries(t *testing.T) {
	lib, fdb, _ := newTestLibrary(
		chosenAccount("alice@example.com", "alice"),
		chosenAccount("bob@example.com", "bob"),
	)
	scope := &RequestScope{}
	got, err := lib.Nicknames(scope, []string{"alice@example.com", "bob@example.com", "alice@example.com"})
	assert.NoError(t, err)
	assert.Equal(t, "alice, bob, alice", got)
	assert.Equal(t, 2, fdb.nicknameQueries)
}

func TestUrlappendViewSettings(t *testing.T) {
	lib, _, _ := newTestLibrary()
	tests := []struct {
		name string
		scope *RequestScope
		want string
	}{
		{"nil scope", nil, ""},
		{"no view settings", &RequestScope{}, ""},
		{"whole file", &RequestScope{ViewSettings: &ViewSettings{}}, "?context="},
		{"context", &RequestScope{ViewSettings: &ViewSettings{Context: intp(10)}}, "?context=10"},
		{"zero context dropped", &RequestScope{ViewSettings: &ViewSettings{Context: intp(0)}}, ""},
		{"negative context dropped", &RequestScope{ViewSettings: &ViewSettings{Context: intp(-3)}}, ""},
		{"context and column width", &RequestScope{ViewSettings: &ViewSettings{Context: intp(3), ColumnWidth: intp(80)}}, "?context=3&column_width=80"},
		{"whole file and column width", &RequestScope{ViewSettings: &ViewSettings{ColumnWidth: intp(100)}}, "?context=&column_width=100"},
		{"zero context keeps column width", &RequestScope{ViewSettings: &ViewSettings{Context: intp(0), ColumnWidth: intp(80)}}, "?column_width=80"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, lib.UrlappendViewSettings(tt.scope))
		})
	}
}

func TestLoadTemplateRegistersAllViews(t *testing.T) {
	lib, _, _ := newTestLibrary()
	master := LoadTemplate(lib)
	for _, name := range []string{
		"_header", "_redirect-with-message", "index", "review",
		"new-review", "login", "registration", "user", "setting",
		"error", "maintenance-notice", "shutdown-notice",
		"private-notice",
	} {
		assert.NotNil(t, master.Lookup(name), "template %s not registered", name)
	}
}

func TestUserFuncsThroughTemplate(t *testing.T) {
	lib, _, _ := newTestLibrary(chosenAccount("alice@example.com", "alice"))
	master := LoadTemplate(lib)
	probe, err := master.New("probe").Parse(`{{showUsers .Scope .Emails}}`)
	assert.NoError(t, err)
	var sb strings.Builder
	err = probe.Execute(&sb, map[string]any{
		"Scope": (*RequestScope)(nil),
		"Emails": []string{"alice@example.com", "dave@example.com"},
	})
	assert.NoError(t, err)
	assert.Equal(t, `<a href="/u/alice">alice</a>, dave`, sb.String())
}
