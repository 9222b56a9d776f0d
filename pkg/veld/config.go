package veld

import (
	"encoding/json"
	"os"
	"path"
	"strings"
)

type VeldConfig struct {
	FilePath string
	// the version of the configuration file. currently only 0 is
	// allowed.
	Version int `json:"version"`
	// the name of the site. shown in page titles and in the subject
	// line of notification mails.
	SiteName string `json:"siteName"`
	// when set to true, this field allow user registration.
	AllowRegistration bool `json:"enableUserRegistration"`

	// http host name.
	HttpHostName string `json:"hostName"`
	properHttpHostName string

	BindAddress string `json:"bindAddress"`
	BindPort int `json:"bindPort"`

	// when set to true, DEBUG lines are printed along with everything
	// else. you most likely don't want this outside of debugging since
	// it logs every single cache miss.
	VerboseLogging bool `json:"verboseLogging"`

	// what the front page should display above the review list.
	// currently support four types: "markdown", "org", "text" and
	// "html". if the type is not set or the message is empty nothing
	// is displayed.
	FrontPageMessageType string `json:"frontPageMessageType"`
	FrontPageMessage string `json:"frontPageMessage"`

	// global private/shutdown mode
	// supports the following values:
	// + "public" (unregistered users can view reviews)
	// + "private" (only registered users can view anything)
	// + "shutdown" (w/ allowed users) (only specified users can view anything)
	// + "maintenance" maintenance mode
	GlobalVisibility string `json:"globalVisibility"`
	// emails of the accounts that are allowed to access the instance
	// when the instance is put in shutdown.
	FullAccessUser []string `json:"fullAccessUser"`
	// when the instance is put in shutdown mode, what content should we show
	// to the visitor.
	ShutdownMessage string `json:"shutdownMessage"`
	// shown when the instance is in maintenance mode.
	MaintenanceMessage string `json:"maintenanceMessage"`
	// shown to anonymous visitors when the instance is in private mode.
	PrivateNoticeMessage string `json:"privateNoticeMessage"`

	// the rate limit applied to the more sensitive endpoints (login,
	// register). requests above this count per second from the same
	// address get a 429.
	MaxRequestInSecond int `json:"maxRequestInSecond"`

	Database VeldDatabaseConfig `json:"database"`
	Cache VeldCacheConfig `json:"cache"`
	Session VeldSessionConfig `json:"session"`
	Mailer VeldMailerConfig `json:"mailer"`
	Webhook VeldWebhookConfig `json:"webhook"`
}

const (
	GLOBAL_VISIBILITY_PUBLIC = "public"
	GLOBAL_VISIBILITY_PRIVATE = "private"
	GLOBAL_VISIBILITY_SHUTDOWN = "shutdown"
	GLOBAL_VISIBILITY_MAINTENANCE = "maintenance"
)

type VeldDatabaseConfig struct {
	// database type. currently support "sqlite" and "postgres".
	Type string `json:"type"`
	// path to the database file. valid only when dbtype is sqlite;
	// has no effect otherwise.
	Path string `json:"path"`
	properPath string
	// url to the database. valid only when dbtype is something that
	// is "hosted" as a server (unlike sqlite which is just one file).
	// has no effect when dbtype is sqlite.
	URL string `json:"url"`
	UserName string `json:"userName"`
	// name of the database. valid only when dbtype is "postgres".
	// has no effect when dbtype is sqlite.
	DatabaseName string `json:"databaseName"`
	// password of the database. valid only when dbtype is "postgres".
	// has no effect when dbtype is sqlite.
	Password string `json:"password"`
	// table prefix of the database - in case you need to host
	// multiple veld instances with the same database or you need
	// to make your veld instance to share a database with other
	// applications.
	TablePrefix string `json:"tablePrefix"`
}

type VeldCacheConfig struct {
	// cache type. currently support:
	// + "in_memory" (single process only; no external server)
	// + redis-like dbs: "redis", "keydb", "valkey"
	//   + "valkey" is not tested, but should work fine.
	// + "memcached"
	Type string `json:"type"`
	// key prefix, prepended to every key before it reaches the
	// server. not used for "in_memory".
	KeyPrefix string `json:"keyPrefix"`
	// cache host.
	// requirements for this value is as follows:
	// + "in_memory": not used
	// + "redis"/"keydb"/"valkey": in the format of "host:port"
	// + "memcached": in the format of "host:port"
	Host string `json:"host"`
	// username & password.
	// not used for "in_memory" and "memcached".
	UserName string `json:"userName"`
	Password string `json:"password"`
	// database number.
	// valid only when the type is a redis-like db.
	DatabaseNumber int `json:"databaseNumber"`
}

type VeldSessionConfig struct {
	// session type. currently support:
	// + "sqlite"
	// + redis-like dbs: "redis", "keydb", "valkey"
	//   + "valkey" is not tested, but should work fine.
	// + "memcached"
	Type string `json:"type"`
	// session database path. valid only when sessiontype is sqlite.
	Path string `json:"path"`
	properPath string
	// session table prefix.
	// used as table prefix when type is "sqlite" and key prefix when
	// type is "redis"/"keydb"/"valkey"/"memcached".
	TablePrefix string `json:"tablePrefix"`
	// session host.
	// requirements for this value is as follows:
	// + "sqlite": not used
	// + "redis"/"keydb"/"valkey": in the format of "host:port"
	// + "memcached": in the format of "host:port"
	Host string `json:"host"`
	// username & password.
	// not used for "sqlite" and "memcached".
	UserName string `json:"userName"`
	Password string `json:"password"`
	// database number.
	// valid only when sessiontype is redis-like dbs, e.g. "redis" or
	// "keydb". not used for "sqlite" and "memcached".
	DatabaseNumber int `json:"databaseNumber"`
}

type VeldMailerConfig struct {
	// email sender type. currently support "smtp-plain" and
	// "gmail-plain".
	Type string `json:"type"`
	// smtp server & smtp port. not used if type is gmail-plain.
	SMTPServer string `json:"smtpServer"`
	SMTPPort int `json:"smtpPort"`
	// smtp auth type, e.g. "PLAIN", "LOGIN", "CRAM-MD5". leave empty
	// to let the client discover what the server supports. not used
	// if type is gmail-plain.
	SMTPAuth string `json:"smtpAuth"`
	User string `json:"user"`
	// email sender password. this would be stored in plain-text, so
	// one should be using app-specific passwords here.
	Password string `json:"password"`
}

type VeldWebhookConfig struct {
	// when set to true, review events (created / new message /
	// closed / reopened) are posted to TargetURL.
	Enabled bool `json:"enabled"`
	TargetURL string `json:"targetUrl"`
	// the shared secret the payload token is signed with.
	Secret string `json:"secret"`
	// request timeout in seconds. 0 means the default of 10 seconds.
	TimeoutInSecond int `json:"timeoutInSecond"`
}

func (cfg *VeldConfig) ProperHTTPHostName() string {
	return cfg.properHttpHostName
}

func (cfg *VeldConfig) ProperDatabasePath() string {
	return cfg.Database.properPath
}

func (cfg *VeldConfig) ProperSessionPath() string {
	return cfg.Session.properPath
}

func CreateConfigFile(p string) error {
	f, err := os.OpenFile(
		p,
		os.O_CREATE|os.O_EXCL|os.O_WRONLY|os.O_TRUNC,
		0644,
	)
	if err != nil { return err }
	defer f.Close()
	marshalRes, err := json.MarshalIndent(VeldConfig{
		Version: 0,
		SiteName: "Veld",
		AllowRegistration: true,
		HttpHostName: "",
		BindAddress: "127.0.0.1",
		BindPort: 8000,
		VerboseLogging: false,
		FrontPageMessageType: "markdown",
		FrontPageMessage: "",
		GlobalVisibility: "public",
		FullAccessUser: nil,
		MaxRequestInSecond: 5,
		Database: VeldDatabaseConfig{
			Type: "sqlite",
			Path: "veld.db",
			URL: "",
			UserName: "",
			DatabaseName: "",
			Password: "",
			TablePrefix: "veld",
		},
		Cache: VeldCacheConfig{
			Type: "in_memory",
			KeyPrefix: "",
			Host: "",
			UserName: "",
			Password: "",
			DatabaseNumber: 0,
		},
		Session: VeldSessionConfig{
			Type: "sqlite",
			Path: "veld-session.db",
			TablePrefix: "",
			Host: "",
			UserName: "",
			Password: "",
			DatabaseNumber: 0,
		},
		Mailer: VeldMailerConfig{
			Type: "smtp-plain",
			SMTPServer: "",
			SMTPPort: 0,
			SMTPAuth: "",
			User: "",
			Password: "",
		},
		Webhook: VeldWebhookConfig{
			Enabled: false,
			TargetURL: "",
			Secret: "",
			TimeoutInSecond: 0,
		},
	}, "", "    ")
	if err != nil { return err }
	f.Write(marshalRes)
	return nil
}

func (c *VeldConfig) RecalculateProperPath() error {
	// fix http host name...
	c.properHttpHostName = c.HttpHostName
	if strings.TrimSpace(c.HttpHostName) != "" {
		if !strings.HasPrefix(c.properHttpHostName, "http://") && !strings.HasPrefix(c.properHttpHostName, "https://") {
			c.properHttpHostName = "http://" + c.properHttpHostName
		}
		c.properHttpHostName = strings.TrimSuffix(c.properHttpHostName, "/")
	} else { c.properHttpHostName = "" }

	configDir := path.Dir(c.FilePath)
	if c.Database.Type == "sqlite" {
		var rp string
		if path.IsAbs(c.Database.Path) {
			rp = c.Database.Path
		} else {
			rp = path.Join(configDir, c.Database.Path)
		}
		c.Database.properPath = rp
	}

	if c.Session.Type == "sqlite" {
		var sp string
		if path.IsAbs(c.Session.Path) {
			sp = c.Session.Path
		} else {
			sp = path.Join(configDir, c.Session.Path)
		}
		c.Session.properPath = sp
	}

	return nil
}

func LoadConfigFile(p string) (*VeldConfig, error) {
	s, err := os.ReadFile(p)
	if err != nil { return nil, err }
	var c VeldConfig
	err = json.Unmarshal(s, &c)
	if err != nil { return nil, err }
	c.FilePath = p
	err = c.RecalculateProperPath()
	if err != nil { return nil, err }
	return &c, nil
}

func (cfg *VeldConfig) Sync() error {
	p := cfg.FilePath
	s, err := json.MarshalIndent(cfg, "", "    ")
	if err != nil { return err }
	st, err := os.Stat(p)
	if err != nil && !os.IsNotExist(err) { return err }
	var f *os.File
	if os.IsNotExist(err) {
		f, err = os.OpenFile(p, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	} else {
		f, err = os.OpenFile(p, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, st.Mode())
	}
	if err != nil { return err }
	defer f.Close()
	_, err = f.Write(s)
	if err != nil { return err }
	err = f.Sync()
	if err != nil { return err }
	return nil
}
