package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"

	"github.com/veldwork/veld/pkg/veld"
	cacheinit "github.com/veldwork/veld/pkg/veld/cache/init"
	dbinit "github.com/veldwork/veld/pkg/veld/db/init"
	"github.com/veldwork/veld/pkg/veld/log"
	"github.com/veldwork/veld/pkg/veld/mail"
	ssinit "github.com/veldwork/veld/pkg/veld/session/init"
	"github.com/veldwork/veld/routes"
	"github.com/veldwork/veld/routes/controller"
	"github.com/veldwork/veld/templates"
)

func printUsage() {
	fmt.Printf(`Usage: %s [-config path] [command]

Commands:

    serve          Start the web server. This is the default when no
                   command is given.
    install        Set up the database, the session store and the
                   admin account described in the config file. Creates
                   a default config file when there isn't one.
    reset-admin    Change the password of an account from the command
                   line.

Flags:

`, os.Args[0])
	flag.PrintDefaults()
}

func loadConfigOrExit(p string) *veld.VeldConfig {
	cfg, err := veld.LoadConfigFile(p)
	if err != nil {
		if os.IsNotExist(err) {
			fmt.Printf("No config file found at %s. Run `%s -config %s install` to create one.\n", p, os.Args[0], p)
		} else {
			fmt.Printf("Failed to load config file %s: %s\n", p, err.Error())
		}
		os.Exit(1)
	}
	return cfg
}

// the server does not start against a half-ready backend; failing here
// with a clear message beats failing on the first request.
func buildRouterContext(cfg *veld.VeldConfig) *routes.RouterContext {
	dbif, err := dbinit.InitializeDatabase(cfg)
	if err != nil {
		fmt.Printf("Failed to connect to database: %s\n", err.Error())
		os.Exit(1)
	}
	usable, err := dbif.IsDatabaseUsable()
	if err != nil {
		fmt.Printf("Failed to check database: %s\n", err.Error())
		os.Exit(1)
	}
	if !usable {
		fmt.Printf("Database not ready. Run `%s -config %s install` first.\n", os.Args[0], cfg.FilePath)
		os.Exit(1)
	}
	ssif, err := ssinit.InitializeSessionStore(cfg)
	if err != nil {
		fmt.Printf("Failed to connect to session store: %s\n", err.Error())
		os.Exit(1)
	}
	usable, err = ssif.IsSessionStoreUsable()
	if err != nil {
		fmt.Printf("Failed to check session store: %s\n", err.Error())
		os.Exit(1)
	}
	if !usable {
		fmt.Printf("Session store not ready. Run `%s -config %s install` first.\n", os.Args[0], cfg.FilePath)
		os.Exit(1)
	}
	csif, err := cacheinit.InitializeCacheStore(cfg)
	if err != nil {
		fmt.Printf("Failed to connect to cache store: %s\n", err.Error())
		os.Exit(1)
	}
	usable, err = csif.IsCacheStoreUsable()
	if err != nil || !usable {
		fmt.Printf("Cache store not usable. Check the cache section of the config file.\n")
		os.Exit(1)
	}
	mailer, err := mail.InitializeMailer(cfg)
	if err != nil {
		fmt.Printf("Failed to set up mailer: %s\n", err.Error())
		os.Exit(1)
	}
	lib := templates.NewUserLibrary(cfg, dbif, csif)
	return &routes.RouterContext{
		Config: cfg,
		MasterTemplate: templates.LoadTemplate(lib),
		DatabaseInterface: dbif,
		SessionInterface: ssif,
		CacheInterface: csif,
		UserLibrary: lib,
		Mailer: mailer,
		RateLimiter: routes.NewRateLimiter(cfg),
	}
}

func Serve(cfg *veld.VeldConfig) {
	ctx := buildRouterContext(cfg)
	defer ctx.DatabaseInterface.Dispose()
	defer ctx.SessionInterface.Dispose()
	defer ctx.CacheInterface.Dispose()
	controller.InitializeRoute(ctx)
	addr := fmt.Sprintf("%s:%d", cfg.BindAddress, cfg.BindPort)
	log.INFO("Serving at %s", addr)
	err := http.ListenAndServe(addr, nil)
	if err != nil {
		log.ERR("server stopped: %s", err.Error())
		os.Exit(1)
	}
}

func main() {
	configPath := flag.String("config", "./veld-config.json", "path to the config file")
	flag.Usage = printUsage
	flag.Parse()

	switch flag.Arg(0) {
	case "install":
		InstallVeld(*configPath)
	case "reset-admin":
		cfg := loadConfigOrExit(*configPath)
		ResetAdmin(cfg)
	case "", "serve":
		cfg := loadConfigOrExit(*configPath)
		log.Debug = cfg.VerboseLogging
		Serve(cfg)
	default:
		printUsage()
		os.Exit(1)
	}
}
