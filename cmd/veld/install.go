package main

import (
	"fmt"
	"log"
	"math/rand"
	"os"
	"strings"

	"github.com/veldwork/veld/pkg/veld"
	"github.com/veldwork/veld/pkg/veld/db"
	dbinit "github.com/veldwork/veld/pkg/veld/db/init"
	"github.com/veldwork/veld/pkg/veld/model"
	ssinit "github.com/veldwork/veld/pkg/veld/session/init"
	"golang.org/x/crypto/bcrypt"
)

const passchdict = "abcdefghijklmnopqrstuvwxyz0123456789!@#$%_-"
func mkpass() string {
	res := make([]byte, 0)
	for range 16 {
		res = append(res, passchdict[rand.Intn(len(passchdict))])
	}
	return string(res)
}

func askYesNo(prompt string) bool {
	fmt.Printf("%s [y/n] ", prompt)
	result := false
	for {
		var answer string
		_, err := fmt.Scan(&answer)
		if err != nil { log.Panic(err) }
		if answer == "y" || answer == "Y" {
			result = true
			break
		} else if answer == "n" || answer == "N" {
			result = false
			break
		} else {
			fmt.Print("Please enter y or n... [y/n] ")
		}
	}
	return result
}

func askString(prompt string, defaultResult string) string {
	fmt.Printf("%s [%s] ", prompt, defaultResult)
	var answer string
	_, err := fmt.Scan(&answer)
	if err != nil { return defaultResult }
	answer = strings.TrimSpace(answer)
	if len(answer) <= 0 { return defaultResult }
	return answer
}

func setupAdminAccount(dbif db.VeldDatabaseInterface) {
	fmt.Println("Setting up admin account...")
	email := askString("Please input the email of the admin account:", "admin@localhost")
	_, err := dbif.GetAccountByEmail(email)
	adminExists := false
	if err == nil {
		adminExists = true
	} else if err != db.ErrEntityNotFound {
		log.Panic(err)
	}
	if adminExists {
		if !askYesNo(fmt.Sprintf("Account %s already exists; reinitialize?", email)) { return }
		err = dbif.HardDeleteAccountByEmail(email)
		if err != nil { log.Panic(err) }
	}
	password := mkpass()
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil { log.Panicf("Failed to generate password: %s\n", err.Error()) }
	nickname := askString("Please input the nickname of the admin account:", "admin")
	if !model.ValidNickname(nickname) {
		fmt.Printf("Invalid nickname %s; using \"admin\" instead.\n", nickname)
		nickname = "admin"
	}
	_, err = dbif.RegisterAccount(email, nickname, string(passwordHash), model.ADMIN)
	if err != nil { log.Panicf("Failed to register admin account: %s\n", err.Error()) }
	err = dbif.UpdateAccountNickname(email, nickname)
	if err != nil { log.Panicf("Failed to set admin nickname: %s\n", err.Error()) }
	fmt.Printf(`Admin account created with the generated password:

    %s

Please either save this password or use the reset-admin command to
change it:

    %s -config [config-path] reset-admin

`, password, os.Args[0])
}

func InstallVeld(configPath string) {
	_, err := os.Stat(configPath)
	if os.IsNotExist(err) {
		fmt.Printf("No config file found at %s.\n", configPath)
		if !askYesNo("Create a default one?") {
			fmt.Println("Nothing to do then.")
			return
		}
		err = veld.CreateConfigFile(configPath)
		if err != nil { log.Panic(err) }
		fmt.Printf("Default config file created at %s. Please edit it to your liking and run the install command again.\n", configPath)
		return
	}
	cfg, err := veld.LoadConfigFile(configPath)
	if err != nil { log.Panic(err) }

	fmt.Println("Setting up database...")
	if len(cfg.Database.Type) <= 0 {
		fmt.Print("Cannot infer database interface since database type empty in config. Please fix it and try again.")
		os.Exit(1)
	}
	dbif, err := dbinit.InitializeDatabase(cfg)
	if err != nil { log.Panic(err) }
	s, err := dbif.IsDatabaseUsable()
	if err != nil { log.Panic(err) }
	if !s {
		fmt.Println("Setting up tables...")
		err = dbif.InstallTables()
		if err != nil { log.Panic(err) }
	}

	fmt.Println("Setting up session store...")
	if len(cfg.Session.Type) <= 0 {
		fmt.Print("Cannot infer session interface since session type empty in config. Please fix it and try again.")
		os.Exit(1)
	}
	ssif, err := ssinit.InitializeSessionStore(cfg)
	if err != nil { log.Panic(err) }
	s, err = ssif.IsSessionStoreUsable()
	if err != nil { log.Panic(err) }
	if !s {
		err = ssif.Install()
		if err != nil { log.Panic(err) }
	}

	setupAdminAccount(dbif)

	fmt.Println("Done. You can now start the server:")
	fmt.Printf("\n    %s -config %s\n\n", os.Args[0], configPath)
}
