package main

import (
	"fmt"
	"os"

	"github.com/veldwork/veld/pkg/veld"
	"github.com/veldwork/veld/pkg/veld/db"
	dbinit "github.com/veldwork/veld/pkg/veld/db/init"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/term"
)

func ResetAdmin(cfg *veld.VeldConfig) {
	dbif, err := dbinit.InitializeDatabase(cfg)
	if err != nil {
		fmt.Printf("Failed to connect to database while resetting password: %s\n", err.Error())
		return
	}
	fmt.Printf("This utility is here for changing the password of an account.\n")
	email := askString("Please input the email of the account:", "admin@localhost")
	_, err = dbif.GetAccountByEmail(email)
	if err == db.ErrEntityNotFound {
		fmt.Printf("No account with email %s.\n", email)
		return
	}
	if err != nil {
		fmt.Printf("Failed to look up account while resetting password: %s\n", err.Error())
		return
	}
	fmt.Printf("Please enter a new password: ")
	s, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		fmt.Printf("Failed to read password while resetting password: %s\n", err.Error())
		return
	}
	hashedS, err := bcrypt.GenerateFromPassword(s, bcrypt.DefaultCost)
	if err != nil {
		fmt.Printf("Failed to hash password with bcrypt while resetting password: %s\n", err.Error())
		return
	}
	err = dbif.UpdateAccountPassword(email, string(hashedS))
	if err != nil {
		fmt.Printf("Failed to update password while resetting password: %s\n", err.Error())
		return
	}
	fmt.Printf("Done.\n")
}
