// cmd/logincheck/main.go
//
// Login diagnostic: look up an account by email and report whether a
// typed password verifies against the stored hash.  Useful when an
// operator needs to tell "no such account" from "bad hash" without
// loosening the API's deliberately opaque 401.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/oakharbor/storefront/internal/auth"
	"github.com/oakharbor/storefront/internal/config"
	"github.com/oakharbor/storefront/internal/database"
	"github.com/oakharbor/storefront/internal/user"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: logincheck <email>")
		os.Exit(2)
	}
	email := os.Args[1]

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cfg, err := config.Load(ctx)
	if err != nil {
		fail("load config: %v", err)
	}

	db, err := database.Open(cfg.Database.ResolvedDSN())
	if err != nil {
		fail("connect database: %v", err)
	}
	defer db.Close()

	u, err := user.FindByEmailWithRole(ctx, db, email)
	if errors.Is(err, database.ErrNotFound) {
		fail("no account for %s", email)
	}
	if err != nil {
		fail("lookup: %v", err)
	}

	fmt.Printf("found: id=%d name=%q role=%s active=%v\n",
		u.ID, u.Name, u.RoleName, u.IsActive)

	fmt.Print("Password: ")
	line, _ := bufio.NewReader(os.Stdin).ReadString('\n')

	if auth.VerifyPassword(strings.TrimSpace(line), u.PasswordHash) {
		fmt.Println("password verifies: yes")
		return
	}
	fmt.Println("password verifies: no")
	os.Exit(1)
}

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
