// cmd/adminctl/main.go
//
// One-shot operator tool: create the administrator account.
//
// Reads name, email, and password interactively, runs them through the
// auth service's validation, and inserts the account.  Exit status is
// non-zero on any failure so provisioning scripts can chain on it.
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
)

func main() {
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

	in := bufio.NewReader(os.Stdin)
	input := auth.AdminInput{
		Name:     prompt(in, "Name"),
		Email:    prompt(in, "Email"),
		Password: prompt(in, "Password"),
	}

	id, err := auth.NewService(db).CreateAdmin(ctx, input)
	if err != nil {
		var verr *auth.ValidationError
		if errors.As(err, &verr) {
			for _, f := range verr.Fields {
				fmt.Fprintf(os.Stderr, "  %s: %s\n", strings.ToLower(f.Field), f.Message)
			}
			os.Exit(1)
		}
		fail("create admin: %v", err)
	}

	fmt.Printf("admin account created (id %d)\n", id)
}

func prompt(in *bufio.Reader, label string) string {
	fmt.Printf("%s: ", label)
	line, _ := in.ReadString('\n')
	return strings.TrimSpace(line)
}

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
