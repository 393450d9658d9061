package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/T69Chichass/TaxerPay-Backend/internal/auth"
	"github.com/T69Chichass/TaxerPay-Backend/internal/model"
	"github.com/T69Chichass/TaxerPay-Backend/internal/repository"
)

type output struct {
	AdminID    string `json:"admin_id"`
	EmployeeID string `json:"employee_id"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Department string `json:"department"`
}

// Creates the first admin account directly against the database, for
// environments where the open /api/admin/register route is fronted by a
// firewall or disabled entirely.
func main() {
	var (
		databaseURL = flag.String("database-url", os.Getenv("DATABASE_URL"), "PostgreSQL connection string")
		employeeID  = flag.String("employee-id", "", "Admin employee ID (login identifier)")
		password    = flag.String("password", "", "Admin password")
		firstName   = flag.String("first-name", "System", "Admin first name")
		lastName    = flag.String("last-name", "Admin", "Admin last name")
		department  = flag.String("department", "Revenue", "Admin department")
		format      = flag.String("format", "plain", "Output format: plain or json")
	)
	flag.Parse()

	if *databaseURL == "" {
		fmt.Fprintln(os.Stderr, "DATABASE_URL is required")
		os.Exit(1)
	}
	if *employeeID == "" || *password == "" {
		fmt.Fprintln(os.Stderr, "-employee-id and -password are required")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	repo, err := repository.New(ctx, *databaseURL)
	if err != nil {
		fmt.Fprintln(os.Stderr, "connect database:", err)
		os.Exit(1)
	}
	defer repo.Close()

	passwordHash, err := auth.HashPassword(*password)
	if err != nil {
		fmt.Fprintln(os.Stderr, "hash password:", err)
		os.Exit(1)
	}

	now := time.Now().UTC()
	admin := &model.Principal{
		ID:           ulid.Make().String(),
		Kind:         model.KindAdmin,
		NaturalKey:   strings.ToUpper(strings.TrimSpace(*employeeID)),
		PasswordHash: passwordHash,
		FirstName:    *firstName,
		LastName:     *lastName,
		Profile: map[string]any{
			"department":  *department,
			"permissions": []string{"all"},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := repo.CreatePrincipal(ctx, admin); err != nil {
		fmt.Fprintln(os.Stderr, "create admin:", err)
		os.Exit(1)
	}

	out := output{
		AdminID:    admin.ID,
		EmployeeID: admin.NaturalKey,
		FirstName:  admin.FirstName,
		LastName:   admin.LastName,
		Department: *department,
	}

	switch strings.ToLower(*format) {
	case "plain":
		fmt.Println(out.AdminID)
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(out)
	default:
		fmt.Fprintln(os.Stderr, "invalid format; use plain or json")
		os.Exit(1)
	}
}
