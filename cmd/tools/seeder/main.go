package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

// Development seeder: one company with an admin and a handful of contractors,
// plus equity grants and a couple of submitted invoices to exercise the review
// queue. Safe to re-run.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL is not set")
	}

	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		log.Fatalf("Failed to open DB: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to ping DB: %v", err)
	}

	companyID := seedCompany(db)
	log.Printf("Using company ID: %s", companyID)

	userIDs := seedUsers(db)
	seedAdmin(db, companyID, userIDs["ana@example.com"])
	contractorIDs := seedContractors(db, companyID, userIDs)
	seedGrants(db, contractorIDs)
	seedInvoices(db, companyID, contractorIDs)

	log.Println("Seeding completed successfully!")
}

func seedCompany(db *sql.DB) string {
	var id string
	err := db.QueryRow(`SELECT id FROM companies WHERE name = 'Acme Robotics'`).Scan(&id)
	if err == nil {
		return id
	}
	err = db.QueryRow(`
		INSERT INTO companies (name, currency, equity_compensation_enabled)
		VALUES ('Acme Robotics', 'USD', TRUE)
		RETURNING id;
	`).Scan(&id)
	if err != nil {
		log.Fatalf("Failed to create company: %v", err)
	}
	return id
}

func seedUsers(db *sql.DB) map[string]string {
	users := []struct {
		Subject string
		Email   string
		Name    string
	}{
		{"seed|ana", "ana@example.com", "Ana Costa"},
		{"seed|bruno", "bruno@example.com", "Bruno Lima"},
		{"seed|carla", "carla@example.com", "Carla Mendes"},
		{"seed|diego", "diego@example.com", "Diego Alves"},
		{"seed|elena", "elena@example.com", "Elena Rocha"},
	}

	fmt.Println("Seeding users...")
	ids := make(map[string]string, len(users))
	for _, u := range users {
		var id string
		err := db.QueryRow(`
			INSERT INTO users (external_subject, email, display_name)
			VALUES ($1, $2, $3)
			ON CONFLICT (external_subject) DO UPDATE SET email = EXCLUDED.email, display_name = EXCLUDED.display_name
			RETURNING id;
		`, u.Subject, u.Email, u.Name).Scan(&id)
		if err != nil {
			log.Printf("Failed to seed user %s: %v", u.Email, err)
			continue
		}
		ids[u.Email] = id
	}
	return ids
}

func seedAdmin(db *sql.DB, companyID, userID string) {
	if userID == "" {
		log.Println("Skipping admin seed: user missing")
		return
	}
	fmt.Println("Seeding company admin...")
	if _, err := db.Exec(`
		INSERT INTO company_admins (company_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING;
	`, companyID, userID); err != nil {
		log.Printf("Failed to seed admin: %v", err)
	}
}

func seedContractors(db *sql.DB, companyID string, userIDs map[string]string) map[string]string {
	contractors := []struct {
		Email        string
		Role         string
		PayRateCents int64
		EquityPct    int
	}{
		{"bruno@example.com", "Backend Engineer", 9500, 20},
		{"carla@example.com", "Designer", 8000, 0},
		{"diego@example.com", "Data Engineer", 11000, 35},
		{"elena@example.com", "QA Engineer", 7000, 10},
	}

	fmt.Println("Seeding contractors...")
	ids := make(map[string]string, len(contractors))
	for _, c := range contractors {
		userID := userIDs[c.Email]
		if userID == "" {
			continue
		}
		var id string
		err := db.QueryRow(`
			INSERT INTO company_contractors (company_id, user_id, role, pay_rate_cents, equity_percentage)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (company_id, user_id) DO UPDATE SET
				role = EXCLUDED.role,
				pay_rate_cents = EXCLUDED.pay_rate_cents,
				equity_percentage = EXCLUDED.equity_percentage
			RETURNING id;
		`, companyID, userID, c.Role, c.PayRateCents, c.EquityPct).Scan(&id)
		if err != nil {
			log.Printf("Failed to seed contractor %s: %v", c.Email, err)
			continue
		}
		ids[c.Email] = id
	}
	return ids
}

func seedGrants(db *sql.DB, contractorIDs map[string]string) {
	year := int32(time.Now().Year())
	grants := []struct {
		Email           string
		SharePriceCents int64
		Vested          int64
		Unvested        int64
	}{
		{"bruno@example.com", 250, 4000, 12000},
		{"diego@example.com", 250, 10000, 30000},
		{"elena@example.com", 250, 1000, 5000},
	}

	fmt.Println("Seeding equity grants...")
	for _, g := range grants {
		contractorID := contractorIDs[g.Email]
		if contractorID == "" {
			continue
		}
		var existing int
		if err := db.QueryRow(`
			SELECT COUNT(*) FROM equity_grants
			WHERE company_contractor_id = $1 AND effective_year = $2 AND cancelled_at IS NULL;
		`, contractorID, year).Scan(&existing); err != nil {
			log.Printf("Failed to check grants for %s: %v", g.Email, err)
			continue
		}
		if existing > 0 {
			continue
		}
		if _, err := db.Exec(`
			INSERT INTO equity_grants (company_contractor_id, share_price_cents, effective_year, vested_shares, unvested_shares)
			VALUES ($1, $2, $3, $4, $5);
		`, contractorID, g.SharePriceCents, year, g.Vested, g.Unvested); err != nil {
			log.Printf("Failed to seed grant for %s: %v", g.Email, err)
		}
	}
}

func seedInvoices(db *sql.DB, companyID string, contractorIDs map[string]string) {
	invoices := []struct {
		Email       string
		Number      string
		Services    int64
		Expenses    int64
		EquityPct   int
		EquityCents int64
	}{
		// 20% of 600000 services, floor split, expenses all cash.
		{"bruno@example.com", "INV-0001", 600000, 0, 20, 120000},
		{"carla@example.com", "INV-0001", 240000, 15075, 0, 0},
		{"diego@example.com", "INV-0001", 880000, 4200, 35, 308000},
	}

	fmt.Println("Seeding invoices...")
	for _, inv := range invoices {
		contractorID := contractorIDs[inv.Email]
		if contractorID == "" {
			continue
		}
		total := inv.Services + inv.Expenses
		cash := total - inv.EquityCents
		if _, err := db.Exec(`
			INSERT INTO invoices (
				company_id, company_contractor_id, invoice_number, invoice_date, status,
				services_total_cents, expenses_total_cents, total_amount_cents,
				cash_amount_cents, equity_amount_cents, equity_percentage
			)
			VALUES ($1, $2, $3, CURRENT_DATE, 'RECEIVED', $4, $5, $6, $7, $8, $9)
			ON CONFLICT (company_contractor_id, invoice_number) DO NOTHING;
		`, companyID, contractorID, inv.Number, inv.Services, inv.Expenses, total, cash, inv.EquityCents, inv.EquityPct); err != nil {
			log.Printf("Failed to seed invoice for %s: %v", inv.Email, err)
		}
	}
}
