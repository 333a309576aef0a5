package main

import (
	"bufio"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// schemacheck scans migration files and ensures every company-scoped table
// carries a company_id column. Tables scoped transitively (through a parent
// row that itself carries company_id) or global by design are allowlisted.
// Exit code 0 = ok, 1 = violation, 2 = other error.
func main() {
	root := "internal/db/migrations"
	if len(os.Args) > 1 {
		root = os.Args[1]
	}
	violations, err := scan(root)
	if err != nil {
		fmt.Fprintf(os.Stderr, "schemacheck error: %v\n", err)
		os.Exit(2)
	}
	if len(violations) > 0 {
		for _, v := range violations {
			fmt.Fprintf(os.Stderr, "VIOLATION: table %q has no company_id column\n", v)
		}
		os.Exit(1)
	}
	fmt.Println("schemacheck: OK")
}

// Tables that do not need their own company_id column.
var exempt = map[string]bool{
	"companies":          true, // is the scope
	"users":              true, // IdP subject mirror, shared across companies
	"equity_grants":      true, // scoped through company_contractors
	"invoice_line_items": true, // scoped through invoices
	"invoice_expenses":   true, // scoped through invoices
	"equity_allocations": true, // scoped through invoices
	"domain_events":      true, // aggregate-scoped outbox
	"schema_migrations":  true,
}

var reCreateTable = regexp.MustCompile(`(?i)^\s*create\s+table\s+(?:if\s+not\s+exists\s+)?"?([0-9a-z_]+)"?`)

func scan(dir string) ([]string, error) {
	var violations []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".up.sql") {
			return nil
		}
		missing, err := checkFile(path)
		if err != nil {
			return err
		}
		violations = append(violations, missing...)
		return nil
	})
	return violations, err
}

func checkFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = f.Close()
	}()

	var missing []string
	table := ""
	hasCompanyID := false
	flush := func() {
		if table != "" && !hasCompanyID && !exempt[table] {
			missing = append(missing, table)
		}
		table = ""
		hasCompanyID = false
	}

	s := bufio.NewScanner(f)
	for s.Scan() {
		line := s.Text()
		if m := reCreateTable.FindStringSubmatch(line); m != nil {
			flush()
			table = strings.ToLower(m[1])
			continue
		}
		if table == "" {
			continue
		}
		if strings.Contains(strings.ToLower(line), "company_id") {
			hasCompanyID = true
		}
		if strings.Contains(line, ";") {
			flush()
		}
	}
	flush()
	if err := s.Err(); err != nil {
		return nil, err
	}
	return missing, nil
}
