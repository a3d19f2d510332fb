// Package main runs end-to-end checks against a running lead intake API.
//
// Scenarios cover:
//   - Health and metrics endpoints
//   - Submit a lead, then find its row in the listing
//   - Same payload twice stores two rows
//   - CORS preflight from the portfolio origin
//
// Every run appends real rows to the configured spreadsheet. Point it at a
// test spreadsheet.
//
// Usage:
//
//	API_BASE_URL=... go run scripts/e2e/run_e2e.go [scenario-name]
//	API_BASE_URL=... go run scripts/e2e/run_e2e.go              # runs all
//	API_BASE_URL=... go run scripts/e2e/run_e2e.go submit-list  # runs one
package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/SebasPM15/landing-personal/internal/leadclient"
	"github.com/SebasPM15/landing-personal/internal/leads"
)

var (
	apiBase string
	client  *leadclient.Client
)

type scenario struct {
	Name string
	Fn   func(t *T)
}

// T is a lightweight test context for a single scenario.
type T struct {
	passed int
	failed int
	name   string
}

func (t *T) check(name string, ok bool) {
	if ok {
		fmt.Printf("    PASS: %s\n", name)
		t.passed++
	} else {
		fmt.Printf("    FAIL: %s\n", name)
		t.failed++
	}
}

func (t *T) fatalf(format string, args ...interface{}) {
	fmt.Printf("    FATAL: "+format+"\n", args...)
	t.failed++
}

func uniqueLead() leads.Lead {
	tag := uuid.NewString()[:8]
	return leads.Lead{
		Name:    "E2E " + tag,
		Email:   "e2e+" + tag + "@example.com",
		Message: "e2e run " + tag,
	}
}

func countRows(rows []leads.Row, email string) int {
	n := 0
	for _, row := range rows {
		if len(row) > 1 && row[1] == email {
			n++
		}
	}
	return n
}

func get(path string) (int, string, error) {
	resp, err := http.Get(apiBase + path)
	if err != nil {
		return 0, "", err
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, string(body), nil
}

func scenarioHealth(t *T) {
	status, _, err := get("/health")
	if err != nil {
		t.fatalf("health: %v", err)
		return
	}
	t.check("health returns 200", status == http.StatusOK)

	status, body, err := get("/metrics")
	if err != nil {
		t.fatalf("metrics: %v", err)
		return
	}
	t.check("metrics returns 200", status == http.StatusOK)
	t.check("metrics exports lead counters", strings.Contains(body, "landing_leads_submissions_total"))
}

func scenarioSubmitList(t *T) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	lead := uniqueLead()
	msg, err := client.CreateLead(ctx, lead)
	if err != nil {
		t.fatalf("submit: %v", err)
		return
	}
	t.check("confirmation message", msg == leads.ConfirmationMessage)

	rows, err := client.ListLeads(ctx)
	if err != nil {
		t.fatalf("list: %v", err)
		return
	}
	t.check("row is listed once", countRows(rows, lead.Email) == 1)
	if n := len(rows); n > 0 {
		t.check("newest row is last", countRows(rows[n-1:], lead.Email) == 1)
	}
}

func scenarioDuplicate(t *T) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	lead := uniqueLead()
	for i := 0; i < 2; i++ {
		if _, err := client.CreateLead(ctx, lead); err != nil {
			t.fatalf("submit %d: %v", i+1, err)
			return
		}
	}
	rows, err := client.ListLeads(ctx)
	if err != nil {
		t.fatalf("list: %v", err)
		return
	}
	t.check("duplicate payload stores two rows", countRows(rows, lead.Email) == 2)
}

func scenarioCORS(t *T) {
	req, _ := http.NewRequest(http.MethodOptions, apiBase+"/leads", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.fatalf("preflight: %v", err)
		return
	}
	defer resp.Body.Close()

	t.check("preflight returns 204", resp.StatusCode == http.StatusNoContent)
	t.check("origin allowed", resp.Header.Get("Access-Control-Allow-Origin") != "")
	t.check("POST allowed", strings.Contains(resp.Header.Get("Access-Control-Allow-Methods"), http.MethodPost))
}

func main() {
	apiBase = strings.TrimRight(os.Getenv("API_BASE_URL"), "/")
	if apiBase == "" {
		apiBase = leadclient.DefaultBaseURL
	}
	client = leadclient.New(leadclient.Config{BaseURL: apiBase})

	scenarios := []scenario{
		{"health", scenarioHealth},
		{"submit-list", scenarioSubmitList},
		{"duplicate", scenarioDuplicate},
		{"cors", scenarioCORS},
	}

	filter := ""
	if len(os.Args) > 1 {
		filter = os.Args[1]
	}

	totalPassed, totalFailed := 0, 0
	for _, sc := range scenarios {
		if filter != "" && sc.Name != filter {
			continue
		}
		fmt.Printf("\n=== %s ===\n", sc.Name)
		t := &T{name: sc.Name}
		sc.Fn(t)
		totalPassed += t.passed
		totalFailed += t.failed
	}

	fmt.Printf("\n%d passed, %d failed\n", totalPassed, totalFailed)
	if totalFailed > 0 {
		os.Exit(1)
	}
}
