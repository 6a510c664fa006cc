// Command seed creates the reporting schema and loads a demo dataset so
// the dashboards render something meaningful on a fresh database.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"

	"github.com/orbis-edu/school-bi-api/internal/repository"
	"github.com/orbis-edu/school-bi-api/internal/service"
	"github.com/orbis-edu/school-bi-api/pkg/cache"
	"github.com/orbis-edu/school-bi-api/pkg/config"
	"github.com/orbis-edu/school-bi-api/pkg/database"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS schools (
        id UUID PRIMARY KEY,
        name TEXT NOT NULL,
        city TEXT NOT NULL
    )`,
	`CREATE TABLE IF NOT EXISTS students (
        id UUID PRIMARY KEY,
        school_id UUID NOT NULL REFERENCES schools(id),
        full_name TEXT NOT NULL,
        class_name TEXT NOT NULL,
        enrollment_status TEXT NOT NULL,
        has_siblings BOOLEAN NOT NULL DEFAULT FALSE
    )`,
	`CREATE TABLE IF NOT EXISTS academic_performance (
        id UUID PRIMARY KEY,
        student_id UUID NOT NULL REFERENCES students(id),
        subject TEXT NOT NULL,
        final_grade NUMERIC(4,2) NOT NULL,
        attendance_pct NUMERIC(5,2) NOT NULL
    )`,
	`CREATE TABLE IF NOT EXISTS monthly_metrics (
        id UUID PRIMARY KEY,
        metric_kind TEXT NOT NULL,
        reference_month DATE NOT NULL,
        value NUMERIC(10,2) NOT NULL,
        unit TEXT NOT NULL DEFAULT '',
        UNIQUE (metric_kind, reference_month)
    )`,
	`CREATE TABLE IF NOT EXISTS billing_invoices (
        id UUID PRIMARY KEY,
        student_id UUID NOT NULL REFERENCES students(id),
        reference_month DATE NOT NULL,
        amount NUMERIC(10,2) NOT NULL,
        payment_status TEXT NOT NULL,
        created_at TIMESTAMPTZ NOT NULL DEFAULT now()
    )`,
	`CREATE TABLE IF NOT EXISTS expenses (
        id UUID PRIMARY KEY,
        category TEXT NOT NULL,
        reference_month DATE NOT NULL,
        amount NUMERIC(10,2) NOT NULL
    )`,
	`CREATE TABLE IF NOT EXISTS support_tickets (
        id UUID PRIMARY KEY,
        status TEXT NOT NULL,
        opened_at TIMESTAMPTZ NOT NULL,
        resolved_at TIMESTAMPTZ
    )`,
	`CREATE TABLE IF NOT EXISTS exam_results (
        id UUID PRIMARY KEY,
        math_score INT,
        languages_score INT,
        humanities_score INT,
        science_score INT,
        essay_score INT
    )`,
	`CREATE TABLE IF NOT EXISTS users (
        id UUID PRIMARY KEY,
        email TEXT NOT NULL UNIQUE,
        full_name TEXT NOT NULL,
        password_hash TEXT NOT NULL,
        active BOOLEAN NOT NULL DEFAULT TRUE,
        created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
        last_login_at TIMESTAMPTZ
    )`,
}

func main() {
	adminEmail := flag.String("admin-email", "admin@escola.local", "seeded operator email")
	adminPassword := flag.String("admin-password", "changeme123", "seeded operator password")
	skipDemo := flag.Bool("schema-only", false, "create tables without demo data")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			log.Fatalf("failed to create schema: %v", err)
		}
	}
	log.Println("schema ready")

	if err := seedAdmin(ctx, db, *adminEmail, *adminPassword); err != nil {
		log.Fatalf("failed to seed admin user: %v", err)
	}

	if *skipDemo {
		return
	}

	if err := seedDemoData(ctx, db); err != nil {
		log.Fatalf("failed to seed demo data: %v", err)
	}
	log.Println("demo data loaded")

	flushCache(ctx, cfg)
}

// flushCache drops cached dashboard payloads so a reseeded store is not
// served stale aggregates. Missing Redis is not a failure.
func flushCache(ctx context.Context, cfg *config.Config) {
	if !cfg.Dashboard.CacheEnabled {
		return
	}

	client, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		log.Printf("redis unavailable, skipping cache flush: %v", err)
		return
	}

	cacheRepo := repository.NewCacheRepository(client, nil)
	defer cacheRepo.Close()

	cacheSvc := service.NewCacheService(cacheRepo, nil, 0, nil, true)
	for _, pattern := range []string{"dash:*", "analytics:*"} {
		if err := cacheSvc.Invalidate(ctx, pattern); err != nil {
			log.Printf("failed to flush cached pattern %s: %v", pattern, err)
		}
	}
	log.Println("dashboard cache flushed")
}

func seedAdmin(ctx context.Context, db *sqlx.DB, email, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	_, err = db.ExecContext(ctx, `INSERT INTO users (id, email, full_name, password_hash, active)
        VALUES ($1, $2, $3, $4, TRUE)
        ON CONFLICT (email) DO NOTHING`,
		uuid.NewString(), email, "Administrador", string(hash))
	return err
}

func seedDemoData(ctx context.Context, db *sqlx.DB) error {
	var count int
	if err := db.GetContext(ctx, &count, `SELECT COUNT(*) FROM schools`); err != nil {
		return err
	}
	if count > 0 {
		log.Println("demo data already present, skipping")
		return nil
	}

	rng := rand.New(rand.NewSource(42))

	schools := []struct {
		id   string
		name string
		city string
	}{
		{uuid.NewString(), "Unidade Centro", "Rio de Janeiro"},
		{uuid.NewString(), "Unidade Paulista", "São Paulo"},
		{uuid.NewString(), "Unidade Batel", "Curitiba"},
	}
	for _, school := range schools {
		if _, err := db.ExecContext(ctx, `INSERT INTO schools (id, name, city) VALUES ($1, $2, $3)`,
			school.id, school.name, school.city); err != nil {
			return err
		}
	}

	subjects := []string{"Matemática", "Português", "História", "Geografia", "Ciências"}
	classes := []string{"6A", "7A", "8A", "9A"}
	statuses := []string{"Active", "Active", "Active", "Enrolled", "Dropped"}

	var studentIDs []string
	for i := 0; i < 120; i++ {
		id := uuid.NewString()
		school := schools[rng.Intn(len(schools))]
		status := statuses[rng.Intn(len(statuses))]
		if _, err := db.ExecContext(ctx, `INSERT INTO students (id, school_id, full_name, class_name, enrollment_status, has_siblings)
            VALUES ($1, $2, $3, $4, $5, $6)`,
			id, school.id, fmt.Sprintf("Aluno %03d", i+1), classes[rng.Intn(len(classes))], status, rng.Intn(4) == 0); err != nil {
			return err
		}
		if status != "Dropped" {
			studentIDs = append(studentIDs, id)
		}

		for _, subject := range subjects {
			grade := 3 + rng.Float64()*7
			attendance := 60 + rng.Float64()*40
			if _, err := db.ExecContext(ctx, `INSERT INTO academic_performance (id, student_id, subject, final_grade, attendance_pct)
                VALUES ($1, $2, $3, $4, $5)`,
				uuid.NewString(), id, subject, grade, attendance); err != nil {
				return err
			}
		}
	}

	now := time.Now().UTC()
	metricKinds := map[string]func(int) float64{
		"health_score":        func(i int) float64 { return 70 + float64(i) + rng.Float64()*5 },
		"nps":                 func(i int) float64 { return 55 + float64(i)/2 + rng.Float64()*8 },
		"dropout_rate":        func(i int) float64 { return 7 - float64(i)*0.3 + rng.Float64() },
		"sla_secretariat":     func(int) float64 { return 1.5 + rng.Float64() },
		"teacher_absenteeism": func(int) float64 { return 2 + rng.Float64() },
		"it_uptime":           func(int) float64 { return 99 + rng.Float64() },
	}
	for kind, gen := range metricKinds {
		for i := 0; i < 12; i++ {
			month := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, i-11, 0)
			if _, err := db.ExecContext(ctx, `INSERT INTO monthly_metrics (id, metric_kind, reference_month, value, unit)
                VALUES ($1, $2, $3, $4, '')`,
				uuid.NewString(), kind, month, gen(i)); err != nil {
				return err
			}
		}
	}

	paymentStatuses := []string{"Paid", "Paid", "Paid", "Pending", "Overdue"}
	for i := 0; i < 12; i++ {
		month := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, i-11, 0)
		for j := 0; j < 40; j++ {
			student := studentIDs[rng.Intn(len(studentIDs))]
			if _, err := db.ExecContext(ctx, `INSERT INTO billing_invoices (id, student_id, reference_month, amount, payment_status, created_at)
                VALUES ($1, $2, $3, $4, $5, $6)`,
				uuid.NewString(), student, month, 800+rng.Float64()*700, paymentStatuses[rng.Intn(len(paymentStatuses))],
				month.AddDate(0, 0, rng.Intn(28))); err != nil {
				return err
			}
		}
	}

	expenseCategories := []string{"Payroll", "Energy", "Maintenance", "Supplies", "Cleaning"}
	for i := 0; i < 12; i++ {
		month := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, i-11, 0)
		for _, category := range expenseCategories {
			if _, err := db.ExecContext(ctx, `INSERT INTO expenses (id, category, reference_month, amount)
                VALUES ($1, $2, $3, $4)`,
				uuid.NewString(), category, month, 2000+rng.Float64()*8000); err != nil {
				return err
			}
		}
	}

	ticketStatuses := []string{"Open", "In Progress", "Pending", "Resolved", "Resolved", "Resolved"}
	for i := 0; i < 80; i++ {
		status := ticketStatuses[rng.Intn(len(ticketStatuses))]
		opened := now.AddDate(0, 0, -rng.Intn(60))
		var resolved interface{}
		if status == "Resolved" {
			resolved = opened.Add(time.Duration(rng.Intn(72)) * time.Hour)
		}
		if _, err := db.ExecContext(ctx, `INSERT INTO support_tickets (id, status, opened_at, resolved_at)
            VALUES ($1, $2, $3, $4)`,
			uuid.NewString(), status, opened, resolved); err != nil {
			return err
		}
	}

	for i := 0; i < 200; i++ {
		if _, err := db.ExecContext(ctx, `INSERT INTO exam_results (id, math_score, languages_score, humanities_score, science_score, essay_score)
            VALUES ($1, $2, $3, $4, $5, $6)`,
			uuid.NewString(), 350+rng.Intn(500), 400+rng.Intn(450), 380+rng.Intn(470), 360+rng.Intn(480), 300+rng.Intn(700)); err != nil {
			return err
		}
	}

	return nil
}
