package main

import (
	"context"
	"errors"
	"log"
	"os"

	"gorm.io/gorm"

	"courtflow/internal/auth"
	"courtflow/internal/config"
	"courtflow/internal/db"
	"courtflow/internal/model"
	"courtflow/internal/repository"
	"courtflow/internal/service"
)

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Court{},
		&model.CaseType{},
	); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	ctx := context.Background()
	userRepo := repository.NewUserRepository(gormDB)
	courtRepo := repository.NewCourtRepository(gormDB)
	caseTypeRepo := repository.NewCaseTypeRepository(gormDB)

	if err := seedAdmin(ctx, userRepo); err != nil {
		log.Fatalf("Failed to seed admin: %v", err)
	}
	if err := seedCourts(ctx, courtRepo); err != nil {
		log.Fatalf("Failed to seed courts: %v", err)
	}
	if err := seedCaseTypes(ctx, caseTypeRepo); err != nil {
		log.Fatalf("Failed to seed case types: %v", err)
	}

	log.Println("Seed completed successfully!")
}

// seedAdmin creates the initial admin identity if no user holds the username
// yet. The password comes from ADMIN_PASSWORD; without it the step is skipped
// so a production seed run never plants a known credential.
func seedAdmin(ctx context.Context, repo repository.UserRepository) error {
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		log.Println("ADMIN_PASSWORD not set, skipping admin seed")
		return nil
	}

	if _, err := repo.FindByUsername(ctx, "admin"); err == nil {
		log.Println("Admin user already exists, skipping")
		return nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	admin := &model.User{
		Username:     "admin",
		Email:        "admin@courtflow.local",
		PasswordHash: hash,
		FullName:     "System Administrator",
		Role:         model.RoleAdmin,
		Verified:     true,
	}
	if err := repo.Create(ctx, admin); err != nil {
		return err
	}
	log.Printf("Admin user created (id=%d)", admin.ID)
	return nil
}

func seedCourts(ctx context.Context, repo repository.CourtRepository) error {
	svc := service.NewCourtService(repo)
	courts := []struct {
		name, code, location string
	}{
		{"High Court of Karnataka", "KAHC", "Bengaluru"},
		{"City Civil Court", "BCCC", "Bengaluru"},
		{"District and Sessions Court", "MYDC", "Mysuru"},
	}

	created := 0
	for _, c := range courts {
		if _, err := svc.Create(ctx, c.name, c.code, c.location); err != nil {
			log.Printf("Skipping court %q: %v", c.name, err)
			continue
		}
		created++
	}
	log.Printf("Courts seeded: %d new", created)
	return nil
}

func seedCaseTypes(ctx context.Context, repo repository.CaseTypeRepository) error {
	svc := service.NewCaseTypeService(repo)
	types := []struct {
		name, code, description string
	}{
		{"Civil Suit", "CS", "Original civil suits"},
		{"Criminal Case", "CC", "Criminal prosecutions"},
		{"Writ Petition", "WP", "Constitutional writ petitions"},
		{"Family Dispute", "FD", "Matrimonial and custody matters"},
	}

	created := 0
	for _, t := range types {
		if _, err := svc.Create(ctx, t.name, t.code, t.description); err != nil {
			log.Printf("Skipping case type %q: %v", t.name, err)
			continue
		}
		created++
	}
	log.Printf("Case types seeded: %d new", created)
	return nil
}
