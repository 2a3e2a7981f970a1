package main

import (
	"context"
	"fmt"
	"log"

	"github.com/joho/godotenv"

	"github.com/iamasim4u/atcl-leave-system/domain"
	"github.com/iamasim4u/atcl-leave-system/internal/config"
	"github.com/iamasim4u/atcl-leave-system/internal/infrastructure/auth"
	"github.com/iamasim4u/atcl-leave-system/internal/infrastructure/database"
	"github.com/iamasim4u/atcl-leave-system/internal/infrastructure/repositories"
)

type seedUser struct {
	username   string
	name       string
	email      string
	role       domain.Role
	department string
	managerIdx int // 1-based index into this list, 0 for none
}

// Demo directory: three departments, each employee reporting to their own
// manager, plus one HR officer and the COO.
var seedUsers = []seedUser{
	{"john.doe", "John Doe", "john.doe@atcl.sa", domain.RoleEmployee, "Software Development", 2},
	{"sarah.manager", "Sarah Al-Rashid", "sarah.manager@atcl.sa", domain.RoleManager, "Software Development", 0},
	{"hr.admin", "Ahmed Al-Mahmoud", "hr.admin@atcl.sa", domain.RoleHR, "Human Resources", 0},
	{"coo.executive", "Fatima Al-Zahra", "coo@atcl.sa", domain.RoleCOO, "Executive", 0},
	{"ali.sales", "Ali Al-Saleh", "ali.sales@atcl.sa", domain.RoleEmployee, "Sales", 6},
	{"omar.salesmgr", "Omar Al-Farsi", "omar.salesmgr@atcl.sa", domain.RoleManager, "Sales", 0},
	{"nora.finance", "Nora Al-Ghamdi", "nora.finance@atcl.sa", domain.RoleEmployee, "Finance", 8},
	{"fahad.finmgr", "Fahad Al-Qahtani", "fahad.finmgr@atcl.sa", domain.RoleManager, "Finance", 0},
}

const seedPassword = "password123"

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := database.Open(cfg.DSN)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	ctx := context.Background()
	userRepo := repositories.NewUserRepository(db)
	passwordSvc := auth.NewPasswordService()

	hash, err := passwordSvc.Hash(seedPassword)
	if err != nil {
		log.Fatalf("hash: %v", err)
	}

	// First pass: create everyone; second pass: wire manager references by
	// the assigned IDs.
	created := make([]*domain.User, len(seedUsers))
	for i, su := range seedUsers {
		if existing, err := userRepo.FindByUsername(ctx, su.username); err == nil {
			fmt.Printf("skip %-16s already present (id=%d)\n", su.username, existing.ID)
			created[i] = existing
			continue
		}

		u := &domain.User{
			Username:     su.username,
			Name:         su.name,
			Email:        su.email,
			PasswordHash: hash,
			Role:         su.role,
			Department:   su.department,
		}
		if err := userRepo.Create(ctx, u); err != nil {
			log.Fatalf("create %s: %v", su.username, err)
		}
		created[i] = u
		fmt.Printf("created %-16s id=%d role=%s\n", su.username, u.ID, su.role)
	}

	for i, su := range seedUsers {
		if su.managerIdx == 0 {
			continue
		}
		manager := created[su.managerIdx-1]
		user := created[i]
		if user.ManagerID != nil && *user.ManagerID == manager.ID {
			continue
		}
		id := manager.ID
		user.ManagerID = &id
		if err := userRepo.Update(ctx, user); err != nil {
			log.Fatalf("bind manager for %s: %v", su.username, err)
		}
		fmt.Printf("bound %-16s -> manager %s (id=%d)\n", su.username, manager.Username, manager.ID)
	}

	fmt.Println("seed complete")
}
