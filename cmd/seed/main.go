// Command seed bootstraps the database with the role set, a default admin
// and test user, and a small product catalog. Safe to run repeatedly.
package main

import (
	"context"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"storefront/internal/config"
	"storefront/internal/db"
	"storefront/internal/logger"
	"storefront/internal/model"
	"storefront/internal/repository"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		l := logger.Get()
		l.Fatal().Err(err).Msg("load config")
	}
	log := logger.Init(cfg.LogLevel, cfg.IsDevelopment())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("database init")
	}
	if err := db.Migrate(gormDB); err != nil {
		log.Fatal().Err(err).Msg("auto-migrate")
	}

	roleRepo := repository.NewRoleRepository(gormDB)
	userRepo := repository.NewUserRepository(gormDB)
	productRepo := repository.NewProductRepository(gormDB)

	seedRoles(ctx, roleRepo)
	seedUsers(ctx, userRepo, roleRepo)
	seedProducts(ctx, productRepo)

	log.Info().Msg("seed completed")
}

func seedRoles(ctx context.Context, repo repository.RoleRepository) {
	log := logger.Get()

	descriptions := map[model.RoleName]string{
		model.RoleAdmin:     "Full administrative access",
		model.RoleModerator: "Content moderation access",
		model.RoleUser:      "Standard customer access",
	}

	for _, name := range model.AllRoles {
		exists, err := repo.ExistsByName(ctx, name)
		if err != nil {
			log.Fatal().Err(err).Str("role", string(name)).Msg("check role")
		}
		if exists {
			continue
		}
		if err := repo.Create(ctx, &model.Role{Name: name, Description: descriptions[name]}); err != nil {
			log.Fatal().Err(err).Str("role", string(name)).Msg("create role")
		}
		log.Info().Str("role", string(name)).Msg("role created")
	}
}

func seedUsers(ctx context.Context, userRepo repository.UserRepository, roleRepo repository.RoleRepository) {
	log := logger.Get()

	adminRole, err := roleRepo.FindByName(ctx, model.RoleAdmin)
	if err != nil {
		log.Fatal().Err(err).Msg("find admin role")
	}
	userRole, err := roleRepo.FindByName(ctx, model.RoleUser)
	if err != nil {
		log.Fatal().Err(err).Msg("find user role")
	}

	users := []struct {
		username, email, password, firstName, lastName string
		roles                                          []model.Role
	}{
		{"admin", "admin@storefront.local", "admin123", "Admin", "User", []model.Role{*adminRole, *userRole}},
		{"testuser", "user@storefront.local", "user123", "Test", "User", []model.Role{*userRole}},
	}

	for _, u := range users {
		exists, err := userRepo.ExistsByUsername(ctx, u.username)
		if err != nil {
			log.Fatal().Err(err).Str("username", u.username).Msg("check user")
		}
		if exists {
			continue
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(u.password), 10)
		if err != nil {
			log.Fatal().Err(err).Msg("hash password")
		}

		user := &model.User{
			Username:     u.username,
			Email:        u.email,
			PasswordHash: string(hashed),
			FirstName:    u.firstName,
			LastName:     u.lastName,
			Enabled:      true,
			Roles:        u.roles,
		}
		if err := userRepo.Create(ctx, user); err != nil {
			log.Fatal().Err(err).Str("username", u.username).Msg("create user")
		}
		log.Info().Str("username", u.username).Msg("user created")
	}
}

func seedProducts(ctx context.Context, repo repository.ProductRepository) {
	log := logger.Get()

	products := []model.Product{
		{Name: "Mechanical Keyboard", Description: "Tenkeyless, hot-swappable switches", Price: decimal.NewFromFloat(89.99), StockQuantity: 50, Category: "Electronics"},
		{Name: "Wireless Mouse", Description: "Low-latency 2.4GHz mouse", Price: decimal.NewFromFloat(39.99), StockQuantity: 120, Category: "Electronics"},
		{Name: "Laptop Stand", Description: "Adjustable aluminium stand", Price: decimal.NewFromFloat(24.50), StockQuantity: 75, Category: "Accessories"},
		{Name: "USB-C Hub", Description: "7-in-1 hub with HDMI and PD", Price: decimal.NewFromFloat(45.00), StockQuantity: 60, Category: "Accessories"},
		{Name: "Desk Lamp", Description: "Dimmable LED lamp", Price: decimal.NewFromFloat(32.75), StockQuantity: 40, Category: "Home Office"},
	}

	for i := range products {
		exists, err := repo.ExistsByName(ctx, products[i].Name)
		if err != nil {
			log.Fatal().Err(err).Str("product", products[i].Name).Msg("check product")
		}
		if exists {
			continue
		}
		if err := repo.Create(ctx, &products[i]); err != nil {
			if err == gorm.ErrDuplicatedKey {
				continue
			}
			log.Fatal().Err(err).Str("product", products[i].Name).Msg("create product")
		}
		log.Info().Str("product", products[i].Name).Msg("product created")
	}
}
