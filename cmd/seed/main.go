// Package main implements the database seeding tool. It fills the database
// with an admin account and generated demo data so the API has something to
// serve out of the box.
package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/emberhq/portfolio-api/internal/config"
	"github.com/emberhq/portfolio-api/internal/domain"
	"github.com/emberhq/portfolio-api/internal/platform/logger"
	"github.com/emberhq/portfolio-api/internal/platform/postgres"
	"github.com/emberhq/portfolio-api/internal/store"
)

// seedPassword is the password every generated demo account gets. It meets
// the complexity rules so the accounts can actually log in.
const seedPassword = "Password123"

func main() {
	userCount := flag.Int("users", 10, "number of demo users to create")
	productCount := flag.Int("products", 20, "number of demo products to create")
	orderCount := flag.Int("orders", 15, "number of demo orders to create")
	postCount := flag.Int("posts", 10, "number of demo blog posts to create")
	adminPassword := flag.String("admin-password", "Admin123!", "password for the admin account")
	randomSeed := flag.Uint64("seed", 1, "seed for the fake data generator")
	flag.Parse()

	if err := run(*userCount, *productCount, *orderCount, *postCount, *adminPassword, *randomSeed); err != nil {
		log.Fatalf("seed: %v", err)
	}
}

func run(userCount, productCount, orderCount, postCount int, adminPassword string, randomSeed uint64) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.Setup(logger.Config{Level: cfg.Server.LogLevel})
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	db, err := setupDatabase(cfg, appLogger)
	if err != nil {
		return fmt.Errorf("failed to set up database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			appLogger.Error("Error closing database connection", "error", err)
		}
	}()

	ctx := context.Background()
	faker := gofakeit.New(randomSeed)

	seeder := &seeder{
		faker:        faker,
		logger:       appLogger,
		userStore:    postgres.NewPostgresUserStore(db, cfg.Auth.BcryptCost),
		productStore: postgres.NewPostgresProductStore(db),
		orderStore:   postgres.NewPostgresOrderStore(db),
		postStore:    postgres.NewPostgresBlogPostStore(db),
	}

	admin, err := seeder.seedAdmin(ctx, adminPassword)
	if err != nil {
		return err
	}

	users, err := seeder.seedUsers(ctx, userCount)
	if err != nil {
		return err
	}

	products, err := seeder.seedProducts(ctx, productCount)
	if err != nil {
		return err
	}

	if err := seeder.seedOrders(ctx, orderCount, users, products); err != nil {
		return err
	}

	if err := seeder.seedPosts(ctx, postCount, admin.ID); err != nil {
		return err
	}

	appLogger.Info("Seeding completed",
		"users", userCount,
		"products", productCount,
		"orders", orderCount,
		"posts", postCount)
	return nil
}

// setupDatabase opens and verifies the database connection.
func setupDatabase(cfg *config.Config, logger *slog.Logger) (*sql.DB, error) {
	db, err := sql.Open("pgx", cfg.Database.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info("Database connection established")
	return db, nil
}

// seeder holds the stores and the fake data generator used by the
// individual seeding steps.
type seeder struct {
	faker  *gofakeit.Faker
	logger *slog.Logger

	userStore    store.UserStore
	productStore store.ProductStore
	orderStore   store.OrderStore
	postStore    store.BlogPostStore
}

// seedAdmin creates the admin account, or loads the existing one when the
// database has been seeded before.
func (s *seeder) seedAdmin(ctx context.Context, password string) (*domain.User, error) {
	admin, err := domain.NewUser("admin", "admin@example.com", password)
	if err != nil {
		return nil, fmt.Errorf("invalid admin account: %w", err)
	}
	admin.Role = domain.RoleAdmin
	admin.FirstName = "Admin"
	admin.LastName = "User"

	err = s.userStore.Create(ctx, admin)
	switch {
	case errors.Is(err, store.ErrUsernameExists), errors.Is(err, store.ErrEmailExists):
		s.logger.Info("Admin account already exists, reusing it")
		return s.userStore.GetByUsername(ctx, "admin")
	case err != nil:
		return nil, fmt.Errorf("failed to create admin account: %w", err)
	}

	s.logger.Info("Admin account created", "username", admin.Username)
	return admin, nil
}

func (s *seeder) seedUsers(ctx context.Context, count int) ([]*domain.User, error) {
	users := make([]*domain.User, 0, count)
	for i := 0; i < count; i++ {
		username := fmt.Sprintf("%s%d", strings.ToLower(s.faker.Username()), i)
		email := fmt.Sprintf("%s@%s", username, s.faker.DomainName())

		user, err := domain.NewUser(username, email, seedPassword)
		if err != nil {
			return nil, fmt.Errorf("failed to build user %q: %w", username, err)
		}
		user.FirstName = s.faker.FirstName()
		user.LastName = s.faker.LastName()

		if err := s.userStore.Create(ctx, user); err != nil {
			return nil, fmt.Errorf("failed to create user %q: %w", username, err)
		}
		users = append(users, user)
	}

	s.logger.Info("Users created", "count", len(users))
	return users, nil
}

func (s *seeder) seedProducts(ctx context.Context, count int) ([]*domain.Product, error) {
	products := make([]*domain.Product, 0, count)
	for i := 0; i < count; i++ {
		product, err := domain.NewProduct(
			s.faker.ProductName(),
			s.faker.ProductDescription(),
			s.faker.Price(5, 500),
			s.faker.Number(0, 100),
			s.faker.ProductCategory(),
			s.faker.URL(),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to build product: %w", err)
		}

		if err := s.productStore.Create(ctx, product); err != nil {
			return nil, fmt.Errorf("failed to create product %q: %w", product.Name, err)
		}
		products = append(products, product)
	}

	s.logger.Info("Products created", "count", len(products))
	return products, nil
}

func (s *seeder) seedOrders(
	ctx context.Context,
	count int,
	users []*domain.User,
	products []*domain.Product,
) error {
	if len(users) == 0 || len(products) == 0 {
		s.logger.Info("Skipping orders, no users or products to order with")
		return nil
	}

	paymentMethods := []string{
		domain.PaymentMethodCreditCard,
		domain.PaymentMethodPayPal,
		domain.PaymentMethodBankTransfer,
	}

	for i := 0; i < count; i++ {
		buyer := users[s.faker.Number(0, len(users)-1)]

		itemCount := s.faker.Number(1, 3)
		items := make([]domain.OrderItem, 0, itemCount)
		for j := 0; j < itemCount; j++ {
			product := products[s.faker.Number(0, len(products)-1)]
			items = append(items, domain.OrderItem{
				ProductID: product.ID,
				Quantity:  s.faker.Number(1, 3),
				Price:     product.Price,
			})
		}

		address := fmt.Sprintf("%s, %s, %s %s",
			s.faker.Street(), s.faker.City(), s.faker.StateAbr(), s.faker.Zip())

		order, err := domain.NewOrder(
			buyer.ID,
			address,
			s.faker.RandomString(paymentMethods),
			items,
		)
		if err != nil {
			return fmt.Errorf("failed to build order: %w", err)
		}

		if err := s.orderStore.Create(ctx, order); err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}
	}

	s.logger.Info("Orders created", "count", count)
	return nil
}

func (s *seeder) seedPosts(ctx context.Context, count int, authorID uuid.UUID) error {
	tagPool := []string{"go", "web", "api", "cloud", "devops", "tutorial"}

	for i := 0; i < count; i++ {
		title := fmt.Sprintf("%s %d",
			strings.TrimSuffix(s.faker.Sentence(4), "."), i+1)

		post, err := domain.NewBlogPost(authorID, title, "", s.faker.Paragraph(3, 4, 12, "\n\n"))
		if err != nil {
			return fmt.Errorf("failed to build blog post %q: %w", title, err)
		}
		post.Summary = s.faker.Sentence(10)
		post.Tags = strings.Join([]string{
			s.faker.RandomString(tagPool),
			s.faker.RandomString(tagPool),
		}, ",")
		post.IsFeatured = i%5 == 0

		// Publish most posts, leave the occasional draft.
		if i%4 != 3 {
			post.Publish(time.Now().UTC())
		}

		if err := s.postStore.Create(ctx, post); err != nil {
			return fmt.Errorf("failed to create blog post %q: %w", title, err)
		}
	}

	s.logger.Info("Blog posts created", "count", count)
	return nil
}
