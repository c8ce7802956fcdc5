package main

import (
	"flag"
	"log"
	"strconv"
	"time"

	"bookstore/internal/config"
	"bookstore/internal/domain/model"
	"bookstore/internal/handler"
	"bookstore/internal/infra/db"
	infrarepo "bookstore/internal/infra/repository"
	"bookstore/internal/infra/session"
	"bookstore/internal/server"
	"bookstore/internal/usecase"
	"bookstore/pkg/metrics"

	"github.com/golang-jwt/jwt/v4"
	"github.com/joho/godotenv"
)

const accessTokenTTL = 15 * time.Minute

// HS256でアクセストークンを発行する
type jwtIssuer struct {
	secret []byte
}

func (i *jwtIssuer) Issue(userID int64, role model.Role, now time.Time) (string, time.Time, error) {
	expiresAt := now.Add(accessTokenTTL)
	claims := jwt.MapClaims{
		"sub":  strconv.FormatInt(userID, 10),
		"role": string(role),
		"iat":  now.Unix(),
		"exp":  expiresAt.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

func main() {
	seedFlag := flag.Bool("seed", false, "seed initial data and exit")
	flag.Parse()

	//.envは無ければ無いでよい
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	gormDB, err := db.Connect(cfg)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Book{},
		&model.Order{},
		&model.OrderItem{},
		&model.AuditLog{},
		&model.InventoryAdjustment{},
	); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	if *seedFlag {
		if err := db.Seed(gormDB); err != nil {
			log.Fatalf("seed: %v", err)
		}
		log.Println("seed done")
		return
	}

	//repositories
	bookRepo := infrarepo.NewBookGormRepository(gormDB)
	inventoryRepo := infrarepo.NewInventoryGormRepository(gormDB)
	userRepo := infrarepo.NewUserGormRepository(gormDB)
	auditRepo := infrarepo.NewAuditLogGormRepository(gormDB)
	txManager := infrarepo.NewTxManagerGorm(gormDB)

	//カートはセッション相当のインメモリ保持
	cartStore := session.NewMemoryCartStore(cfg.CartTTL)
	defer cartStore.Close()

	checkoutMetrics := metrics.NewCheckoutMetrics()

	//usecases
	authUC := usecase.NewAuthUsecase(
		userRepo,
		usecase.NewBcryptPasswordHasher(0),
		usecase.NewBcryptPasswordVerifier(),
		&jwtIssuer{secret: []byte(cfg.JWTSecret)},
		realClock{},
	)
	bookUC := usecase.NewBookUsecase(bookRepo, inventoryRepo, auditRepo)
	cartUC := usecase.NewCartUsecase(cartStore, bookRepo)
	orderUC := usecase.NewOrderUsecase(txManager, cartStore)
	adminOrderUC := usecase.NewAdminOrderUsecase(txManager)
	auditUC := usecase.NewAuditLogUsecase(auditRepo)

	//handlers
	h := server.Handlers{
		Auth:        handler.NewAuthHandler(authUC),
		Books:       handler.NewBookHandler(bookUC),
		Cart:        handler.NewCartHandler(cartUC),
		Orders:      handler.NewOrderHandler(orderUC, checkoutMetrics),
		AdminBooks:  handler.NewAdminBookHandler(bookUC),
		AdminOrders: handler.NewAdminOrderHandler(adminOrderUC),
		AdminAudit:  handler.NewAdminAuditHandler(auditUC),
	}

	e := server.New(cfg, h)
	if err := server.Start(e, cfg); err != nil {
		log.Fatalf("server: %v", err)
	}
}
