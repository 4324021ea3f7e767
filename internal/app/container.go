package app

import (
	"context"
	"log"

	"github.com/casbin/casbin/v2"
	"gorm.io/gorm"

	"github.com/you/ordersvc/domain"
	"github.com/you/ordersvc/internal/config"
	"github.com/you/ordersvc/internal/infrastructure/auth"
	"github.com/you/ordersvc/internal/infrastructure/database"
	"github.com/you/ordersvc/internal/infrastructure/notifications"
	"github.com/you/ordersvc/internal/infrastructure/repositories"
	"github.com/you/ordersvc/internal/services"
)

// Container holds all dependencies
type Container struct {
	// Config
	Config *config.Config

	// Infrastructure
	DB       *gorm.DB
	Redis    *database.RedisClient
	Enforcer *casbin.Enforcer

	// Repositories
	AccountRepo   domain.AccountRepository
	GrantRepo     domain.GrantRepository
	MenuRepo      domain.MenuRepository
	TableRepo     domain.TableRepository
	OrderRepo     domain.OrderRepository
	AnalyticsRepo domain.AnalyticsRepository
	Revocations   domain.RevocationStore
	Limiter       domain.RateLimiter

	// Services
	PasswordSvc  domain.PasswordService
	TokenSvc     domain.TokenService
	Notifier     *services.NotifierImpl
	AccessSvc    domain.AccessService
	AuthSvc      domain.AuthService
	OrderSvc     domain.OrderService
	AnalyticsSvc domain.AnalyticsService
}

// NewContainer creates and initializes all dependencies
func NewContainer(cfg *config.Config) (*Container, error) {
	container := &Container{Config: cfg}

	if err := container.initDatabase(); err != nil {
		return nil, err
	}
	if err := container.initRedis(); err != nil {
		return nil, err
	}
	if err := container.initCasbin(); err != nil {
		return nil, err
	}

	container.initRepositories()
	container.initServices()

	return container, nil
}

func (c *Container) initDatabase() error {
	db, err := database.Open(c.Config.DSN)
	if err != nil {
		return err
	}
	if err := database.AutoMigrate(db); err != nil {
		return err
	}
	c.DB = db
	return nil
}

func (c *Container) initRedis() error {
	c.Redis = database.NewRedis(c.Config.RedisAddr, c.Config.RedisPassword, c.Config.RedisDB)
	return c.Redis.Ping(context.Background())
}

func (c *Container) initCasbin() error {
	cas, err := auth.NewCasbinService(c.DB, c.Config.CasbinModelPath)
	if err != nil {
		return err
	}
	c.Enforcer = cas.E

	policies, _ := c.Enforcer.GetPolicy()
	if len(policies) == 0 {
		c.Enforcer.AddPolicy("role_general_admin", "/admin/*", "GET")
		c.Enforcer.AddPolicy("role_multi_vendor_admin", "/admin/*", "GET")
		if err := c.Enforcer.SavePolicy(); err != nil {
			return err
		}
		log.Println("casbin: seeded default policies")
	}
	return nil
}

func (c *Container) initRepositories() {
	c.AccountRepo = repositories.NewAccountRepository(c.DB)
	c.GrantRepo = repositories.NewGrantRepository(c.DB)
	c.MenuRepo = repositories.NewMenuRepository(c.DB)
	c.TableRepo = repositories.NewTableRepository(c.DB)
	c.OrderRepo = repositories.NewOrderRepository(c.DB)
	c.AnalyticsRepo = repositories.NewAnalyticsRepository(c.DB)
	c.Revocations = repositories.NewRevocationStore(c.Redis.Client)
	c.Limiter = repositories.NewRateLimiter(c.Redis.Client)
}

func (c *Container) initServices() {
	c.PasswordSvc = auth.NewPasswordService()
	c.TokenSvc = auth.NewJWTService(
		c.Config.JWTSecret,
		c.Config.JWTIssuer,
		c.Config.UserTTL,
		c.Config.AdminTTL,
	)

	mailer := notifications.NewSMTPMailer(
		c.Config.SMTPHost,
		c.Config.SMTPPort,
		c.Config.SMTPUsername,
		c.Config.SMTPPassword,
		c.Config.SMTPFrom,
	)
	sms := notifications.NewTwilioService(
		c.Config.TwilioSID,
		c.Config.TwilioToken,
		c.Config.TwilioFrom,
	)
	c.Notifier = services.NewNotifier(mailer, sms, 0)

	c.AccessSvc = services.NewAccessService(
		c.GrantRepo,
		c.AccountRepo,
		c.PasswordSvc,
		c.Notifier,
		c.Config.AdminURL,
	)
	c.AuthSvc = services.NewAuthService(
		c.AccountRepo,
		c.PasswordSvc,
		c.TokenSvc,
		c.Revocations,
		c.AccessSvc,
		c.Notifier,
		c.Config.ResetTokenTTL,
	)
	c.OrderSvc = services.NewOrderService(
		c.OrderRepo,
		c.MenuRepo,
		c.AccountRepo,
		domain.ServedImpliesPaid,
		c.Notifier,
	)
	c.AnalyticsSvc = services.NewAnalyticsService(c.AnalyticsRepo, c.AccountRepo)
}
