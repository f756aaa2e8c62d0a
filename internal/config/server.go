package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	"waroengg-be/database/postgres"
	orderHandler "waroengg-be/internal/api/order/handler"
	orderRepository "waroengg-be/internal/api/order/repository"
	orderService "waroengg-be/internal/api/order/service"
	paymentHandler "waroengg-be/internal/api/payment/handler"
	paymentRepository "waroengg-be/internal/api/payment/repository"
	paymentService "waroengg-be/internal/api/payment/service"
	productHandler "waroengg-be/internal/api/product/handler"
	productRepository "waroengg-be/internal/api/product/repository"
	productService "waroengg-be/internal/api/product/service"
	promoHandler "waroengg-be/internal/api/promo/handler"
	promoRepository "waroengg-be/internal/api/promo/repository"
	promoService "waroengg-be/internal/api/promo/service"
	"waroengg-be/internal/middleware"
	"waroengg-be/pkg/qris"
	"waroengg-be/pkg/redis"
	"waroengg-be/pkg/s3"
	"waroengg-be/pkg/smtp"
	"waroengg-be/pkg/utils"
)

type ServerOption func(*Server) error

type Server struct {
	engine      *fiber.App
	db          *sqlx.DB
	log         *logrus.Logger
	middleware  middleware.Middleware
	validator   *validator.Validate
	utils       utils.IUtils
	handlers    []handler
	qrisCodec   qris.IQris
	redisServer redis.IRedis
	smtpMailer  smtp.ItfSmtp
	s3Client    s3.ItfS3
}

type handler interface {
	Start(srv fiber.Router)
}

func NewServer(options ...ServerOption) (*Server, error) {
	server := &Server{}

	for _, option := range options {
		if err := option(server); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	if server.engine == nil {
		return nil, fmt.Errorf("fiber app is required")
	}
	if server.log == nil {
		return nil, fmt.Errorf("logger is required")
	}

	return server, nil
}

func WithFiber(fiberApp *fiber.App) ServerOption {
	return func(s *Server) error {
		s.engine = fiberApp
		return nil
	}
}

func WithLogger(logger *logrus.Logger) ServerOption {
	return func(s *Server) error {
		s.log = logger
		return nil
	}
}

func WithValidator(validator *validator.Validate) ServerOption {
	return func(s *Server) error {
		s.validator = validator
		return nil
	}
}

func WithDatabase() ServerOption {
	return func(s *Server) error {
		db, err := postgres.New()
		if err != nil {
			if s.log != nil {
				s.log.Errorf("Failed to connect to database: %v", err)
			}
			return fmt.Errorf("failed to create database connection: %w", err)
		}
		s.db = db
		return nil
	}
}

func WithQrisCodec() ServerOption {
	return func(s *Server) error {
		template := os.Getenv("QRIS_BASE_TEMPLATE")
		if template == "" {
			return fmt.Errorf("QRIS_BASE_TEMPLATE is required")
		}
		s.qrisCodec = qris.New(template)
		return nil
	}
}

func WithRedisServer(redisServer redis.IRedis) ServerOption {
	return func(s *Server) error {
		s.redisServer = redisServer
		return nil
	}
}

func WithSMTPMailer(smtpMailer smtp.ItfSmtp) ServerOption {
	return func(s *Server) error {
		s.smtpMailer = smtpMailer
		return nil
	}
}

func WithMiddleware() ServerOption {
	return func(s *Server) error {
		if s.log == nil {
			return fmt.Errorf("logger must be initialized before middleware")
		}
		s.middleware = middleware.New(s.log)
		return nil
	}
}

func WithS3Client() ServerOption {
	return func(s *Server) error {
		client, err := s3.New()
		if err != nil {
			if s.log != nil {
				s.log.Errorf("Failed to initialize S3 client: %v", err)
			}
			return fmt.Errorf("failed to create S3 client: %w", err)
		}
		s.s3Client = client
		return nil
	}
}

func WithUtils() ServerOption {
	return func(s *Server) error {
		s.utils = utils.New()
		return nil
	}
}

func (s *Server) RegisterHandler() {
	// Payment Domain
	paymentRepo := paymentRepository.New(s.db, s.log)
	paymentServices := paymentService.New(s.log, paymentRepo, s.qrisCodec, s.redisServer, s.smtpMailer, s.utils)
	paymentHandlers := paymentHandler.New(s.log, s.validator, s.middleware, paymentServices)

	// Product Catalog
	productRepo := productRepository.New(s.db, s.log)
	productServices := productService.New(s.log, productRepo, s.s3Client, s.utils)
	productHandlers := productHandler.New(s.log, s.validator, s.middleware, productServices)

	// Promo Codes
	promoRepo := promoRepository.New(s.db, s.log)
	promoServices := promoService.New(s.log, promoRepo)
	promoHandlers := promoHandler.New(s.log, s.validator, s.middleware, promoServices)

	// Checkout & Deposits
	orderRepo := orderRepository.New(s.db, s.log)
	orderServices := orderService.New(s.log, orderRepo, paymentServices, productServices, promoServices, s.utils)
	orderHandlers := orderHandler.New(s.log, s.validator, s.middleware, orderServices)

	s.setupHealthCheck()
	s.handlers = append(s.handlers, paymentHandlers, productHandlers, promoHandlers, orderHandlers)
}

func (s *Server) Run() error {
	router := s.engine.Group("/api/v1")
	s.engine.Use(s.middleware.NewRequestIDMiddleware())
	s.engine.Use(middleware.LoggerConfig())

	for _, h := range s.handlers {
		h.Start(router)
	}

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "3000"
	}

	return s.engine.Listen(fmt.Sprintf(":%s", port))
}

func (s *Server) setupHealthCheck() {
	s.engine.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.JSON(fiber.Map{
			"message": "Server is Healthy!",
		})
	})
}
