package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	config "github.com/GioRdrz/food-delivery/configs"
	"github.com/GioRdrz/food-delivery/internal/auth"
	"github.com/GioRdrz/food-delivery/internal/db"
	"github.com/GioRdrz/food-delivery/internal/handlers"
	"github.com/GioRdrz/food-delivery/internal/repository"
	"github.com/GioRdrz/food-delivery/internal/service"
	"github.com/GioRdrz/food-delivery/pkg/logger"
)

func main() {

	cfg := config.Load()

	log := logger.New(logger.Options{
		Service: "food-delivery",
		Env:     cfg.Server.Environment,
		Level:   cfg.Server.LogLevel,
	})

	db.Init(cfg.Database)
	auth.Init(cfg.Auth)

	userRepo := repository.NewUserRepository(db.DB)
	restaurantRepo := repository.NewRestaurantRepository(db.DB)
	mealRepo := repository.NewMealRepository(db.DB)
	couponRepo := repository.NewCouponRepository(db.DB)
	orderRepo := repository.NewOrderRepository(db.DB)

	userSvc := service.NewUserService(userRepo, log)
	restaurantSvc := service.NewRestaurantService(restaurantRepo, log)
	mealSvc := service.NewMealService(mealRepo, restaurantRepo, log)
	couponSvc := service.NewCouponService(couponRepo, log)
	orderSvc := service.NewOrderService(orderRepo, restaurantRepo, mealRepo, couponRepo, log)

	if err := userSvc.EnsureAdmin(cfg.Admin.Email, cfg.Admin.Password); err != nil {
		log.Error("failed to bootstrap admin user", "error", err)
	}

	r := gin.Default()
	registerRoutes(r, userRepo, userSvc, restaurantSvc, mealSvc, couponSvc, orderSvc)

	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: r,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("server listening", "addr", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		log.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server exited with error", "error", err)
	}
}

func registerRoutes(
	r *gin.Engine,
	userRepo repository.UserRepository,
	userSvc *service.UserService,
	restaurantSvc *service.RestaurantService,
	mealSvc *service.MealService,
	couponSvc *service.CouponService,
	orderSvc *service.OrderService,
) {
	authHandler := handlers.NewAuthHandler(userSvc)
	userHandler := handlers.NewUserHandler(userSvc)
	restaurantHandler := handlers.NewRestaurantHandler(restaurantSvc)
	mealHandler := handlers.NewMealHandler(mealSvc)
	couponHandler := handlers.NewCouponHandler(couponSvc)
	orderHandler := handlers.NewOrderHandler(orderSvc, restaurantSvc)

	// ── public endpoints ──
	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"status": "healthy"}) })
	r.POST("/auth/register", authHandler.Register)
	r.POST("/auth/login", authHandler.Login)

	// ── protected API ──
	api := r.Group("/api")
	api.Use(auth.RequireAuth(userRepo))
	{
		api.GET("/users", userHandler.List)
		api.GET("/users/me", userHandler.GetMe)
		api.GET("/users/:id", userHandler.Get)
		api.PATCH("/users/:id", userHandler.Update)
		api.DELETE("/users/:id", userHandler.Delete)

		api.POST("/restaurants", restaurantHandler.Create)
		api.GET("/restaurants", restaurantHandler.List)
		api.GET("/restaurants/:id", restaurantHandler.Get)
		api.PATCH("/restaurants/:id", restaurantHandler.Update)
		api.DELETE("/restaurants/:id", restaurantHandler.Delete)
		api.GET("/restaurants/:id/meals", mealHandler.ListByRestaurant)

		api.POST("/meals", mealHandler.Create)
		api.GET("/meals/:id", mealHandler.Get)
		api.PATCH("/meals/:id", mealHandler.Update)
		api.DELETE("/meals/:id", mealHandler.Delete)

		api.POST("/coupons", couponHandler.Create)
		api.GET("/coupons", couponHandler.List)
		api.GET("/coupons/:id", couponHandler.Get)
		api.PATCH("/coupons/:id", couponHandler.Update)
		api.DELETE("/coupons/:id", couponHandler.Delete)

		api.POST("/orders", orderHandler.Create)
		api.GET("/orders", orderHandler.List)
		api.GET("/orders/my-orders", orderHandler.ListMine)
		api.GET("/orders/restaurant/:id", orderHandler.ListByRestaurant)
		api.GET("/orders/:id", orderHandler.Get)
		api.PATCH("/orders/:id/status", orderHandler.UpdateStatus)
		api.DELETE("/orders/:id", orderHandler.Delete)
	}
}
