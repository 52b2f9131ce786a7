package service

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/secure"
	"github.com/gin-contrib/timeout"
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"brewhouse/api"
	"brewhouse/common/log"
	"brewhouse/data"
	"brewhouse/service/profile"
	"brewhouse/state"
	"brewhouse/store"
	"brewhouse/store/db"
)

type Service struct {
	g          *gin.Engine
	db         *db.DB
	httpServer *http.Server

	ID       string
	Profile  *profile.Profile
	Store    *store.Store
	temps    []api.Temperature
	sessions *sessionRegistry
}

func timeoutMiddleware() gin.HandlerFunc {
	return timeout.New(
		timeout.WithTimeout(30*time.Second),
		timeout.WithHandler(func(c *gin.Context) {
			c.Next()
		}),
		timeout.WithResponse(func(ctx *gin.Context) {
			ctx.String(http.StatusRequestTimeout, "timeout")
		}),
	)
}

func NewService(ctx context.Context, profile *profile.Profile) (*Service, error) {
	if profile.Mode == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	g := gin.New()

	database := db.NewDB(profile)
	if err := database.Open(ctx); err != nil {
		return nil, errors.Wrap(err, "cannot open db")
	}

	temps, err := data.LoadTemperatures(profile.Temperatures)
	if err != nil {
		return nil, errors.Wrap(err, "cannot load temperatures")
	}

	s := &Service{
		g:       g,
		db:      database,
		Profile: profile,
		temps:   temps,
	}

	storeInstance := store.New(database.DBInstance, profile)
	s.Store = storeInstance
	s.sessions = newSessionRegistry(func() *state.BeverageStore {
		return state.New(storeInstance, temps)
	})

	g.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		SkipPaths: []string{"/api/ping"},
	}))

	g.Use(gin.Recovery())

	g.Use(gzip.Gzip(gzip.DefaultCompression))

	g.Use(cors.Default())

	g.Use(secure.New(secure.Config{
		FrameDeny:          true,
		ContentTypeNosniff: true,
		BrowserXssFilter:   true,
		IsDevelopment:      profile.IsDev(),
	}))

	g.Use(timeoutMiddleware())

	serviceID, err := s.getSystemServiceID(ctx)
	if err != nil {
		return nil, err
	}
	s.ID = serviceID

	embedFrontend(g)

	secret := "brewhouse"
	if profile.Mode == "prod" {
		secret, err = s.getSystemSecretSessionName(ctx)
		if err != nil {
			return nil, err
		}
	}

	apiGroup := g.Group("/api")
	apiGroup.Use(func(ctx *gin.Context) {
		JWTMiddleware(s, ctx, secret)
	})
	s.registerSystemRoutes(apiGroup)
	s.registerAuthRoutes(apiGroup, secret)
	s.registerUserRoutes(apiGroup)
	s.registerCatalogRoutes(apiGroup)
	s.registerBeverageRoutes(apiGroup)

	return s, nil
}

// ServeHTTP lets the service be mounted in tests and other servers.
func (s *Service) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.g.ServeHTTP(w, r)
}

func (s *Service) Start(_ context.Context) error {
	s.httpServer = &http.Server{
		Addr:              fmt.Sprintf("%s:%d", s.Profile.Addr, s.Profile.Port),
		Handler:           s.g,
		ReadHeaderTimeout: 10 * time.Second,
	}
	log.Info("brewhouse is listening", zap.String("addr", s.httpServer.Addr), zap.String("mode", s.Profile.Mode))
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return errors.Wrap(err, "failed to serve")
	}
	return nil
}

func (s *Service) Shutdown(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			log.Error("failed to shutdown server", zap.Error(err))
		}
	}

	s.sessions.closeAll()
	s.Store.Close()

	if err := s.db.Close(); err != nil {
		log.Error("failed to close database", zap.Error(err))
	}

	log.Info("brewhouse stopped properly")
}
