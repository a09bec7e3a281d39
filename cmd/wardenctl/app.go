package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/adminwarden/warden/pkg/admin"
	"github.com/adminwarden/warden/pkg/audit"
	"github.com/adminwarden/warden/pkg/config"
	"github.com/adminwarden/warden/pkg/db"
	"github.com/adminwarden/warden/pkg/identity"
	"github.com/adminwarden/warden/pkg/password"
	"github.com/adminwarden/warden/pkg/revocation"
	gormstore "github.com/adminwarden/warden/pkg/store/gorm"
	"github.com/adminwarden/warden/pkg/token"
)

var errMissingActor = errors.New("--as is required")

// app holds everything a command needs, built from configuration
type app struct {
	cfg        *config.WardenConfig
	db         *gorm.DB
	logger     *slog.Logger
	service    *admin.Service
	identities *identity.Resolver
	tokens     *token.Codec
	closers    []func() error
}

func newLogger(level string) *slog.Logger {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		l = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: l}))
}

// loadConfig loads and validates configuration
func loadConfig() (*config.WardenConfig, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// newCache builds the revocation cache selected by revocation_backend. The
// memory cache only serves lookups within this process.
func newCache(ctx context.Context, cfg *config.WardenConfig) (revocation.Cache, error) {
	switch cfg.RevocationBackend {
	case config.BackendRedis:
		return revocation.DialRedis(ctx, cfg.RedisURL)
	default:
		return revocation.NewMemoryCache(time.Minute), nil
	}
}

func newApp(ctx context.Context) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	logger := newLogger(cfg.LogLevel)

	database, err := db.Connect(db.Config{URL: cfg.DatabaseURL, Debug: cfg.Debug()})
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg, db: database, logger: logger}

	cache, err := newCache(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open revocation cache: %w", err)
	}
	a.closers = append(a.closers, cache.Close)

	auditLogger := audit.NewLogger()
	auditLogger.SetWriter(os.Stderr)
	var saver audit.Saver
	if cfg.IsAuditEnabled() {
		auditStore, err := audit.NewStore(cfg.AuditDatabaseURL)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("failed to open audit database: %w", err)
		}
		if auditStore != nil {
			saver = auditStore
			a.closers = append(a.closers, auditStore.Close)
		}
	}

	admins := gormstore.NewAdminsStore(database)
	access := gormstore.NewAccessStore(database)
	a.tokens = token.NewCodec([]byte(cfg.TokenSecret), cfg.RefreshTokenID, cfg.RefreshTTL())
	a.identities = identity.NewResolver(admins, access, cfg.RootAdminID)
	a.service = admin.New(admin.Deps{
		Admins:      admins,
		Groups:      gormstore.NewGroupsStore(database),
		Access:      access,
		Rules:       gormstore.NewRulesStore(database),
		Passwords:   password.NewHasher(cfg.PasswordSalt),
		Blacklist:   revocation.NewBlacklist(cache, time.Now),
		Tokens:      a.tokens,
		Auditor:     audit.NewRecorder(auditLogger, saver, cfg.IsAuditEnabled(), logger),
		RootAdminID: cfg.RootAdminID,
		Logger:      logger,
	})
	return a, nil
}

// Close releases caches and connections
func (a *app) Close() {
	for _, c := range a.closers {
		if err := c(); err != nil {
			a.logger.Warn("close failed", "error", err)
		}
	}
	if sqlDB, err := a.db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

// resolveActing returns the identity already attached to the command context,
// or resolves the admin named by --as and attaches it.
func (a *app) resolveActing(cmd *cobra.Command) (*identity.Identity, error) {
	if id, ok := identity.Get(cmd.Context()); ok {
		return id, nil
	}

	as, _ := cmd.Flags().GetString("as")
	if as == "" {
		return nil, errMissingActor
	}
	id, err := a.identities.Resolve(cmd.Context(), as)
	if err != nil {
		return nil, err
	}
	if ip, _ := cmd.Flags().GetString("client-ip"); ip != "" {
		parsed := net.ParseIP(ip)
		if parsed == nil {
			return nil, fmt.Errorf("invalid --client-ip %q", ip)
		}
		id.WithRemoteIP(parsed)
	}

	cmd.SetContext(identity.Set(cmd.Context(), id))
	return id, nil
}

// withApp builds the app and runs fn with it
func withApp(cmd *cobra.Command, fn func(ctx context.Context, a *app) error) error {
	a, err := newApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(cmd.Context(), a)
}

// withIdentity is withApp plus the acting identity from --as
func withIdentity(cmd *cobra.Command, fn func(ctx context.Context, a *app, acting *identity.Identity) error) error {
	return withApp(cmd, func(_ context.Context, a *app) error {
		acting, err := a.resolveActing(cmd)
		if err != nil {
			return err
		}
		return fn(cmd.Context(), a, acting)
	})
}

// fail prints the error the way every command reports failures and exits
func fail(what string, err error) {
	fmt.Fprintf(os.Stderr, "Failed to %s: %v\n", what, err)
	os.Exit(1)
}
