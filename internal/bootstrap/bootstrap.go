// Package bootstrap performs the non-interactive first-run setup: open
// (and implicitly create) the database, and seed a default profile plus
// the conflict_strategy setting when the database is new. There is no
// setup wizard to run — deskcraft's configuration lives in config.yaml
// and the database rather than anything requiring user interaction.
package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/CodeCraftgenz/deskcraft/internal/config"
	"github.com/CodeCraftgenz/deskcraft/internal/logging"
	"github.com/CodeCraftgenz/deskcraft/internal/store"
	"github.com/CodeCraftgenz/deskcraft/internal/types"
)

// defaultProfileID is stable across installs so re-running bootstrap is
// idempotent rather than creating a second "Default" profile each time.
const defaultProfileID = "default-profile"

// Result is what the caller needs to go on to build a pipeline/scheduler.
type Result struct {
	Config  config.Config
	Store   *store.Store
	Profile types.Profile
}

// Run ensures configDir/config.yaml, the database, and a default profile
// all exist, creating whichever are missing.
func Run(configDir string, log *logging.Logger) (Result, error) {
	cfg, err := config.Load(configDir)
	if err != nil {
		return Result{}, fmt.Errorf("load config: %w", err)
	}

	st, err := store.Open(cfg.DatabasePath)
	if err != nil {
		return Result{}, fmt.Errorf("open database: %w", err)
	}

	ctx := context.Background()

	if _, ok, err := st.Setting(ctx, store.ConflictStrategyKey); err != nil {
		return Result{}, fmt.Errorf("check conflict strategy setting: %w", err)
	} else if !ok {
		if err := st.SetSetting(ctx, store.ConflictStrategyKey, string(cfg.DefaultConflictStrategy)); err != nil {
			log.Warnf("bootstrap: failed to seed default conflict strategy: %v", err)
		}
	}

	profile, ok, err := st.DefaultProfile(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("check default profile: %w", err)
	}
	if !ok {
		now := time.Now().Format(types.TimestampLayout)
		profile = types.Profile{
			ID:        defaultProfileID,
			Name:      "Default",
			IsActive:  true,
			IsDefault: true,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := st.SaveProfile(ctx, profile); err != nil {
			return Result{}, fmt.Errorf("create default profile: %w", err)
		}
		if err := st.Activate(ctx, profile.ID); err != nil {
			return Result{}, fmt.Errorf("activate default profile: %w", err)
		}
		log.Infof("bootstrap: created default profile %s", profile.ID)
	}

	return Result{Config: cfg, Store: st, Profile: profile}, nil
}
