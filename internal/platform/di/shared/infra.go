// internal/platform/di/shared/infra.go
package shared

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"cloud.google.com/go/firestore"
	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"cloud.google.com/go/storage"
	firebase "firebase.google.com/go/v4"
	firebaseauth "firebase.google.com/go/v4/auth"
	"go.uber.org/zap"
	"google.golang.org/api/option"

	boltstore "folio/internal/adapters/out/bolt"
	appcfg "folio/internal/infra/config"
)

// Infra owns the external clients of the process.
// Which clients exist depends on the configured backends: a local setup
// (bolt + memory carts + local uploads) opens no Google Cloud client at all.
type Infra struct {
	Config    *appcfg.Config
	ProjectID string

	// Clients (owned; Close-managed)
	Bolt          *boltstore.Store
	Firestore     *firestore.Client
	GCS           *storage.Client
	FirebaseApp   *firebase.App
	FirebaseAuth  *firebaseauth.Client
	SecretManager *secretmanager.Client

	log *zap.Logger
}

// NewInfra initializes shared infra.
// Clients backing a configured store are strict (return error).
// Firebase Auth and Secret Manager are best-effort (warn + continue).
func NewInfra(ctx context.Context, cfg *appcfg.Config, log *zap.Logger) (*Infra, error) {
	if cfg == nil {
		return nil, errors.New("shared.infra: config is nil")
	}
	if log == nil {
		log = zap.NewNop()
	}
	inf := &Infra{Config: cfg, ProjectID: cfg.ProjectID, log: log.Named("shared.infra")}

	// 1) Embedded store (strict when selected)
	if cfg.CatalogStore == appcfg.StoreBolt {
		st, err := boltstore.Open(boltstore.OpenOptions{Path: cfg.BoltPath})
		if err != nil {
			return nil, fmt.Errorf("shared.infra: open bolt %s: %w", cfg.BoltPath, err)
		}
		inf.Bolt = st
		inf.log.Info("bolt store opened", zap.String("path", cfg.BoltPath))
	}

	if !cfg.NeedsGoogleCloud() {
		inf.log.Info("no Google Cloud backend configured")
		return inf, nil
	}
	if inf.ProjectID == "" {
		_ = inf.Close()
		return nil, errors.New("shared.infra: projectID is empty (set FIRESTORE_PROJECT_ID or GOOGLE_CLOUD_PROJECT)")
	}

	// Credentials file (optional; mainly for local dev)
	var clientOpts []option.ClientOption
	if credFile := cfg.CredentialsFile(); credFile != "" {
		clientOpts = append(clientOpts, option.WithCredentialsFile(credFile))
		inf.log.Info("using credentials file for GCP clients", zap.String("file", redactPath(credFile)))
	} else {
		inf.log.Info("using Application Default Credentials")
	}

	// 2) Firestore (strict when selected)
	if cfg.CatalogStore == appcfg.StoreFirestore || cfg.CartStore == appcfg.StoreFirestore {
		fsClient, err := firestore.NewClient(ctx, inf.ProjectID, clientOpts...)
		if err != nil {
			_ = inf.Close()
			return nil, fmt.Errorf("shared.infra: firestore.NewClient failed (project=%s): %w", inf.ProjectID, err)
		}
		inf.Firestore = fsClient
		inf.log.Info("firestore connected", zap.String("project", inf.ProjectID))
	}

	// 3) GCS (strict when selected)
	if cfg.AssetStore == appcfg.StoreGCS {
		if strings.TrimSpace(cfg.GCSBucket) == "" {
			_ = inf.Close()
			return nil, errors.New("shared.infra: ASSET_STORE=gcs requires GCS_BUCKET")
		}
		gcsClient, err := storage.NewClient(ctx, clientOpts...)
		if err != nil {
			_ = inf.Close()
			return nil, fmt.Errorf("shared.infra: storage.NewClient failed: %w", err)
		}
		inf.GCS = gcsClient
		inf.log.Info("gcs storage client initialized", zap.String("bucket", cfg.GCSBucket))
	}

	// 4) Firebase App/Auth (best-effort)
	{
		fbApp, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: inf.ProjectID}, clientOpts...)
		if err != nil {
			inf.log.Warn("firebase app init failed; admin API disabled", zap.Error(err))
		} else {
			inf.FirebaseApp = fbApp
			authClient, err := fbApp.Auth(ctx)
			if err != nil {
				inf.log.Warn("firebase auth init failed; admin API disabled", zap.Error(err))
			} else {
				inf.FirebaseAuth = authClient
				inf.log.Info("firebase auth initialized")
			}
		}
	}

	// 5) Secret Manager (best-effort, only when a secret is referenced)
	if cfg.SendGridAPIKeySecret != "" {
		sm, err := secretmanager.NewClient(ctx, clientOpts...)
		if err != nil {
			inf.log.Warn("secretmanager.NewClient failed", zap.Error(err))
		} else {
			inf.SecretManager = sm
		}
	}

	return inf, nil
}

func (i *Infra) Close() error {
	if i == nil {
		return nil
	}
	var errs []error
	if i.Firestore != nil {
		errs = append(errs, i.Firestore.Close())
	}
	if i.GCS != nil {
		errs = append(errs, i.GCS.Close())
	}
	if i.SecretManager != nil {
		errs = append(errs, i.SecretManager.Close())
	}
	if i.Bolt != nil {
		errs = append(errs, i.Bolt.Close())
	}
	return errors.Join(errs...)
}

func redactPath(p string) string {
	// keep only the last segment
	p = strings.TrimSpace(strings.ReplaceAll(p, "\\", "/"))
	if p == "" {
		return ""
	}
	parts := strings.Split(p, "/")
	last := parts[len(parts)-1]
	if last == "" {
		return "***"
	}
	return "***/" + last
}
