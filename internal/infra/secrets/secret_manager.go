// internal/infra/secrets/secret_manager.go
package secrets

import (
	"context"
	"errors"
	"fmt"
	"strings"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	secretmanagerpb "cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
	"github.com/googleapis/gax-go/v2"
)

var ErrNotConfigured = errors.New("secrets: secret manager not configured")

// accessor is the part of *secretmanager.Client used here.
type accessor interface {
	AccessSecretVersion(ctx context.Context, req *secretmanagerpb.AccessSecretVersionRequest, opts ...gax.CallOption) (*secretmanagerpb.AccessSecretVersionResponse, error)
}

// Resolver reads secret payloads from Google Secret Manager.
type Resolver struct {
	sm        accessor
	projectID string
}

func NewResolver(sm *secretmanager.Client, projectID string) *Resolver {
	if sm == nil {
		return &Resolver{projectID: projectID}
	}
	return &Resolver{sm: sm, projectID: projectID}
}

// ResourceName expands a bare secret id into
// projects/<project>/secrets/<id>/versions/latest. Full names pass through.
func ResourceName(projectID, secret string) (string, error) {
	secret = strings.TrimSpace(secret)
	if secret == "" {
		return "", errors.New("secrets: secret name is empty")
	}
	if strings.HasPrefix(secret, "projects/") {
		if !strings.Contains(secret, "/versions/") {
			secret += "/versions/latest"
		}
		return secret, nil
	}
	prj := strings.TrimSpace(projectID)
	if prj == "" {
		return "", errors.New("secrets: projectID is empty")
	}
	return "projects/" + prj + "/secrets/" + secret + "/versions/latest", nil
}

// Get returns the trimmed payload of secret.
func (r *Resolver) Get(ctx context.Context, secret string) (string, error) {
	if r == nil || r.sm == nil {
		return "", ErrNotConfigured
	}
	name, err := ResourceName(r.projectID, secret)
	if err != nil {
		return "", err
	}
	resp, err := r.sm.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{Name: name})
	if err != nil {
		return "", fmt.Errorf("secrets: access %s: %w", name, err)
	}
	if resp == nil || resp.Payload == nil {
		return "", fmt.Errorf("secrets: empty payload (%s)", name)
	}
	return strings.TrimSpace(string(resp.Payload.Data)), nil
}
