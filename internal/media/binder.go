package media

import (
	"context"
	"log/slog"

	"plume/internal/middleware"
)

// Binder associates domain records with hosted image resources. Release is
// best-effort: the owning operation never fails because a stale resource
// could not be deleted.
type Binder interface {
	Bind(ctx context.Context, payload string) (string, error)
	Release(ctx context.Context, resourceURL string)
}

// HostedBinder is the production Binder backed by the image-host client.
type HostedBinder struct {
	client *Client
	onLeak func()
}

// NewBinder returns a Binder over the given client. onReleaseFailure is
// invoked for each failed release (metrics hook); it may be nil.
func NewBinder(client *Client, onReleaseFailure func()) *HostedBinder {
	return &HostedBinder{client: client, onLeak: onReleaseFailure}
}

// Bind uploads the payload and returns the hosted URL.
func (b *HostedBinder) Bind(ctx context.Context, payload string) (string, error) {
	return b.client.Upload(ctx, payload)
}

// Release destroys the resource behind the URL. Failures are logged and
// counted but never surfaced; the orphaned resource is the accepted cost.
func (b *HostedBinder) Release(ctx context.Context, resourceURL string) {
	if resourceURL == "" {
		return
	}
	publicID := PublicIDFromURL(resourceURL)
	if err := b.client.Destroy(ctx, publicID); err != nil {
		middleware.Logger.WarnContext(ctx, "media release failed",
			slog.String("public_id", publicID),
			slog.String("error", err.Error()),
		)
		if b.onLeak != nil {
			b.onLeak()
		}
	}
}
