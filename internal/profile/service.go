package profile

import (
	"context"

	"github.com/jkeats/budgetbuddy/internal/store"
	"github.com/jkeats/budgetbuddy/pkg/logger"
)

// DefaultAvatar is shown until the user picks an image
const DefaultAvatar = "https://thumb.ac-illust.com/8a/8abc6308b0fdc74c612b769383d2ad7e_t.jpeg"

// Service owns the profile fields and the debug-panel visibility flag
type Service struct {
	store *store.Store
	log   *logger.Logger
}

// NewService creates the profile service
func NewService(st *store.Store, log *logger.Logger) *Service {
	return &Service{
		store: st,
		log:   log.WithField("component", "profile"),
	}
}

// DisplayName returns the stored display name, empty when unset
func (s *Service) DisplayName(ctx context.Context) string {
	var name string
	s.store.GetJSON(ctx, store.KeyProfileName, &name)
	return name
}

// SetDisplayName persists the display name
func (s *Service) SetDisplayName(ctx context.Context, name string) {
	s.store.SetJSON(ctx, store.KeyProfileName, name)
}

// Avatar returns the stored avatar image (a data URI or URL), falling back
// to the default image.
func (s *Service) Avatar(ctx context.Context) string {
	var avatar string
	if !s.store.GetJSON(ctx, store.KeyProfileImage, &avatar) || avatar == "" {
		return DefaultAvatar
	}
	return avatar
}

// SetAvatar persists the avatar image
func (s *Service) SetAvatar(ctx context.Context, dataURI string) {
	s.store.SetJSON(ctx, store.KeyProfileImage, dataURI)
}

// ResetAvatar restores the default image
func (s *Service) ResetAvatar(ctx context.Context) {
	s.store.SetJSON(ctx, store.KeyProfileImage, DefaultAvatar)
}

// DebugVisible reports whether the debug panel is shown
func (s *Service) DebugVisible(ctx context.Context) bool {
	var visible bool
	s.store.GetJSON(ctx, store.KeyDebugVisible, &visible)
	return visible
}

// SetDebugVisible persists the debug panel flag
func (s *Service) SetDebugVisible(ctx context.Context, visible bool) {
	s.store.SetJSON(ctx, store.KeyDebugVisible, visible)
}
