package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/srgjo27/healthbook/internal/core/domain"
	"github.com/srgjo27/healthbook/internal/core/ports"
	"go.uber.org/zap"
)

// AccessService resolves an authenticated user id into a Principal,
// caching the role so each request does not hit the profiles table.
type AccessService struct {
	profiles ports.ProfileRepository
	cache    ports.Cache
	roleTTL  time.Duration
	logger   *zap.Logger
}

func NewAccessService(profiles ports.ProfileRepository, cache ports.Cache, roleTTL time.Duration, logger *zap.Logger) *AccessService {
	if roleTTL <= 0 {
		roleTTL = 5 * time.Minute
	}
	return &AccessService{profiles: profiles, cache: cache, roleTTL: roleTTL, logger: logger}
}

func roleKey(userID uuid.UUID) string {
	return "role:" + userID.String()
}

func (s *AccessService) Resolve(ctx context.Context, userID uuid.UUID) (domain.Principal, error) {
	key := roleKey(userID)

	cached, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		s.logger.Warn("Role cache read failed, falling back to database",
			zap.String("user_id", userID.String()),
			zap.Error(err))
	}
	if ok && domain.Role(cached).Valid() {
		return domain.Principal{UserID: userID, Role: domain.Role(cached)}, nil
	}

	profile, err := s.profiles.GetByID(ctx, userID)
	if err != nil {
		return domain.Principal{}, fmt.Errorf("resolve role for %s: %w", userID, err)
	}
	if !profile.Role.Valid() {
		return domain.Principal{}, fmt.Errorf("role %q: %w", profile.Role, domain.ErrForbidden)
	}

	if err := s.cache.Set(ctx, key, string(profile.Role), s.roleTTL); err != nil {
		s.logger.Warn("Role cache write failed", zap.String("user_id", userID.String()), zap.Error(err))
	}

	return domain.Principal{UserID: userID, Role: profile.Role}, nil
}
