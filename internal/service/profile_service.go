package service

import (
	"context"

	"plume/internal/media"
	"plume/internal/models"
	"plume/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

const minPasswordLen = 6

// ProfileService handles profile reads and the update operation that rotates
// credentials and rebinds image slots as one logical unit.
type ProfileService struct {
	userRepo   repository.UserRepository
	followRepo repository.FollowRepository
	binder     media.Binder
}

// UpdateProfileInput is a merge patch: empty string fields keep their prior
// value, so a field cannot be cleared to "" through this operation. That
// quirk is inherited product behavior, kept deliberately.
type UpdateProfileInput struct {
	FullName        string `json:"full_name"`
	Email           string `json:"email"`
	Username        string `json:"username"`
	Bio             string `json:"bio"`
	Link            string `json:"link"`
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
	ProfileImg      string `json:"profile_img"`
	CoverImg        string `json:"cover_img"`
}

// NewProfileService returns a new ProfileService.
func NewProfileService(userRepo repository.UserRepository, followRepo repository.FollowRepository, binder media.Binder) *ProfileService {
	return &ProfileService{
		userRepo:   userRepo,
		followRepo: followRepo,
		binder:     binder,
	}
}

// GetProfile returns the user with follower/following projections populated.
func (s *ProfileService) GetProfile(ctx context.Context, username string) (*models.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewNotFoundMessageError("User not found")
	}
	if err := s.populateFollowLists(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// GetByID returns the user by ID with follow projections populated.
func (s *ProfileService) GetByID(ctx context.Context, userID uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := s.populateFollowLists(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateProfile applies the patch to the user's profile. Password rotation
// requires both the current and new password; image slots release the prior
// resource (best-effort) before binding the new payload.
func (s *ProfileService) UpdateProfile(ctx context.Context, userID uint, in UpdateProfileInput) (*models.User, error) {
	// Credential checks need the stored hash; cached copies omit it.
	user, err := s.userRepo.GetWithCredentials(ctx, userID)
	if err != nil {
		return nil, err
	}

	if (in.CurrentPassword == "") != (in.NewPassword == "") {
		return nil, models.NewValidationError("Please provide both current password and new password")
	}

	if in.CurrentPassword != "" && in.NewPassword != "" {
		if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(in.CurrentPassword)); err != nil {
			return nil, models.NewUnauthorizedError("Current password is incorrect")
		}
		if len(in.NewPassword) < minPasswordLen {
			return nil, models.NewValidationError("Password must be at least 6 characters long")
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			return nil, models.NewInternalError(err)
		}
		user.Password = string(hashed)
	}

	if in.ProfileImg != "" {
		if user.ProfileImg != "" {
			s.binder.Release(ctx, user.ProfileImg)
		}
		boundURL, err := s.binder.Bind(ctx, in.ProfileImg)
		if err != nil {
			return nil, models.NewInternalError(err)
		}
		user.ProfileImg = boundURL
	}

	if in.CoverImg != "" {
		if user.CoverImg != "" {
			s.binder.Release(ctx, user.CoverImg)
		}
		boundURL, err := s.binder.Bind(ctx, in.CoverImg)
		if err != nil {
			return nil, models.NewInternalError(err)
		}
		user.CoverImg = boundURL
	}

	// Merge patch: falsy fields skip the overwrite.
	if in.FullName != "" {
		user.FullName = in.FullName
	}
	if in.Email != "" {
		user.Email = in.Email
	}
	if in.Username != "" {
		user.Username = in.Username
	}
	if in.Bio != "" {
		user.Bio = in.Bio
	}
	if in.Link != "" {
		user.Link = in.Link
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	if err := s.populateFollowLists(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *ProfileService) populateFollowLists(ctx context.Context, user *models.User) error {
	followers, err := s.followRepo.FollowerIDs(ctx, user.ID)
	if err != nil {
		return err
	}
	following, err := s.followRepo.FollowingIDs(ctx, user.ID)
	if err != nil {
		return err
	}
	if followers == nil {
		followers = []uint{}
	}
	if following == nil {
		following = []uint{}
	}
	user.Followers = followers
	user.Following = following
	return nil
}
