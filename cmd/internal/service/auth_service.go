package service

import (
	"context"

	"shiftboard/cmd/internal/auth"
	"shiftboard/cmd/internal/domain/entity"
	cognitoclient "shiftboard/cmd/internal/integration/aws/cognito"
	"shiftboard/cmd/internal/utils"
	"shiftboard/cmd/internal/utils/apierror"

	"github.com/labstack/gommon/log"
)

type DefaultAuthService struct {
	ProfileRepo ProfileRepository
	Cognito     cognitoclient.CognitoInterface
	Sessions    *auth.Sessions
}

func NewAuthService(profileRepo ProfileRepository, cogClient cognitoclient.CognitoInterface, sessions *auth.Sessions) *DefaultAuthService {
	return &DefaultAuthService{ProfileRepo: profileRepo, Cognito: cogClient, Sessions: sessions}
}

// ResolveCallback turns an identity-provider access token into a
// session token. The profile row is created on first sign-in, or an
// invited profile is adopted by email match.
func (a *DefaultAuthService) ResolveCallback(ctx context.Context, accessToken string) (string, apierror.ErrorResponse) {
	identity, err := a.Cognito.GetUser(ctx, accessToken)
	if err != nil {
		log.Errorf("failed to resolve access token: %v", err)
		return "", apierror.NewSimple(401, "Sign-in failed")
	}

	profile, err := a.ProfileRepo.FindBySub(identity.Sub)
	if err != nil {
		log.Errorf("failed to fetch profile for sub %s: %v", identity.Sub, err)
		return "", apierror.InternalServerError
	}

	if profile == nil {
		profile, err = a.adoptOrCreate(identity)
		if err != nil {
			log.Errorf("failed to provision profile for %s: %v", identity.Email, err)
			return "", apierror.InternalServerError
		}
	}

	token, err := a.Sessions.Mint(profile.SubUUID, profile.Email)
	if err != nil {
		log.Errorf("failed to mint session for %s: %v", profile.SubUUID, err)
		return "", apierror.InternalServerError
	}
	return token, nil
}

func (a *DefaultAuthService) adoptOrCreate(identity *cognitoclient.Identity) (*entity.Profile, error) {
	now := utils.NowUTC()

	// An invited member signs in for the first time: their profile
	// exists under a provisional subject and gets the real one here.
	profile, err := a.ProfileRepo.FindByEmail(identity.Email)
	if err != nil {
		return nil, err
	}

	if profile != nil {
		profile.SubUUID = identity.Sub
		profile.UpdatedAt = now
		return profile, a.ProfileRepo.Save(profile)
	}

	profile = &entity.Profile{
		SubUUID:   identity.Sub,
		FullName:  identity.FullName,
		Email:     identity.Email,
		IsAdmin:   false,
		CreatedAt: now,
		UpdatedAt: now,
	}
	return profile, a.ProfileRepo.Save(profile)
}
