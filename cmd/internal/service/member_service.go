package service

import (
	"context"
	"errors"

	"shiftboard/cmd/internal/domain/entity"
	cognitoclient "shiftboard/cmd/internal/integration/aws/cognito"
	"shiftboard/cmd/internal/integration/mail"
	"shiftboard/cmd/internal/utils"
	"shiftboard/cmd/internal/utils/apierror"

	"github.com/aws/smithy-go"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/gommon/log"
)

type ProfileRepository interface {
	FindByID(id int) (*entity.Profile, error)
	FindBySub(sub string) (*entity.Profile, error)
	FindByEmail(email string) (*entity.Profile, error)
	ExistsByEmail(email string) (bool, error)
	FindAll() ([]*entity.Profile, error)
	Save(profile *entity.Profile) error
	Delete(profile *entity.Profile) error
}

// MemberDirectory answers whether an address may be invited at all.
// The default implementation allows everyone; a real workspace
// directory can be swapped in through the constructor.
type MemberDirectory interface {
	IsMember(ctx context.Context, email string) (bool, error)
}

type AllowAllDirectory struct{}

func (AllowAllDirectory) IsMember(context.Context, string) (bool, error) { return true, nil }

type InviteMemberRequest struct {
	Email    string `form:"email" validate:"required,email"`
	FullName string `form:"full_name" validate:"required,min=2,max=80"`
}

type MemberResponse struct {
	ID        int
	FullName  string
	Email     string
	IsAdmin   bool
	CreatedAt string
}

type DefaultMemberService struct {
	ProfileRepo ProfileRepository
	Directory   MemberDirectory
	Cognito     cognitoclient.CognitoInterface
	Mailer      mail.Sender
	Validate    *validator.Validate
	BaseURL     string
}

func NewMemberService(profileRepo ProfileRepository, directory MemberDirectory, cogClient cognitoclient.CognitoInterface, mailer mail.Sender, validate *validator.Validate, baseURL string) *DefaultMemberService {
	return &DefaultMemberService{
		ProfileRepo: profileRepo,
		Directory:   directory,
		Cognito:     cogClient,
		Mailer:      mailer,
		Validate:    validate,
		BaseURL:     baseURL,
	}
}

func (m *DefaultMemberService) GetMembers(caller *entity.Profile) ([]*MemberResponse, apierror.ErrorResponse) {
	if !caller.IsAdmin {
		return nil, apierror.AccessDeniedError
	}

	profiles, err := m.ProfileRepo.FindAll()
	if err != nil {
		log.Errorf("failed to fetch all profiles: %v", err)
		return nil, apierror.InternalServerError
	}

	resp := make([]*MemberResponse, len(profiles))
	for i, profile := range profiles {
		resp[i] = toMemberResponse(profile)
	}
	return resp, nil
}

// InviteMember provisions a profile and an identity-provider account
// for a new member, then mails them a sign-in link.
func (m *DefaultMemberService) InviteMember(ctx context.Context, req *InviteMemberRequest, caller *entity.Profile) apierror.ErrorResponse {
	if !caller.IsAdmin {
		return apierror.AccessDeniedError
	}

	utils.Sanitize(req)
	if valerr := m.Validate.Struct(req); valerr != nil {
		return apierror.FromValidationError(valerr)
	}

	eligible, err := m.Directory.IsMember(ctx, req.Email)
	if err != nil {
		log.Errorf("failed to check directory membership for %s: %v", req.Email, err)
		return apierror.InviteFailedError
	}

	if !eligible {
		return apierror.MemberNotEligibleError
	}

	found, err := m.ProfileRepo.ExistsByEmail(req.Email)
	if err != nil {
		log.Errorf("failed to check if member already exists: %v", err)
		return apierror.InviteFailedError
	}

	if found {
		return apierror.MemberAlreadyExistsError
	}

	err = m.Cognito.AdminCreateUser(ctx, req.Email, req.FullName)
	if err != nil {
		var apiErr smithy.APIError
		if errors.As(err, &apiErr) && apiErr.ErrorCode() == "UsernameExistsException" {
			return apierror.MemberAlreadyExistsError
		}
		log.Errorf("failed to create pool user for %s: %v", req.Email, err)
		return apierror.InviteFailedError
	}

	// A provisional subject keeps the row unique until the first
	// sign-in adopts it with the pool's real one.
	now := utils.NowUTC()
	profile := &entity.Profile{
		SubUUID:   "invited-" + uuid.NewString(),
		FullName:  req.FullName,
		Email:     req.Email,
		IsAdmin:   false,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err = m.ProfileRepo.Save(profile)
	if err != nil {
		_ = m.Cognito.AdminDeleteUser(ctx, req.Email)
		log.Errorf("failed to save invited profile %s: %v", req.Email, err)
		return apierror.InviteFailedError
	}

	err = m.Mailer.SendInvite(ctx, req.Email, req.FullName, m.BaseURL+"/login")
	if err != nil {
		log.Errorf("failed to mail invite to %s: %v", req.Email, err)
		return apierror.InviteFailedError
	}
	return nil
}

// DeleteMember removes the profile row and everything hanging off it.
func (m *DefaultMemberService) DeleteMember(ctx context.Context, memberId int, caller *entity.Profile) apierror.ErrorResponse {
	if !caller.IsAdmin {
		return apierror.AccessDeniedError
	}

	profile, err := m.ProfileRepo.FindByID(memberId)
	if err != nil {
		log.Errorf("failed to fetch profile %d: %v", memberId, err)
		return apierror.InternalServerError
	}

	if profile == nil {
		return apierror.NotFoundError
	}

	err = m.Cognito.AdminDeleteUser(ctx, profile.Email)
	if err != nil {
		// The pool account may already be gone; removal of the row
		// still has to happen.
		log.Errorf("failed to delete pool user %s: %v", profile.Email, err)
	}

	err = m.ProfileRepo.Delete(profile)
	if err != nil {
		log.Errorf("failed to delete profile %d: %v", profile.ID, err)
		return apierror.DeletionFailedError
	}
	return nil
}

func toMemberResponse(profile *entity.Profile) *MemberResponse {
	return &MemberResponse{
		ID:        profile.ID,
		FullName:  profile.FullName,
		Email:     profile.Email,
		IsAdmin:   profile.IsAdmin,
		CreatedAt: utils.FormatEpoch(profile.CreatedAt),
	}
}
