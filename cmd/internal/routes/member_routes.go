package routes

import (
	"context"
	"net/http"
	"strconv"

	"shiftboard/cmd/internal/auth"
	"shiftboard/cmd/internal/domain/entity"
	"shiftboard/cmd/internal/service"
	"shiftboard/cmd/internal/utils/apierror"

	"github.com/labstack/echo/v4"
)

type MemberService interface {
	GetMembers(caller *entity.Profile) ([]*service.MemberResponse, apierror.ErrorResponse)
	InviteMember(ctx context.Context, req *service.InviteMemberRequest, caller *entity.Profile) apierror.ErrorResponse
	DeleteMember(ctx context.Context, memberId int, caller *entity.Profile) apierror.ErrorResponse
}

type DefaultMemberRoute struct {
	MemberService MemberService
}

func NewMemberDefault(memberService MemberService) *DefaultMemberRoute {
	return &DefaultMemberRoute{MemberService: memberService}
}

func (m *DefaultMemberRoute) GetMembersPage(c echo.Context) error {
	return m.renderPage(c, http.StatusOK, nil)
}

// PostMembersPage dispatches the form by its intent field: "invite"
// provisions a new member, "delete" removes one. The service re-checks
// the admin flag on every write on top of the route guard.
func (m *DefaultMemberRoute) PostMembersPage(c echo.Context) error {
	caller := auth.CurrentProfile(c)
	ctx := c.Request().Context()

	switch c.FormValue("intent") {
	case "invite":
		var req service.InviteMemberRequest
		if err := c.Bind(&req); err != nil {
			return m.renderPage(c, 400, apierror.MalformedFormError)
		}

		if apierr := m.MemberService.InviteMember(ctx, &req, caller); apierr != nil {
			return m.renderPage(c, apierr.Code(), apierr)
		}

	case "delete":
		memberId, err := strconv.Atoi(c.FormValue("id"))
		if err != nil {
			return m.renderPage(c, 400, apierror.NewSimple(400, "ID is not a number"))
		}

		if apierr := m.MemberService.DeleteMember(ctx, memberId, caller); apierr != nil {
			return m.renderPage(c, apierr.Code(), apierr)
		}

	default:
		return m.renderPage(c, 400, apierror.UnknownIntentError)
	}

	return c.Redirect(http.StatusSeeOther, "/members")
}

func (m *DefaultMemberRoute) renderPage(c echo.Context, status int, apierr apierror.ErrorResponse) error {
	caller := auth.CurrentProfile(c)

	members, listErr := m.MemberService.GetMembers(caller)
	if listErr != nil {
		return c.Render(listErr.Code(), "error.html", map[string]any{
			"Message": listErr.Message(),
		})
	}

	data := map[string]any{
		"Profile": caller,
		"Members": members,
		"CSRF":    c.Get("csrf"),
	}
	if apierr != nil {
		data["Flash"] = apierr.Message()
		data["Errors"] = apierr.Fields()
	}
	return c.Render(status, "members.html", data)
}
