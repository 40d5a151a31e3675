package service

import (
	"context"
	"testing"

	"shiftboard/cmd/internal/auth"
	"shiftboard/cmd/internal/domain/entity"
	cognitoclient "shiftboard/cmd/internal/integration/aws/cognito"
	"shiftboard/cmd/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func identity(sub, email, name string) *cognitoclient.Identity {
	return &cognitoclient.Identity{Sub: sub, Email: email, FullName: name}
}

func TestResolveCallback(t *testing.T) {
	ctx := context.Background()
	sessions := auth.NewSessions("test-secret")

	t.Run("first sign-in creates a profile and mints a session", func(t *testing.T) {
		profiles := &fakeProfileRepo{}
		svc := NewAuthService(profiles, &fakeCognito{user: identity("sub-1", "mika@example.com", "Mika")}, sessions)

		token, apierr := svc.ResolveCallback(ctx, "valid-token")
		require.Nil(t, apierr)
		require.NotEmpty(t, token)

		session, err := sessions.Parse(token)
		require.NoError(t, err)
		assert.Equal(t, "sub-1", session.Sub)
		assert.Equal(t, "mika@example.com", session.Email)

		profile, err := profiles.FindBySub("sub-1")
		require.NoError(t, err)
		require.NotNil(t, profile)
		assert.Equal(t, "Mika", profile.FullName)
		assert.False(t, profile.IsAdmin)
	})

	t.Run("an invited profile is adopted by email", func(t *testing.T) {
		profiles := &fakeProfileRepo{}
		invited := &entity.Profile{SubUUID: "invited-xyz", FullName: "Rei", Email: "rei@example.com", CreatedAt: utils.NowUTC()}
		require.NoError(t, profiles.Save(invited))

		svc := NewAuthService(profiles, &fakeCognito{user: identity("sub-2", "rei@example.com", "Rei")}, sessions)
		_, apierr := svc.ResolveCallback(ctx, "valid-token")
		require.Nil(t, apierr)

		adopted, err := profiles.FindBySub("sub-2")
		require.NoError(t, err)
		require.NotNil(t, adopted, "the provisional row was adopted, not duplicated")
		assert.Equal(t, invited.ID, adopted.ID)

		all, err := profiles.FindAll()
		require.NoError(t, err)
		assert.Len(t, all, 1)
	})

	t.Run("a rejected token never yields a session", func(t *testing.T) {
		svc := NewAuthService(&fakeProfileRepo{}, &fakeCognito{getErr: assert.AnError}, sessions)
		_, apierr := svc.ResolveCallback(ctx, "garbage")
		require.NotNil(t, apierr)
		assert.Equal(t, 401, apierr.Code())
	})
}
