package mail

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v2"
)

type Sender interface {
	SendInvite(ctx context.Context, to, fullName, signinURL string) error
}

// ResendSender delivers invitation mail through the Resend API.
type ResendSender struct {
	client *resend.Client
	from   string
}

func NewResendSender(apiKey, from string) *ResendSender {
	return &ResendSender{
		client: resend.NewClient(apiKey),
		from:   from,
	}
}

func (s *ResendSender) SendInvite(ctx context.Context, to, fullName, signinURL string) error {
	params := &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{to},
		Subject: "You have been invited to Shiftboard",
		Html: fmt.Sprintf(
			"<p>Hi %s,</p><p>An administrator invited you to the team workspace. "+
				"Sign in with this address to get started:</p><p><a href=%q>%s</a></p>",
			fullName, signinURL, signinURL),
	}

	_, err := s.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		return fmt.Errorf("send invite to %s: %w", to, err)
	}
	return nil
}
