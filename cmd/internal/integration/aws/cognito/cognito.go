package cognitoclient

import (
	"context"
	"errors"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	cognito "github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"
)

// Identity is what the pool knows about a signed-in user, resolved
// from an access token.
type Identity struct {
	Sub      string
	Email    string
	FullName string
}

type CognitoInterface interface {
	GetUser(ctx context.Context, accessToken string) (*Identity, error)
	AdminCreateUser(ctx context.Context, email, fullName string) error
	AdminDeleteUser(ctx context.Context, email string) error
}

type CognitoClient struct {
	client     *cognito.Client
	userPoolId string
}

func InitCognitoClient() (*CognitoClient, error) {
	poolId := os.Getenv("COGNITO_USER_POOL_ID")
	if poolId == "" {
		return nil, errors.New("COGNITO_USER_POOL_ID is not set")
	}

	cfg, err := config.LoadDefaultConfig(context.Background())
	if err != nil {
		return nil, err
	}

	return &CognitoClient{
		client:     cognito.NewFromConfig(cfg),
		userPoolId: poolId,
	}, nil
}

// GetUser resolves the identity behind an access token. Cognito
// rejects expired or tampered tokens, so a successful call doubles as
// token verification.
func (c *CognitoClient) GetUser(ctx context.Context, accessToken string) (*Identity, error) {
	out, err := c.client.GetUser(ctx, &cognito.GetUserInput{
		AccessToken: aws.String(accessToken),
	})
	if err != nil {
		return nil, err
	}

	identity := &Identity{}
	for _, attr := range out.UserAttributes {
		switch aws.ToString(attr.Name) {
		case "sub":
			identity.Sub = aws.ToString(attr.Value)
		case "email":
			identity.Email = aws.ToString(attr.Value)
		case "name":
			identity.FullName = aws.ToString(attr.Value)
		}
	}

	if identity.Sub == "" {
		return nil, errors.New("token resolved to a user without a sub")
	}
	return identity, nil
}

// AdminCreateUser provisions a pool user for an invited member. The
// pool's own invitation mail is suppressed; we send our own.
func (c *CognitoClient) AdminCreateUser(ctx context.Context, email, fullName string) error {
	_, err := c.client.AdminCreateUser(ctx, &cognito.AdminCreateUserInput{
		UserPoolId:    aws.String(c.userPoolId),
		Username:      aws.String(email),
		MessageAction: types.MessageActionTypeSuppress,
		UserAttributes: []types.AttributeType{
			{Name: aws.String("email"), Value: aws.String(email)},
			{Name: aws.String("email_verified"), Value: aws.String("true")},
			{Name: aws.String("name"), Value: aws.String(fullName)},
		},
	})
	return err
}

func (c *CognitoClient) AdminDeleteUser(ctx context.Context, email string) error {
	_, err := c.client.AdminDeleteUser(ctx, &cognito.AdminDeleteUserInput{
		UserPoolId: aws.String(c.userPoolId),
		Username:   aws.String(email),
	})
	return err
}
