package usecase

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"github.com/google/go-github/v74/github"
	"github.com/joho/godotenv"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/deploystat/pkg/domain"
	"github.com/m-mizutani/deploystat/pkg/domain/interfaces"
	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/oauth2"
)

// TokenEnvName is the environment variable holding the access token
const TokenEnvName = "GITHUB_TOKEN" // #nosec G101 - variable name, not a credential

type AuthService struct {
	token   string
	envFile string
}

// NewAuthService resolves the token from the explicit value first, then from
// the environment after loading envFile. An empty envFile skips loading.
func NewAuthService(token, envFile string) interfaces.AuthService {
	return &AuthService{
		token:   token,
		envFile: envFile,
	}
}

func (s *AuthService) GetToken(ctx context.Context) (string, error) {
	logger := ctxlog.From(ctx)

	if s.token != "" {
		return s.token, nil
	}

	if s.envFile != "" {
		if err := godotenv.Load(s.envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return "", goerr.Wrap(err, "failed to load env file", goerr.V("path", s.envFile))
			}
			logger.Debug("env file not found, using process environment",
				slog.String("path", s.envFile),
			)
		}
	}

	token := os.Getenv(TokenEnvName)
	if token == "" {
		return "", goerr.Wrap(domain.ErrMissingToken, "set "+TokenEnvName+" or pass --github-pat",
			goerr.V("env", TokenEnvName),
		)
	}

	return token, nil
}

func (s *AuthService) GetAuthenticatedClient(ctx context.Context) (*github.Client, error) {
	token, err := s.GetToken(ctx)
	if err != nil {
		return nil, err
	}

	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	tc := oauth2.NewClient(ctx, ts)
	return github.NewClient(tc), nil
}
