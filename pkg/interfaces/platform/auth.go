package platform

import (
	"fmt"
	"net/http"
	"time"

	"github.com/mrjones/oauth"
)

// Authenticator wraps an OAuth 1.0a signed HTTP client for platform
// write operations
type Authenticator struct {
	client *http.Client
}

func NewAuthenticator(config *Config) (*Authenticator, error) {
	consumer := oauth.NewConsumer(config.ConsumerKey, config.ConsumerSecret, oauth.ServiceProvider{
		RequestTokenUrl:   config.BaseURL + "/oauth/request_token",
		AuthorizeTokenUrl: config.BaseURL + "/oauth/authorize",
		AccessTokenUrl:    config.BaseURL + "/oauth/access_token",
	})

	consumer.HttpClient = &http.Client{
		Timeout: 30 * time.Second,
	}

	token := oauth.AccessToken{
		Token:  config.AccessToken,
		Secret: config.AccessTokenSecret,
	}

	client, err := consumer.MakeHttpClient(&token)
	if err != nil {
		return nil, fmt.Errorf("failed to create OAuth client: %w", err)
	}

	return &Authenticator{client: client}, nil
}

func (a *Authenticator) GetClient() *http.Client {
	return a.client
}
