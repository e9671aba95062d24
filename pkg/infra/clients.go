package infra

import (
	"net/http"

	"github.com/0xb0rn3/gitnav/pkg/domain/interfaces"
)

// Clients bundles the external collaborators the usecase layer depends on.
// Everything is injectable for tests.
type Clients struct {
	github     interfaces.GitHub
	httpClient interfaces.HTTPClient
}

type Option func(*Clients)

func New(options ...Option) *Clients {
	client := &Clients{
		httpClient: http.DefaultClient,
	}

	for _, opt := range options {
		opt(client)
	}

	return client
}

func (x *Clients) GitHub() interfaces.GitHub {
	return x.github
}

func (x *Clients) HTTPClient() interfaces.HTTPClient {
	return x.httpClient
}

func WithGitHub(client interfaces.GitHub) Option {
	return func(x *Clients) {
		x.github = client
	}
}

func WithHTTPClient(client interfaces.HTTPClient) Option {
	return func(x *Clients) {
		x.httpClient = client
	}
}
