package client

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// Config holds the pipeline configuration.
type Config struct {
	// BaseURL is the backend origin every request path is resolved against.
	BaseURL string

	// Timeout bounds each HTTP exchange. Zero uses the transport default.
	Timeout time.Duration

	// RefreshPath is the endpoint the reauthentication flow posts the
	// refresh token to.
	RefreshPath string

	// LoginPath is where a forced logout navigates to.
	LoginPath string

	// PublicPaths never trigger a logout redirect; navigating away from
	// them on auth failure would cause redirect loops.
	PublicPaths []string
}

// DefaultConfig returns a Config for the given backend origin with the
// conventional auth paths filled in.
func DefaultConfig(baseURL string) Config {
	return Config{
		BaseURL:     baseURL,
		Timeout:     30 * time.Second,
		RefreshPath: "/auth/refresh",
		LoginPath:   "/login",
		PublicPaths: []string{"/login", "/register", "/"},
	}
}

// Validate checks whether the configuration values are usable.
func (c Config) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.BaseURL, validation.Required, is.URL),
		validation.Field(&c.Timeout, validation.Min(time.Duration(0))),
		validation.Field(&c.RefreshPath, validation.Required),
		validation.Field(&c.LoginPath, validation.Required),
	)
}

// isPublicPath reports whether path is exempt from logout redirects.
func (c Config) isPublicPath(path string) bool {
	for _, public := range c.PublicPaths {
		if path == public {
			return true
		}
	}
	return false
}
