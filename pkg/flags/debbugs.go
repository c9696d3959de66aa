// Package flags holds the shared flag structs for the debbugs CLI.
package flags

import (
	"time"

	"github.com/spf13/pflag"

	"github.com/debbugs/go-debbugs/pkg/debbugs"
)

// DebbugsFlags holds the endpoint configuration shared by every
// subcommand.
type DebbugsFlags struct {
	URL     string
	Timeout time.Duration
}

func NewDebbugsFlags() *DebbugsFlags {
	return &DebbugsFlags{
		URL:     debbugs.DefaultURL,
		Timeout: 60 * time.Second,
	}
}

func (f *DebbugsFlags) BindFlags(fs *pflag.FlagSet) {
	fs.StringVar(&f.URL, "url", f.URL, "Debbugs SOAP endpoint URL")
	fs.DurationVar(&f.Timeout, "timeout", f.Timeout, "HTTP timeout for a single SOAP round trip")
}

// GetClient returns a client for the configured endpoint.
func (f *DebbugsFlags) GetClient() *debbugs.Client {
	client := debbugs.New(f.URL)
	client.HTTPClient.Timeout = f.Timeout
	return client
}
