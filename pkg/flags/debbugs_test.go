package flags

import (
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/debbugs/go-debbugs/pkg/debbugs"
)

func TestDebbugsFlagsDefaults(t *testing.T) {
	f := NewDebbugsFlags()
	assert.Equal(t, debbugs.DefaultURL, f.URL)

	client := f.GetClient()
	assert.Equal(t, debbugs.DefaultURL, client.URL)
	assert.Equal(t, f.Timeout, client.HTTPClient.Timeout)
}

func TestDebbugsFlagsBind(t *testing.T) {
	f := NewDebbugsFlags()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	f.BindFlags(fs)

	err := fs.Parse([]string{"--url", "https://debbugs.gnu.org/cgi/soap.cgi", "--timeout", "5s"})
	require.NoError(t, err)
	assert.Equal(t, "https://debbugs.gnu.org/cgi/soap.cgi", f.URL)
	assert.Equal(t, 5*time.Second, f.Timeout)

	client := f.GetClient()
	assert.Equal(t, "https://debbugs.gnu.org/cgi/soap.cgi", client.URL)
	assert.Equal(t, 5*time.Second, client.HTTPClient.Timeout)
}
