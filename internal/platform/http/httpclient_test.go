package http

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHTTPClient(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		timeout time.Duration
		want    time.Duration
	}{
		{"success: explicit timeout", 10 * time.Second, 10 * time.Second},
		{"success: zero uses default", 0, DefaultTimeout},
		{"success: negative uses default", -time.Second, DefaultTimeout},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := NewHTTPClient(tt.timeout)
			assert.Equal(t, tt.want, c.Timeout)

			tr, ok := c.Transport.(*http.Transport)
			require.True(t, ok)
			assert.Equal(t, 16, tr.MaxIdleConnsPerHost)
			assert.NotNil(t, tr.Proxy)
		})
	}
}
