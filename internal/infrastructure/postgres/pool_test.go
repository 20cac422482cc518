package postgres

import (
	"context"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupIPv4_Literales(t *testing.T) {
	ip, err := lookupIPv4(context.Background(), net.DefaultResolver, "10.0.0.5")
	require.NoError(t, err)
	assert.Equal(t, "10.0.0.5", ip)

	_, err = lookupIPv4(context.Background(), net.DefaultResolver, "::1")
	assert.Error(t, err)
}

func TestDialIPv4_DireccionInvalida(t *testing.T) {
	_, err := dialIPv4(context.Background(), "tcp", "sin-puerto")
	assert.Error(t, err)
}
