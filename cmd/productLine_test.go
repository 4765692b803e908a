package cmd

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestProductLine(t *testing.T) {
	line, err := productLine("17.1")
	require.NoError(t, err)
	require.Equal(t, "big-ip_v17.x", line)

	line, err = productLine("17.1.0.1")
	require.NoError(t, err)
	require.Equal(t, "big-ip_v17.x", line)

	line, err = productLine("16.1.4")
	require.NoError(t, err)
	require.Equal(t, "big-ip_v16.x", line)
}

func TestProductLine_Invalid(t *testing.T) {
	_, err := productLine("")
	require.Error(t, err)

	_, err = productLine(".1")
	require.Error(t, err)

	_, err = productLine("v17.1")
	require.Error(t, err)
}
