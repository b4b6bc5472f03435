package storage

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory(t *testing.T) {
	var s Storage = NewMemory()

	require.NoError(t, s.Save("exports/u-1/e-1.json", strings.NewReader(`{"goals":[]}`), "application/json"))

	url, err := s.PresignedURL("exports/u-1/e-1.json")
	require.NoError(t, err)
	assert.Equal(t, "memory://exports/u-1/e-1.json", url)

	data, ok := s.(*Memory).Object("exports/u-1/e-1.json")
	require.True(t, ok)
	assert.JSONEq(t, `{"goals":[]}`, string(data))

	require.NoError(t, s.Delete("exports/u-1/e-1.json"))
	_, err = s.PresignedURL("exports/u-1/e-1.json")
	assert.Error(t, err)
}
