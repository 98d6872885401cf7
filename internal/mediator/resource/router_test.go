package resource

import (
	"context"
	"testing"

	"github.com/chistokhinsv/gns3-mcp-go/internal/mediator/errorx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitPath(t *testing.T) {
	assert.Nil(t, splitPath(""))
	assert.Nil(t, splitPath("/"))
	assert.Equal(t, []string{"nodes", "R1"}, splitPath("/nodes/R1"))
	assert.Equal(t, []string{"nodes", "R1"}, splitPath("nodes/R1/"))
}

func TestQuery_UnknownSchemeReturnsInvalidParameter(t *testing.T) {
	_, rec := Query(context.Background(), nil, "ftp://nope")
	require.NotNil(t, rec)
	assert.Equal(t, errorx.InvalidParameter, rec.ErrorCode)
	assert.Contains(t, rec.Context, "patterns")
}

func TestQuery_UnparseableURIReturnsInvalidParameter(t *testing.T) {
	_, rec := Query(context.Background(), nil, "://::not a uri")
	require.NotNil(t, rec)
	assert.Equal(t, errorx.InvalidParameter, rec.ErrorCode)
}
