package tool

import (
	"context"
	"testing"

	"github.com/chistokhinsv/gns3-mcp-go/internal/mediator/errorx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatch_UnknownToolReturnsInvalidParameter(t *testing.T) {
	_, rec := Dispatch(context.Background(), nil, "does_not_exist", nil)
	require.NotNil(t, rec)
	assert.Equal(t, errorx.InvalidParameter, rec.ErrorCode)
}

func TestAll_EveryRegisteredToolHasNameAndHandler(t *testing.T) {
	specs := All()
	require.NotEmpty(t, specs)

	seen := map[string]bool{}
	for _, s := range specs {
		assert.NotEmpty(t, s.Name)
		assert.NotEmpty(t, s.Description)
		assert.NotNil(t, s.Handler)
		assert.False(t, seen[s.Name], "duplicate tool name %s", s.Name)
		seen[s.Name] = true
	}

	for _, name := range []string{
		"list_projects", "open_project", "create_project", "close_project",
		"list_nodes", "get_node_details", "set_node", "create_node", "delete_node",
		"configure_node_network", "get_node_file", "write_node_file",
		"get_links", "set_connection",
		"list_drawings", "create_drawing", "update_drawing", "delete_drawing",
		"send_console", "read_console", "send_and_wait_console", "send_keystroke",
		"disconnect_console", "get_console_status",
		"query_resource",
	} {
		_, ok := Get(name)
		assert.True(t, ok, "expected tool %q to be registered", name)
	}
}

func TestAll_IsSortedByName(t *testing.T) {
	specs := All()
	for i := 1; i < len(specs); i++ {
		assert.LessOrEqual(t, specs[i-1].Name, specs[i].Name)
	}
}
