package prompt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAll_SortedAndComplete(t *testing.T) {
	prompts := All()
	require.Len(t, prompts, 2)
	assert.Equal(t, "ssh_setup", prompts[0].Name)
	assert.Equal(t, "topology_discovery", prompts[1].Name)
}

func TestGet_UnknownNameNotFound(t *testing.T) {
	_, ok := Get("does_not_exist")
	assert.False(t, ok)
}

func TestRenderTopologyDiscovery_SubstitutesProjectID(t *testing.T) {
	p, ok := Get("topology_discovery")
	require.True(t, ok)
	text := p.Render(map[string]string{"project_id": "pid-1"})
	assert.Contains(t, text, `projects://pid-1/topology`)
}

func TestRenderTopologyDiscovery_PlaceholderWhenArgMissing(t *testing.T) {
	p, ok := Get("topology_discovery")
	require.True(t, ok)
	text := p.Render(nil)
	assert.Contains(t, text, "{project_id}")
}

func TestRenderSSHSetup_SubstitutesNodeAndProxy(t *testing.T) {
	p, ok := Get("ssh_setup")
	require.True(t, ok)
	text := p.Render(map[string]string{"node_name": "R1", "proxy_url": "http://proxy:8022"})
	assert.Contains(t, text, "R1")
	assert.Contains(t, text, "http://proxy:8022")
}
