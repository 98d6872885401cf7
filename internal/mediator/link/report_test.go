package link

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPortInfo_ReportsFreeAndInUse(t *testing.T) {
	nodes, links := existingLinkTopology()
	s := NewSnapshot(nodes, links)

	report, ok := s.PortInfo("R1")
	require.True(t, ok)
	assert.Contains(t, report, "Ports on R1")
	assert.Contains(t, report, "in use")
	assert.Contains(t, report, "free")
}

func TestPortInfo_UnknownNode(t *testing.T) {
	nodes, links := r1r2Topology()
	s := NewSnapshot(nodes, links)

	_, ok := s.PortInfo("Ghost")
	assert.False(t, ok)
}
