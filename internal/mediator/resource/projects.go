package resource

import (
	"context"
	"fmt"

	"github.com/chistokhinsv/gns3-mcp-go/internal/mediator/app"
	"github.com/chistokhinsv/gns3-mcp-go/internal/mediator/errorx"
	"github.com/chistokhinsv/gns3-mcp-go/internal/mediator/link"
	"github.com/chistokhinsv/gns3-mcp-go/internal/mediator/model"
)

func routeProjects(ctx context.Context, deps *app.Context, pid string, segs []string) (interface{}, *errorx.Record) {
	if pid == "" {
		projects, err := deps.Emulator.GetProjects(ctx)
		if err != nil {
			return nil, errorx.FromAny(err)
		}
		return projects, nil
	}

	if len(segs) == 0 {
		return findProject(ctx, deps, pid)
	}

	switch segs[0] {
	case "nodes":
		return routeProjectNodes(ctx, deps, pid, segs[1:])
	case "links":
		links, err := deps.Emulator.GetLinks(ctx, pid)
		if err != nil {
			return nil, errorx.FromAny(err)
		}
		return links, nil
	case "drawings":
		drawings, err := deps.Emulator.GetDrawings(ctx, pid)
		if err != nil {
			return nil, errorx.FromAny(err)
		}
		return drawings, nil
	case "snapshots":
		snaps, err := deps.Emulator.ListSnapshots(ctx, pid)
		if err != nil {
			return nil, errorx.FromAny(err)
		}
		return snaps, nil
	case "readme":
		text, err := deps.Emulator.GetReadme(ctx, pid)
		if err != nil {
			return nil, errorx.FromAny(err)
		}
		return map[string]string{"readme": text}, nil
	case "topology":
		return buildTopologyReport(ctx, deps, pid)
	}

	return nil, unsupportedURI(fmt.Sprintf("projects://%s/%s", pid, segs[0]))
}

func findProject(ctx context.Context, deps *app.Context, pid string) (model.Project, *errorx.Record) {
	projects, err := deps.Emulator.GetProjects(ctx)
	if err != nil {
		return model.Project{}, errorx.FromAny(err)
	}
	for _, p := range projects {
		if p.ID == pid {
			return p, nil
		}
	}
	return model.Project{}, errorx.New(errorx.ProjectNotFound)
}

func routeProjectNodes(ctx context.Context, deps *app.Context, pid string, segs []string) (interface{}, *errorx.Record) {
	nodes, err := deps.Emulator.GetNodes(ctx, pid)
	if err != nil {
		return nil, errorx.FromAny(err)
	}

	if len(segs) == 0 {
		return nodes, nil
	}

	nid := segs[0]
	var node model.Node
	found := false
	for _, n := range nodes {
		if n.ID == nid {
			node = n
			found = true
			break
		}
	}
	if !found {
		return nil, errorx.New(errorx.NodeNotFound)
	}

	if len(segs) == 1 {
		return nodeDetail(ctx, deps, pid, node)
	}
	if len(segs) == 2 && segs[1] == "template" {
		return templateUsageNote(node), nil
	}

	return nil, unsupportedURI(fmt.Sprintf("projects://%s/nodes/%s/%s", pid, nid, segs[1]))
}

// nodeDetailView augments the raw node with the human-readable port
// report from link_validator.py's get_port_info, not just the node's own published port list.
type nodeDetailView struct {
	model.Node
	PortReport string `json:"port_report,omitempty"`
}

func nodeDetail(ctx context.Context, deps *app.Context, pid string, node model.Node) (nodeDetailView, *errorx.Record) {
	links, err := deps.Emulator.GetLinks(ctx, pid)
	if err != nil {
		return nodeDetailView{}, errorx.FromAny(err)
	}
	nodes, err := deps.Emulator.GetNodes(ctx, pid)
	if err != nil {
		return nodeDetailView{}, errorx.FromAny(err)
	}

	snap := link.NewSnapshot(nodes, links)
	report, _ := snap.PortInfo(node.Name)
	return nodeDetailView{Node: node, PortReport: report}, nil
}

func templateUsageNote(node model.Node) map[string]interface{} {
	templateID, ok := node.Properties["template_id"]
	if !ok {
		return map[string]interface{}{
			"node_id": node.ID,
			"note":    "this node carries no recorded template_id; it may have been created directly rather than from a template",
		}
	}
	return map[string]interface{}{
		"node_id":     node.ID,
		"template_id": templateID,
		"note":        fmt.Sprintf("node %q was instantiated from template %v", node.Name, templateID),
	}
}

// topologyReport is the aggregated view projects://{pid}/topology
// returns: nodes, links, and per-node port reports in one call so an
// agent orienting itself in a lab does not need three round trips.
type topologyReport struct {
	ProjectID   string                `json:"project_id"`
	Nodes       []model.Node          `json:"nodes"`
	Links       []model.Link          `json:"links"`
	PortReports map[string]string     `json:"port_reports,omitempty"`
}

func buildTopologyReport(ctx context.Context, deps *app.Context, pid string) (topologyReport, *errorx.Record) {
	nodes, err := deps.Emulator.GetNodes(ctx, pid)
	if err != nil {
		return topologyReport{}, errorx.FromAny(err)
	}
	links, err := deps.Emulator.GetLinks(ctx, pid)
	if err != nil {
		return topologyReport{}, errorx.FromAny(err)
	}

	snap := link.NewSnapshot(nodes, links)
	reports := make(map[string]string, len(nodes))
	for _, n := range nodes {
		if report, ok := snap.PortInfo(n.Name); ok {
			reports[n.Name] = report
		}
	}

	return topologyReport{ProjectID: pid, Nodes: nodes, Links: links, PortReports: reports}, nil
}
