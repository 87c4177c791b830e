// Package report renders the combo forest, combo trees and cast timelines as styled text for
// the command line.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/samdwyer/powereditor/internal/combo"
	"github.com/samdwyer/powereditor/internal/combotree"
	"github.com/samdwyer/powereditor/internal/cursor"
	"github.com/samdwyer/powereditor/internal/power"
	"github.com/samdwyer/powereditor/internal/timeline"
)

// CycleMarker is appended to a node that loops back onto its own path.
const CycleMarker = "↻"

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7aa2f7"))
	groupStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#e0af68"))
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#9ece6a"))
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#565f89"))
	cycleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#f7768e"))
	hitStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#f7768e"))
)

// Forest writes every group, the ungrouped bucket and detached cycles with their full trees.
func Forest(w io.Writer, f *combotree.Forest) error {
	var b strings.Builder
	for _, g := range f.Groups {
		b.WriteString(groupStyle.Render(g.Name))
		b.WriteString("\n")
		writeRoots(&b, g.Roots)
	}
	if len(f.Ungrouped) > 0 {
		b.WriteString(groupStyle.Render(combotree.UngroupedTitle))
		b.WriteString("\n")
		writeRoots(&b, f.Ungrouped)
	}
	if len(f.Detached) > 0 {
		b.WriteString(groupStyle.Render(combotree.DetachedTitle))
		b.WriteString("\n")
		writeRoots(&b, f.Detached)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func writeRoots(b *strings.Builder, roots []*combotree.Node) {
	for _, r := range roots {
		b.WriteString("  ")
		b.WriteString(nodeText(r))
		b.WriteString("\n")
		writeChildren(b, r, "  ")
	}
}

func writeChildren(b *strings.Builder, n *combotree.Node, indent string) {
	children := n.Children()
	for i, c := range children {
		branch, next := "├─ ", "│  "
		if i == len(children)-1 {
			branch, next = "└─ ", "   "
		}
		b.WriteString(indent)
		b.WriteString(mutedStyle.Render(branch))
		b.WriteString(labelStyle.Render(c.Label))
		b.WriteString(" ")
		b.WriteString(nodeText(c.Node))
		b.WriteString("\n")
		writeChildren(b, c.Node, indent+next)
	}
}

func nodeText(n *combotree.Node) string {
	if n.Kind == combotree.KindCycle {
		return cycleStyle.Render(n.Power.Label() + " " + CycleMarker)
	}
	return n.Power.Label()
}

// Combos writes the powers p leads into and the powers that lead into p.
func Combos(w io.Writer, p *power.Power, all []*power.Power) error {
	var b strings.Builder
	b.WriteString(titleStyle.Render(p.Label()))
	b.WriteString("\n")

	b.WriteString(groupStyle.Render("Combos into"))
	b.WriteString("\n")
	writeTree(&b, combo.Forward(p, all), "→")

	b.WriteString(groupStyle.Render("Reached from"))
	b.WriteString("\n")
	writeTree(&b, combo.Reverse(p, all), "←")

	_, err := io.WriteString(w, b.String())
	return err
}

func writeTree(b *strings.Builder, t *combo.Tree, arrow string) {
	if t == nil {
		b.WriteString(mutedStyle.Render("  (none)"))
		b.WriteString("\n")
		return
	}
	for _, slot := range power.Slots {
		if target := t.Slot(slot); target != nil {
			fmt.Fprintf(b, "  %s %s %s\n", labelStyle.Render(slot.String()), arrow, target.Label())
		}
	}
	for _, d := range t.Directional {
		fmt.Fprintf(b, "  %s %s %s %s\n", labelStyle.Render(d.Direction.String()), string(d.Direction.Arrow()), arrow, d.Power.Label())
	}
}

// Timeline writes one line per resolved cast with its frame window, damage and hitboxes.
func Timeline(w io.Writer, p *power.Power) error {
	casts, err := timeline.Decode(p)
	if err != nil {
		return err
	}
	cur := cursor.New(casts)

	var b strings.Builder
	b.WriteString(titleStyle.Render(p.Label()))
	fmt.Fprintf(&b, "  %s\n", mutedStyle.Render(fmt.Sprintf("%d casts, %d frames", cur.CastCount(), cur.TotalFrames())))
	if cur.CastCount() == 0 {
		b.WriteString(mutedStyle.Render("  (no casts)"))
		b.WriteString("\n")
	}
	for i, c := range cur.Casts() {
		start := cur.CumulativeFrames(i)
		end := start + cur.FramesInCast(i) - 1
		fmt.Fprintf(&b, "  cast %d  frames %d-%d  startup %d  active %d  damage %s",
			i+1, start, end, c.Startup, c.Active, orDash(c.BaseDamage))
		shapes := c.Hitboxes.Shapes()
		switch {
		case c.SuppressesHitbox():
			b.WriteString("  " + mutedStyle.Render("no hitbox"))
		case len(shapes) > 0:
			b.WriteString("  " + hitStyle.Render(fmt.Sprintf("hitboxes %d", len(shapes))))
		}
		b.WriteString("\n")
		for _, s := range shapes {
			fmt.Fprintf(&b, "    %s\n", mutedStyle.Render(fmt.Sprintf("radius %gx%g at (%g, %g)", s.RadiusX, s.RadiusY, s.OffsetX, s.OffsetY)))
		}
	}
	_, err = io.WriteString(w, b.String())
	return err
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return strings.TrimSpace(s)
}
