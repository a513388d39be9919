package main

import (
	"fmt"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/milk9111/charactercontroller/controller"
	"github.com/milk9111/charactercontroller/ecs"
	"github.com/milk9111/charactercontroller/ecs/component"
)

// DebugUI is the F1 panel: live locomotion readout plus buttons that force a
// state through the same interrupt path scripts use.
type DebugUI struct {
	UI *ebitenui.UI

	game   *Game
	state  *widget.Text
	budget *widget.Text
	source *widget.Text
}

func NewDebugUI(g *Game) *DebugUI {
	face := uiFace()
	d := &DebugUI{game: g}

	label := func() *widget.Text {
		return widget.NewText(
			widget.TextOpts.Text("", face, uiTextColor),
			widget.TextOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionStart})),
		)
	}
	d.state = label()
	d.budget = label()
	d.source = label()

	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(imageui.NewNineSliceColor(uiPanelColor)),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(6),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 10, Bottom: 10, Left: 12, Right: 12}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(220, 0),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{HorizontalPosition: widget.AnchorLayoutPositionEnd, VerticalPosition: widget.AnchorLayoutPositionStart}),
		),
	)
	panel.AddChild(d.state)
	panel.AddChild(d.budget)
	panel.AddChild(d.source)

	for _, s := range controller.States() {
		name := s.String()
		panel.AddChild(newUIButton(face, "force "+name, func() { g.forceState(name) }))
	}
	panel.AddChild(newUIButton(face, "copy tuning (F2)", g.copyTuning))

	root := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)
	root.AddChild(panel)

	d.UI = &ebitenui.UI{Container: root}
	return d
}

// Refresh copies the player's current locomotion state into the labels.
func (d *DebugUI) Refresh() {
	w := d.game.world
	player := d.game.scene.Player

	if disabled, ok := ecs.Get(w, player, component.DisabledComponent.Kind()); ok {
		d.state.Label = "disabled: " + disabled.Reason
		d.budget.Label = ""
		d.source.Label = ""
		return
	}

	loco, ok := ecs.Get(w, player, component.LocomotionComponent.Kind())
	if !ok || loco.Machine == nil {
		return
	}
	m := loco.Machine
	snap := m.Budget().Snapshot()
	d.state.Label = fmt.Sprintf("state %s  %.2fs", m.State(), m.TimeInState())
	d.budget.Label = fmt.Sprintf("jump %v  air %d  coyote %.2f  buffer %.2f", snap.GroundJump, snap.AirJumps, snap.Coyote, snap.Buffer)

	if in, ok := ecs.Get(w, player, component.InputComponent.Kind()); ok {
		d.source.Label = fmt.Sprintf("source %s  move %.2f", in.Resolved.Source, in.Resolved.Magnitude())
	}
}
