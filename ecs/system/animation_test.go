package system

import (
	"fmt"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/charactercontroller/controller"
	"github.com/milk9111/charactercontroller/ecs"
	"github.com/milk9111/charactercontroller/ecs/component"
)

func TestAnimationParameters(t *testing.T) {
	r := newTestRig(t, rigOptions{})
	r.device.state.Move = mgl64.Vec2{0, 1}
	r.tick(30)

	tree, ok := ecs.Get(r.world, r.player, component.AnimationTreeComponent.Kind())
	if !ok {
		t.Fatalf("player has no animation tree")
	}

	for _, s := range controller.States() {
		path := fmt.Sprintf(component.ParamConditionFmt, s)
		if got, want := tree.Bool(path), s == controller.StateRunning; got != want {
			t.Fatalf("%s = %v, want %v", path, got, want)
		}
	}

	v, ok := tree.Get(component.ParamBlendPosition)
	if !ok {
		t.Fatalf("blend position not written")
	}
	blend := v.(mgl64.Vec2)
	// running straight ahead: full forward, no strafe
	if !blend.ApproxEqualThreshold(mgl64.Vec2{0, 1}, 1e-6) {
		t.Fatalf("blend position = %v, want (0, 1)", blend)
	}

	if vy, _ := tree.Get(component.ParamVerticalSpeed); vy != 0.0 {
		t.Fatalf("vertical speed on ground = %v", vy)
	}
}
