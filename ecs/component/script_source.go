package component

import "github.com/milk9111/charactercontroller/controller"

const SourceScript = "script"

// ScriptSource is an input source driven by a tengo script. The script
// system writes Current each tick; the arbiter reads it.
type ScriptSource struct {
	Path    string
	Current controller.Sample
	Moving  bool

	cancelled bool
}

var ScriptSourceComponent = NewComponent[ScriptSource]("script_source")

var _ controller.Source = (*ScriptSource)(nil)

func (s *ScriptSource) Name() string { return SourceScript }
func (s *ScriptSource) Cancel()      { s.cancelled = true }

// Active is true while the script steers or has a jump to deliver.
func (s *ScriptSource) Active() bool {
	return (s.Moving || s.Current.JumpPressed) && !s.cancelled
}

func (s *ScriptSource) Sample() controller.Sample {
	return s.Current
}

// TakeCancel reports and clears a pending cancel.
func (s *ScriptSource) TakeCancel() bool {
	c := s.cancelled
	s.cancelled = false
	return c
}
