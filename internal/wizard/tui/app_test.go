package tui

import (
	"testing"

	"github.com/muurk/igd-setup/internal/flow"
)

func TestContentWidth(t *testing.T) {
	tests := []struct {
		name  string
		width int
		want  int
	}{
		{name: "narrow terminal clamped up", width: 20, want: MinTerminalWidth},
		{name: "wide terminal clamped down", width: 300, want: MaxContentWidth},
		{name: "in range unchanged", width: 80, want: 80},
		{name: "lower bound", width: MinTerminalWidth, want: MinTerminalWidth},
		{name: "upper bound", width: MaxContentWidth, want: MaxContentWidth},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := contentWidth(tt.width); got != tt.want {
				t.Errorf("contentWidth(%d) = %d, want %d", tt.width, got, tt.want)
			}
		})
	}
}

func TestAppModelScreenTransitions(t *testing.T) {
	m := NewAppModel(nil)
	if m.CurrentScreen != ScreenDiscovery {
		t.Fatalf("CurrentScreen = %v, want discovery at start", m.CurrentScreen)
	}

	option := flow.FormOption{UniqueID: "uuid:igd-1", Label: "Router igd-1"}
	updated, _ := m.Update(routerSelectedMsg{option: option})
	m = updated.(AppModel)
	if m.CurrentScreen != ScreenConfirm {
		t.Errorf("CurrentScreen = %v, want confirm after selection", m.CurrentScreen)
	}
	if m.Confirm.Option.UniqueID != option.UniqueID {
		t.Errorf("Confirm.Option = %v, want %v", m.Confirm.Option, option)
	}

	result := &flow.Result{Type: flow.ResultAborted, Reason: flow.AbortCancelled}
	updated, _ = m.Update(createCompleteMsg{result: result})
	m = updated.(AppModel)
	if m.CurrentScreen != ScreenResult {
		t.Errorf("CurrentScreen = %v, want result after creation", m.CurrentScreen)
	}
	if m.Result.Reason != flow.AbortCancelled {
		t.Errorf("Result.Reason = %v, want flow_cancelled", m.Result.Reason)
	}

	updated, _ = m.Update(goBackMsg{})
	m = updated.(AppModel)
	if m.CurrentScreen != ScreenDiscovery {
		t.Errorf("CurrentScreen = %v, want discovery after going back", m.CurrentScreen)
	}
}
