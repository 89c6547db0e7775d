package components

import "testing"

// TestUIState tests that UIState constants are defined correctly.
func TestUIState(t *testing.T) {
	tests := []struct {
		name  string
		state UIState
		value int
	}{
		{"UINormal should be 0", UINormal, 0},
		{"UIHovered should be 1", UIHovered, 1},
		{"UIClicked should be 2", UIClicked, 2},
		{"UIDisabled should be 3", UIDisabled, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if int(tt.state) != tt.value {
				t.Errorf("Expected %s to be %d, got %d", tt.name, tt.value, int(tt.state))
			}
		})
	}
}

// TestLayerOrder 渲染层级必须保持相对顺序
func TestLayerOrder(t *testing.T) {
	layers := []int{
		LayerBackground, LayerJuice, LayerFruit, LayerHalves,
		LayerHUD, LayerBanner, LayerOverlay, LayerDialog, LayerToast,
	}
	for i := 1; i < len(layers); i++ {
		if layers[i] <= layers[i-1] {
			t.Errorf("layer %d (%d) should be above layer %d (%d)", i, layers[i], i-1, layers[i-1])
		}
	}
}
