package theme

import "testing"

func TestSetThemeMonoCollapsesAccents(t *testing.T) {
	SetTheme("mono")
	defer SetTheme("default")

	if ColorGreen != ColorWhite {
		t.Errorf("mono ColorGreen = %+v, want %+v", ColorGreen, ColorWhite)
	}
	if ColorRed != ColorWhite {
		t.Errorf("mono ColorRed = %+v, want %+v", ColorRed, ColorWhite)
	}
	if !TakenStyle.GetBold() {
		t.Error("TakenStyle lost bold after palette switch")
	}
}

func TestSetThemeUnknownFallsBackToDefault(t *testing.T) {
	SetTheme("solarized-dreams")
	defer SetTheme("default")

	if ColorGreen == ColorWhite {
		t.Error("unknown theme name should keep the default accent colors")
	}
	if ColorBlue == ColorGray {
		t.Error("unknown theme name should keep the default accent colors")
	}
}
