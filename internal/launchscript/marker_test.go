package launchscript

import "testing"

func TestMarkerExtract(t *testing.T) {
	m := DefaultMarkerSpec()
	tests := []struct {
		name string
		line string
		want string
		ok   bool
	}{
		{"teknoparrot", `START ..\TeknoParrotUi.exe --profile=WMMT6RR.xml`, "WMMT6RR", true},
		{"upper case tokens", `start TeknoParrotUi.exe --PROFILE=Tc5.XML --startMinimized`, "Tc5", true},
		{"hint only", "--profile=TAIKO.xml", "TAIKO", true},
		{"padded id", "--profile=  ID4 .xml", "ID4", true},
		{"no marker", `START game.exe`, "", false},
		{"no extension", `--profile=WMMT6RR`, "", false},
		{"empty id", `--profile=.xml`, "", false},
		{"blank id", `--profile=   .xml`, "", false},
		{"extension before marker only", `config.xml --profile=ABC`, "", false},
		{"multibyte before marker", `啟動 --profile=太鼓.xml`, "太鼓", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := m.Extract(tt.line)
			if ok != tt.ok || got != tt.want {
				t.Fatalf("Extract(%q) = %q, %v; want %q, %v", tt.line, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestMarkerCustomTokens(t *testing.T) {
	m := Marker{Token: "-rom=", Extension: ".zip"}
	got, ok := m.Extract("mame.exe -ROM=sf2.ZIP")
	if !ok || got != "sf2" {
		t.Fatalf("Extract() = %q, %v", got, ok)
	}
}
