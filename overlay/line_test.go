package overlay

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		inFragment bool
		want       Line
	}{
		{
			name: "node open",
			text: "\tfragment@0 {",
			want: Line{Shape: NodeOpen, Text: "\tfragment@0 {", Indent: "\t", Name: "fragment@0"},
		},
		{
			name: "labeled node open",
			text: "\t\tpin: pin {",
			want: Line{Shape: NodeOpen, Text: "\t\tpin: pin {", Indent: "\t\t", Name: "pin: pin"},
		},
		{
			name: "root open",
			text: "/ {",
			want: Line{Shape: NodeOpen, Text: "/ {", Name: "/"},
		},
		{
			name: "node close",
			text: "\t};",
			want: Line{Shape: NodeClose, Text: "\t};", Indent: "\t"},
		},
		{
			name: "open wins over close on one line",
			text: "foo { };",
			want: Line{Shape: NodeOpen, Text: "foo { };", Name: "foo"},
		},
		{
			name:       "target in fragment",
			text:       "\t\ttarget = <&gpio>;",
			inFragment: true,
			want:       Line{Shape: TargetProperty, Text: "\t\ttarget = <&gpio>;", Value: "&gpio"},
		},
		{
			name:       "target without spaces",
			text:       "target=<&gpio>;",
			inFragment: true,
			want:       Line{Shape: TargetProperty, Text: "target=<&gpio>;", Value: "&gpio"},
		},
		{
			name: "target outside fragment is plain",
			text: "\t\ttarget = <&gpio>;",
			want: Line{Shape: PlainLine, Text: "\t\ttarget = <&gpio>;"},
		},
		{
			name:       "target-path in fragment",
			text:       "\t\ttarget-path = \"/soc/spi\";",
			inFragment: true,
			want:       Line{Shape: TargetPathProperty, Text: "\t\ttarget-path = \"/soc/spi\";", Value: "/soc/spi"},
		},
		{
			name:       "similar property name is plain",
			text:       "\t\ttargets = <&gpio>;",
			inFragment: true,
			want:       Line{Shape: PlainLine, Text: "\t\ttargets = <&gpio>;"},
		},
		{
			name:       "unterminated target value is plain",
			text:       "\t\ttarget = <&gpio;",
			inFragment: true,
			want:       Line{Shape: PlainLine, Text: "\t\ttarget = <&gpio;"},
		},
		{
			name: "ordinary property",
			text: "\tstatus = \"okay\";",
			want: Line{Shape: PlainLine, Text: "\tstatus = \"okay\";"},
		},
		{
			name: "blank",
			text: "",
			want: Line{Shape: PlainLine},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.text, tt.inFragment)
			if got != tt.want {
				t.Errorf("Classify(%q, %v) = %+v, want %+v", tt.text, tt.inFragment, got, tt.want)
			}
		})
	}
}

func TestIsFragmentName(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"fragment@0", true},
		{"fragment@12", true},
		{"fragment@", false},
		{"fragment@1a", false},
		{"fragment", false},
		{"frag0: fragment@0", false},
		{"__overlay__", false},
	}
	for _, tt := range tests {
		if got := isFragmentName(tt.name); got != tt.want {
			t.Errorf("isFragmentName(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestPropertyName(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"\tcompatible = \"acme,board\";", "compatible"},
		{"#address-cells = <1>;", "#address-cells"},
		{"brcm,pins = <4>;", "brcm,pins"},
		{"status;", ""},
		{"pin: pin", ""},
		{"// comment", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := propertyName(tt.text); got != tt.want {
			t.Errorf("propertyName(%q) = %q, want %q", tt.text, got, tt.want)
		}
	}
}
