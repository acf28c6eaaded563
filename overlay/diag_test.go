package overlay

import "testing"

func TestDiagnosticsStatus(t *testing.T) {
	tests := []struct {
		name  string
		diags Diagnostics
		want  int
	}{
		{"clean", Diagnostics{}, StatusOK},
		{"warnings only", Diagnostics{Warnings: 2}, StatusWarnings},
		{"forced errors outrank warnings", Diagnostics{Errors: 1, Warnings: 3}, StatusForcedErrors},
		{"errors only", Diagnostics{Errors: 2}, StatusForcedErrors},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.diags.Status(); got != tt.want {
				t.Errorf("Status() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestFatalErrorMessage(t *testing.T) {
	err := &FatalError{Line: 7, Status: StatusMissingTarget, Msg: "no 'target' property in node fragment@0"}
	want := "line 7: no 'target' property in node fragment@0"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}
