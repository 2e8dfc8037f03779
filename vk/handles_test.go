package vk

import "testing"

func TestHandleIsNull(t *testing.T) {
	tests := []struct {
		name string
		h    Handle
		want bool
	}{
		{"zero is null", Handle(0), true},
		{"nonzero is not null", Handle(1), false},
		{"max value is not null", Handle(^uint64(0)), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.h.IsNull(); got != tt.want {
				t.Errorf("IsNull() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTypedHandleIsNull(t *testing.T) {
	var dev Device
	if !dev.IsNull() {
		t.Error("zero-value Device should be null")
	}
	dev = Device(42)
	if dev.IsNull() {
		t.Error("non-zero Device should not be null")
	}

	var buf Buffer
	if !buf.IsNull() {
		t.Error("zero-value Buffer should be null")
	}
	buf = Buffer(7)
	if buf.IsNull() {
		t.Error("non-zero Buffer should not be null")
	}
}
