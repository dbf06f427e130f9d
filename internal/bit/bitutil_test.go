package bit

import "testing"

func TestCombine(t *testing.T) {
	tests := []struct {
		high, low uint8
		expected  uint16
	}{
		{0xAB, 0xCD, 0xABCD},
		{0x00, 0x00, 0x0000},
		{0xFF, 0xFF, 0xFFFF},
		{0x12, 0x34, 0x1234},
	}

	for _, tt := range tests {
		result := Combine(tt.high, tt.low)
		if result != tt.expected {
			t.Errorf("Combine(%X, %X) = %X; want %X", tt.high, tt.low, result, tt.expected)
		}
	}
}

func TestIsSet(t *testing.T) {
	tests := []struct {
		value    uint8
		index    uint8
		expected bool
	}{
		{0b10101010, 0, false},
		{0b10101010, 1, true},
		{0b10101010, 2, false},
		{0b10101010, 7, true},
	}

	for _, tt := range tests {
		result := IsSet(tt.index, tt.value)
		if result != tt.expected {
			t.Errorf("IsSet(%d, %08b) = %v; want %v", tt.index, tt.value, result, tt.expected)
		}
	}
}

func TestSetClear(t *testing.T) {
	tests := []struct {
		value       uint8
		index       uint8
		expectedSet uint8
	}{
		{0b10101010, 0, 0b10101011},
		{0b10101010, 2, 0b10101110},
	}

	for _, tt := range tests {
		if got := Set(tt.index, tt.value); got != tt.expectedSet {
			t.Errorf("Set(%d, %08b) = %08b; want %08b", tt.index, tt.value, got, tt.expectedSet)
		}
		if got := Clear(tt.index, tt.expectedSet); got != tt.value {
			t.Errorf("Clear(%d, %08b) = %08b; want %08b", tt.index, tt.expectedSet, got, tt.value)
		}
	}
}

func TestLowHigh(t *testing.T) {
	tests := []struct {
		value        uint16
		low, high    uint8
	}{
		{0xABCD, 0xCD, 0xAB},
		{0x0000, 0x00, 0x00},
		{0xFFFF, 0xFF, 0xFF},
	}

	for _, tt := range tests {
		if got := Low(tt.value); got != tt.low {
			t.Errorf("Low(%X) = %X; want %X", tt.value, got, tt.low)
		}
		if got := High(tt.value); got != tt.high {
			t.Errorf("High(%X) = %X; want %X", tt.value, got, tt.high)
		}
	}
}

func TestExtractBits(t *testing.T) {
	if got := ExtractBits(0b11010110, 6, 4); got != 0b101 {
		t.Errorf("ExtractBits = %03b; want %03b", got, 0b101)
	}
}
