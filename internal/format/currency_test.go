package format

import "testing"

func TestPeso(t *testing.T) {
	tests := []struct {
		amount float64
		want   string
	}{
		{0, "₱0.00"},
		{5, "₱5.00"},
		{10, "₱10.00"},
		{45.5, "₱45.50"},
		{19.999, "₱20.00"},
		{0.005, "₱0.01"},
		{1234.5, "₱1,234.50"},
	}

	for _, tt := range tests {
		if got := Peso(tt.amount); got != tt.want {
			t.Errorf("Peso(%v) = %q, want %q", tt.amount, got, tt.want)
		}
	}
}

func TestNewIDUnique(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 1000; i++ {
		id := NewID()
		if id == "" {
			t.Fatal("empty id")
		}
		if _, dup := seen[id]; dup {
			t.Fatalf("duplicate id %q", id)
		}
		seen[id] = struct{}{}
	}
}
