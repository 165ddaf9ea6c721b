package account

import "testing"

func TestNetWorth(t *testing.T) {
	tests := []struct {
		name     string
		accounts []*Account
		want     float64
	}{
		{
			name: "credit balances subtract",
			accounts: []*Account{
				{Type: TypeCash, Balance: 1000},
				{Type: TypeCredit, Balance: 500},
			},
			want: 500,
		},
		{
			name: "mixed account types",
			accounts: []*Account{
				{Type: TypeDepository, Balance: 2500.50},
				{Type: TypeCash, Balance: 100},
				{Type: TypeCredit, Balance: 300.25},
				{Type: TypeSplit, Balance: 50},
			},
			want: 2350.25,
		},
		{
			name: "untyped accounts add",
			accounts: []*Account{
				{Type: "", Balance: 75},
			},
			want: 75,
		},
		{
			name:     "no accounts",
			accounts: nil,
			want:     0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NetWorth(tt.accounts); got != tt.want {
				t.Errorf("NetWorth() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTypeFromExternal(t *testing.T) {
	tests := []struct {
		in   string
		want Type
	}{
		{"depository", TypeDepository},
		{"credit", TypeCredit},
		{"CREDIT", TypeCredit},
		{"loan", ""},
		{"", ""},
	}

	for _, tt := range tests {
		if got := TypeFromExternal(tt.in); got != tt.want {
			t.Errorf("TypeFromExternal(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
