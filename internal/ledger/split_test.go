package ledger

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/divvyup/divvyup/internal/models"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestComputeSplits(t *testing.T) {
	tests := []struct {
		name         string
		total        decimal.Decimal
		splitType    models.SplitType
		participants []Participant
		wantErr      error
		validateFunc func(t *testing.T, splits []Share)
	}{
		{
			name:      "equal split divides evenly",
			total:     dec("100"),
			splitType: models.SplitEqual,
			participants: []Participant{
				{UserID: "alice"}, {UserID: "bob"}, {UserID: "carol"}, {UserID: "dave"},
			},
			validateFunc: func(t *testing.T, splits []Share) {
				for _, sp := range splits {
					if !sp.Amount.Equal(dec("25")) {
						t.Errorf("%s amount = %s, want 25", sp.UserID, sp.Amount)
					}
					if !sp.Percentage.Equal(dec("25")) {
						t.Errorf("%s percentage = %s, want 25", sp.UserID, sp.Percentage)
					}
				}
			},
		},
		{
			name:      "equal split hands leftover cents to earliest participants",
			total:     dec("100"),
			splitType: models.SplitEqual,
			participants: []Participant{
				{UserID: "alice"}, {UserID: "bob"}, {UserID: "carol"},
			},
			validateFunc: func(t *testing.T, splits []Share) {
				want := []string{"33.34", "33.33", "33.33"}
				for i, sp := range splits {
					if !sp.Amount.Equal(dec(want[i])) {
						t.Errorf("split %d amount = %s, want %s", i, sp.Amount, want[i])
					}
					if !sp.Percentage.Equal(dec("33.33")) {
						t.Errorf("split %d percentage = %s, want 33.33", i, sp.Percentage)
					}
				}
				assertSumEquals(t, splits, dec("100"))
			},
		},
		{
			name:      "equal split of one cent",
			total:     dec("0.01"),
			splitType: models.SplitEqual,
			participants: []Participant{
				{UserID: "alice"}, {UserID: "bob"},
			},
			validateFunc: func(t *testing.T, splits []Share) {
				if !splits[0].Amount.Equal(dec("0.01")) {
					t.Errorf("first split = %s, want 0.01", splits[0].Amount)
				}
				if !splits[1].Amount.IsZero() {
					t.Errorf("second split = %s, want 0", splits[1].Amount)
				}
			},
		},
		{
			name:      "custom split keeps caller amounts",
			total:     dec("80"),
			splitType: models.SplitCustom,
			participants: []Participant{
				{UserID: "alice", Amount: dec("60")},
				{UserID: "bob", Amount: dec("20")},
			},
			validateFunc: func(t *testing.T, splits []Share) {
				if !splits[0].Amount.Equal(dec("60")) {
					t.Errorf("alice amount = %s, want 60", splits[0].Amount)
				}
				if !splits[0].Percentage.Equal(dec("75")) {
					t.Errorf("alice percentage = %s, want 75", splits[0].Percentage)
				}
				if !splits[1].Percentage.Equal(dec("25")) {
					t.Errorf("bob percentage = %s, want 25", splits[1].Percentage)
				}
			},
		},
		{
			name:      "percentage split computes amounts",
			total:     dec("200"),
			splitType: models.SplitPercentage,
			participants: []Participant{
				{UserID: "alice", Percentage: dec("70")},
				{UserID: "bob", Percentage: dec("30")},
			},
			validateFunc: func(t *testing.T, splits []Share) {
				if !splits[0].Amount.Equal(dec("140")) {
					t.Errorf("alice amount = %s, want 140", splits[0].Amount)
				}
				if !splits[1].Amount.Equal(dec("60")) {
					t.Errorf("bob amount = %s, want 60", splits[1].Amount)
				}
			},
		},
		{
			name:      "shares split is proportional and exact",
			total:     dec("100"),
			splitType: models.SplitShares,
			participants: []Participant{
				{UserID: "alice", Shares: 2},
				{UserID: "bob", Shares: 1},
			},
			validateFunc: func(t *testing.T, splits []Share) {
				want := []string{"66.67", "33.33"}
				for i, sp := range splits {
					if !sp.Amount.Equal(dec(want[i])) {
						t.Errorf("split %d amount = %s, want %s", i, sp.Amount, want[i])
					}
				}
				assertSumEquals(t, splits, dec("100"))
			},
		},
		{
			name:      "shares split defaults missing share counts to one",
			total:     dec("30"),
			splitType: models.SplitShares,
			participants: []Participant{
				{UserID: "alice"},
				{UserID: "bob"},
				{UserID: "carol"},
			},
			validateFunc: func(t *testing.T, splits []Share) {
				for i, sp := range splits {
					if !sp.Amount.Equal(dec("10")) {
						t.Errorf("split %d amount = %s, want 10", i, sp.Amount)
					}
					if sp.Shares != 1 {
						t.Errorf("split %d shares = %d, want 1", i, sp.Shares)
					}
				}
			},
		},
		{
			name:      "shares split distributes remainder cents exactly",
			total:     dec("10"),
			splitType: models.SplitShares,
			participants: []Participant{
				{UserID: "alice", Shares: 1},
				{UserID: "bob", Shares: 1},
				{UserID: "carol", Shares: 1},
			},
			validateFunc: func(t *testing.T, splits []Share) {
				assertSumEquals(t, splits, dec("10"))
				for i, sp := range splits {
					diff := sp.Amount.Sub(dec("3.33")).Abs()
					if diff.GreaterThan(dec("0.01")) {
						t.Errorf("split %d amount = %s, want about 3.33", i, sp.Amount)
					}
				}
			},
		},
		{
			name:         "no participants should error",
			total:        dec("10"),
			splitType:    models.SplitEqual,
			participants: nil,
			wantErr:      ErrNoParticipants,
		},
		{
			name:      "zero amount should error",
			total:     decimal.Zero,
			splitType: models.SplitEqual,
			participants: []Participant{
				{UserID: "alice"},
			},
			wantErr: ErrNonPositiveAmount,
		},
		{
			name:      "negative amount should error",
			total:     dec("-5"),
			splitType: models.SplitEqual,
			participants: []Participant{
				{UserID: "alice"},
			},
			wantErr: ErrNonPositiveAmount,
		},
		{
			name:      "unknown split type should error",
			total:     dec("10"),
			splitType: "weighted",
			participants: []Participant{
				{UserID: "alice"},
			},
			wantErr: ErrUnknownSplitType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			splits, err := ComputeSplits(tt.total, tt.splitType, tt.participants)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ComputeSplits error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ComputeSplits failed: %v", err)
			}
			if len(splits) != len(tt.participants) {
				t.Fatalf("got %d splits, want %d", len(splits), len(tt.participants))
			}
			for i, sp := range splits {
				if sp.UserID != tt.participants[i].UserID {
					t.Errorf("split %d user = %s, want %s (order must match input)", i, sp.UserID, tt.participants[i].UserID)
				}
			}
			if tt.validateFunc != nil {
				tt.validateFunc(t, splits)
			}
		})
	}
}

func assertSumEquals(t *testing.T, splits []Share, total decimal.Decimal) {
	t.Helper()
	sum := decimal.Zero
	for _, sp := range splits {
		sum = sum.Add(sp.Amount)
	}
	if !sum.Equal(total) {
		t.Errorf("split amounts sum to %s, want %s", sum, total)
	}
}
