package model_test

import (
	"testing"

	"github.com/fdestra28/kasirtta-sub000/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func TestDebtStatus(t *testing.T) {
	cases := []struct {
		name string
		due  string
		paid string
		want string
	}{
		{"nothing paid", "50000", "0", model.DebtUnpaid},
		{"partial", "50000", "30000", model.DebtPartiallyPaid},
		{"one short", "50000", "49999.99", model.DebtPartiallyPaid},
		{"exact", "50000", "50000", model.DebtPaid},
		{"overpaid", "50000", "50000.01", model.DebtPaid},
		{"zero due", "0", "0", model.DebtPaid},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, model.DebtStatus(d(tc.due), d(tc.paid)))
		})
	}
}
