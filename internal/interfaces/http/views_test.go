package http

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestMoney(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"0", "0,00"},
		{"5", "5,00"},
		{"15", "15,00"},
		{"1234.5", "1.234,50"},
		{"1234500.5", "1.234.500,50"},
		{"-9876.54", "-9.876,54"},
	}
	for _, tc := range cases {
		d, err := decimal.NewFromString(tc.in)
		assert.NoError(t, err)
		assert.Equal(t, tc.want, money(d), "money(%s)", tc.in)
	}
}
