package model_test

import (
	"testing"

	"github.com/m-mizutani/deploystat/pkg/domain/model"
	"github.com/m-mizutani/gt"
)

func TestFormatNumber(t *testing.T) {
	testCases := []struct {
		name string
		in   float64
		want string
	}{
		{"whole", 100.0, "100"},
		{"zero", 0, "0"},
		{"thirds", 100.0 / 3, "33.33"},
		{"two thirds", 200.0 / 3, "66.67"},
		{"one decimal", 12.5, "12.50"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			gt.Equal(t, model.FormatNumber(tc.in), tc.want)
		})
	}
}

func TestFormatDuration(t *testing.T) {
	gt.Equal(t, model.FormatMinsSecs(0), "0m 0s")
	gt.Equal(t, model.FormatMinsSecs(61500), "1m 1s")
	gt.Equal(t, model.FormatMinsSecs(3_599_999), "59m 59s")
	gt.Equal(t, model.FormatDuration(61500), "61500 ms (1m 1s)")
	gt.Equal(t, model.FormatDuration(1234.4), "1234 ms (0m 1s)")
}
