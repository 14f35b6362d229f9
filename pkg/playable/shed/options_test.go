package shed

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOptions_Validate(t *testing.T) {
	tests := []struct {
		name string
		min  int
		max  int
		ok   bool
	}{
		{"defaults", 4, 4, true},
		{"heads up", 2, 2, true},
		{"padded to three", 3, 4, true},
		{"min above max", 4, 3, false},
		{"too many seats", 2, 5, false},
		{"single seat", 1, 4, false},
		{"no seats", 0, 0, false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			opts := DefaultOptions()
			opts.MinPlayers = test.min
			opts.MaxPlayers = test.max

			err := opts.Validate()
			if test.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestParseOptions(t *testing.T) {
	a := assert.New(t)

	twoRank, err := ParseTwoRank("low")
	a.NoError(err)
	a.Equal(TwoLow, twoRank)

	twoRank, err = ParseTwoRank("")
	a.NoError(err)
	a.Equal(TwoHigh, twoRank)

	_, err = ParseTwoRank("middle")
	a.EqualError(err, "unknown two rank: middle")

	policy, err := ParseIllegalPlayPolicy("reject")
	a.NoError(err)
	a.Equal(IllegalPlayReject, policy)

	_, err = ParseIllegalPlayPolicy("shrug")
	a.EqualError(err, "unknown illegal play policy: shrug")
}
