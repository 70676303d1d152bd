package userservice

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPassword(t *testing.T) {
	var p Password
	require.NoError(t, p.set("Test_1234!"))
	assert.NotEqual(t, []byte("Test_1234!"), p.Hash)

	testCases := []struct {
		name  string
		input string
		match bool
	}{
		{name: "same password", input: "Test_1234!", match: true},
		{name: "different password", input: "Test_1234?", match: false},
		{name: "empty", input: "", match: false},
		{name: "longer than bcrypt accepts", input: strings.Repeat("a", 80), match: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ok, err := p.compare(tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.match, ok)
		})
	}
}

func TestPasswordWithoutHash(t *testing.T) {
	var p Password

	ok, err := p.compare("Test_1234!")
	require.NoError(t, err)
	assert.False(t, ok)
}
