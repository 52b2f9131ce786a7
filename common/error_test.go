package common

import (
	"database/sql"
	"fmt"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestErrorCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Code
	}{
		{name: "nil", err: nil, want: Ok},
		{name: "plain", err: fmt.Errorf("boom"), want: Internal},
		{name: "application", err: &Error{Code: NotFound, Err: sql.ErrNoRows}, want: NotFound},
		{name: "wrapped", err: errors.Wrap(&Error{Code: Invalid, Err: fmt.Errorf("bad")}, "context"), want: Invalid},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			require.Equal(t, test.want, ErrorCode(test.err))
		})
	}
}

func TestErrorMessage(t *testing.T) {
	require.Equal(t, "", ErrorMessage(nil))
	require.Equal(t, "Internal error.", ErrorMessage(fmt.Errorf("disk on fire")))
	require.Equal(t, "unknown syrup", ErrorMessage(&Error{Code: NotFound, Err: fmt.Errorf("unknown syrup")}))
}

func TestHasPrefixes(t *testing.T) {
	require.True(t, HasPrefixes("/api/auth/signin", "/api/ping", "/api/auth"))
	require.False(t, HasPrefixes("/api/beverage", "/api/ping", "/api/auth"))
}
