package statement

import (
	"errors"
	"strings"
	"testing"
)

func TestErrorsUnwrap(t *testing.T) {
	testCases := []struct {
		name string
		err  error
		want error
		text string
	}{
		{
			name: "row",
			err:  &RowError{Account: "General Investing", Table: "holdings", Line: 12, Text: "garbage"},
			want: ErrRowFormatMismatch,
			text: `account "General Investing", holdings table, line 12: "garbage"`,
		},
		{
			name: "balance",
			err:  &AccountError{Account: "Cash Reserve", Field: "ending balance", Err: ErrMissingRequiredField},
			want: ErrMissingRequiredField,
			text: "ending balance",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if !errors.Is(tc.err, tc.want) {
				t.Errorf("errors.Is(%v, %v) = false, want true", tc.err, tc.want)
			}
			if !strings.Contains(tc.err.Error(), tc.text) {
				t.Errorf("Error() = %q, want it to contain %q", tc.err.Error(), tc.text)
			}
		})
	}
}
