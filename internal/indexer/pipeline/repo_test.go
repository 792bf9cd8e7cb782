package pipeline

import (
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/ethereum/go-ethereum/common"

	"github.com/0xPexy/sentra-inspect/internal/evaluation"
	"github.com/0xPexy/sentra-inspect/internal/inspect"
)

func TestTruncateKeepsRunesWhole(t *testing.T) {
	t.Helper()

	cases := []struct {
		in   string
		n    int
		want string
	}{
		{"short", 10, "short"},
		{"abcdef", 3, "abc"},
		{"ab€cd", 3, "ab"},
		{"ab€cd", 4, "ab"},
		{"ab€cd", 5, "ab€"},
		{"€", 1, ""},
	}
	for _, tc := range cases {
		if got := truncate(tc.in, tc.n); got != tc.want {
			t.Fatalf("truncate(%q, %d) = %q, want %q", tc.in, tc.n, got, tc.want)
		}
	}
}

func TestToRowTruncatesMultibyteOracleError(t *testing.T) {
	t.Helper()

	hash := common.HexToHash("0xfeed")
	res := Result{
		Evaluation: &evaluation.Evaluation{
			Inspection: &inspect.Inspection{Hash: hash, BlockNumber: 7, Protocols: inspect.NewProtocolSet()},
			Actions:    make(evaluation.ActionSet),
		},
		Err: &Error{Origin: OriginOracle, Block: 7, TxHash: hash, Err: errors.New(strings.Repeat("価格", 200))},
	}

	row, err := ToRow(res)
	if err != nil {
		t.Fatalf("to row: %v", err)
	}
	if len(row.ProfitError) > 512 || len(row.ProfitError) < 509 {
		t.Fatalf("unexpected profit error length %d", len(row.ProfitError))
	}
	if !utf8.ValidString(row.ProfitError) {
		t.Fatalf("profit error is not valid UTF-8: %q", row.ProfitError)
	}
}
