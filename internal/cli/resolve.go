package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/brp/internal/domain"
)

// resolveBRPID turns user input into a record ID. Bare numbers are
// zero-padded ("7" becomes "000007"); empty input or "last" means the last
// opened record.
func resolveBRPID(ctx context.Context, app *App, input string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" || strings.EqualFold(input, "last") {
		r, err := app.BRPs.Resume(ctx)
		if err != nil {
			return "", err
		}
		return r.ID, nil
	}
	if n, err := strconv.Atoi(input); err == nil && n > 0 {
		return domain.FormatRecordID(n), nil
	}
	return "", fmt.Errorf("invalid BRP ID %q: expected a number such as 000001", input)
}

func argOrEmpty(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
