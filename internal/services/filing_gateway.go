package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/unations/tax-engine/internal/types/business"
)

// LocalFilingGateway issues confirmation tokens without contacting a tax
// authority. Submission is an opaque confirmation step.
type LocalFilingGateway struct {
	now func() time.Time
}

// NewLocalFilingGateway creates the default gateway.
func NewLocalFilingGateway() *LocalFilingGateway {
	return &LocalFilingGateway{now: time.Now}
}

// Submit returns a confirmation number of the form CN-<yyyymmdd>-<token>.
func (g *LocalFilingGateway) Submit(ctx context.Context, ret business.TaxReturn) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	token := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:12])
	return fmt.Sprintf("CN-%s-%s", g.now().UTC().Format("20060102"), token), nil
}
