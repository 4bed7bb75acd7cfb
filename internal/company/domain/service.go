package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
)

type Service interface {
	Get(ctx context.Context, id snowflake.ID) (*Company, error)
	// ModuleEnabled reports whether the company enabled the portal module.
	ModuleEnabled(ctx context.Context, companyID snowflake.ID, module int64) (bool, error)
}

var ErrCompanyNotFound = errors.New("company_not_found")
