package service

import (
	"context"

	"github.com/smallbiznis/portal/internal/clientcontext"
	"github.com/smallbiznis/portal/internal/clock"
	invoicedomain "github.com/smallbiznis/portal/internal/invoice/domain"
	"github.com/smallbiznis/portal/internal/invoice/repository"
	"github.com/smallbiznis/portal/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ServiceParam struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	Clock clock.Clock
}

type Service struct {
	log   *zap.Logger
	repo  *repository.Repository
	clock clock.Clock
}

func NewService(p ServiceParam) invoicedomain.Service {
	return &Service{
		log:   p.Log.Named("invoice.service"),
		repo:  repository.New(p.DB),
		clock: p.Clock,
	}
}

// List validates the listing query, scopes it to the authenticated client and
// returns one page. Validation happens before any query executes so an
// out-of-allow-list sort field never reaches the database.
func (s *Service) List(ctx context.Context, query invoicedomain.ListingQuery) (invoicedomain.ListInvoicesResponse, error) {
	identity, ok := clientcontext.FromContext(ctx)
	if !ok {
		return invoicedomain.ListInvoicesResponse{}, invoicedomain.ErrInvalidClient
	}

	if err := query.Validate(); err != nil {
		return invoicedomain.ListInvoicesResponse{}, err
	}
	query = query.Normalize()

	invoices, total, err := s.repo.List(ctx, identity.CompanyID, identity.ClientID, query, s.clock.Now())
	if err != nil {
		s.log.Error("list invoices", zap.Error(err))
		return invoicedomain.ListInvoicesResponse{}, err
	}

	return invoicedomain.ListInvoicesResponse{
		PageInfo: pagination.BuildPageInfo(query.Pagination, total),
		Invoices: invoices,
	}, nil
}
