package service

import (
	"context"

	"github.com/bwmarrin/snowflake"
	companydomain "github.com/smallbiznis/portal/internal/company/domain"
	"github.com/smallbiznis/portal/pkg/repository"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ServiceParam struct {
	fx.In

	DB  *gorm.DB
	Log *zap.Logger
}

type Service struct {
	log       *zap.Logger
	companies repository.Repository[companydomain.Company]
}

func NewService(p ServiceParam) companydomain.Service {
	return &Service{
		log:       p.Log.Named("company.service"),
		companies: repository.ProvideStore[companydomain.Company](p.DB),
	}
}

func (s *Service) Get(ctx context.Context, id snowflake.ID) (*companydomain.Company, error) {
	company, err := s.companies.FindOne(ctx, &companydomain.Company{ID: id})
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, companydomain.ErrCompanyNotFound
	}
	return company, nil
}

func (s *Service) ModuleEnabled(ctx context.Context, companyID snowflake.ID, module int64) (bool, error) {
	company, err := s.Get(ctx, companyID)
	if err != nil {
		return false, err
	}
	return company.ModuleEnabled(module), nil
}
