package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	clientdomain "github.com/smallbiznis/portal/internal/client/domain"
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
	log      *zap.Logger
	clients  repository.Repository[clientdomain.Client]
	contacts repository.Repository[clientdomain.ClientContact]
}

func NewService(p ServiceParam) clientdomain.Service {
	return &Service{
		log:      p.Log.Named("client.service"),
		clients:  repository.ProvideStore[clientdomain.Client](p.DB),
		contacts: repository.ProvideStore[clientdomain.ClientContact](p.DB),
	}
}

func (s *Service) FindContactByToken(ctx context.Context, token string) (*clientdomain.ClientContact, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, clientdomain.ErrContactNotFound
	}

	contact, err := s.contacts.FindOne(ctx, &clientdomain.ClientContact{Token: token})
	if err != nil {
		return nil, err
	}
	if contact == nil {
		return nil, clientdomain.ErrContactNotFound
	}
	return contact, nil
}

func (s *Service) GetClient(ctx context.Context, id snowflake.ID) (*clientdomain.Client, error) {
	client, err := s.clients.FindOne(ctx, &clientdomain.Client{ID: id})
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, clientdomain.ErrClientNotFound
	}
	return client, nil
}

func (s *Service) EInvoiceEnabled(ctx context.Context, clientID snowflake.ID) (bool, error) {
	client, err := s.GetClient(ctx, clientID)
	if err != nil {
		return false, err
	}
	return client.EInvoiceEnabled(), nil
}
