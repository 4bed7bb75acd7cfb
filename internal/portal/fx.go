package portal

import (
	clientdomain "github.com/smallbiznis/portal/internal/client/domain"
	"github.com/smallbiznis/portal/internal/portal/export"
	"github.com/smallbiznis/portal/internal/portal/service"
	"github.com/smallbiznis/portal/internal/portal/store"
	"github.com/smallbiznis/portal/internal/providers/einvoice"
	"github.com/smallbiznis/portal/internal/providers/pdf"
	"go.uber.org/fx"
)

var Module = fx.Module("portal.service",
	store.Module,
	fx.Provide(
		pdf.NewRenderer,
		einvoice.NewRenderer,
		export.NewTempFileStore,
		export.NewPipeline,
		func(clients clientdomain.Service) export.ClientSettings { return clients },
		service.NewService,
	),
)
