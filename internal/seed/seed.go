package seed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bwmarrin/snowflake"
	clientdomain "github.com/smallbiznis/portal/internal/client/domain"
	companydomain "github.com/smallbiznis/portal/internal/company/domain"
	invoicedomain "github.com/smallbiznis/portal/internal/invoice/domain"
	"github.com/smallbiznis/portal/pkg/db"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	demoCompanyName  = "Acme Studio"
	demoClientName   = "Globex Corp"
	demoContactEmail = "contact@globex.example"
	demoContactToken = "demo-portal-token"
)

// EnsureDemoData seeds a demo company, client, contact and a spread of
// invoices so a fresh install is browsable right away. Idempotent: it does
// nothing once any company exists.
func EnsureDemoData(conn *gorm.DB, node *snowflake.Node) error {
	if conn == nil {
		return errors.New("seed database handle is required")
	}

	ctx := context.Background()
	err := conn.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&companydomain.Company{}).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}

		company := companydomain.Company{
			ID:             node.Generate(),
			Name:           demoCompanyName,
			EnabledModules: companydomain.ModuleInvoices | companydomain.ModulePayments,
		}
		if err := tx.Create(&company).Error; err != nil {
			return err
		}

		client := clientdomain.Client{
			ID:        node.Generate(),
			CompanyID: company.ID,
			Name:      demoClientName,
			Locale:    "en",
			Settings:  datatypes.JSONMap{clientdomain.SettingEnableEInvoice: true},
		}
		if err := tx.Create(&client).Error; err != nil {
			return err
		}

		contact := clientdomain.ClientContact{
			ID:        node.Generate(),
			ClientID:  client.ID,
			CompanyID: company.ID,
			Email:     demoContactEmail,
			Token:     demoContactToken,
		}
		if err := tx.Create(&contact).Error; err != nil {
			return err
		}

		return seedInvoices(tx, node, company.ID, client.ID)
	})
	// Another replica racing the same bootstrap is not an error.
	if db.IsDuplicateKeyErr(err) {
		return nil
	}
	return err
}

func seedInvoices(tx *gorm.DB, node *snowflake.Node, companyID, clientID snowflake.ID) error {
	now := time.Now().UTC()
	overdue := now.AddDate(0, 0, -14)
	upcoming := now.AddDate(0, 0, 14)

	rows := []struct {
		status  invoicedomain.InvoiceStatus
		amount  int64
		balance int64
		due     *time.Time
	}{
		{invoicedomain.InvoiceStatusPaid, 120_00, 0, &overdue},
		{invoicedomain.InvoiceStatusSent, 450_00, 450_00, &upcoming},
		{invoicedomain.InvoiceStatusSent, 80_00, 80_00, &overdue},
		{invoicedomain.InvoiceStatusPartial, 300_00, 150_00, &upcoming},
		{invoicedomain.InvoiceStatusDraft, 99_00, 99_00, nil},
	}

	for i, row := range rows {
		id := node.Generate()
		inv := invoicedomain.Invoice{
			ID:        id,
			HashedID:  id.Base58(),
			CompanyID: companyID,
			ClientID:  clientID,
			Number:    fmt.Sprintf("INV-%04d", i+1),
			Status:    row.status,
			Amount:    row.amount,
			Balance:   row.balance,
			Date:      now.AddDate(0, 0, -i),
			DueDate:   row.due,
		}
		if err := tx.Create(&inv).Error; err != nil {
			return err
		}
	}
	return nil
}
