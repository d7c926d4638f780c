package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"pix-limit-service/internal/domain"
	custrepo "pix-limit-service/internal/repository/customer"
)

type customerSeed struct {
	DocumentNumber string
	Name           string
	Email          string
	AgencyCode     string
	AccountNumber  string
	InitialLimit   string
}

// Apply inserts basic seed data for manual testing. It is idempotent:
// customers whose document number is already stored are skipped.
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	repo := custrepo.NewPostgres(pool, nil)

	customers := []customerSeed{
		{
			DocumentNumber: "529.982.247-25",
			Name:           "Maria Silva",
			Email:          "maria.silva@example.com",
			AgencyCode:     "0001",
			AccountNumber:  "123456-7",
			InitialLimit:   "5000",
		},
		{
			DocumentNumber: "12.345.678/0001-95",
			Name:           "Padaria do Centro LTDA",
			Email:          "contato@padariacentro.example.com",
			AgencyCode:     "0002",
			AccountNumber:  "765432-1",
			InitialLimit:   "25000",
		},
	}

	for _, s := range customers {
		if err := ensureCustomer(ctx, repo, s); err != nil {
			return fmt.Errorf("ensure customer %s: %w", s.DocumentNumber, err)
		}
	}

	return nil
}

func ensureCustomer(ctx context.Context, repo custrepo.Repository, s customerSeed) error {
	account, err := domain.NewAccount(s.AgencyCode, s.AccountNumber)
	if err != nil {
		return err
	}
	limit, err := decimal.NewFromString(s.InitialLimit)
	if err != nil {
		return err
	}
	c, err := domain.NewCustomer(s.DocumentNumber, s.Name, s.Email, account, &limit, "initial limit")
	if err != nil {
		return err
	}

	if _, err := repo.GetByDocumentNumber(ctx, c.DocumentNumber); err == nil {
		return nil
	} else if !errors.Is(err, domain.ErrNotFound) {
		return err
	}

	if err := repo.Add(ctx, c); err != nil && !errors.Is(err, domain.ErrAlreadyExists) {
		return err
	}
	return nil
}
