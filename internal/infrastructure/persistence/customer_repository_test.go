package persistence

import (
	"context"
	"testing"

	"github.com/billing/backend/internal/domain/customer"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupCustomerDB(t *testing.T) *CustomerRepository {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&customer.Customer{}, &customer.Contact{}, &customer.Address{}))
	return NewCustomerRepository(db)
}

func seedCustomer(t *testing.T, repo *CustomerRepository, legalName, cnpj string, contacts ...customer.Contact) *customer.Customer {
	t.Helper()
	c := &customer.Customer{
		ID:         uuid.New(),
		PersonType: customer.PersonTypePJ,
		Status:     customer.StatusAtivo,
		LegalName:  &legalName,
		CNPJ:       &cnpj,
		CobrancaPrefs: customer.JSONMap{
			"moeda":      "BRL",
			"dia_fatura": 5.0,
		},
	}
	for i := range contacts {
		contacts[i].ID = uuid.New()
		contacts[i].CustomerID = c.ID
	}
	c.Contacts = contacts
	require.NoError(t, repo.Save(context.Background(), c))
	return c
}

func defaultFilter(q string) customer.ListFilter {
	return customer.ListFilter{
		Query:    q,
		Limit:    100,
		OrderBy:  "razao_social",
		OrderDir: "ASC",
	}
}

func TestCustomerRepository_FindByID(t *testing.T) {
	repo := setupCustomerDB(t)
	ctx := context.Background()

	t.Run("loads the aggregate with children and sections", func(t *testing.T) {
		email := "fin@acme.com.br"
		saved := seedCustomer(t, repo, "ACME Serviços LTDA", "11444777000161",
			customer.Contact{Name: "Ana", Email: &email, BillingResponsible: true})
		saved.Addresses = []customer.Address{{
			ID: uuid.New(), CustomerID: saved.ID,
			Type: customer.AddressTypeCobranca, Street: "Rua A", Number: "10",
			District: "Centro", City: "São Paulo", State: "SP",
			PostalCode: "01000-000", Country: "Brasil",
		}}
		require.NoError(t, repo.SaveAggregate(ctx, saved, nil, nil))

		found, err := repo.FindByID(ctx, saved.ID)
		require.NoError(t, err)
		assert.Equal(t, "ACME Serviços LTDA", *found.LegalName)
		assert.Equal(t, 5.0, found.CobrancaPrefs["dia_fatura"])
		require.Len(t, found.Contacts, 1)
		assert.True(t, found.Contacts[0].HasBillingEmail())
		require.Len(t, found.Addresses, 1)
		assert.Equal(t, customer.AddressTypeCobranca, found.Addresses[0].Type)
	})

	t.Run("unknown id maps to the domain error", func(t *testing.T) {
		_, err := repo.FindByID(ctx, uuid.New())
		assert.ErrorIs(t, err, customer.ErrCustomerNotFound)
	})
}

func TestCustomerRepository_FindAll(t *testing.T) {
	repo := setupCustomerDB(t)
	ctx := context.Background()

	emailAna := "ana@acme.com.br"
	whats := "5511999990000"
	seedCustomer(t, repo, "ACME Serviços LTDA", "11444777000161",
		customer.Contact{Name: "Ana", Email: &emailAna, WhatsApp: &whats},
		customer.Contact{Name: "Bruno"})
	seedCustomer(t, repo, "Beta Consultoria ME", "19131243000197")

	t.Run("lists everything without a query", func(t *testing.T) {
		items, err := repo.FindAll(ctx, defaultFilter(""))
		require.NoError(t, err)
		assert.Len(t, items, 2)

		total, err := repo.Count(ctx, defaultFilter(""))
		require.NoError(t, err)
		assert.EqualValues(t, 2, total)
	})

	t.Run("case insensitive name search", func(t *testing.T) {
		items, err := repo.FindAll(ctx, defaultFilter("acme"))
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, "ACME Serviços LTDA", *items[0].LegalName)
	})

	t.Run("digit query searches documents and whatsapp", func(t *testing.T) {
		items, err := repo.FindAll(ctx, defaultFilter("11.444.777"))
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, "11444777000161", *items[0].CNPJ)

		items, err = repo.FindAll(ctx, defaultFilter("11999990000"))
		require.NoError(t, err)
		assert.Len(t, items, 1)
	})

	t.Run("contact email search", func(t *testing.T) {
		items, err := repo.FindAll(ctx, defaultFilter("ana@acme"))
		require.NoError(t, err)
		assert.Len(t, items, 1)
	})

	t.Run("multiple matching contacts yield one row", func(t *testing.T) {
		total, err := repo.Count(ctx, defaultFilter("acme"))
		require.NoError(t, err)
		assert.EqualValues(t, 1, total)
	})

	t.Run("ordering and pagination", func(t *testing.T) {
		filter := defaultFilter("")
		filter.OrderDir = "DESC"
		filter.Limit = 1

		items, err := repo.FindAll(ctx, filter)
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, "Beta Consultoria ME", *items[0].LegalName)

		filter.Offset = 1
		items, err = repo.FindAll(ctx, filter)
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, "ACME Serviços LTDA", *items[0].LegalName)
	})

	t.Run("no match", func(t *testing.T) {
		items, err := repo.FindAll(ctx, defaultFilter("inexistente"))
		require.NoError(t, err)
		assert.Empty(t, items)
	})
}

func TestCustomerRepository_SaveAggregate(t *testing.T) {
	repo := setupCustomerDB(t)
	ctx := context.Background()

	t.Run("updates scalars, upserts and deletes children in one commit", func(t *testing.T) {
		email := "ana@acme.com.br"
		c := seedCustomer(t, repo, "ACME Serviços LTDA", "11444777000161",
			customer.Contact{Name: "Ana", Email: &email},
			customer.Contact{Name: "Bruno"})
		dropID := c.Contacts[1].ID

		trade := "ACME"
		c.TradeName = &trade
		c.Contacts[0].Name = "Ana Paula"
		c.Contacts = c.Contacts[:1]
		c.Contacts = append(c.Contacts, customer.Contact{
			ID: uuid.New(), CustomerID: c.ID, Name: "Carla",
		})

		require.NoError(t, repo.SaveAggregate(ctx, c, []uuid.UUID{dropID}, nil))

		found, err := repo.FindByID(ctx, c.ID)
		require.NoError(t, err)
		assert.Equal(t, "ACME", *found.TradeName)
		require.Len(t, found.Contacts, 2)

		names := []string{found.Contacts[0].Name, found.Contacts[1].Name}
		assert.ElementsMatch(t, []string{"Ana Paula", "Carla"}, names)
	})

	t.Run("persists merged section documents", func(t *testing.T) {
		c := seedCustomer(t, repo, "Gama Tech LTDA", "60701190000104")
		c.NfseSettings = customer.JSONMap{
			"prefeitura":                        "São Paulo",
			"enviar_nfse_para_email_do_cliente": true,
		}

		require.NoError(t, repo.SaveAggregate(ctx, c, nil, nil))

		found, err := repo.FindByID(ctx, c.ID)
		require.NoError(t, err)
		assert.Equal(t, true, found.NfseSettings["enviar_nfse_para_email_do_cliente"])
	})
}
