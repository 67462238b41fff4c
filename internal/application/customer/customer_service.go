package customer

import (
	"context"
	"strings"

	"github.com/billing/backend/internal/domain/customer"
	"github.com/google/uuid"
)

var orderByWhitelist = map[string]string{
	"razao_social":   "razao_social",
	"nome_fantasia":  "nome_fantasia",
	"cnpj":           "cnpj",
	"cpf":            "cpf",
	"status_cliente": "status_cliente",
	"criado_em":      "created_at",
	"atualizado_em":  "updated_at",
}

// Service exposes customer listing, retrieval, creation and the partial
// update flow.
type Service struct {
	repo customer.Repository
}

// NewService creates a new customer service
func NewService(repo customer.Repository) *Service {
	return &Service{repo: repo}
}

// GetByID loads a customer with its contacts and addresses.
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*customer.Customer, error) {
	return s.repo.FindByID(ctx, id)
}

// List returns a page of customers matching the filter.
func (s *Service) List(ctx context.Context, req ListCustomersRequest) (*ListCustomersResponse, error) {
	filter := customer.ListFilter{
		Query:    strings.TrimSpace(req.Query),
		Limit:    req.Limit,
		Offset:   req.Offset,
		OrderBy:  "razao_social",
		OrderDir: "ASC",
	}
	if filter.Limit < 1 {
		filter.Limit = 1
	}
	if filter.Limit > 500 {
		filter.Limit = 500
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	if col, ok := orderByWhitelist[req.OrderBy]; ok {
		filter.OrderBy = col
	}
	if strings.EqualFold(req.OrderDir, "DESC") {
		filter.OrderDir = "DESC"
	}

	items, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &ListCustomersResponse{
		Total:  total,
		Items:  items,
		Limit:  filter.Limit,
		Offset: filter.Offset,
	}, nil
}

// Create inserts a new customer with its children. Sections present in the
// request are validated and defaulted before storage.
func (s *Service) Create(ctx context.Context, req CreateCustomerRequest, actor string) (*customer.Customer, error) {
	c := &customer.Customer{
		ID:         uuid.New(),
		PersonType: customer.PersonType(req.PersonType),
		Status:     customer.StatusAtivo,
		LegalName:  req.LegalName,
		TradeName:  req.TradeName,
	}
	if req.CNPJ != nil {
		normalized := customer.NormalizeDigits(*req.CNPJ)
		c.CNPJ = &normalized
	}
	if req.CPF != nil {
		normalized := customer.NormalizeDigits(*req.CPF)
		c.CPF = &normalized
	}
	c.StateRegistration = req.StateRegistration
	c.MunicipalRegistration = req.MunicipalRegistration
	c.PrimaryCNAE = req.PrimaryCNAE
	c.CompanySize = req.CompanySize
	c.Sector = req.Sector
	if req.Status != nil {
		c.Status = customer.Status(*req.Status)
	}
	c.RiskRating = req.RiskRating
	c.Tags = req.Tags

	if err := validateIdentity(c, &req.PersonType, req.CNPJ, req.CPF, req.LegalName); err != nil {
		return nil, err
	}

	patches := []sectionPatch{
		{customer.SectionCobrancaPrefs, req.CobrancaPrefs},
		{customer.SectionPagamentoPrefs, req.PagamentoPrefs},
		{customer.SectionFiscalRules, req.FiscalRules},
		{customer.SectionNfseSettings, req.NfseSettings},
		{customer.SectionDunningRules, req.DunningRules},
		{customer.SectionFinanceKpis, req.FinanceKpis},
		{customer.SectionContabilidade, req.Contabilidade},
		{customer.SectionPortalConfig, req.PortalConfig},
		{customer.SectionDocumentosRefs, req.DocumentosRefs},
		{customer.SectionLgpd, req.Lgpd},
		{customer.SectionIntegracoes, req.Integracoes},
	}
	for _, p := range patches {
		if p.patch == nil {
			continue
		}
		if err := mergeSection(c, p.name, p.patch); err != nil {
			return nil, err
		}
	}

	for i := range req.Contacts {
		c.Contacts = append(c.Contacts, req.Contacts[i].toContact(c.ID))
	}
	for i := range req.Addresses {
		c.Addresses = append(c.Addresses, req.Addresses[i].toAddress(c.ID))
	}

	stamp := actorOrSystem(actor)
	c.CreatedBy = &stamp
	c.UpdatedBy = &stamp

	if err := s.repo.Save(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Update applies a partial update to the aggregate: section validation and
// merge, identity rules, scalar assignment, child reconciliation and the
// NFS-e billing-contact invariant, committed as a single unit. Any failure
// leaves the stored aggregate untouched.
func (s *Service) Update(ctx context.Context, id uuid.UUID, req UpdateCustomerRequest, actor string) (*customer.Customer, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	for _, p := range req.sections() {
		if p.patch == nil {
			continue
		}
		if p.name == customer.SectionPagamentoPrefs {
			if _, has := p.patch["cartao_pan"]; has {
				return nil, customer.ErrSensitiveCardData
			}
			if _, has := p.patch["cartao_cvv"]; has {
				return nil, customer.ErrSensitiveCardData
			}
		}
		if err := mergeSection(c, p.name, p.patch); err != nil {
			return nil, err
		}
	}

	if err := validateIdentity(c, req.PersonType, req.CNPJ, req.CPF, req.LegalName); err != nil {
		return nil, err
	}

	assignScalars(c, &req)
	stamp := actorOrSystem(actor)
	c.UpdatedBy = &stamp

	var removedContacts, removedAddresses []uuid.UUID
	if req.Contacts != nil {
		next, removed, err := customer.Reconcile(
			c.Contacts, *req.Contacts, "Contato",
			func(ct *customer.Contact) uuid.UUID { return ct.ID },
			(*ContactInput).inputID,
			func(ct *customer.Contact, in *ContactInput) { in.applyTo(ct) },
			func(in *ContactInput) customer.Contact { return in.toContact(c.ID) },
		)
		if err != nil {
			return nil, err
		}
		c.Contacts = next
		removedContacts = removed
	}
	if req.Addresses != nil {
		next, removed, err := customer.Reconcile(
			c.Addresses, *req.Addresses, "Endereço",
			func(ad *customer.Address) uuid.UUID { return ad.ID },
			(*AddressInput).inputID,
			func(ad *customer.Address, in *AddressInput) { in.applyTo(ad) },
			func(in *AddressInput) customer.Address { return in.toAddress(c.ID) },
		)
		if err != nil {
			return nil, err
		}
		c.Addresses = next
		removedAddresses = removed
	}

	if customer.AutoSendNfseByEmail(c.NfseSettings) {
		hasBillingEmail := false
		for i := range c.Contacts {
			if c.Contacts[i].HasBillingEmail() {
				hasBillingEmail = true
				break
			}
		}
		if !hasBillingEmail {
			return nil, customer.ErrMissingBillingContact
		}
	}

	if err := s.repo.SaveAggregate(ctx, c, removedContacts, removedAddresses); err != nil {
		return nil, err
	}
	return c, nil
}

func mergeSection(c *customer.Customer, name string, patch map[string]any) error {
	parsed, err := customer.ValidateSection(name, patch)
	if err != nil {
		return err
	}
	stored := c.Section(name)
	*stored = customer.DeepMerge(*stored, parsed)
	return nil
}

// validateIdentity enforces the PJ/PF document rules. The rules run only when
// the request declares a person type; rows predating the person-type split
// stay readable until touched.
func validateIdentity(c *customer.Customer, personType, cnpj, cpf, legalName *string) error {
	if personType == nil {
		return nil
	}

	switch customer.PersonType(*personType) {
	case customer.PersonTypePJ:
		if cnpj == nil && (c.CNPJ == nil || *c.CNPJ == "") {
			return customer.ErrCNPJRequired
		}
		if cnpj != nil && !customer.IsValidCNPJ(*cnpj) {
			return customer.ErrCNPJInvalid
		}
		if legalName == nil && (c.LegalName == nil || *c.LegalName == "") {
			return customer.ErrLegalNameRequired
		}
	case customer.PersonTypePF:
		if cpf != nil && !customer.IsValidCPF(*cpf) {
			return customer.ErrCPFInvalid
		}
	}
	return nil
}

func assignScalars(c *customer.Customer, req *UpdateCustomerRequest) {
	if req.PersonType != nil {
		c.PersonType = customer.PersonType(*req.PersonType)
	}
	if req.LegalName != nil {
		c.LegalName = req.LegalName
	}
	if req.TradeName != nil {
		c.TradeName = req.TradeName
	}
	if req.CNPJ != nil {
		normalized := customer.NormalizeDigits(*req.CNPJ)
		c.CNPJ = &normalized
	}
	if req.CPF != nil {
		normalized := customer.NormalizeDigits(*req.CPF)
		c.CPF = &normalized
	}
	if req.StateRegistration != nil {
		c.StateRegistration = req.StateRegistration
	}
	if req.MunicipalRegistration != nil {
		c.MunicipalRegistration = req.MunicipalRegistration
	}
	if req.PrimaryCNAE != nil {
		c.PrimaryCNAE = req.PrimaryCNAE
	}
	if req.CompanySize != nil {
		c.CompanySize = req.CompanySize
	}
	if req.Sector != nil {
		c.Sector = req.Sector
	}
	if req.Status != nil {
		c.Status = customer.Status(*req.Status)
	}
	if req.RiskRating != nil {
		c.RiskRating = req.RiskRating
	}
	if req.Tags != nil {
		c.Tags = req.Tags
	}
}

func actorOrSystem(actor string) string {
	if actor == "" {
		return "system"
	}
	return actor
}
