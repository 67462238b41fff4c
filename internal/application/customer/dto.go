package customer

import (
	"time"

	"github.com/billing/backend/internal/domain/customer"
	"github.com/google/uuid"
)

// ContactInput is a contact in a create or update payload. A nil ID means a
// new contact; a set ID targets an existing one.
type ContactInput struct {
	ID                    *uuid.UUID `json:"id"`
	Name                  string     `json:"nome" binding:"required"`
	Role                  *string    `json:"cargo"`
	Email                 *string    `json:"email" binding:"omitempty,email"`
	Phone                 *string    `json:"telefone"`
	WhatsApp              *string    `json:"whatsapp"`
	PreferredChannel      *string    `json:"canal_preferido" binding:"omitempty,oneof=email sms whatsapp"`
	BillingResponsible    *bool      `json:"responsavel_financeiro"`
	TechnicalResponsible  *bool      `json:"responsavel_tecnico"`
	CommercialConsentIP   *string    `json:"aceite_comercial_ip"`
	CommercialConsentDate *time.Time `json:"aceite_comercial_data"`
}

func (in *ContactInput) inputID() uuid.UUID {
	if in.ID == nil {
		return uuid.Nil
	}
	return *in.ID
}

func (in *ContactInput) applyTo(ct *customer.Contact) {
	ct.Name = in.Name
	if in.Role != nil {
		ct.Role = in.Role
	}
	if in.Email != nil {
		ct.Email = in.Email
	}
	if in.Phone != nil {
		ct.Phone = in.Phone
	}
	if in.WhatsApp != nil {
		ct.WhatsApp = in.WhatsApp
	}
	if in.PreferredChannel != nil {
		ct.PreferredChannel = in.PreferredChannel
	}
	if in.BillingResponsible != nil {
		ct.BillingResponsible = *in.BillingResponsible
	}
	if in.TechnicalResponsible != nil {
		ct.TechnicalResponsible = *in.TechnicalResponsible
	}
	if in.CommercialConsentIP != nil {
		ct.CommercialConsentIP = in.CommercialConsentIP
	}
	if in.CommercialConsentDate != nil {
		ct.CommercialConsentDate = in.CommercialConsentDate
	}
}

func (in *ContactInput) toContact(customerID uuid.UUID) customer.Contact {
	ct := customer.Contact{
		ID:         uuid.New(),
		CustomerID: customerID,
	}
	in.applyTo(&ct)
	return ct
}

// AddressInput is an address in a create or update payload.
type AddressInput struct {
	ID           *uuid.UUID `json:"id"`
	Type         string     `json:"tipo" binding:"required,oneof=cobranca operacional"`
	Street       string     `json:"logradouro" binding:"required"`
	Number       string     `json:"numero" binding:"required"`
	Complement   *string    `json:"complemento"`
	District     string     `json:"bairro" binding:"required"`
	City         string     `json:"cidade" binding:"required"`
	State        string     `json:"uf" binding:"required,len=2"`
	PostalCode   string     `json:"cep" binding:"required"`
	Country      *string    `json:"pais"`
	IBGECityCode *int       `json:"codigo_ibge_municipio"`
}

func (in *AddressInput) inputID() uuid.UUID {
	if in.ID == nil {
		return uuid.Nil
	}
	return *in.ID
}

func (in *AddressInput) applyTo(ad *customer.Address) {
	ad.Type = customer.AddressType(in.Type)
	ad.Street = in.Street
	ad.Number = in.Number
	if in.Complement != nil {
		ad.Complement = in.Complement
	}
	ad.District = in.District
	ad.City = in.City
	ad.State = in.State
	ad.PostalCode = in.PostalCode
	if in.Country != nil {
		ad.Country = *in.Country
	}
	if in.IBGECityCode != nil {
		ad.IBGECityCode = in.IBGECityCode
	}
}

func (in *AddressInput) toAddress(customerID uuid.UUID) customer.Address {
	ad := customer.Address{
		ID:         uuid.New(),
		CustomerID: customerID,
		Country:    "Brasil",
	}
	in.applyTo(&ad)
	return ad
}

// CreateCustomerRequest is the initial insert payload.
type CreateCustomerRequest struct {
	PersonType            string   `json:"tipo_pessoa" binding:"required,oneof=PJ PF"`
	LegalName             *string  `json:"razao_social"`
	TradeName             *string  `json:"nome_fantasia"`
	CNPJ                  *string  `json:"cnpj"`
	CPF                   *string  `json:"cpf"`
	StateRegistration     *string  `json:"inscricao_estadual"`
	MunicipalRegistration *string  `json:"inscricao_municipal"`
	PrimaryCNAE           *string  `json:"cnae_principal_cliente"`
	CompanySize           *string  `json:"porte_empresa"`
	Sector                *string  `json:"setor_atividade"`
	Status                *string  `json:"status_cliente" binding:"omitempty,oneof=Ativo Trial Pausado Inadimplente Encerrado"`
	RiskRating            *string  `json:"classificacao_risco"`
	Tags                  []string `json:"tags"`

	Contacts  []ContactInput `json:"contatos" binding:"omitempty,dive"`
	Addresses []AddressInput `json:"enderecos" binding:"omitempty,dive"`

	CobrancaPrefs  map[string]any `json:"cobranca_prefs"`
	PagamentoPrefs map[string]any `json:"pagamento_prefs"`
	FiscalRules    map[string]any `json:"fiscal_rules"`
	NfseSettings   map[string]any `json:"nfse_settings"`
	DunningRules   map[string]any `json:"dunning_rules"`
	FinanceKpis    map[string]any `json:"finance_kpis"`
	Contabilidade  map[string]any `json:"contabilidade"`
	PortalConfig   map[string]any `json:"portal_config"`
	DocumentosRefs map[string]any `json:"documentos_refs"`
	Lgpd           map[string]any `json:"lgpd"`
	Integracoes    map[string]any `json:"integracoes"`
}

// UpdateCustomerRequest is the partial update payload consumed by the update
// flow. Scalar pointers distinguish absent fields from explicit values; the
// child slices use pointer-to-slice so an absent collection leaves children
// untouched while an empty one clears them.
type UpdateCustomerRequest struct {
	PersonType            *string  `json:"tipo_pessoa" binding:"omitempty,oneof=PJ PF"`
	LegalName             *string  `json:"razao_social"`
	TradeName             *string  `json:"nome_fantasia"`
	CNPJ                  *string  `json:"cnpj"`
	CPF                   *string  `json:"cpf"`
	StateRegistration     *string  `json:"inscricao_estadual"`
	MunicipalRegistration *string  `json:"inscricao_municipal"`
	PrimaryCNAE           *string  `json:"cnae_principal_cliente"`
	CompanySize           *string  `json:"porte_empresa"`
	Sector                *string  `json:"setor_atividade"`
	Status                *string  `json:"status_cliente" binding:"omitempty,oneof=Ativo Trial Pausado Inadimplente Encerrado"`
	RiskRating            *string  `json:"classificacao_risco"`
	Tags                  []string `json:"tags"`

	Contacts  *[]ContactInput `json:"contatos" binding:"omitempty,dive"`
	Addresses *[]AddressInput `json:"enderecos" binding:"omitempty,dive"`

	CobrancaPrefs  map[string]any `json:"cobranca_prefs"`
	PagamentoPrefs map[string]any `json:"pagamento_prefs"`
	FiscalRules    map[string]any `json:"fiscal_rules"`
	NfseSettings   map[string]any `json:"nfse_settings"`
	DunningRules   map[string]any `json:"dunning_rules"`
	FinanceKpis    map[string]any `json:"finance_kpis"`
	Contabilidade  map[string]any `json:"contabilidade"`
	PortalConfig   map[string]any `json:"portal_config"`
	DocumentosRefs map[string]any `json:"documentos_refs"`
	Lgpd           map[string]any `json:"lgpd"`
	Integracoes    map[string]any `json:"integracoes"`
}

func (r *UpdateCustomerRequest) sections() []sectionPatch {
	return []sectionPatch{
		{customer.SectionCobrancaPrefs, r.CobrancaPrefs},
		{customer.SectionPagamentoPrefs, r.PagamentoPrefs},
		{customer.SectionFiscalRules, r.FiscalRules},
		{customer.SectionNfseSettings, r.NfseSettings},
		{customer.SectionDunningRules, r.DunningRules},
		{customer.SectionFinanceKpis, r.FinanceKpis},
		{customer.SectionContabilidade, r.Contabilidade},
		{customer.SectionPortalConfig, r.PortalConfig},
		{customer.SectionDocumentosRefs, r.DocumentosRefs},
		{customer.SectionLgpd, r.Lgpd},
		{customer.SectionIntegracoes, r.Integracoes},
	}
}

type sectionPatch struct {
	name  string
	patch map[string]any
}

// ListCustomersRequest carries listing query parameters.
type ListCustomersRequest struct {
	Query    string `form:"q"`
	Limit    int    `form:"limit,default=100"`
	Offset   int    `form:"offset,default=0"`
	OrderBy  string `form:"order_by,default=razao_social"`
	OrderDir string `form:"order_dir,default=ASC"`
}

// ListCustomersResponse is the paginated listing payload.
type ListCustomersResponse struct {
	Total  int64               `json:"total"`
	Items  []customer.Customer `json:"items"`
	Limit  int                 `json:"limit"`
	Offset int                 `json:"offset"`
}
