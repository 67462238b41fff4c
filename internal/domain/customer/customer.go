package customer

import (
	"time"

	"github.com/google/uuid"
)

// JSONMap is a JSONB document stored on the customer.
type JSONMap = map[string]any

// PersonType distinguishes legal entities from natural persons.
type PersonType string

const (
	PersonTypePJ PersonType = "PJ"
	PersonTypePF PersonType = "PF"
)

// Status is the customer lifecycle status.
type Status string

const (
	StatusAtivo        Status = "Ativo"
	StatusTrial        Status = "Trial"
	StatusPausado      Status = "Pausado"
	StatusInadimplente Status = "Inadimplente"
	StatusEncerrado    Status = "Encerrado"
)

// AddressType distinguishes billing from operational addresses.
type AddressType string

const (
	AddressTypeCobranca    AddressType = "cobranca"
	AddressTypeOperacional AddressType = "operacional"
)

// Customer is the aggregate root: identification scalars, child contacts and
// addresses, and the JSONB configuration sections.
type Customer struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	PersonType            PersonType `gorm:"column:tipo_pessoa;type:varchar(2);not null" json:"tipo_pessoa"`
	LegalName             *string    `gorm:"column:razao_social;type:varchar(255)" json:"razao_social"`
	TradeName             *string    `gorm:"column:nome_fantasia;type:varchar(255)" json:"nome_fantasia"`
	CNPJ                  *string    `gorm:"column:cnpj;type:varchar(14);uniqueIndex:idx_customers_cnpj,where:cnpj IS NOT NULL" json:"cnpj"`
	CPF                   *string    `gorm:"column:cpf;type:varchar(11);uniqueIndex:idx_customers_cpf,where:cpf IS NOT NULL" json:"cpf"`
	StateRegistration     *string    `gorm:"column:inscricao_estadual;type:varchar(30)" json:"inscricao_estadual"`
	MunicipalRegistration *string    `gorm:"column:inscricao_municipal;type:varchar(60)" json:"inscricao_municipal"`
	PrimaryCNAE           *string    `gorm:"column:cnae_principal_cliente;type:varchar(20)" json:"cnae_principal_cliente"`
	CompanySize           *string    `gorm:"column:porte_empresa;type:varchar(20)" json:"porte_empresa"`
	Sector                *string    `gorm:"column:setor_atividade;type:varchar(60)" json:"setor_atividade"`
	Status                Status     `gorm:"column:status_cliente;type:varchar(20);default:Ativo;index" json:"status_cliente"`
	RiskRating            *string    `gorm:"column:classificacao_risco;type:varchar(30)" json:"classificacao_risco"`
	Tags                  []string   `gorm:"column:tags;type:jsonb;serializer:json" json:"tags"`

	Contacts  []Contact `gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE" json:"contatos"`
	Addresses []Address `gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE" json:"enderecos"`

	CobrancaPrefs  JSONMap `gorm:"column:cobranca_prefs;type:jsonb;serializer:json" json:"cobranca_prefs"`
	PagamentoPrefs JSONMap `gorm:"column:pagamento_prefs;type:jsonb;serializer:json" json:"pagamento_prefs"`
	FiscalRules    JSONMap `gorm:"column:fiscal_rules;type:jsonb;serializer:json" json:"fiscal_rules"`
	NfseSettings   JSONMap `gorm:"column:nfse_settings;type:jsonb;serializer:json" json:"nfse_settings"`
	DunningRules   JSONMap `gorm:"column:dunning_rules;type:jsonb;serializer:json" json:"dunning_rules"`
	FinanceKpis    JSONMap `gorm:"column:finance_kpis;type:jsonb;serializer:json" json:"finance_kpis"`
	Contabilidade  JSONMap `gorm:"column:contabilidade;type:jsonb;serializer:json" json:"contabilidade"`
	PortalConfig   JSONMap `gorm:"column:portal_config;type:jsonb;serializer:json" json:"portal_config"`
	DocumentosRefs JSONMap `gorm:"column:documentos_refs;type:jsonb;serializer:json" json:"documentos_refs"`
	Lgpd           JSONMap `gorm:"column:lgpd;type:jsonb;serializer:json" json:"lgpd"`
	Integracoes    JSONMap `gorm:"column:integracoes;type:jsonb;serializer:json" json:"integracoes"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"criado_em"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"atualizado_em"`
	CreatedBy *string   `gorm:"column:criado_por;type:varchar(120)" json:"criado_por"`
	UpdatedBy *string   `gorm:"column:atualizado_por;type:varchar(120)" json:"atualizado_por"`
}

// TableName implements the gorm Tabler interface
func (Customer) TableName() string {
	return "customers"
}

// Section returns a pointer to the stored document for the named section.
func (c *Customer) Section(name string) *JSONMap {
	switch name {
	case SectionCobrancaPrefs:
		return &c.CobrancaPrefs
	case SectionPagamentoPrefs:
		return &c.PagamentoPrefs
	case SectionFiscalRules:
		return &c.FiscalRules
	case SectionNfseSettings:
		return &c.NfseSettings
	case SectionDunningRules:
		return &c.DunningRules
	case SectionFinanceKpis:
		return &c.FinanceKpis
	case SectionContabilidade:
		return &c.Contabilidade
	case SectionPortalConfig:
		return &c.PortalConfig
	case SectionDocumentosRefs:
		return &c.DocumentosRefs
	case SectionLgpd:
		return &c.Lgpd
	case SectionIntegracoes:
		return &c.Integracoes
	}
	return nil
}

// AutoSendNfseByEmail reports whether the NFS-e settings document enables
// automatic sending to the customer's billing contact email.
func AutoSendNfseByEmail(nfse JSONMap) bool {
	v, ok := nfse["enviar_nfse_para_email_do_cliente"].(bool)
	return ok && v
}

// Contact is a person associated with the customer.
type Contact struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CustomerID uuid.UUID `gorm:"type:uuid;not null;index" json:"-"`

	Name                  string     `gorm:"column:nome;type:varchar(120);not null" json:"nome"`
	Role                  *string    `gorm:"column:cargo;type:varchar(120)" json:"cargo"`
	Email                 *string    `gorm:"column:email;type:varchar(180)" json:"email"`
	Phone                 *string    `gorm:"column:telefone;type:varchar(20)" json:"telefone"`
	WhatsApp              *string    `gorm:"column:whatsapp;type:varchar(20)" json:"whatsapp"`
	PreferredChannel      *string    `gorm:"column:canal_preferido;type:varchar(20)" json:"canal_preferido"`
	BillingResponsible    bool       `gorm:"column:responsavel_financeiro;default:false" json:"responsavel_financeiro"`
	TechnicalResponsible  bool       `gorm:"column:responsavel_tecnico;default:false" json:"responsavel_tecnico"`
	CommercialConsentIP   *string    `gorm:"column:aceite_comercial_ip;type:varchar(60)" json:"aceite_comercial_ip"`
	CommercialConsentDate *time.Time `gorm:"column:aceite_comercial_data" json:"aceite_comercial_data"`
}

// TableName implements the gorm Tabler interface
func (Contact) TableName() string {
	return "customer_contacts"
}

// HasBillingEmail reports whether the contact is a billing responsible with a
// non-empty email.
func (ct *Contact) HasBillingEmail() bool {
	return ct.BillingResponsible && ct.Email != nil && *ct.Email != ""
}

// Address is a billing or operational address of the customer.
type Address struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CustomerID uuid.UUID `gorm:"type:uuid;not null;index" json:"-"`

	Type         AddressType `gorm:"column:tipo;type:varchar(20);not null" json:"tipo"`
	Street       string      `gorm:"column:logradouro;type:varchar(180);not null" json:"logradouro"`
	Number       string      `gorm:"column:numero;type:varchar(20);not null" json:"numero"`
	Complement   *string     `gorm:"column:complemento;type:varchar(120)" json:"complemento"`
	District     string      `gorm:"column:bairro;type:varchar(120);not null" json:"bairro"`
	City         string      `gorm:"column:cidade;type:varchar(120);not null" json:"cidade"`
	State        string      `gorm:"column:uf;type:varchar(2);not null" json:"uf"`
	PostalCode   string      `gorm:"column:cep;type:varchar(9);not null" json:"cep"`
	Country      string      `gorm:"column:pais;type:varchar(60);default:Brasil" json:"pais"`
	IBGECityCode *int        `gorm:"column:codigo_ibge_municipio" json:"codigo_ibge_municipio"`
}

// TableName implements the gorm Tabler interface
func (Address) TableName() string {
	return "customer_addresses"
}
