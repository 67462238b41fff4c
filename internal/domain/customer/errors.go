package customer

import "github.com/billing/backend/internal/domain/shared"

// Error codes raised by the customer update flow.
const (
	ErrCodeNotFound                = "NOT_FOUND"
	ErrCodeSectionValidationFailed = "SECTION_VALIDATION_FAILED"
	ErrCodeSensitiveDataRejected   = "SENSITIVE_DATA_REJECTED"
	ErrCodeIdentityInvalid         = "IDENTITY_INVALID"
	ErrCodeChildNotOwned           = "CHILD_NOT_OWNED"
	ErrCodeMissingBillingContact   = "MISSING_BILLING_CONTACT"
)

var (
	ErrCustomerNotFound = shared.NewDomainError(ErrCodeNotFound, "Cliente não encontrado")

	ErrSensitiveCardData = shared.NewDomainError(ErrCodeSensitiveDataRejected,
		"Dados sensíveis de cartão não são permitidos")

	ErrCNPJRequired = shared.NewDomainError(ErrCodeIdentityInvalid, "CNPJ é obrigatório para PJ")
	ErrCNPJInvalid  = shared.NewDomainError(ErrCodeIdentityInvalid, "CNPJ inválido")
	ErrCPFInvalid   = shared.NewDomainError(ErrCodeIdentityInvalid, "CPF inválido")

	ErrLegalNameRequired = shared.NewDomainError(ErrCodeIdentityInvalid,
		"Razão Social é obrigatória para PJ")

	ErrMissingBillingContact = shared.NewDomainError(ErrCodeMissingBillingContact,
		"É necessário um contato financeiro com e-mail para envio automático de NFS-e")
)
