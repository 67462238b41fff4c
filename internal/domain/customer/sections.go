package customer

import (
	"fmt"
	"net"
	"regexp"
	"strings"

	"github.com/billing/backend/internal/domain/customer/schema"
)

// Section keys stored as JSONB documents on the customer.
const (
	SectionCobrancaPrefs  = "cobranca_prefs"
	SectionPagamentoPrefs = "pagamento_prefs"
	SectionFiscalRules    = "fiscal_rules"
	SectionNfseSettings   = "nfse_settings"
	SectionDunningRules   = "dunning_rules"
	SectionFinanceKpis    = "finance_kpis"
	SectionContabilidade  = "contabilidade"
	SectionPortalConfig   = "portal_config"
	SectionDocumentosRefs = "documentos_refs"
	SectionLgpd           = "lgpd"
	SectionIntegracoes    = "integracoes"
)

// SectionValidationError carries every failing field path of one section.
type SectionValidationError struct {
	Section string
	Fields  []schema.FieldError
}

func (e *SectionValidationError) Error() string {
	details := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		details[i] = f.String()
	}
	return fmt.Sprintf("Validação falhou em %s: %s", e.Section, strings.Join(details, "; "))
}

// ValidateSection validates raw against the schema registered for the named
// section, filling defaults. A nil raw document validates as an empty object.
func ValidateSection(name string, raw map[string]any) (map[string]any, error) {
	s, ok := sectionSchemas[name]
	if !ok {
		return nil, fmt.Errorf("unknown section %q", name)
	}
	if raw == nil {
		raw = map[string]any{}
	}
	v, errs := s.Validate(name, raw)
	if len(errs) > 0 {
		return nil, &SectionValidationError{Section: name, Fields: errs}
	}
	return v.(map[string]any), nil
}

var (
	isoDatePattern   = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	yearMonthPattern = regexp.MustCompile(`^\d{4}-\d{2}$`)
	hexColorPattern  = regexp.MustCompile(`^#([0-9A-Fa-f]{3}|[0-9A-Fa-f]{6})$`)
)

func percent(def float64) schema.Number {
	return schema.Number{Min: schema.Ptr(0.0), Max: schema.Ptr(100.0), Default: schema.Ptr(def)}
}

func money(def float64) schema.Number {
	return schema.Number{Min: schema.Ptr(0.0), Default: schema.Ptr(def)}
}

func posInt(def float64) schema.Number {
	return schema.Number{Min: schema.Ptr(0.0), Integer: true, Default: schema.Ptr(def)}
}

func intRange(min, max, def float64) schema.Number {
	return schema.Number{Min: schema.Ptr(min), Max: schema.Ptr(max), Integer: true, Default: schema.Ptr(def)}
}

func isoDate() schema.String {
	return schema.String{Pattern: isoDatePattern, PatternMsg: "data no formato YYYY-MM-DD"}
}

// ipOrEmpty accepts an empty string or a valid IP literal.
type ipOrEmpty struct{}

func (ipOrEmpty) Validate(path string, value any) (any, []schema.FieldError) {
	s, ok := value.(string)
	if !ok {
		return nil, []schema.FieldError{{Path: path, Message: "deve ser um texto"}}
	}
	if s != "" && net.ParseIP(s) == nil {
		return nil, []schema.FieldError{{Path: path, Message: "IP inválido"}}
	}
	return s, nil
}

var gatewayEnum = schema.Enum{Values: []string{"Pagar.me", "Stripe", "PagSeguro", "MercadoPago", "Outro"}}

var reminderSchema = schema.Object{Fields: []schema.Field{
	{Name: "dias", Schema: schema.Number{Min: schema.Ptr(-30.0), Max: schema.Ptr(365.0), Integer: true}, Required: true},
	{Name: "canais", Schema: schema.Array{
		Elem:     schema.Enum{Values: []string{"email", "sms", "whatsapp"}},
		MinItems: 1,
	}, Required: true},
}}

var fileRefSchema = schema.Object{Fields: []schema.Field{
	{Name: "id", Schema: schema.String{}, Required: true},
	{Name: "name", Schema: schema.String{}, Required: true},
}}

func fileRefList() schema.Array {
	return schema.Array{Elem: fileRefSchema, HasDefault: true}
}

var sectionSchemas = map[string]schema.Object{
	SectionCobrancaPrefs: {Fields: []schema.Field{
		{Name: "moeda", Schema: schema.String{Default: schema.Ptr("BRL")}},
		{Name: "dia_fatura", Schema: intRange(1, 28, 1)},
		{Name: "prazo_pagamento_dias", Schema: posInt(7)},
		{Name: "multa_atraso_percent", Schema: schema.Number{Min: schema.Ptr(0.0), Max: schema.Ptr(20.0), Default: schema.Ptr(2.0)}},
		{Name: "juros_mora_percent_ao_mes", Schema: schema.Number{Min: schema.Ptr(0.0), Max: schema.Ptr(20.0), Default: schema.Ptr(1.0)}},
		{Name: "desconto_pagamento_antecipado_percent", Schema: percent(0)},
		{Name: "reajuste_anual_indice", Schema: schema.Enum{Values: []string{"IPCA", "IGP-M", "Fixo", "Outro"}, Default: schema.Ptr("IPCA")}},
		{Name: "reajuste_data_base", Schema: isoDate()},
		{Name: "canais_envio_fatura", Schema: schema.Array{
			Elem:       schema.Enum{Values: []string{"email", "sms", "whatsapp", "portal"}},
			HasDefault: true,
			Default:    []any{"email"},
		}},
		{Name: "idioma_comunicacoes", Schema: schema.Enum{Values: []string{"pt-BR", "en-US"}, Default: schema.Ptr("pt-BR")}},
		{Name: "anexar_pdf_na_fatura", Schema: schema.Bool{Default: schema.Ptr(true)}},
		{Name: "observacao_padrao_fatura", Schema: schema.String{MaxLen: 3000, Default: schema.Ptr("")}},
		{Name: "incluir_boletos", Schema: schema.Bool{Default: schema.Ptr(false)}},
		{Name: "enviar_nota_fiscal_automaticamente", Schema: schema.Bool{Default: schema.Ptr(true)}},
		{Name: "envio_webhook_faturas", Schema: schema.Object{
			Fields: []schema.Field{
				{Name: "enabled", Schema: schema.Bool{Default: schema.Ptr(false)}},
				{Name: "url", Schema: schema.String{Format: schema.FormatURL}},
			},
			DefaultEmpty: true,
		}},
	}},

	SectionPagamentoPrefs: {Fields: []schema.Field{
		{Name: "meio_preferencial", Schema: schema.Enum{Values: []string{"Pix", "Cartão", "Boleto", "Transferência"}, Default: schema.Ptr("Pix")}},
		{Name: "pix", Schema: schema.Object{
			Fields: []schema.Field{
				{Name: "aceita_pix", Schema: schema.Bool{Default: schema.Ptr(true)}},
				{Name: "instrucoes", Schema: schema.String{MaxLen: 2000}},
			},
			DefaultEmpty: true,
		}},
		{Name: "cartao", Schema: schema.Object{
			Fields: []schema.Field{
				{Name: "pagar_com_cartao", Schema: schema.Bool{Default: schema.Ptr(false)}},
				{Name: "cartao_tokenizado_id", Schema: schema.String{MaxLen: 255}},
			},
			DefaultEmpty: true,
		}},
		{Name: "boleto", Schema: schema.Object{
			Fields: []schema.Field{
				{Name: "aceita_boleto", Schema: schema.Bool{Default: schema.Ptr(false)}},
				{Name: "dias_boleto", Schema: posInt(3)},
				{Name: "instrucoes_boleto", Schema: schema.String{MaxLen: 2000}},
			},
			DefaultEmpty: true,
		}},
		{Name: "transferencia", Schema: schema.Object{
			Fields: []schema.Field{
				{Name: "aceita_transferencia", Schema: schema.Bool{Default: schema.Ptr(false)}},
				{Name: "instrucoes_transferencia", Schema: schema.String{MaxLen: 2000}},
			},
			DefaultEmpty: true,
		}},
		{Name: "gateways", Schema: schema.Object{
			Fields: []schema.Field{
				{Name: "gateway_cartao", Schema: gatewayEnum},
				{Name: "gateway_pix", Schema: gatewayEnum},
				{Name: "gateway_boleto", Schema: gatewayEnum},
			},
			DefaultEmpty: true,
		}},
		{Name: "limite_credito", Schema: money(0)},
		{Name: "bloqueio_por_inadimplencia", Schema: schema.Bool{Default: schema.Ptr(true)}},
		{Name: "criterio_bloqueio_dias", Schema: intRange(1, 120, 15)},
	}},

	SectionFiscalRules: {Fields: []schema.Field{
		{Name: "municipio_prestacao", Schema: schema.String{MinLen: 1}, Required: true},
		{Name: "item_lista_servicos_lc116", Schema: schema.String{MinLen: 1}, Required: true},
		{Name: "codigo_tributacao_municipal", Schema: schema.String{MinLen: 1}},
		{Name: "aliquota_iss_percent", Schema: percent(5)},
		{Name: "iss_retido", Schema: schema.Bool{Default: schema.Ptr(false)}},
		{Name: "irrf_retido", Schema: schema.Bool{Default: schema.Ptr(false)}},
		{Name: "aliquota_irrf_percent", Schema: percent(0)},
		{Name: "inss_retido", Schema: schema.Bool{Default: schema.Ptr(false)}},
		{Name: "aliquota_inss_percent", Schema: percent(0)},
		{Name: "csll_retida", Schema: schema.Bool{Default: schema.Ptr(false)}},
		{Name: "aliquota_csll_percent", Schema: percent(0)},
		{Name: "pis_retido", Schema: schema.Bool{Default: schema.Ptr(false)}},
		{Name: "aliquota_pis_percent", Schema: percent(0)},
		{Name: "cofins_retido", Schema: schema.Bool{Default: schema.Ptr(false)}},
		{Name: "aliquota_cofins_percent", Schema: percent(0)},
		{Name: "inscricao_municipal_tomador", Schema: schema.String{}},
		{Name: "exigibilidade_iss", Schema: schema.Enum{Values: []string{"Normal", "Exigibilidade Suspensa", "Isento"}, Default: schema.Ptr("Normal")}},
		{Name: "regime_especial_tributacao", Schema: schema.String{Nullable: true}},
		{Name: "observacoes_fiscais", Schema: schema.String{MaxLen: 3000, Default: schema.Ptr("")}},
	}},

	SectionNfseSettings: {Fields: []schema.Field{
		{Name: "prefeitura", Schema: schema.String{MinLen: 1}, Required: true},
		{Name: "ambiente_nfse", Schema: schema.Enum{Values: []string{"Producao", "Homologacao", "Produção", "Homologação"}, Default: schema.Ptr("Producao")}},
		{Name: "rps_serie", Schema: schema.String{MinLen: 1, Default: schema.Ptr("A")}},
		{Name: "rps_proximo_numero", Schema: schema.Number{Min: schema.Ptr(1.0), Integer: true, Default: schema.Ptr(1.0)}},
		{Name: "lote_proximo_numero", Schema: schema.Number{Min: schema.Ptr(1.0), Integer: true, Default: schema.Ptr(1.0)}},
		{Name: "enviar_nfse_para_email_do_cliente", Schema: schema.Bool{Default: schema.Ptr(true)}},
		{Name: "modelo_discriminacao_servico", Schema: schema.String{
			MinLen:  1,
			MaxLen:  5000,
			Default: schema.Ptr("Prestação de serviços conforme contrato. Ref.: {{fatura_numero}}"),
		}},
		{Name: "retencoes_automatica_base", Schema: schema.Enum{Values: []string{"preco_cheio", "preco_menos_descontos", "custom"}, Default: schema.Ptr("preco_cheio")}},
		{Name: "anexar_xml_pdf_nfse_na_fatura", Schema: schema.Bool{Default: schema.Ptr(true)}},
		{Name: "responsavel_envio_nfse", Schema: schema.Enum{Values: []string{"automatico_pos_pagamento", "na_emissao", "manual"}, Default: schema.Ptr("automatico_pos_pagamento")}},
	}},

	SectionDunningRules: {Fields: []schema.Field{
		{Name: "politica_cobranca", Schema: schema.String{Default: schema.Ptr("Padrao B2B")}},
		{Name: "reminders_antes_vencimento", Schema: schema.Array{Elem: reminderSchema, HasDefault: true}},
		{Name: "reminders_pos_vencimento", Schema: schema.Array{Elem: reminderSchema, HasDefault: true}},
		{Name: "oferta_negociacao_automatica", Schema: schema.Bool{Default: schema.Ptr(false)}},
		{Name: "pausar_servicos_apos_dias_em_atraso", Schema: intRange(1, 120, 15)},
		{Name: "cancelar_apos_dias_em_atraso", Schema: intRange(1, 365, 60)},
		{Name: "responsavel_interno_escala", Schema: schema.String{Format: schema.FormatEmail}},
		{Name: "mensagens_personalizadas_por_etapa", Schema: schema.StringMap{Elem: schema.String{MaxLen: 2000}, HasDefault: true}},
	}},

	SectionFinanceKpis: {Fields: []schema.Field{
		{Name: "mrr_atual", Schema: money(0)},
		{Name: "arr_estimado", Schema: money(0)},
		{Name: "ticket_medio", Schema: money(0)},
		{Name: "lifetime_value", Schema: money(0)},
		{Name: "saldo_em_aberto", Schema: money(0)},
		{Name: "faturas_em_aberto_qtd", Schema: posInt(0)},
		{Name: "aging", Schema: schema.Object{
			Fields: []schema.Field{
				{Name: "0-30", Schema: money(0)},
				{Name: "31-60", Schema: money(0)},
				{Name: "61-90", Schema: money(0)},
				{Name: "90+", Schema: money(0)},
			},
			DefaultEmpty: true,
		}},
		{Name: "inadimplencia_media_dias", Schema: posInt(0)},
		{Name: "ultimo_pagamento", Schema: schema.Object{
			Fields: []schema.Field{
				{Name: "data", Schema: schema.String{Format: schema.FormatDateTime, Nullable: true}},
				{Name: "valor", Schema: money(0)},
			},
			DefaultEmpty: true,
		}},
		{Name: "churn_risk_score", Schema: percent(0)},
		{Name: "historico_faturamento_mensal", Schema: schema.Array{
			Elem: schema.Object{Fields: []schema.Field{
				{Name: "mes", Schema: schema.String{Pattern: yearMonthPattern, PatternMsg: "YYYY-MM"}, Required: true},
				{Name: "valor", Schema: schema.Number{Min: schema.Ptr(0.0)}, Required: true},
				{Name: "status", Schema: schema.Enum{Values: []string{"ok", "atraso", "cancelado"}, Default: schema.Ptr("ok")}},
			}},
			HasDefault: true,
		}},
	}},

	SectionContabilidade: {Fields: []schema.Field{
		{Name: "centro_custo_padrao", Schema: schema.String{}},
		{Name: "plano_de_contas_padrao", Schema: schema.String{}},
		{Name: "projeto_obra_campanha", Schema: schema.String{Nullable: true}},
		{Name: "marcadores_gerenciais", Schema: schema.Array{Elem: schema.String{}, HasDefault: true}},
	}},

	SectionPortalConfig: {Fields: []schema.Field{
		{Name: "habilitar_portal_cliente", Schema: schema.Bool{Default: schema.Ptr(true)}},
		{Name: "url_portal_personalizada", Schema: schema.String{Format: schema.FormatURL, Nullable: true}},
		{Name: "branding_portal", Schema: schema.Object{
			Fields: []schema.Field{
				{Name: "logo_url", Schema: schema.String{Format: schema.FormatURL, Nullable: true}},
				{Name: "cor_primaria", Schema: schema.String{Pattern: hexColorPattern, PatternMsg: "cor hexadecimal inválida", Default: schema.Ptr("#9b5cff")}},
			},
			DefaultEmpty: true,
		}},
		{Name: "usuarios", Schema: schema.Array{Elem: schema.Any{}, HasDefault: true}},
	}},

	SectionDocumentosRefs: {Fields: []schema.Field{
		{Name: "contrato_assinado", Schema: fileRefList()},
		{Name: "propostas", Schema: fileRefList()},
		{Name: "notas_fiscais", Schema: fileRefList()},
		{Name: "comprovantes_pagamento", Schema: fileRefList()},
		{Name: "ndas", Schema: fileRefList()},
		{Name: "outros_documentos", Schema: fileRefList()},
	}},

	SectionLgpd: {Fields: []schema.Field{
		{Name: "base_legal_tratamento", Schema: schema.Enum{
			Values:  []string{"Execucao de contrato", "Consentimento", "Obrigacao legal", "Legitimo interesse"},
			Default: schema.Ptr("Execucao de contrato"),
		}},
		{Name: "finalidades_tratamento", Schema: schema.Array{
			Elem:       schema.String{},
			MinItems:   1,
			HasDefault: true,
			Default:    []any{"faturar", "contatar", "suporte"},
		}},
		{Name: "prazo_retencao_dados_pessoais_anos", Schema: intRange(1, 20, 5)},
		{Name: "prazo_retencao_logs_auditoria_anos", Schema: intRange(1, 20, 10)},
		{Name: "consentimentos", Schema: schema.Array{
			Elem: schema.Object{Fields: []schema.Field{
				{Name: "tipo", Schema: schema.String{}, Required: true},
				{Name: "data", Schema: schema.String{Format: schema.FormatDateTime}, Required: true},
				{Name: "ip", Schema: ipOrEmpty{}, Required: true},
				{Name: "versao", Schema: schema.String{}, Required: true},
			}},
			HasDefault: true,
		}},
		{Name: "restricoes_contato", Schema: schema.Object{
			Fields: []schema.Field{
				{Name: "silencioso", Schema: schema.Bool{Default: schema.Ptr(false)}},
				{Name: "horarios", Schema: schema.String{Default: schema.Ptr("9h-18h")}},
				{Name: "canais_permitidos", Schema: schema.Array{
					Elem:       schema.Enum{Values: []string{"email", "sms", "whatsapp", "portal"}},
					HasDefault: true,
					Default:    []any{"email", "whatsapp"},
				}},
			},
			DefaultEmpty: true,
		}},
		{Name: "solicitacoes_titular", Schema: schema.Array{
			Elem: schema.Object{Fields: []schema.Field{
				{Name: "tipo", Schema: schema.Enum{Values: []string{"acesso", "retificacao", "exclusao", "portabilidade"}}, Required: true},
				{Name: "data", Schema: schema.String{Format: schema.FormatDateTime}, Required: true},
				{Name: "status", Schema: schema.Enum{Values: []string{"aberto", "em_andamento", "atendido", "negado"}, Default: schema.Ptr("aberto")}},
			}},
			HasDefault: true,
		}},
		{Name: "data_ultima_revisao_cadastro", Schema: isoDate()},
	}},

	SectionIntegracoes: {Fields: []schema.Field{
		{Name: "erp_integrado", Schema: schema.String{Nullable: true}},
		{Name: "chaves_integracao", Schema: schema.StringMap{Elem: schema.String{}, HasDefault: true}},
		{Name: "crm_externo_id", Schema: schema.String{Nullable: true}},
		{Name: "webhooks_cliente", Schema: schema.Array{
			Elem: schema.Object{Fields: []schema.Field{
				{Name: "evento", Schema: schema.Enum{Values: []string{"invoice.created", "payment.succeeded", "dunning.step"}}, Required: true},
				{Name: "url", Schema: schema.String{Format: schema.FormatURL}, Required: true},
			}},
			HasDefault: true,
		}},
	}},
}
