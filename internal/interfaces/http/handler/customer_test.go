package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	appcustomer "github.com/billing/backend/internal/application/customer"
	"github.com/billing/backend/internal/domain/customer"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCustomerRepo struct {
	customers map[uuid.UUID]*customer.Customer
}

func newFakeCustomerRepo() *fakeCustomerRepo {
	return &fakeCustomerRepo{customers: make(map[uuid.UUID]*customer.Customer)}
}

func (f *fakeCustomerRepo) FindByID(_ context.Context, id uuid.UUID) (*customer.Customer, error) {
	c, ok := f.customers[id]
	if !ok {
		return nil, customer.ErrCustomerNotFound
	}
	return c, nil
}

func (f *fakeCustomerRepo) FindAll(_ context.Context, _ customer.ListFilter) ([]customer.Customer, error) {
	items := make([]customer.Customer, 0, len(f.customers))
	for _, c := range f.customers {
		items = append(items, *c)
	}
	return items, nil
}

func (f *fakeCustomerRepo) Count(_ context.Context, _ customer.ListFilter) (int64, error) {
	return int64(len(f.customers)), nil
}

func (f *fakeCustomerRepo) Save(_ context.Context, c *customer.Customer) error {
	f.customers[c.ID] = c
	return nil
}

func (f *fakeCustomerRepo) SaveAggregate(_ context.Context, c *customer.Customer, _, _ []uuid.UUID) error {
	f.customers[c.ID] = c
	return nil
}

func setupCustomerRouter(repo *fakeCustomerRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewCustomerHandler(appcustomer.NewService(repo))
	engine := gin.New()
	engine.GET("/customers", h.List)
	engine.POST("/customers", h.Create)
	engine.GET("/customers/:id", h.Get)
	engine.PUT("/customers/:id", h.Update)
	return engine
}

func seedRepoCustomer(repo *fakeCustomerRepo) *customer.Customer {
	legalName := "ACME Serviços LTDA"
	cnpj := "11444777000161"
	c := &customer.Customer{
		ID:         uuid.New(),
		PersonType: customer.PersonTypePJ,
		Status:     customer.StatusAtivo,
		LegalName:  &legalName,
		CNPJ:       &cnpj,
	}
	repo.customers[c.ID] = c
	return c
}

func doJSON(t *testing.T, engine *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func errorInfo(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	env := decodeEnvelope(t, w)
	require.Equal(t, false, env["success"])
	info, ok := env["error"].(map[string]any)
	require.True(t, ok)
	return info
}

func TestCustomerHandler_Get(t *testing.T) {
	repo := newFakeCustomerRepo()
	engine := setupCustomerRouter(repo)
	c := seedRepoCustomer(repo)

	t.Run("returns the customer inside the envelope", func(t *testing.T) {
		w := doJSON(t, engine, http.MethodGet, "/customers/"+c.ID.String(), nil)

		require.Equal(t, http.StatusOK, w.Code)
		env := decodeEnvelope(t, w)
		assert.Equal(t, true, env["success"])
		data := env["data"].(map[string]any)
		assert.Equal(t, "ACME Serviços LTDA", data["razao_social"])
	})

	t.Run("malformed id", func(t *testing.T) {
		w := doJSON(t, engine, http.MethodGet, "/customers/not-a-uuid", nil)

		require.Equal(t, http.StatusBadRequest, w.Code)
		info := errorInfo(t, w)
		assert.Equal(t, "BAD_REQUEST", info["code"])
		assert.Equal(t, "ID inválido", info["message"])
	})

	t.Run("unknown id", func(t *testing.T) {
		w := doJSON(t, engine, http.MethodGet, "/customers/"+uuid.NewString(), nil)

		require.Equal(t, http.StatusNotFound, w.Code)
		info := errorInfo(t, w)
		assert.Equal(t, "NOT_FOUND", info["code"])
		assert.Equal(t, "Cliente não encontrado", info["message"])
	})
}

func TestCustomerHandler_Create(t *testing.T) {
	t.Run("creates and returns 201", func(t *testing.T) {
		repo := newFakeCustomerRepo()
		engine := setupCustomerRouter(repo)

		w := doJSON(t, engine, http.MethodPost, "/customers", map[string]any{
			"tipo_pessoa":  "PJ",
			"razao_social": "Nova Empresa LTDA",
			"cnpj":         "11.444.777/0001-61",
		})

		require.Equal(t, http.StatusCreated, w.Code)
		env := decodeEnvelope(t, w)
		data := env["data"].(map[string]any)
		assert.Equal(t, "11444777000161", data["cnpj"])
		assert.Len(t, repo.customers, 1)
	})

	t.Run("binding failure reports field details", func(t *testing.T) {
		repo := newFakeCustomerRepo()
		engine := setupCustomerRouter(repo)

		w := doJSON(t, engine, http.MethodPost, "/customers", map[string]any{
			"tipo_pessoa": "XX",
		})

		require.Equal(t, http.StatusBadRequest, w.Code)
		info := errorInfo(t, w)
		assert.Equal(t, "BAD_REQUEST", info["code"])
		details := info["details"].([]any)
		require.NotEmpty(t, details)
		first := details[0].(map[string]any)
		assert.Equal(t, "PersonType", first["field"])
	})

	t.Run("identity failure maps to 400", func(t *testing.T) {
		repo := newFakeCustomerRepo()
		engine := setupCustomerRouter(repo)

		w := doJSON(t, engine, http.MethodPost, "/customers", map[string]any{
			"tipo_pessoa":  "PJ",
			"razao_social": "Sem CNPJ LTDA",
		})

		require.Equal(t, http.StatusBadRequest, w.Code)
		info := errorInfo(t, w)
		assert.Equal(t, "IDENTITY_INVALID", info["code"])
	})
}

func TestCustomerHandler_Update(t *testing.T) {
	t.Run("applies a partial update", func(t *testing.T) {
		repo := newFakeCustomerRepo()
		engine := setupCustomerRouter(repo)
		c := seedRepoCustomer(repo)

		w := doJSON(t, engine, http.MethodPut, "/customers/"+c.ID.String(), map[string]any{
			"nome_fantasia": "ACME",
		})

		require.Equal(t, http.StatusOK, w.Code)
		env := decodeEnvelope(t, w)
		data := env["data"].(map[string]any)
		assert.Equal(t, "ACME", data["nome_fantasia"])
		assert.Equal(t, "system", data["atualizado_por"])
	})

	t.Run("section validation failure returns 400 with details", func(t *testing.T) {
		repo := newFakeCustomerRepo()
		engine := setupCustomerRouter(repo)
		c := seedRepoCustomer(repo)

		w := doJSON(t, engine, http.MethodPut, "/customers/"+c.ID.String(), map[string]any{
			"cobranca_prefs": map[string]any{"dia_fatura": 31},
		})

		require.Equal(t, http.StatusBadRequest, w.Code)
		info := errorInfo(t, w)
		assert.Equal(t, "SECTION_VALIDATION_FAILED", info["code"])
		details := info["details"].([]any)
		require.Len(t, details, 1)
		first := details[0].(map[string]any)
		assert.Equal(t, "cobranca_prefs.dia_fatura", first["field"])
	})

	t.Run("sensitive card data returns 400", func(t *testing.T) {
		repo := newFakeCustomerRepo()
		engine := setupCustomerRouter(repo)
		c := seedRepoCustomer(repo)

		w := doJSON(t, engine, http.MethodPut, "/customers/"+c.ID.String(), map[string]any{
			"pagamento_prefs": map[string]any{"cartao_pan": "4111111111111111"},
		})

		require.Equal(t, http.StatusBadRequest, w.Code)
		info := errorInfo(t, w)
		assert.Equal(t, "SENSITIVE_DATA_REJECTED", info["code"])
	})

	t.Run("foreign child id returns 409", func(t *testing.T) {
		repo := newFakeCustomerRepo()
		engine := setupCustomerRouter(repo)
		c := seedRepoCustomer(repo)

		w := doJSON(t, engine, http.MethodPut, "/customers/"+c.ID.String(), map[string]any{
			"contatos": []map[string]any{
				{"id": uuid.NewString(), "nome": "Intruso"},
			},
		})

		require.Equal(t, http.StatusConflict, w.Code)
		info := errorInfo(t, w)
		assert.Equal(t, "CHILD_NOT_OWNED", info["code"])
	})

	t.Run("missing billing contact returns 422", func(t *testing.T) {
		repo := newFakeCustomerRepo()
		engine := setupCustomerRouter(repo)
		c := seedRepoCustomer(repo)

		w := doJSON(t, engine, http.MethodPut, "/customers/"+c.ID.String(), map[string]any{
			"nfse_settings": map[string]any{
				"prefeitura":                        "São Paulo",
				"enviar_nfse_para_email_do_cliente": true,
			},
		})

		require.Equal(t, http.StatusUnprocessableEntity, w.Code)
		info := errorInfo(t, w)
		assert.Equal(t, "MISSING_BILLING_CONTACT", info["code"])
	})

	t.Run("unknown customer returns 404", func(t *testing.T) {
		repo := newFakeCustomerRepo()
		engine := setupCustomerRouter(repo)

		w := doJSON(t, engine, http.MethodPut, "/customers/"+uuid.NewString(), map[string]any{
			"nome_fantasia": "X",
		})

		require.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestCustomerHandler_List(t *testing.T) {
	repo := newFakeCustomerRepo()
	engine := setupCustomerRouter(repo)
	seedRepoCustomer(repo)

	t.Run("returns the paginated envelope", func(t *testing.T) {
		w := doJSON(t, engine, http.MethodGet, "/customers?limit=10", nil)

		require.Equal(t, http.StatusOK, w.Code)
		env := decodeEnvelope(t, w)
		data := env["data"].(map[string]any)
		assert.EqualValues(t, 1, data["total"])
		assert.EqualValues(t, 10, data["limit"])
		assert.Len(t, data["items"].([]any), 1)
	})
}
