package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/benx421/points-exchange/internal/models"
	"github.com/benx421/points-exchange/internal/service"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestListTransactions_Filters(t *testing.T) {
	svc := newTestServices(t)
	member := newActor(models.RoleMember)

	txns := []*models.Transaction{{
		ID:           uuid.New(),
		OwnerID:      member.ID,
		Type:         models.TransactionTypeRedemption,
		Amount:       -300,
		BalanceAfter: 700,
		IsSuccess:    true,
		Memo:         "Exchange: Coffee x1",
		CreatedAt:    time.Now().UTC(),
	}}
	svc.ledger.On("ListTransactions", mock.Anything, member,
		mock.MatchedBy(func(f models.TransactionFilter) bool {
			return f.Type != nil && *f.Type == models.TransactionTypeRedemption &&
				f.IsSuccess != nil && *f.IsSuccess &&
				f.OwnerID == nil
		}),
		models.Page{},
	).Return(txns, 1, nil)

	rec := doRequest(t, newTestRouter(t, svc), http.MethodGet, "/api/v1/points/transactions?tx_type=REDEMPTION&is_success=true", &member, nil)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	resp := decodeBody[[]models.Transaction](t, rec)
	require.Len(t, resp, 1)
	assert.Equal(t, int64(-300), resp[0].Amount)
	assert.Equal(t, int64(700), resp[0].BalanceAfter)
}

func TestListTransactions_PageDefaultsSize(t *testing.T) {
	svc := newTestServices(t)
	admin := newActor(models.RoleAdmin)
	ownerID := uuid.New()

	svc.ledger.On("ListTransactions", mock.Anything, admin,
		mock.MatchedBy(func(f models.TransactionFilter) bool {
			return f.OwnerID != nil && *f.OwnerID == ownerID
		}),
		models.Page{Number: 3},
	).Return([]*models.Transaction{}, 21, nil)

	rec := doRequest(t, newTestRouter(t, svc), http.MethodGet, "/api/v1/points/transactions?page=3&owner_id="+ownerID.String(), &admin, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeBody[PagedResponse[models.Transaction]](t, rec)
	assert.Equal(t, PageInfo{Size: models.DefaultPageSize, TotalPages: 3, TotalResources: 21}, resp.Page)
	assert.Empty(t, resp.Results)
}

func TestListTransactions_StoreForbidden(t *testing.T) {
	svc := newTestServices(t)
	store := newActor(models.RoleStore)

	svc.ledger.On("ListTransactions", mock.Anything, store, mock.Anything, mock.Anything).
		Return(nil, 0, &service.ServiceError{Code: service.ErrCodeUnauthorized, Message: "stores cannot read the ledger"})

	rec := doRequest(t, newTestRouter(t, svc), http.MethodGet, "/api/v1/points/transactions", &store, nil)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestListTransactions_InvalidType(t *testing.T) {
	svc := newTestServices(t)
	member := newActor(models.RoleMember)

	rec := doRequest(t, newTestRouter(t, svc), http.MethodGet, "/api/v1/points/transactions?tx_type=REFUND", &member, nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetTransaction(t *testing.T) {
	svc := newTestServices(t)
	member := newActor(models.RoleMember)
	txn := &models.Transaction{ID: uuid.New(), OwnerID: member.ID, Type: models.TransactionTypeDeposit, Amount: 50, BalanceAfter: 50, IsSuccess: true}

	svc.ledger.On("GetTransaction", mock.Anything, member, txn.ID).Return(txn, nil)

	rec := doRequest(t, newTestRouter(t, svc), http.MethodGet, "/api/v1/points/transactions/"+txn.ID.String(), &member, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, txn.ID, decodeBody[models.Transaction](t, rec).ID)
}
