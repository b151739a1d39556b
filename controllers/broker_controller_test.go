package controllers

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/luxoria/luxoria_backend/models"
)

const testBrokerWallet = "rN7n7otQDd6FczFgLdSqtcsAUxDkw6fzRH"

func newBrokerFixture(brokers ...*models.Broker) (*BrokerController, *fakeBrokerStore, *fakeCommissionStore) {
	brokerStore := newFakeBrokerStore(brokers...)
	commissionStore := newFakeCommissionStore()
	controller := NewBrokerController(brokerStore, commissionStore, nil, "https://luxoria.com")
	return controller, brokerStore, commissionStore
}

func TestRegisterBroker(t *testing.T) {
	bc, brokerStore, _ := newBrokerFixture()

	e := newTestEcho()
	c, rec := newJSONContext(e, http.MethodPost, "/api/brokers/register",
		`{"fullName":"Ava Laurent","email":"ava@example.com","walletAddress":"`+testBrokerWallet+`"}`)

	require.NoError(t, bc.RegisterBroker(c))
	assert.Equal(t, http.StatusCreated, rec.Code)

	var resp models.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	data := resp.Data.(map[string]interface{})
	broker := data["broker"].(map[string]interface{})

	code := broker["referralCode"].(string)
	assert.Regexp(t, `^BRK-[A-Z0-9]{6}$`, code)
	assert.Equal(t, "https://luxoria.com/?ref="+code, data["referralLink"])

	require.Len(t, brokerStore.brokers, 1)
}

func TestRegisterBrokerValidation(t *testing.T) {
	bc, _, _ := newBrokerFixture()
	e := newTestEcho()

	// fullName is required
	c, rec := newJSONContext(e, http.MethodPost, "/api/brokers/register", `{"email":"ava@example.com"}`)
	require.NoError(t, bc.RegisterBroker(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	c, rec = newJSONContext(e, http.MethodPost, "/api/brokers/register",
		`{"fullName":"Ava Laurent","walletAddress":"0xdeadbeef"}`)
	require.NoError(t, bc.RegisterBroker(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetProfile(t *testing.T) {
	broker := &models.Broker{
		FullName:           "Ava Laurent",
		WalletAddress:      testBrokerWallet,
		ReferralCode:       "BRK-A1B2C3",
		TotalSalesUSD:      250000,
		TotalCommissionUSD: 4050,
	}
	bc, _, commissionStore := newBrokerFixture(broker)

	sellerID := primitive.NewObjectID()
	commissionStore.rows = append(commissionStore.rows, &models.Commission{
		ID:       primitive.NewObjectID(),
		BrokerID: broker.ID,
		SellerID: sellerID,
		Status:   models.CommissionStatusPending,
	})

	e := newTestEcho()
	c, rec := newJSONContext(e, http.MethodGet, "/api/brokers/profile", "")
	c.Request().Header.Set(WalletHeader, testBrokerWallet)

	require.NoError(t, bc.GetProfile(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp models.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	data := resp.Data.(map[string]interface{})
	stats := data["stats"].(map[string]interface{})
	assert.Equal(t, 250000.0, stats["total_sales_usd"])
	assert.Equal(t, 4050.0, stats["total_commission_usd"])
	assert.Equal(t, 1.0, stats["active_sellers"])
}

func TestGetProfileMissingHeader(t *testing.T) {
	bc, _, _ := newBrokerFixture()

	e := newTestEcho()
	c, rec := newJSONContext(e, http.MethodGet, "/api/brokers/profile", "")

	require.NoError(t, bc.GetProfile(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetProfileUnknownWallet(t *testing.T) {
	bc, _, _ := newBrokerFixture()

	e := newTestEcho()
	c, rec := newJSONContext(e, http.MethodGet, "/api/brokers/profile", "")
	c.Request().Header.Set(WalletHeader, testBrokerWallet)

	require.NoError(t, bc.GetProfile(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetCommissionsFiltersByStatus(t *testing.T) {
	broker := &models.Broker{WalletAddress: testBrokerWallet, ReferralCode: "BRK-A1B2C3"}
	bc, _, commissionStore := newBrokerFixture(broker)

	commissionStore.rows = append(commissionStore.rows,
		&models.Commission{ID: primitive.NewObjectID(), BrokerID: broker.ID, Status: models.CommissionStatusPending},
		&models.Commission{ID: primitive.NewObjectID(), BrokerID: broker.ID, Status: models.CommissionStatusPaid},
		&models.Commission{ID: primitive.NewObjectID(), BrokerID: primitive.NewObjectID(), Status: models.CommissionStatusPending},
	)

	e := newTestEcho()
	c, rec := newJSONContext(e, http.MethodGet, "/api/brokers/commissions?status=pending", "")
	c.Request().Header.Set(WalletHeader, testBrokerWallet)

	require.NoError(t, bc.GetCommissions(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp models.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	data := resp.Data.(map[string]interface{})
	commissions := data["commissions"].([]interface{})
	assert.Len(t, commissions, 1)
}

func TestGetReferralQRCode(t *testing.T) {
	broker := &models.Broker{WalletAddress: testBrokerWallet, ReferralCode: "BRK-A1B2C3"}
	bc, _, _ := newBrokerFixture(broker)

	e := newTestEcho()
	c, rec := newJSONContext(e, http.MethodGet, "/api/brokers/qrcode", "")
	c.Request().Header.Set(WalletHeader, testBrokerWallet)

	require.NoError(t, bc.GetReferralQRCode(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp models.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	data := resp.Data.(map[string]interface{})
	qrCode := data["qrCode"].(string)
	assert.True(t, strings.HasPrefix(qrCode, "data:image/png;base64,"))
	assert.Equal(t, "BRK-A1B2C3", data["referralCode"])
	assert.Equal(t, "https://luxoria.com/?ref=BRK-A1B2C3", data["referralLink"])
}

func TestGetLeaderboardAllTime(t *testing.T) {
	bc, brokerStore, _ := newBrokerFixture()
	brokerStore.leaderboard = []models.LeaderboardEntry{
		{Rank: 1, BrokerID: primitive.NewObjectID(), FullName: "Ava Laurent", TotalCommissionUSD: 9000},
		{Rank: 2, BrokerID: primitive.NewObjectID(), FullName: "Noa Vidal", TotalCommissionUSD: 4050},
	}

	e := newTestEcho()
	c, rec := newJSONContext(e, http.MethodGet, "/api/brokers/leaderboard", "")

	require.NoError(t, bc.GetLeaderboard(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp models.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, "all", data["period"])
	items := data["items"].([]interface{})
	require.Len(t, items, 2)
	first := items[0].(map[string]interface{})
	assert.Equal(t, "Ava Laurent", first["fullName"])
}

func TestGetLeaderboardPeriods(t *testing.T) {
	broker := &models.Broker{ReferralCode: "BRK-A1B2C3"}
	bc, _, commissionStore := newBrokerFixture(broker)

	commissionStore.rows = append(commissionStore.rows, &models.Commission{
		ID:            primitive.NewObjectID(),
		BrokerID:      broker.ID,
		SaleAmountUSD: 1000,
		CommissionUSD: 15,
		Status:        models.CommissionStatusPending,
	})
	commissionStore.rows[0].CreatedAt = commissionStore.rows[0].CreatedAt.AddDate(0, 0, -3)

	e := newTestEcho()
	for _, period := range []string{"week", "month"} {
		c, rec := newJSONContext(e, http.MethodGet, "/api/brokers/leaderboard?period="+period, "")
		require.NoError(t, bc.GetLeaderboard(c))
		assert.Equal(t, http.StatusOK, rec.Code)
	}
}

func TestGetLeaderboardInvalidPeriod(t *testing.T) {
	bc, _, _ := newBrokerFixture()

	e := newTestEcho()
	c, rec := newJSONContext(e, http.MethodGet, "/api/brokers/leaderboard?period=year", "")

	require.NoError(t, bc.GetLeaderboard(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetLeaderboardEmptyIsArray(t *testing.T) {
	bc, _, _ := newBrokerFixture()

	e := newTestEcho()
	c, rec := newJSONContext(e, http.MethodGet, "/api/brokers/leaderboard", "")

	require.NoError(t, bc.GetLeaderboard(c))

	var resp models.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	data := resp.Data.(map[string]interface{})
	items, ok := data["items"].([]interface{})
	assert.True(t, ok)
	assert.Empty(t, items)
}

func TestParsePagination(t *testing.T) {
	e := newTestEcho()

	c, _ := newJSONContext(e, http.MethodGet, "/?limit=5&offset=10", "")
	limit, offset := parsePagination(c, 20)
	assert.Equal(t, int64(5), limit)
	assert.Equal(t, int64(10), offset)

	c, _ = newJSONContext(e, http.MethodGet, "/", "")
	limit, offset = parsePagination(c, 20)
	assert.Equal(t, int64(20), limit)
	assert.Equal(t, int64(0), offset)

	// Caps and garbage
	c, _ = newJSONContext(e, http.MethodGet, "/?limit=5000&offset=-3", "")
	limit, offset = parsePagination(c, 20)
	assert.Equal(t, int64(100), limit)
	assert.Equal(t, int64(0), offset)
}
