package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/luxoria/luxoria_backend/models"
	"github.com/luxoria/luxoria_backend/services"
)

type saleFixture struct {
	sellers     *fakeSellerStore
	brokers     *fakeBrokerStore
	commissions *fakeCommissionStore
	controller  *SaleController
}

func newSaleFixture(brokers ...*models.Broker) *saleFixture {
	brokerStore := newFakeBrokerStore(brokers...)
	sellerStore := newFakeSellerStore()
	commissionStore := newFakeCommissionStore()
	controller := NewSaleController(
		sellerStore, brokerStore, commissionStore,
		services.NewAttributionService(brokerStore),
		services.NewCommissionCalculator(0.30),
		nil,
	)
	return &saleFixture{
		sellers:     sellerStore,
		brokers:     brokerStore,
		commissions: commissionStore,
		controller:  controller,
	}
}

func (f *saleFixture) addSeller(wallet string, referredBy *primitive.ObjectID) *models.Seller {
	seller := &models.Seller{
		ID:            primitive.NewObjectID(),
		WalletAddress: wallet,
		ReferredBy:    referredBy,
	}
	f.sellers.sellers[wallet] = seller
	return seller
}

func TestRecordSaleWithCommission(t *testing.T) {
	broker := &models.Broker{FullName: "Ava Laurent", ReferralCode: "BRK-A1B2C3"}
	f := newSaleFixture(broker)
	seller := f.addSeller(testSellerWallet, &broker.ID)

	e := newTestEcho()
	c, rec := newJSONContext(e, http.MethodPost, "/api/sales/record",
		`{"sellerWallet":"`+testSellerWallet+`","saleAmountUSD":250000,"category":"cars","payMethod":"crypto","transactionHash":"ABC123"}`)

	require.NoError(t, f.controller.RecordSale(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	require.Len(t, f.commissions.rows, 1)
	row := f.commissions.rows[0]
	assert.Equal(t, broker.ID, row.BrokerID)
	assert.Equal(t, seller.ID, row.SellerID)
	assert.Equal(t, models.CommissionStatusPending, row.Status)
	assert.InDelta(t, 13500, row.PlatformFeeUSD, 1e-6)
	assert.InDelta(t, 4050, row.CommissionUSD, 1e-6)
	assert.InDelta(t, 0.054, row.FeeRate, 1e-9)
	assert.InDelta(t, 0.30, row.CommissionRate, 1e-9)
	assert.Equal(t, "cars", row.Category)
	assert.Equal(t, "crypto", row.PayMethod)

	assert.Equal(t, 1, f.brokers.totalsCalls)
	assert.InDelta(t, 250000, broker.TotalSalesUSD, 1e-6)
	assert.InDelta(t, 4050, broker.TotalCommissionUSD, 1e-6)

	var resp models.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, true, data["success"])
	commission := data["commission"].(map[string]interface{})
	assert.InDelta(t, 4050, commission["amount"].(float64), 1e-6)
}

func TestRecordSaleUnattributedSeller(t *testing.T) {
	f := newSaleFixture()
	f.addSeller(testSellerWallet, nil)

	e := newTestEcho()
	c, rec := newJSONContext(e, http.MethodPost, "/api/sales/record",
		`{"sellerWallet":"`+testSellerWallet+`","saleAmountUSD":1000}`)

	require.NoError(t, f.controller.RecordSale(c))

	// No attributed broker: the sale is acknowledged but no commission row
	// is created
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, f.commissions.rows)
	assert.Equal(t, 0, f.brokers.totalsCalls)

	var resp models.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	data := resp.Data.(map[string]interface{})
	commission := data["commission"].(map[string]interface{})
	assert.Equal(t, 0.0, commission["amount"].(float64))
}

func TestRecordSaleCommissionRoundsToZero(t *testing.T) {
	broker := &models.Broker{ReferralCode: "BRK-A1B2C3"}
	f := newSaleFixture(broker)
	f.addSeller(testSellerWallet, &broker.ID)

	// 0.01 at the 5% default rate gives a 0.0005 platform fee; the 30%
	// commission rounds to 0.00 and must not produce a row
	e := newTestEcho()
	c, rec := newJSONContext(e, http.MethodPost, "/api/sales/record",
		`{"sellerWallet":"`+testSellerWallet+`","saleAmountUSD":0.01}`)

	require.NoError(t, f.controller.RecordSale(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, f.commissions.rows)
	assert.Equal(t, 0, f.brokers.totalsCalls)

	var resp models.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	data := resp.Data.(map[string]interface{})
	commission := data["commission"].(map[string]interface{})
	assert.Equal(t, 0.0, commission["amount"].(float64))
}

func TestRecordSaleUnknownSeller(t *testing.T) {
	f := newSaleFixture()

	e := newTestEcho()
	c, rec := newJSONContext(e, http.MethodPost, "/api/sales/record",
		`{"sellerWallet":"`+testSellerWallet+`","saleAmountUSD":1000}`)

	require.NoError(t, f.controller.RecordSale(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRecordSaleValidation(t *testing.T) {
	f := newSaleFixture()
	f.addSeller(testSellerWallet, nil)
	e := newTestEcho()

	c, rec := newJSONContext(e, http.MethodPost, "/api/sales/record", `{"saleAmountUSD":1000}`)
	require.NoError(t, f.controller.RecordSale(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	c, rec = newJSONContext(e, http.MethodPost, "/api/sales/record",
		`{"sellerWallet":"`+testSellerWallet+`","saleAmountUSD":0}`)
	require.NoError(t, f.controller.RecordSale(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	c, rec = newJSONContext(e, http.MethodPost, "/api/sales/record",
		`{"sellerWallet":"`+testSellerWallet+`","saleAmountUSD":-50}`)
	require.NoError(t, f.controller.RecordSale(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRecordSaleOverrideCode(t *testing.T) {
	stored := &models.Broker{FullName: "Ava Laurent", ReferralCode: "BRK-A1B2C3"}
	override := &models.Broker{FullName: "Noa Vidal", ReferralCode: "BRK-D4E5F6"}
	f := newSaleFixture(stored, override)
	seller := f.addSeller(testSellerWallet, &stored.ID)

	e := newTestEcho()
	c, rec := newJSONContext(e, http.MethodPost, "/api/sales/record",
		`{"sellerWallet":"`+testSellerWallet+`","saleAmountUSD":1000,"referralCode":"BRK-D4E5F6"}`)

	require.NoError(t, f.controller.RecordSale(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	// The override credits this sale only; the stored attribution survives
	require.Len(t, f.commissions.rows, 1)
	assert.Equal(t, override.ID, f.commissions.rows[0].BrokerID)
	assert.Equal(t, stored.ID, *seller.ReferredBy)
}

func TestRecordSaleOverrideCodeInvalidFallsBack(t *testing.T) {
	stored := &models.Broker{FullName: "Ava Laurent", ReferralCode: "BRK-A1B2C3"}
	f := newSaleFixture(stored)
	f.addSeller(testSellerWallet, &stored.ID)

	e := newTestEcho()
	c, rec := newJSONContext(e, http.MethodPost, "/api/sales/record",
		`{"sellerWallet":"`+testSellerWallet+`","saleAmountUSD":1000,"referralCode":"BRK-NOSUCH"}`)

	require.NoError(t, f.controller.RecordSale(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, f.commissions.rows, 1)
	assert.Equal(t, stored.ID, f.commissions.rows[0].BrokerID)
}

func TestRecordSaleDanglingAttribution(t *testing.T) {
	f := newSaleFixture()
	missing := primitive.NewObjectID()
	f.addSeller(testSellerWallet, &missing)

	e := newTestEcho()
	c, rec := newJSONContext(e, http.MethodPost, "/api/sales/record",
		`{"sellerWallet":"`+testSellerWallet+`","saleAmountUSD":1000}`)

	require.NoError(t, f.controller.RecordSale(c))

	// A broker that no longer exists degrades to a commission-free sale
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, f.commissions.rows)
}

func TestRecordSaleDuplicateTransactionHash(t *testing.T) {
	broker := &models.Broker{ReferralCode: "BRK-A1B2C3"}
	f := newSaleFixture(broker)
	f.addSeller(testSellerWallet, &broker.ID)
	e := newTestEcho()

	body := `{"sellerWallet":"` + testSellerWallet + `","saleAmountUSD":1000,"transactionHash":"TX-1"}`

	c, rec := newJSONContext(e, http.MethodPost, "/api/sales/record", body)
	require.NoError(t, f.controller.RecordSale(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	c2, rec2 := newJSONContext(e, http.MethodPost, "/api/sales/record", body)
	require.NoError(t, f.controller.RecordSale(c2))

	assert.Equal(t, http.StatusConflict, rec2.Code)
	require.Len(t, f.commissions.rows, 1)

	var resp models.Response
	require.NoError(t, json.Unmarshal(rec2.Body.Bytes(), &resp))
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, f.commissions.rows[0].ID.Hex(), data["commissionId"])

	// Totals were only applied for the first recording
	assert.Equal(t, 1, f.brokers.totalsCalls)
}

func TestRecordSaleStatsFailureStillSucceeds(t *testing.T) {
	broker := &models.Broker{ReferralCode: "BRK-A1B2C3"}
	f := newSaleFixture(broker)
	f.addSeller(testSellerWallet, &broker.ID)
	f.brokers.totalsErr = errors.New("db down")

	e := newTestEcho()
	c, rec := newJSONContext(e, http.MethodPost, "/api/sales/record",
		`{"sellerWallet":"`+testSellerWallet+`","saleAmountUSD":1000}`)

	require.NoError(t, f.controller.RecordSale(c))

	// The commission row is the source of truth; a failed counter update
	// does not fail the call
	assert.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, f.commissions.rows, 1)
}
