package v2controllers

import (
	"testing"
	"time"

	"github.com/relaytools/relaybilling/db/models"
	"github.com/relaytools/relaybilling/lib/ledger"
	"github.com/stretchr/testify/assert"
	"github.com/uptrace/bun"
)

func testOrder() *models.Order {
	return &models.Order{
		ID:          "o1",
		RelayID:     "r-alice",
		Relay:       &models.Relay{ID: "r-alice", Name: "alice"},
		Amount:      21000,
		ExpiresAt:   bun.NullTime{Time: time.Date(2024, 3, 1, 13, 0, 0, 0, time.UTC)},
		PaymentHash: "deadbeef",
		Lnurl:       "lnbc210u1p",
	}
}

func TestNewOrderDetailResponse(t *testing.T) {
	classification := ledger.Classification{State: ledger.StateUnpaid, Actionable: true}
	response := NewOrderDetailResponse(testOrder(), classification, true)

	assert.Equal(t, "alice", response.RelayName)
	assert.Equal(t, "unpaid", response.State)
	assert.True(t, response.Actionable)
	assert.Equal(t, "lnbc210u1p", response.PaymentRequest)
	assert.Equal(t, "deadbeef", response.PaymentHash)
	assert.Nil(t, response.PaidAt)
	assert.NotNil(t, response.ExpiresAt)
	assert.Empty(t, response.RedirectTo)
}

func TestNewOrderDetailResponsePaymentsDisabled(t *testing.T) {
	classification := ledger.Classification{State: ledger.StateUnpaid, Actionable: true}
	response := NewOrderDetailResponse(testOrder(), classification, false)

	assert.False(t, response.PaymentsEnabled)
	assert.Equal(t, "/curator?relay_id=r-alice", response.RedirectTo)
}
